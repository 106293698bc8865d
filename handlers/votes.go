// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-box/messages"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/voting"
)

type VoteHandler struct {
	ledger *voting.Ledger
}

func NewVoteHandler(ledger *voting.Ledger) *VoteHandler {
	return &VoteHandler{ledger: ledger}
}

// Cast handles POST /polls/{id}/votes
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	user := middleware.UserFrom(r)

	// Guest accounts browse; they do not vote.
	if !user.IsVoter {
		middleware.CodedErrorResponse(w, http.StatusForbidden, messages.CodeNotVoter)
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	vote, err := h.ledger.CastVote(r.Context(), user.ID, pollID, req.CandidateID)
	if err != nil {
		switch {
		case errors.Is(err, voting.ErrPollNotFound):
			middleware.CodedErrorResponse(w, http.StatusNotFound, messages.CodePollNotFound)
		case errors.Is(err, voting.ErrPollNotActive):
			middleware.CodedErrorResponse(w, http.StatusConflict, messages.CodePollNotActive)
		case errors.Is(err, voting.ErrCandidateNotInPoll):
			middleware.CodedErrorResponse(w, http.StatusBadRequest, messages.CodeCandidateNotInPoll)
		case errors.Is(err, voting.ErrAlreadyVoted):
			middleware.CodedErrorResponse(w, http.StatusConflict, messages.CodeAlreadyVoted)
		default:
			slog.Error("failed to cast vote", "poll_id", pollID, "user_id", user.ID, "error", err)
			middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		}
		return
	}

	slog.Info("vote cast", "poll_id", pollID, "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{VoteID: vote.ID})
}

// HasVoted handles GET /polls/{id}/votes/me
func (h *VoteHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	user := middleware.UserFrom(r)

	voted, err := h.ledger.HasVoted(r.Context(), user.ID, pollID)
	if err != nil {
		slog.Error("failed to check vote", "poll_id", pollID, "user_id", user.ID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HasVotedResponse{HasVoted: voted})
}

// Results handles GET /polls/{id}/results
func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	tally, err := h.ledger.Tally(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, voting.ErrPollNotFound) {
			middleware.CodedErrorResponse(w, http.StatusNotFound, messages.CodePollNotFound)
			return
		}
		slog.Error("failed to tally votes", "poll_id", pollID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PollID:  pollID,
		Results: tally,
	})
}

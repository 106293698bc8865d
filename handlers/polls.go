// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballot-box/lifecycle"
	"github.com/danielhkuo/ballot-box/messages"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
)

type PollHandler struct {
	polls store.PollStore
	lc    *lifecycle.Manager
}

func NewPollHandler(polls store.PollStore, lc *lifecycle.Manager) *PollHandler {
	return &PollHandler{polls: polls, lc: lc}
}

// Create handles POST /polls
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}
	if !req.StartDate.Before(req.EndDate) {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, messages.CodeInvalidDateRange)
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusScheduled
	}
	if !models.ValidStatus(status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid status")
		return
	}

	poll := &models.Poll{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		Status:      status,
		Candidates:  req.Candidates,
		CreatedBy:   middleware.UserFrom(r).ID,
	}
	// A poll created with dates already underway goes live immediately.
	poll.Status = lifecycle.EffectiveStatus(poll, time.Now().UTC())

	poll, err := h.polls.Create(r.Context(), poll)
	if err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "status", poll.Status)
	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{PollID: poll.ID})
}

// Update handles PATCH /polls/{id}
func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title != nil && *req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid status")
		return
	}
	if req.StartDate != nil && req.EndDate != nil && !req.StartDate.Before(*req.EndDate) {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, messages.CodeInvalidDateRange)
		return
	}

	if err := h.polls.Update(r.Context(), pollID, req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.CodedErrorResponse(w, http.StatusNotFound, messages.CodePollNotFound)
			return
		}
		slog.Error("failed to update poll", "poll_id", pollID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	slog.Info("poll updated", "poll_id", pollID)
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /polls/{id}
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	poll, err := h.polls.Get(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.CodedErrorResponse(w, http.StatusNotFound, messages.CodePollNotFound)
			return
		}
		slog.Error("failed to fetch poll", "poll_id", pollID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	reconciled, err := h.lc.Reconcile(r.Context(), *poll, time.Now().UTC())
	if err != nil {
		// The in-memory status is still correct; serve it and move on.
		slog.Warn("failed to persist poll status", "poll_id", pollID, "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, reconciled)
}

// List handles GET /polls
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.List(r.Context())
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	polls, err = h.lc.ReconcileAll(r.Context(), polls, time.Now().UTC())
	if err != nil {
		slog.Warn("failed to persist poll statuses", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// ListActive handles GET /polls/active
func (h *PollHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.ListActive(r.Context(), time.Now().UTC())
	if err != nil {
		slog.Error("failed to list active polls", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

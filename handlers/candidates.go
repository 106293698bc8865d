// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-box/messages"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/storage"
	"github.com/danielhkuo/ballot-box/store"
)

// maxPhotoBytes caps candidate photo uploads at 5 MiB.
const maxPhotoBytes = 5 << 20

type CandidateHandler struct {
	candidates store.CandidateStore
	photos     storage.PhotoStore
}

func NewCandidateHandler(candidates store.CandidateStore, photos storage.PhotoStore) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, photos: photos}
}

// Create handles POST /candidates
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SaveCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	candidate := &models.Candidate{
		Name:        req.Name,
		Biography:   req.Biography,
		Proposals:   req.Proposals,
		SocialLinks: req.SocialLinks,
	}
	if req.PollID != "" {
		candidate.PollID = &req.PollID
	}

	candidate, err := h.candidates.Create(r.Context(), candidate)
	if err != nil {
		slog.Error("failed to create candidate", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	slog.Info("candidate created", "candidate_id", candidate.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.SaveCandidateResponse{CandidateID: candidate.ID})
}

// Update handles PUT /candidates/{id}
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")

	var req models.SaveCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.candidates.Update(r.Context(), candidateID, req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.CodedErrorResponse(w, http.StatusNotFound, messages.CodeCandidateNotFound)
			return
		}
		slog.Error("failed to update candidate", "candidate_id", candidateID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SaveCandidateResponse{CandidateID: candidateID})
}

// Get handles GET /candidates/{id}
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")

	candidate, err := h.candidates.Get(r.Context(), candidateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.CodedErrorResponse(w, http.StatusNotFound, messages.CodeCandidateNotFound)
			return
		}
		slog.Error("failed to fetch candidate", "candidate_id", candidateID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// List handles GET /candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// ListByPoll handles GET /polls/{id}/candidates
func (h *CandidateHandler) ListByPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	candidates, err := h.candidates.ListByPoll(r.Context(), pollID)
	if err != nil {
		slog.Error("failed to list poll candidates", "poll_id", pollID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// UploadPhoto handles POST /candidates/{id}/photo
func (h *CandidateHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "photo storage is not configured")
		return
	}

	candidateID := r.PathValue("id")

	if _, err := h.candidates.Get(r.Context(), candidateID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.CodedErrorResponse(w, http.StatusNotFound, messages.CodeCandidateNotFound)
			return
		}
		slog.Error("failed to fetch candidate", "candidate_id", candidateID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a photo file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.photos.Upload(r.Context(), candidateID, contentType, io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		slog.Error("failed to upload candidate photo", "candidate_id", candidateID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	if err := h.candidates.SetPhotoURL(r.Context(), candidateID, url); err != nil {
		slog.Error("failed to store photo url", "candidate_id", candidateID, "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	slog.Info("candidate photo uploaded", "candidate_id", candidateID)
	middleware.JSONResponse(w, http.StatusOK, models.UploadPhotoResponse{PhotoURL: url})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/messages"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !validEmail(req.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 6 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailRegisteredWithGoogle):
			middleware.CodedErrorResponse(w, http.StatusConflict, messages.CodeEmailWithGoogle)
		case errors.Is(err, store.ErrEmailTaken):
			middleware.CodedErrorResponse(w, http.StatusConflict, messages.CodeEmailTaken)
		default:
			slog.Error("failed to register user", "error", err)
			middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, pair, err := h.svc.LoginEmail(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeLoginError(w, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *user,
	})
}

// Anonymous handles POST /auth/anonymous
func (h *AuthHandler) Anonymous(w http.ResponseWriter, r *http.Request) {
	user, pair, err := h.svc.LoginAnonymously(r.Context())
	if err != nil {
		slog.Error("failed to create guest session", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}

	slog.Info("guest signed in", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *user,
	})
}

// Google handles POST /auth/google
func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.IDToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id_token is required")
		return
	}

	user, pair, err := h.svc.LoginGoogle(r.Context(), req.IDToken)
	if err != nil {
		var conflict *auth.AccountExistsError
		switch {
		case errors.As(err, &conflict):
			middleware.ConflictEmailResponse(w, messages.CodeAccountExists, conflict.Email)
		case errors.Is(err, auth.ErrInvalidGoogleToken):
			middleware.CodedErrorResponse(w, http.StatusUnauthorized, messages.CodeInvalidGoogleToken)
		case errors.Is(err, auth.ErrUserDisabled):
			middleware.CodedErrorResponse(w, http.StatusForbidden, messages.CodeUserDisabled)
		default:
			slog.Error("google login failed", "error", err)
			middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		}
		return
	}

	slog.Info("user logged in with google", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *user,
	})
}

// LinkGoogle handles POST /auth/link-google
func (h *AuthHandler) LinkGoogle(w http.ResponseWriter, r *http.Request) {
	var req models.LinkGoogleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" || req.IDToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email, password and id_token are required")
		return
	}

	user, pair, err := h.svc.LinkGoogle(r.Context(), req.Email, req.Password, req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidGoogleToken):
			middleware.CodedErrorResponse(w, http.StatusUnauthorized, messages.CodeInvalidGoogleToken)
		default:
			h.writeLoginError(w, err)
		}
		return
	}

	slog.Info("google account linked", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *user,
	})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RefreshToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrRefreshExpired):
			middleware.CodedErrorResponse(w, http.StatusUnauthorized, messages.CodeSessionExpired)
		case errors.Is(err, auth.ErrUserDisabled):
			middleware.CodedErrorResponse(w, http.StatusForbidden, messages.CodeUserDisabled)
		default:
			slog.Error("token refresh failed", "error", err)
			middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		}
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.LogoutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.Logout(r.Context(), req.RefreshToken); err != nil {
		slog.Error("logout failed", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, middleware.UserFrom(r))
}

func (h *AuthHandler) writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, messages.CodeUserNotFound)
	case errors.Is(err, auth.ErrWrongPassword):
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, messages.CodeWrongPassword)
	case errors.Is(err, auth.ErrInvalidCredentials):
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, messages.CodeInvalidCredential)
	case errors.Is(err, auth.ErrTooManyRequests):
		middleware.CodedErrorResponse(w, http.StatusTooManyRequests, messages.CodeTooManyRequests)
	case errors.Is(err, auth.ErrUserDisabled):
		middleware.CodedErrorResponse(w, http.StatusForbidden, messages.CodeUserDisabled)
	default:
		slog.Error("login failed", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, messages.CodeInternal)
	}
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && strings.Contains(email[at:], ".")
}

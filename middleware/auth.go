// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/messages"
	"github.com/danielhkuo/ballot-box/models"
)

type contextKey string

const userKey contextKey = "user"

// UserFrom returns the authenticated user placed by RequireUser, or nil.
func UserFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// RequireUser rejects requests without a valid bearer token and places the
// account in the request context.
func RequireUser(svc *auth.Service, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
			return
		}

		user, err := svc.UserFromAccessToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUserDisabled) {
				CodedErrorResponse(w, http.StatusForbidden, messages.CodeUserDisabled)
				return
			}
			CodedErrorResponse(w, http.StatusUnauthorized, messages.CodeSessionExpired)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// RequireAdmin is RequireUser plus an admin-role check.
func RequireAdmin(svc *auth.Service, next http.HandlerFunc) http.HandlerFunc {
	return RequireUser(svc, func(w http.ResponseWriter, r *http.Request) {
		if user := UserFrom(r); user == nil || !user.IsAdmin {
			ErrorResponse(w, http.StatusForbidden, "Administrator access required")
			return
		}
		next(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return header[len(prefix):]
}

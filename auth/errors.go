// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import "errors"

// Business-rule errors. Each maps to a stable error code in the handlers
// layer so the client can localize it.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("wrong password")
	ErrTooManyRequests    = errors.New("too many failed sign-in attempts")
	ErrUserDisabled       = errors.New("account disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrRefreshExpired     = errors.New("refresh token expired")
	ErrInvalidGoogleToken = errors.New("invalid google id token")

	// ErrEmailRegisteredWithGoogle rejects password registration for an
	// email that already belongs to a Google-only account.
	ErrEmailRegisteredWithGoogle = errors.New("email already registered with google sign-in")
)

// AccountExistsError is raised when a Google sign-in hits an email that
// already has a password account. It carries the conflicting email so the
// client can start the account-linking flow, instead of stuffing the email
// into ad-hoc error metadata.
type AccountExistsError struct {
	Email string
}

func (e *AccountExistsError) Error() string {
	return "account exists with different credential: " + e.Email
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity is the subset of a verified Google ID token the service
// needs.
type GoogleIdentity struct {
	Subject string
	Email   string
}

// GoogleVerifier validates a Google ID token obtained by the web client's
// sign-in popup and returns the asserted identity.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleIdentity, error)
}

// IDTokenVerifier verifies tokens against Google's public keys for a fixed
// OAuth client ID audience.
type IDTokenVerifier struct {
	audience string
}

func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{audience: clientID}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, v.audience)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return nil, ErrInvalidGoogleToken
	}

	return &GoogleIdentity{Subject: payload.Subject, Email: email}, nil
}

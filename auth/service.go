// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service implements account registration, email/password and Google
// sign-in, account linking, and refresh-token rotation.
type Service struct {
	users      store.UserStore
	tokens     store.TokenStore
	google     GoogleVerifier
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	throttle   *loginThrottle
	now        func() time.Time
}

func NewService(users store.UserStore, tokens store.TokenStore, google GoogleVerifier, secretKey []byte, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		google:     google,
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		throttle:   newLoginThrottle(),
		now:        time.Now,
	}
}

// Register creates a password account. An email already held by a
// Google-only account is rejected with ErrEmailRegisteredWithGoogle so the
// user is steered to Google sign-in instead of creating a split identity.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if existing != nil {
		if existing.HasGoogle() && !existing.HasPassword() {
			return nil, ErrEmailRegisteredWithGoogle
		}
		return nil, store.ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: &hash,
		IsAdmin:      false,
		IsVoter:      true,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		// Concurrent registration for the same email loses here.
		return nil, err
	}
	return created, nil
}

// LoginEmail verifies an email/password pair and mints tokens. Failed
// attempts feed the per-email throttle.
func (s *Service) LoginEmail(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = normalizeEmail(email)
	now := s.now()

	if s.throttle.blocked(email, now) {
		return nil, nil, ErrTooManyRequests
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if user.Disabled {
		return nil, nil, ErrUserDisabled
	}
	if !user.HasPassword() {
		// Google-only account; no password to check against.
		return nil, nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(*user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrWrongPassword) {
			s.throttle.recordFailure(email, now)
			return nil, nil, ErrWrongPassword
		}
		return nil, nil, err
	}

	s.throttle.recordSuccess(email)
	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// LoginAnonymously provisions a guest account and signs it in. Guests have
// no email or credentials to come back with, so the session lives exactly
// as long as its refresh token; they can browse polls and results but are
// not voters.
func (s *Service) LoginAnonymously(ctx context.Context) (*models.User, *TokenPair, error) {
	user, err := s.users.Create(ctx, &models.User{
		IsAdmin: false,
		IsVoter: false,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create guest account: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// LoginGoogle signs in with a verified Google ID token. First sign-in
// provisions an account; an email already held by a password-only account
// fails with AccountExistsError carrying the email, which starts the
// linking flow on the client.
func (s *Service) LoginGoogle(ctx context.Context, rawIDToken string) (*models.User, *TokenPair, error) {
	identity, err := s.google.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByGoogleID(ctx, identity.Subject)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if user == nil {
		email := normalizeEmail(identity.Email)
		existing, err := s.users.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("failed to look up account: %w", err)
		}
		if existing != nil {
			return nil, nil, &AccountExistsError{Email: email}
		}

		subject := identity.Subject
		user, err = s.users.Create(ctx, &models.User{
			Email:    email,
			GoogleID: &subject,
			IsAdmin:  false,
			IsVoter:  true,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	if user.Disabled {
		return nil, nil, ErrUserDisabled
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// LinkGoogle attaches a Google identity to an existing password account.
// The caller proves ownership of the account with the password, and the
// ID token's email must match the account's email.
func (s *Service) LinkGoogle(ctx context.Context, email, password, rawIDToken string) (*models.User, *TokenPair, error) {
	email = normalizeEmail(email)

	identity, err := s.google.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, nil, err
	}
	if normalizeEmail(identity.Email) != email {
		return nil, nil, ErrInvalidGoogleToken
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if user.Disabled {
		return nil, nil, ErrUserDisabled
	}
	if !user.HasPassword() {
		return nil, nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(*user.PasswordHash, password); err != nil {
		return nil, nil, err
	}

	if err := s.users.AttachGoogleID(ctx, user.ID, identity.Subject); err != nil {
		return nil, nil, err
	}
	subject := identity.Subject
	user.GoogleID = &subject

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. Expired tokens are revoked and rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.tokens.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}
	if stored.ExpiresAt.Before(s.now()) {
		return nil, ErrRefreshExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token. Access tokens simply expire.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Delete(ctx, refreshToken)
}

// UserFromAccessToken resolves the bearer token to the current account.
func (s *Service) UserFromAccessToken(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := ParseAccessToken(accessToken, s.secretKey)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *Service) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := GenerateAccessToken(user.ID, user.IsAdmin, s.secretKey, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, refresh, user.ID, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/ballot-box/models"
)

type SQLTokenStore struct {
	db *sql.DB
}

func NewSQLTokenStore(db *sql.DB) *SQLTokenStore {
	return &SQLTokenStore{db: db}
}

func (s *SQLTokenStore) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_token (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, userID, now().Add(ttl))
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func (s *SQLTokenStore) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	err := s.db.QueryRowContext(ctx, `
		SELECT token, user_id, expires_at FROM refresh_token WHERE token = $1
	`, token).Scan(&t.Token, &t.UserID, &t.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh token: %w", err)
	}
	return &t, nil
}

func (s *SQLTokenStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM refresh_token WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

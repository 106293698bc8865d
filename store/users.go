// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-box/models"
)

type SQLUserStore struct {
	db *sql.DB
}

func NewSQLUserStore(db *sql.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

const userColumns = "id, email, password_hash, google_id, is_admin, is_voter, disabled, created_at"

func (s *SQLUserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = now()

	// Guests have no email; NULL keeps them out of the unique index.
	email := sql.NullString{String: u.Email, Valid: u.Email != ""}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, google_id, is_admin, is_voter, disabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, email, u.PasswordHash, u.GoogleID, u.IsAdmin, u.IsVoter, u.Disabled, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

func (s *SQLUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getBy(ctx, "id", id)
}

func (s *SQLUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getBy(ctx, "email", email)
}

func (s *SQLUserStore) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.getBy(ctx, "google_id", googleID)
}

func (s *SQLUserStore) getBy(ctx context.Context, column, value string) (*models.User, error) {
	var u models.User
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE `+column+` = $1
	`, value).Scan(
		&u.ID, &email, &u.PasswordHash, &u.GoogleID,
		&u.IsAdmin, &u.IsVoter, &u.Disabled, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	u.Email = email.String
	return &u, nil
}

func (s *SQLUserStore) AttachGoogleID(ctx context.Context, userID, googleID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET google_id = $1 WHERE id = $2
	`, googleID, userID)
	if err != nil {
		return fmt.Errorf("failed to attach google identity: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

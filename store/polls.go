// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-box/models"
)

type SQLPollStore struct {
	db *sql.DB
}

func NewSQLPollStore(db *sql.DB) *SQLPollStore {
	return &SQLPollStore{db: db}
}

func (s *SQLPollStore) Create(ctx context.Context, poll *models.Poll) (*models.Poll, error) {
	poll.ID = uuid.NewString()
	poll.CreatedAt = now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, title, description, start_date, end_date, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, poll.ID, poll.Title, poll.Description, poll.StartDate, poll.EndDate, poll.Status, poll.CreatedBy, poll.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	if err := replaceCandidates(ctx, tx, poll.ID, poll.Candidates); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit poll: %w", err)
	}
	return poll, nil
}

func (s *SQLPollStore) Get(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, start_date, end_date, status, created_by, created_at
		FROM poll
		WHERE id = $1
	`, id).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.StartDate,
		&poll.EndDate, &poll.Status, &poll.CreatedBy, &poll.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	poll.Candidates, err = s.candidateIDs(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (s *SQLPollStore) List(ctx context.Context) ([]models.Poll, error) {
	return s.list(ctx, `
		SELECT id, title, description, start_date, end_date, status, created_by, created_at
		FROM poll
		ORDER BY created_at DESC
	`)
}

func (s *SQLPollStore) ListActive(ctx context.Context, at time.Time) ([]models.Poll, error) {
	return s.list(ctx, `
		SELECT id, title, description, start_date, end_date, status, created_by, created_at
		FROM poll
		WHERE status = $1 AND start_date <= $2 AND end_date >= $3
		ORDER BY created_at DESC
	`, models.StatusActive, at, at)
}

func (s *SQLPollStore) list(ctx context.Context, query string, args ...any) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		if err := rows.Scan(
			&poll.ID, &poll.Title, &poll.Description, &poll.StartDate,
			&poll.EndDate, &poll.Status, &poll.CreatedBy, &poll.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}

	for i := range polls {
		polls[i].Candidates, err = s.candidateIDs(ctx, polls[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return polls, nil
}

func (s *SQLPollStore) Update(ctx context.Context, id string, patch models.UpdatePollRequest) error {
	sets := []string{}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		sets = append(sets, column+" = $"+strconv.Itoa(n))
		args = append(args, value)
		n++
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if len(sets) > 0 {
		args = append(args, id)
		query := "UPDATE poll SET " + strings.Join(sets, ", ") + " WHERE id = $" + strconv.Itoa(n)
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update poll: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrNotFound
		}
	} else if err := pollExists(ctx, tx, id); err != nil {
		return err
	}

	if patch.Candidates != nil {
		if err := replaceCandidates(ctx, tx, id, patch.Candidates); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit poll update: %w", err)
	}
	return nil
}

func (s *SQLPollStore) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE poll SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update poll status: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLPollStore) candidateIDs(ctx context.Context, pollID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate_id FROM poll_candidate
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll candidates: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan candidate id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func pollExists(ctx context.Context, tx *sql.Tx, pollID string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM poll WHERE id = $1`, pollID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}
	return nil
}

func replaceCandidates(ctx context.Context, tx *sql.Tx, pollID string, candidateIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM poll_candidate WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("failed to clear poll candidates: %w", err)
	}
	for i, candidateID := range candidateIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO poll_candidate (poll_id, candidate_id, position)
			VALUES ($1, $2, $3)
		`, pollID, candidateID, i)
		if err != nil {
			return fmt.Errorf("failed to insert poll candidate: %w", err)
		}
	}
	return nil
}

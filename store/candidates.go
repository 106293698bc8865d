// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-box/models"
)

type SQLCandidateStore struct {
	db *sql.DB
}

func NewSQLCandidateStore(db *sql.DB) *SQLCandidateStore {
	return &SQLCandidateStore{db: db}
}

const candidateColumns = "id, name, biography, proposals, social_links, photo_url, poll_id, created_at"

func (s *SQLCandidateStore) Create(ctx context.Context, c *models.Candidate) (*models.Candidate, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = now()

	links, err := marshalLinks(c.SocialLinks)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO candidate (id, name, biography, proposals, social_links, photo_url, poll_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.Name, c.Biography, c.Proposals, links, c.PhotoURL, c.PollID, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert candidate: %w", err)
	}
	return c, nil
}

func (s *SQLCandidateStore) Get(ctx context.Context, id string) (*models.Candidate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+candidateColumns+` FROM candidate WHERE id = $1
	`, id)
	c, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}
	return c, nil
}

func (s *SQLCandidateStore) List(ctx context.Context) ([]models.Candidate, error) {
	return s.queryCandidates(ctx, `
		SELECT `+candidateColumns+` FROM candidate ORDER BY created_at DESC
	`)
}

func (s *SQLCandidateStore) ListByPoll(ctx context.Context, pollID string) ([]models.Candidate, error) {
	return s.queryCandidates(ctx, `
		SELECT c.id, c.name, c.biography, c.proposals, c.social_links, c.photo_url, c.poll_id, c.created_at
		FROM candidate c
		JOIN poll_candidate pc ON pc.candidate_id = c.id
		WHERE pc.poll_id = $1
		ORDER BY pc.position
	`, pollID)
}

func (s *SQLCandidateStore) Update(ctx context.Context, id string, patch models.SaveCandidateRequest) error {
	links, err := marshalLinks(patch.SocialLinks)
	if err != nil {
		return err
	}

	var pollID *string
	if patch.PollID != "" {
		pollID = &patch.PollID
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE candidate
		SET name = $1, biography = $2, proposals = $3, social_links = $4, poll_id = $5
		WHERE id = $6
	`, patch.Name, patch.Biography, patch.Proposals, links, pollID, id)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLCandidateStore) SetPhotoURL(ctx context.Context, id, photoURL string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE candidate SET photo_url = $1 WHERE id = $2
	`, photoURL, id)
	if err != nil {
		return fmt.Errorf("failed to update candidate photo: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLCandidateStore) queryCandidates(ctx context.Context, query string, args ...any) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var c models.Candidate
	var links string
	if err := row.Scan(
		&c.ID, &c.Name, &c.Biography, &c.Proposals,
		&links, &c.PhotoURL, &c.PollID, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(links), &c.SocialLinks); err != nil {
		return nil, fmt.Errorf("failed to decode social links: %w", err)
	}
	return &c, nil
}

func marshalLinks(links map[string]string) (string, error) {
	if links == nil {
		links = map[string]string{}
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("failed to encode social links: %w", err)
	}
	return string(b), nil
}

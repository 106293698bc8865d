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

type SQLVoteStore struct {
	db *sql.DB
}

func NewSQLVoteStore(db *sql.DB) *SQLVoteStore {
	return &SQLVoteStore{db: db}
}

// Create inserts a vote. The (user_id, poll_id) unique constraint makes the
// insert itself the uniqueness check, so two concurrent casts cannot both
// succeed; the loser gets ErrDuplicateVote.
func (s *SQLVoteStore) Create(ctx context.Context, userID, pollID, candidateID string) (*models.Vote, error) {
	vote := &models.Vote{
		ID:          uuid.NewString(),
		UserID:      userID,
		PollID:      pollID,
		CandidateID: candidateID,
		CreatedAt:   now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (id, user_id, poll_id, candidate_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.UserID, vote.PollID, vote.CandidateID, vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateVote
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}
	return vote, nil
}

func (s *SQLVoteStore) Exists(ctx context.Context, userID, pollID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM vote WHERE user_id = $1 AND poll_id = $2
	`, userID, pollID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query vote: %w", err)
	}
	return true, nil
}

func (s *SQLVoteStore) CountByCandidate(ctx context.Context, pollID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate_id, COUNT(*) FROM vote
		WHERE poll_id = $1
		GROUP BY candidate_id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var candidateID string
		var count int
		if err := rows.Scan(&candidateID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[candidateID] = count
	}
	return counts, rows.Err()
}

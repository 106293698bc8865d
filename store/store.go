// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/danielhkuo/ballot-box/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when a user insert collides on email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDuplicateVote is returned when a vote insert collides on the
	// (user_id, poll_id) unique constraint.
	ErrDuplicateVote = errors.New("duplicate vote")
)

// PollStore persists polls and their ordered candidate membership.
type PollStore interface {
	Create(ctx context.Context, poll *models.Poll) (*models.Poll, error)
	Get(ctx context.Context, id string) (*models.Poll, error)
	List(ctx context.Context) ([]models.Poll, error)
	// ListActive filters at the query level by status AND date range; it
	// does not consult the lifecycle reconciliation logic.
	ListActive(ctx context.Context, now time.Time) ([]models.Poll, error)
	// Update applies a merge-patch: only non-nil fields change.
	Update(ctx context.Context, id string, patch models.UpdatePollRequest) error
	// UpdateStatus writes the status field and nothing else.
	UpdateStatus(ctx context.Context, id, status string) error
}

// CandidateStore persists candidates.
type CandidateStore interface {
	Create(ctx context.Context, c *models.Candidate) (*models.Candidate, error)
	Get(ctx context.Context, id string) (*models.Candidate, error)
	List(ctx context.Context) ([]models.Candidate, error)
	// ListByPoll returns the poll's candidates in ballot order. Dangling
	// membership entries (candidate deleted out of band) are skipped.
	ListByPoll(ctx context.Context, pollID string) ([]models.Candidate, error)
	Update(ctx context.Context, id string, patch models.SaveCandidateRequest) error
	SetPhotoURL(ctx context.Context, id, photoURL string) error
}

// VoteStore persists votes. Uniqueness per (user, poll) is enforced by the
// database, so concurrent duplicate inserts fail instead of racing.
type VoteStore interface {
	Create(ctx context.Context, userID, pollID, candidateID string) (*models.Vote, error)
	Exists(ctx context.Context, userID, pollID string) (bool, error)
	CountByCandidate(ctx context.Context, pollID string) (map[string]int, error)
}

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	AttachGoogleID(ctx context.Context, userID, googleID string) error
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

// now is the store's clock. Creation timestamps are assigned here, never by
// callers, so they reflect the gateway's view of time.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// isUniqueViolation recognizes unique-constraint failures from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}

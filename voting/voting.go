// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/danielhkuo/ballot-box/lifecycle"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
)

// Business-rule errors. Callers distinguish these from gateway failures to
// choose the right HTTP status and message.
var (
	ErrAlreadyVoted       = errors.New("user already voted in this poll")
	ErrPollNotFound       = errors.New("poll not found")
	ErrPollNotActive      = errors.New("poll is not open for voting")
	ErrCandidateNotInPoll = errors.New("candidate does not belong to this poll")
)

// Ledger enforces one vote per user per poll and produces tallies.
type Ledger struct {
	polls store.PollStore
	votes store.VoteStore
	now   func() time.Time
}

func NewLedger(polls store.PollStore, votes store.VoteStore) *Ledger {
	return &Ledger{polls: polls, votes: votes, now: time.Now}
}

// CastVote records a vote after checking that the poll is effectively active
// right now and that the candidate is on its ballot. The insert itself is
// the uniqueness check: the store's (user, poll) constraint rejects a
// duplicate even when two casts race, which maps to ErrAlreadyVoted.
func (l *Ledger) CastVote(ctx context.Context, userID, pollID, candidateID string) (*models.Vote, error) {
	poll, err := l.polls.Get(ctx, pollID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to load poll: %w", err)
	}

	if lifecycle.EffectiveStatus(poll, l.now()) != models.StatusActive {
		return nil, ErrPollNotActive
	}
	if !slices.Contains(poll.Candidates, candidateID) {
		return nil, ErrCandidateNotInPoll
	}

	vote, err := l.votes.Create(ctx, userID, pollID, candidateID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateVote) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}
	return vote, nil
}

// HasVoted reports whether the user already voted in the poll. Read-only.
func (l *Ledger) HasVoted(ctx context.Context, userID, pollID string) (bool, error) {
	return l.votes.Exists(ctx, userID, pollID)
}

// Tally counts the votes cast per candidate. Only candidates with at least
// one vote appear; a poll nobody voted in yields an empty map. Votes keep
// counting even for a candidate an admin later pulled off the ballot.
func (l *Ledger) Tally(ctx context.Context, pollID string) (map[string]int, error) {
	if _, err := l.polls.Get(ctx, pollID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to load poll: %w", err)
	}

	counts, err := l.votes.CountByCandidate(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	return counts, nil
}

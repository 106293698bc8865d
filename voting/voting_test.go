// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
	"github.com/danielhkuo/ballot-box/testutil"
)

func setupLedger(t *testing.T) (*Ledger, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return NewLedger(store.NewSQLPollStore(conn), store.NewSQLVoteStore(conn)), conn
}

// activePoll creates a poll whose window contains the current time.
func activePoll(t *testing.T, conn *sql.DB, candidateIDs ...string) string {
	t.Helper()
	now := time.Now().UTC()
	return testutil.CreateTestPoll(t, conn, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), candidateIDs...)
}

func TestCastVoteRecordsVote(t *testing.T) {
	ledger, conn := setupLedger(t)
	ctx := context.Background()

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	bob := testutil.CreateTestCandidate(t, conn, "Bob")
	pollID := activePoll(t, conn, alice, bob)
	voter := testutil.CreateTestUser(t, conn, "voter@test.local", false)

	vote, err := ledger.CastVote(ctx, voter.ID, pollID, alice)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if vote.ID == "" {
		t.Error("Expected a vote ID")
	}

	voted, err := ledger.HasVoted(ctx, voter.ID, pollID)
	if err != nil {
		t.Fatalf("HasVoted failed: %v", err)
	}
	if !voted {
		t.Error("Expected HasVoted to be true after casting")
	}
}

func TestCastVoteRejectsSecondVote(t *testing.T) {
	ledger, conn := setupLedger(t)
	ctx := context.Background()

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	bob := testutil.CreateTestCandidate(t, conn, "Bob")
	pollID := activePoll(t, conn, alice, bob)
	voter := testutil.CreateTestUser(t, conn, "voter@test.local", false)

	if _, err := ledger.CastVote(ctx, voter.ID, pollID, alice); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}

	// A different candidate makes no difference: one vote per poll.
	_, err := ledger.CastVote(ctx, voter.ID, pollID, bob)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted, got %v", err)
	}

	tally, err := ledger.Tally(ctx, pollID)
	if err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if tally[alice] != 1 || tally[bob] != 0 {
		t.Errorf("Expected tally alice=1 bob=0, got %v", tally)
	}
}

func TestCastVoteRejectsPollOutsideWindow(t *testing.T) {
	ledger, conn := setupLedger(t)
	ctx := context.Background()
	now := time.Now().UTC()

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	voter := testutil.CreateTestUser(t, conn, "voter@test.local", false)

	future := testutil.CreateTestPoll(t, conn, models.StatusScheduled, now.Add(time.Hour), now.Add(2*time.Hour), alice)
	if _, err := ledger.CastVote(ctx, voter.ID, future, alice); !errors.Is(err, ErrPollNotActive) {
		t.Errorf("Expected ErrPollNotActive for a future poll, got %v", err)
	}

	// An active poll past its end date is effectively completed even before
	// any reconciliation write happens.
	stale := testutil.CreateTestPoll(t, conn, models.StatusActive, now.Add(-2*time.Hour), now.Add(-time.Hour), alice)
	if _, err := ledger.CastVote(ctx, voter.ID, stale, alice); !errors.Is(err, ErrPollNotActive) {
		t.Errorf("Expected ErrPollNotActive for an expired poll, got %v", err)
	}
}

func TestCastVoteAcceptsScheduledPollInsideWindow(t *testing.T) {
	ledger, conn := setupLedger(t)
	ctx := context.Background()
	now := time.Now().UTC()

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	voter := testutil.CreateTestUser(t, conn, "voter@test.local", false)

	// Stored status lags the window; the vote path goes by effective status.
	pollID := testutil.CreateTestPoll(t, conn, models.StatusScheduled, now.Add(-time.Hour), now.Add(time.Hour), alice)

	if _, err := ledger.CastVote(ctx, voter.ID, pollID, alice); err != nil {
		t.Errorf("Expected vote to succeed for a scheduled poll inside its window, got %v", err)
	}
}

func TestCastVoteRejectsCandidateOffBallot(t *testing.T) {
	ledger, conn := setupLedger(t)
	ctx := context.Background()

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	outsider := testutil.CreateTestCandidate(t, conn, "Outsider")
	pollID := activePoll(t, conn, alice)
	voter := testutil.CreateTestUser(t, conn, "voter@test.local", false)

	if _, err := ledger.CastVote(ctx, voter.ID, pollID, outsider); !errors.Is(err, ErrCandidateNotInPoll) {
		t.Errorf("Expected ErrCandidateNotInPoll, got %v", err)
	}

	voted, err := ledger.HasVoted(ctx, voter.ID, pollID)
	if err != nil {
		t.Fatalf("HasVoted failed: %v", err)
	}
	if voted {
		t.Error("A rejected vote must not be recorded")
	}
}

func TestCastVoteRejectsUnknownPoll(t *testing.T) {
	ledger, conn := setupLedger(t)

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	voter := testutil.CreateTestUser(t, conn, "voter@test.local", false)

	if _, err := ledger.CastVote(context.Background(), voter.ID, "no-such-poll", alice); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound, got %v", err)
	}
}

func TestTallyCountsPerCandidate(t *testing.T) {
	ledger, conn := setupLedger(t)
	ctx := context.Background()

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	bob := testutil.CreateTestCandidate(t, conn, "Bob")
	carol := testutil.CreateTestCandidate(t, conn, "Carol")
	pollID := activePoll(t, conn, alice, bob, carol)

	for i, candidate := range []string{alice, alice, bob} {
		voter := testutil.CreateTestUser(t, conn, "voter"+string(rune('a'+i))+"@test.local", false)
		if _, err := ledger.CastVote(ctx, voter.ID, pollID, candidate); err != nil {
			t.Fatalf("CastVote failed: %v", err)
		}
	}

	tally, err := ledger.Tally(ctx, pollID)
	if err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if tally[alice] != 2 || tally[bob] != 1 {
		t.Errorf("Expected alice=2 bob=1, got %v", tally)
	}
	if _, ok := tally[carol]; ok {
		t.Errorf("Expected carol to be absent with zero votes, got %v", tally)
	}
	if len(tally) != 2 {
		t.Errorf("Expected only voted-for candidates in the tally, got %v", tally)
	}
}

func TestTallyEmptyForPollWithoutVotes(t *testing.T) {
	ledger, conn := setupLedger(t)

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	bob := testutil.CreateTestCandidate(t, conn, "Bob")
	pollID := activePoll(t, conn, alice, bob)

	tally, err := ledger.Tally(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if len(tally) != 0 {
		t.Errorf("Expected an empty mapping for a poll with no votes, got %v", tally)
	}
}

func TestTallyKeepsVotesForRemovedCandidates(t *testing.T) {
	ledger, conn := setupLedger(t)
	ctx := context.Background()

	alice := testutil.CreateTestCandidate(t, conn, "Alice")
	bob := testutil.CreateTestCandidate(t, conn, "Bob")
	pollID := activePoll(t, conn, alice, bob)
	voter := testutil.CreateTestUser(t, conn, "voter@test.local", false)

	if _, err := ledger.CastVote(ctx, voter.ID, pollID, alice); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	// Admin drops Alice from the ballot after the vote landed.
	polls := store.NewSQLPollStore(conn)
	if err := polls.Update(ctx, pollID, models.UpdatePollRequest{Candidates: []string{bob}}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	tally, err := ledger.Tally(ctx, pollID)
	if err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if tally[alice] != 1 {
		t.Errorf("Expected the cast vote to keep counting, got %v", tally)
	}
}

func TestTallyUnknownPoll(t *testing.T) {
	ledger, _ := setupLedger(t)

	if _, err := ledger.Tally(context.Background(), "no-such-poll"); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound, got %v", err)
	}
}

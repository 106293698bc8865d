// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/testutil"
)

// TestConcurrentDuplicateVotes verifies that simultaneous casts by the same
// user cannot slip past the one-vote-per-poll rule: the database constraint
// decides the race, not an application-level read-then-write.
func TestConcurrentDuplicateVotes(t *testing.T) {
	env := newTestEnv(t)
	h := env.voteHandler()
	_, headers := env.voter(t, "voter@example.com")
	now := time.Now().UTC()

	alice := testutil.CreateTestCandidate(t, env.conn, "Alice")
	pollID := testutil.CreateTestPoll(t, env.conn, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), alice)

	attempts := 10
	var created atomic.Int32
	var conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/polls/"+pollID+"/votes", models.CastVoteRequest{CandidateID: alice}, headers)
			req.SetPathValue("id", pollID)
			w := httptest.NewRecorder()
			env.asUser(h.Cast)(w, req)

			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly one vote to land, got %d", created.Load())
	}
	if int(conflicts.Load()) != attempts-1 {
		t.Errorf("Expected %d conflicts, got %d", attempts-1, conflicts.Load())
	}
}

// TestConcurrentDistinctVoters verifies that the constraint only serializes
// duplicates: distinct voters all get through.
func TestConcurrentDistinctVoters(t *testing.T) {
	env := newTestEnv(t)
	h := env.voteHandler()
	now := time.Now().UTC()

	alice := testutil.CreateTestCandidate(t, env.conn, "Alice")
	bob := testutil.CreateTestCandidate(t, env.conn, "Bob")
	pollID := testutil.CreateTestPoll(t, env.conn, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), alice, bob)

	numVoters := 10
	voterHeaders := make([]map[string]string, numVoters)
	for i := 0; i < numVoters; i++ {
		_, headers := env.voter(t, "voter"+string(rune('a'+i))+"@example.com")
		voterHeaders[i] = headers
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			candidate := alice
			if voterIdx%2 == 1 {
				candidate = bob
			}
			req := testutil.MakeRequest("POST", "/polls/"+pollID+"/votes", models.CastVoteRequest{CandidateID: candidate}, voterHeaders[voterIdx])
			req.SetPathValue("id", pollID)
			w := httptest.NewRecorder()
			env.asUser(h.Cast)(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	// The tally adds up.
	_, headers := env.voter(t, "reader@example.com")
	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/results", nil, headers)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	env.asUser(h.Results)(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Results[alice]+resp.Results[bob] != numVoters {
		t.Errorf("Expected the tally to total %d, got %v", numVoters, resp.Results)
	}
}

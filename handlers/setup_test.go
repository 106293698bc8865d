// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/lifecycle"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
	"github.com/danielhkuo/ballot-box/testutil"
	"github.com/danielhkuo/ballot-box/voting"
)

// testEnv wires real sqlite-backed stores behind the handlers.
type testEnv struct {
	conn       *sql.DB
	svc        *auth.Service
	polls      store.PollStore
	candidates store.CandidateStore
	google     *stubGoogle
}

// stubGoogle stands in for Google's token endpoint in tests.
type stubGoogle struct {
	identity auth.GoogleIdentity
	err      error
}

func (s *stubGoogle) Verify(ctx context.Context, rawIDToken string) (*auth.GoogleIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.identity, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	google := &stubGoogle{err: auth.ErrInvalidGoogleToken}
	svc := auth.NewService(
		store.NewSQLUserStore(conn),
		store.NewSQLTokenStore(conn),
		google,
		[]byte(testutil.TestJWTSecret),
		15*time.Minute,
		720*time.Hour,
	)
	return &testEnv{
		conn:       conn,
		svc:        svc,
		polls:      store.NewSQLPollStore(conn),
		candidates: store.NewSQLCandidateStore(conn),
		google:     google,
	}
}

func (e *testEnv) pollHandler() *PollHandler {
	return NewPollHandler(e.polls, lifecycle.NewManager(e.polls))
}

func (e *testEnv) voteHandler() *VoteHandler {
	return NewVoteHandler(voting.NewLedger(e.polls, store.NewSQLVoteStore(e.conn)))
}

// asUser wraps a handler in the bearer-token middleware, the way the router
// does, so handlers observe the authenticated user.
func (e *testEnv) asUser(h http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireUser(e.svc, h)
}

func (e *testEnv) asAdmin(h http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireAdmin(e.svc, h)
}

// voter creates a user and returns it with a valid bearer header.
func (e *testEnv) voter(t *testing.T, email string) (*models.User, map[string]string) {
	t.Helper()
	user := testutil.CreateTestUser(t, e.conn, email, false)
	return user, testutil.AuthHeader(testutil.AccessToken(t, user))
}

func (e *testEnv) admin(t *testing.T, email string) (*models.User, map[string]string) {
	t.Helper()
	user := testutil.CreateTestUser(t, e.conn, email, true)
	return user, testutil.AuthHeader(testutil.AccessToken(t, user))
}

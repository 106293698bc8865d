// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/db"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
)

// TestJWTSecret signs access tokens in tests.
const TestJWTSecret = "test-jwt-secret"

// TestPassword is the password every test user is created with.
const TestPassword = "password123"

// SetupTestDB opens a fresh in-memory database with the full schema.
// Each call gets its own database, so tests never see each other's rows.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(context.Background(), conn, "sqlite"); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            8080,
		DatabaseURL:     ":memory:",
		DatabaseType:    "sqlite",
		JWTSecret:       TestJWTSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
	}
}

// CreateTestUser inserts a user with TestPassword set and returns it.
func CreateTestUser(t *testing.T, conn *sql.DB, email string, isAdmin bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user, err := store.NewSQLUserStore(conn).Create(context.Background(), &models.User{
		Email:        email,
		PasswordHash: &hash,
		IsAdmin:      isAdmin,
		IsVoter:      true,
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// AccessToken mints a one-hour access token for the user.
func AccessToken(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := auth.GenerateAccessToken(user.ID, user.IsAdmin, []byte(TestJWTSecret), time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// CreateTestCandidate inserts a candidate and returns its ID.
func CreateTestCandidate(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	c, err := store.NewSQLCandidateStore(conn).Create(context.Background(), &models.Candidate{
		Name:      name,
		Biography: "A test candidate",
	})
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	return c.ID
}

// CreateTestPoll inserts a poll with the given status, window and ballot,
// and returns its ID. The creator is a fresh admin user.
func CreateTestPoll(t *testing.T, conn *sql.DB, status string, start, end time.Time, candidateIDs ...string) string {
	t.Helper()

	admin := CreateTestUser(t, conn, "poll-creator-"+uuid.NewString()+"@test.local", true)

	poll, err := store.NewSQLPollStore(conn).Create(context.Background(), &models.Poll{
		Title:      "Test Poll",
		StartDate:  start,
		EndDate:    end,
		Status:     status,
		Candidates: candidateIDs,
		CreatedBy:  admin.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll.ID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AuthHeader builds the bearer-token header map for MakeRequest.
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

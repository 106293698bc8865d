// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll status constants
const (
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the three poll statuses.
func ValidStatus(s string) bool {
	return s == StatusScheduled || s == StatusActive || s == StatusCompleted
}

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type LinkGoogleRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IDToken  string `json:"id_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type CreatePollRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
	Candidates  []string  `json:"candidates"`
}

// UpdatePollRequest carries a partial update; nil fields are left untouched.
type UpdatePollRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Candidates  []string   `json:"candidates,omitempty"`
}

type SaveCandidateRequest struct {
	Name        string            `json:"name"`
	Biography   string            `json:"biography"`
	Proposals   string            `json:"proposals"`
	SocialLinks map[string]string `json:"social_links"`
	PollID      string            `json:"poll_id,omitempty"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type CreatePollResponse struct {
	PollID string `json:"poll_id"`
}

type SaveCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type UploadPhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}

type CastVoteResponse struct {
	VoteID string `json:"vote_id"`
}

type HasVotedResponse struct {
	HasVoted bool `json:"has_voted"`
}

// ResultsResponse maps candidate IDs to vote counts. Only candidates with
// at least one vote appear; a poll nobody voted in has empty results.
type ResultsResponse struct {
	PollID  string         `json:"poll_id"`
	Results map[string]int `json:"results"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"` // Never expose in JSON
	GoogleID     *string   `json:"-"` // Never expose in JSON
	IsAdmin      bool      `json:"is_admin"`
	IsVoter      bool      `json:"is_voter"`
	Disabled     bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasPassword reports whether the account can sign in with email/password.
func (u *User) HasPassword() bool { return u.PasswordHash != nil && *u.PasswordHash != "" }

// HasGoogle reports whether a Google identity is attached to the account.
func (u *User) HasGoogle() bool { return u.GoogleID != nil && *u.GoogleID != "" }

type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
	Candidates  []string  `json:"candidates"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Candidate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Biography   string            `json:"biography"`
	Proposals   string            `json:"proposals"`
	SocialLinks map[string]string `json:"social_links"`
	PhotoURL    string            `json:"photo_url"`
	PollID      *string           `json:"poll_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PollID      string    `json:"poll_id"`
	CandidateID string    `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Email   string `json:"email,omitempty"` // set for account-conflict errors
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/handlers"
	"github.com/danielhkuo/ballot-box/lifecycle"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/storage"
	"github.com/danielhkuo/ballot-box/store"
	"github.com/danielhkuo/ballot-box/voting"
)

// Deps bundles everything the routes need. Main wires it once.
type Deps struct {
	Auth       *auth.Service
	Polls      store.PollStore
	Candidates store.CandidateStore
	Ledger     *voting.Ledger
	Lifecycle  *lifecycle.Manager
	Photos     storage.PhotoStore
}

func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Auth)
	pollHandler := handlers.NewPollHandler(deps.Polls, deps.Lifecycle)
	candidateHandler := handlers.NewCandidateHandler(deps.Candidates, deps.Photos)
	voteHandler := handlers.NewVoteHandler(deps.Ledger)

	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireUser(deps.Auth, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(deps.Auth, h))
	}
	public := middleware.WithLogging

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /auth/register", public(authHandler.Register))
	mux.HandleFunc("POST /auth/login", public(authHandler.Login))
	mux.HandleFunc("POST /auth/anonymous", public(authHandler.Anonymous))
	mux.HandleFunc("POST /auth/google", public(authHandler.Google))
	mux.HandleFunc("POST /auth/link-google", public(authHandler.LinkGoogle))
	mux.HandleFunc("POST /auth/refresh", public(authHandler.Refresh))
	mux.HandleFunc("POST /auth/logout", public(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", user(authHandler.Me))

	// Poll management (admin operations)
	mux.HandleFunc("POST /polls", admin(pollHandler.Create))
	mux.HandleFunc("PATCH /polls/{id}", admin(pollHandler.Update))

	// Poll browsing
	mux.HandleFunc("GET /polls", user(pollHandler.List))
	mux.HandleFunc("GET /polls/active", user(pollHandler.ListActive))
	mux.HandleFunc("GET /polls/{id}", user(pollHandler.Get))
	mux.HandleFunc("GET /polls/{id}/candidates", user(candidateHandler.ListByPoll))

	// Candidate management (admin operations)
	mux.HandleFunc("POST /candidates", admin(candidateHandler.Create))
	mux.HandleFunc("PUT /candidates/{id}", admin(candidateHandler.Update))
	mux.HandleFunc("POST /candidates/{id}/photo", admin(candidateHandler.UploadPhoto))
	mux.HandleFunc("GET /candidates", user(candidateHandler.List))
	mux.HandleFunc("GET /candidates/{id}", user(candidateHandler.Get))

	// Voting
	mux.HandleFunc("POST /polls/{id}/votes", user(voteHandler.Cast))
	mux.HandleFunc("GET /polls/{id}/votes/me", user(voteHandler.HasVoted))
	mux.HandleFunc("GET /polls/{id}/results", user(voteHandler.Results))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballot-box API v1"))
	})

	return middleware.CORS(mux)
}

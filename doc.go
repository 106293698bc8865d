// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballot Box API server.

Ballot Box is an election polling service: administrators schedule polls
with a candidate roster and a voting window, and registered voters cast
exactly one vote per poll while it is active. Results are aggregated
per candidate on demand.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8080 -d "postgres://..." --db-type postgres

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - JWT_SECRET (--jwt-secret): signing key for access tokens

Optional settings:

  - PORT (-p): server port (default: 8080)
  - DATABASE_TYPE (--db-type): "sqlite" or "postgres" (default: sqlite)
  - GOOGLE_CLIENT_ID: OAuth client ID for Google sign-in
  - ACCESS_TOKEN_TTL / REFRESH_TOKEN_TTL: session lifetimes
  - S3_ACCESS_KEY, S3_SECRET_KEY, S3_REGION, S3_BUCKET, S3_ENDPOINT,
    S3_PUBLIC_BASE_URL: candidate photo storage (disabled when unset)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, polls, candidates, votes)
  - router: route definitions using Go 1.22+ routing
  - middleware: auth, CORS, logging, JSON helpers
  - models: domain and request/response types
  - auth: password hashing, JWT sessions, Google sign-in
  - lifecycle: date-driven poll status transitions
  - voting: one-vote-per-poll ledger and tallies
  - store: SQL persistence behind small interfaces
  - storage: S3-backed candidate photos
  - db: connection setup and embedded migrations
  - messages: localized error catalogue
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main

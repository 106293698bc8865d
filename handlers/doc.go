// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the ballot-box API.
//
// Each handler group is a struct holding the services and stores it needs,
// constructed once in main and wired into the router. Handlers stick to a
// common shape: decode and validate the request, call the service or store,
// translate domain errors into coded JSON error responses, and log failures
// with slog. Success bodies are the response types in the models package.
//
// Error responses carry a stable machine-readable code (see the messages
// package) so clients can branch on the code while showing the localized
// message to the user.
package handlers

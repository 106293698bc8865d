// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router maps URL patterns to handlers and applies middleware.
//
// Routes use Go 1.22 method patterns on the standard library ServeMux.
// Public routes (registration, login) get request logging only; every
// other route goes through bearer-token authentication, and the poll and
// candidate management routes additionally require an admin user.
package router

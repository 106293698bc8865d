// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storage uploads candidate photos to an S3-compatible object
// store. Handlers depend on the PhotoStore interface so tests run without a
// bucket.
package storage

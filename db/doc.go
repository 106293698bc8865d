// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database handle and applies the embedded goose
migrations.

Two database types are supported, selected by DATABASE_TYPE:

  - postgres (lib/pq) for production
  - sqlite (modernc.org/sqlite) for development and tests

The migration SQL stays within the dialect subset both engines accept, so a
single migration set serves both. Queries elsewhere in the codebase use $1
placeholders, which both drivers bind positionally as long as no placeholder
is repeated within a statement.
*/
package db

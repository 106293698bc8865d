// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting is the voting ledger: it records votes, enforces at most one
vote per (user, poll) pair, and aggregates per-candidate tallies.

Votes are immutable facts; there is no update or delete. The unvoted → voted
transition per pair is monotonic, backed by a database unique constraint
rather than an application-level check, so it holds under concurrency.
*/
package voting

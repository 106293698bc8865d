// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer for the Ballot Box API.

Core logic depends on the small interfaces declared here (PollStore,
CandidateStore, VoteStore, UserStore, TokenStore) and receives concrete
instances at construction time; nothing reaches for a package-level handle.
The SQL implementations work against both supported drivers.

Two conventions matter to callers:

  - Creation timestamps and identifiers are assigned by the store, not by
    callers. A store's clock is authoritative for created_at.
  - Uniqueness rules (one vote per user per poll, one account per email)
    are database constraints. Violations surface as ErrDuplicateVote and
    ErrEmailTaken, so check-then-insert races cannot produce duplicates.
*/
package store

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle derives a poll's effective status from its stored status
and start/end dates, and writes corrections back to the store.

The decision logic (EffectiveStatus) is a pure function; the side effect
(Manager.Reconcile) is a separate, injected write. Reconciliation runs on
single-poll and list-all reads. The active-polls listing deliberately skips
it and filters by status plus date range at the query level, so a stale
status can briefly disagree with that filter.
*/
package lifecycle

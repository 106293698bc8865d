// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"sync"
	"time"
)

const (
	throttleWindow      = 15 * time.Minute
	throttleMaxFailures = 5
)

// loginThrottle counts recent failed sign-in attempts per email. After
// throttleMaxFailures failures inside the window, further attempts are
// rejected until the window elapses. A success clears the counter.
type loginThrottle struct {
	mu       sync.Mutex
	failures map[string]throttleEntry
}

type throttleEntry struct {
	count       int
	windowStart time.Time
}

func newLoginThrottle() *loginThrottle {
	return &loginThrottle{failures: make(map[string]throttleEntry)}
}

func (t *loginThrottle) blocked(email string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.failures[email]
	if !ok {
		return false
	}
	if now.Sub(entry.windowStart) > throttleWindow {
		delete(t.failures, email)
		return false
	}
	return entry.count >= throttleMaxFailures
}

func (t *loginThrottle) recordFailure(email string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.failures[email]
	if !ok || now.Sub(entry.windowStart) > throttleWindow {
		t.failures[email] = throttleEntry{count: 1, windowStart: now}
		return
	}
	entry.count++
	t.failures[email] = entry
}

func (t *loginThrottle) recordSuccess(email string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, email)
}

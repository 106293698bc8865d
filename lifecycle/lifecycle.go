// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/ballot-box/models"
)

// StatusWriter is the single persistence operation reconciliation needs.
// store.SQLPollStore satisfies it.
type StatusWriter interface {
	UpdateStatus(ctx context.Context, id, status string) error
}

// EffectiveStatus computes the status a poll should have at the given
// instant. Pure: no I/O, no clock reads.
//
// Rules:
//   - active polls whose end date has passed are completed
//   - scheduled polls whose window contains now are active
//   - completed is terminal; only an explicit admin update can leave it
func EffectiveStatus(poll *models.Poll, now time.Time) string {
	switch poll.Status {
	case models.StatusActive:
		if now.After(poll.EndDate) {
			return models.StatusCompleted
		}
	case models.StatusScheduled:
		if !now.Before(poll.StartDate) && !now.After(poll.EndDate) {
			return models.StatusActive
		}
	}
	return poll.Status
}

// Manager keeps persisted poll statuses from lagging wall-clock reality by
// more than one read.
type Manager struct {
	polls StatusWriter
}

func NewManager(polls StatusWriter) *Manager {
	return &Manager{polls: polls}
}

// Reconcile computes the effective status and, when it differs from the
// stored status, persists a single-field update. At most one write per call.
//
// The returned poll always carries the effective status, even when the write
// fails; in that case the error is non-nil and the persisted record may
// still hold the stale status. Callers decide whether that inconsistency is
// tolerable (read paths log it and serve the in-memory value).
func (m *Manager) Reconcile(ctx context.Context, poll models.Poll, now time.Time) (models.Poll, error) {
	effective := EffectiveStatus(&poll, now)
	if effective == poll.Status {
		return poll, nil
	}

	poll.Status = effective
	if err := m.polls.UpdateStatus(ctx, poll.ID, effective); err != nil {
		return poll, fmt.Errorf("failed to persist status transition: %w", err)
	}
	return poll, nil
}

// ReconcileAll reconciles each poll independently; no batching. The first
// write failure is returned, but every poll in the result still carries its
// effective status.
func (m *Manager) ReconcileAll(ctx context.Context, polls []models.Poll, now time.Time) ([]models.Poll, error) {
	var firstErr error
	for i := range polls {
		reconciled, err := m.Reconcile(ctx, polls[i], now)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		polls[i] = reconciled
	}
	return polls, firstErr
}

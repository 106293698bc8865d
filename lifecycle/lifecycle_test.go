// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/ballot-box/models"
)

var (
	windowStart = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2025, 6, 8, 21, 0, 0, 0, time.UTC)
)

func testPoll(status string) models.Poll {
	return models.Poll{
		ID:        "poll-1",
		Title:     "Test Poll",
		StartDate: windowStart,
		EndDate:   windowEnd,
		Status:    status,
	}
}

func TestEffectiveStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		at     time.Time
		want   string
	}{
		{"scheduled before window", models.StatusScheduled, windowStart.Add(-time.Hour), models.StatusScheduled},
		{"scheduled at window start", models.StatusScheduled, windowStart, models.StatusActive},
		{"scheduled inside window", models.StatusScheduled, windowStart.Add(24 * time.Hour), models.StatusActive},
		{"scheduled at window end", models.StatusScheduled, windowEnd, models.StatusActive},
		{"scheduled after window", models.StatusScheduled, windowEnd.Add(time.Hour), models.StatusScheduled},
		{"active inside window", models.StatusActive, windowStart.Add(24 * time.Hour), models.StatusActive},
		{"active at window end", models.StatusActive, windowEnd, models.StatusActive},
		{"active after window", models.StatusActive, windowEnd.Add(time.Second), models.StatusCompleted},
		{"active before window stays active", models.StatusActive, windowStart.Add(-time.Hour), models.StatusActive},
		{"completed is terminal", models.StatusCompleted, windowStart.Add(24 * time.Hour), models.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poll := testPoll(tt.status)
			got := EffectiveStatus(&poll, tt.at)
			if got != tt.want {
				t.Errorf("EffectiveStatus(%s at %v) = %s, want %s", tt.status, tt.at, got, tt.want)
			}
		})
	}
}

// fakeStatusWriter records status writes and optionally fails them.
type fakeStatusWriter struct {
	writes []string // "id:status"
	err    error
}

func (f *fakeStatusWriter) UpdateStatus(ctx context.Context, id, status string) error {
	f.writes = append(f.writes, id+":"+status)
	return f.err
}

func TestReconcilePersistsTransition(t *testing.T) {
	writer := &fakeStatusWriter{}
	m := NewManager(writer)

	poll, err := m.Reconcile(context.Background(), testPoll(models.StatusScheduled), windowStart.Add(time.Hour))
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if poll.Status != models.StatusActive {
		t.Errorf("Expected status active, got %s", poll.Status)
	}
	if len(writer.writes) != 1 || writer.writes[0] != "poll-1:active" {
		t.Errorf("Expected exactly one write poll-1:active, got %v", writer.writes)
	}
}

func TestReconcileSkipsWriteWhenUnchanged(t *testing.T) {
	writer := &fakeStatusWriter{}
	m := NewManager(writer)

	poll, err := m.Reconcile(context.Background(), testPoll(models.StatusActive), windowStart.Add(time.Hour))
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if poll.Status != models.StatusActive {
		t.Errorf("Expected status active, got %s", poll.Status)
	}
	if len(writer.writes) != 0 {
		t.Errorf("Expected no writes, got %v", writer.writes)
	}
}

// TestReconcileFullLifecycle walks one poll through its whole life:
// scheduled before the window, activated inside it, completed after it,
// with exactly one write per transition and none for steady states.
func TestReconcileFullLifecycle(t *testing.T) {
	writer := &fakeStatusWriter{}
	m := NewManager(writer)
	ctx := context.Background()
	poll := testPoll(models.StatusScheduled)

	poll, err := m.Reconcile(ctx, poll, windowStart.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if poll.Status != models.StatusScheduled || len(writer.writes) != 0 {
		t.Fatalf("Expected scheduled with no writes before the window, got %s %v", poll.Status, writer.writes)
	}

	poll, err = m.Reconcile(ctx, poll, windowStart.Add(time.Hour))
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if poll.Status != models.StatusActive || len(writer.writes) != 1 {
		t.Fatalf("Expected one activation write, got %s %v", poll.Status, writer.writes)
	}

	// Steady state inside the window: no further writes.
	poll, err = m.Reconcile(ctx, poll, windowStart.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if poll.Status != models.StatusActive || len(writer.writes) != 1 {
		t.Fatalf("Expected no write for an unchanged status, got %s %v", poll.Status, writer.writes)
	}

	poll, err = m.Reconcile(ctx, poll, windowEnd.Add(time.Hour))
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if poll.Status != models.StatusCompleted || len(writer.writes) != 2 {
		t.Fatalf("Expected one completion write, got %s %v", poll.Status, writer.writes)
	}

	poll, err = m.Reconcile(ctx, poll, windowEnd.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if poll.Status != models.StatusCompleted || len(writer.writes) != 2 {
		t.Fatalf("Expected completed to be terminal with no more writes, got %s %v", poll.Status, writer.writes)
	}

	want := []string{"poll-1:active", "poll-1:completed"}
	for i, w := range want {
		if writer.writes[i] != w {
			t.Errorf("Expected write %d to be %s, got %v", i, w, writer.writes)
		}
	}
}

func TestReconcileReturnsEffectiveStatusOnWriteFailure(t *testing.T) {
	writer := &fakeStatusWriter{err: errors.New("connection reset")}
	m := NewManager(writer)

	poll, err := m.Reconcile(context.Background(), testPoll(models.StatusActive), windowEnd.Add(time.Hour))
	if err == nil {
		t.Fatal("Expected an error from the failed write")
	}
	if poll.Status != models.StatusCompleted {
		t.Errorf("Expected in-memory status completed despite write failure, got %s", poll.Status)
	}
}

func TestReconcileAllIsIndependentPerPoll(t *testing.T) {
	writer := &fakeStatusWriter{}
	m := NewManager(writer)

	scheduled := testPoll(models.StatusScheduled)
	scheduled.ID = "poll-a"
	active := testPoll(models.StatusActive)
	active.ID = "poll-b"
	completed := testPoll(models.StatusCompleted)
	completed.ID = "poll-c"

	polls, err := m.ReconcileAll(context.Background(), []models.Poll{scheduled, active, completed}, windowEnd.Add(time.Hour))
	if err != nil {
		t.Fatalf("ReconcileAll failed: %v", err)
	}

	if polls[0].Status != models.StatusScheduled {
		t.Errorf("Expected poll-a to stay scheduled past its window, got %s", polls[0].Status)
	}
	if polls[1].Status != models.StatusCompleted {
		t.Errorf("Expected poll-b to complete, got %s", polls[1].Status)
	}
	if polls[2].Status != models.StatusCompleted {
		t.Errorf("Expected poll-c to remain completed, got %s", polls[2].Status)
	}
	if len(writer.writes) != 1 || writer.writes[0] != "poll-b:completed" {
		t.Errorf("Expected a single write for poll-b, got %v", writer.writes)
	}
}

func TestReconcileAllKeepsGoingAfterWriteFailure(t *testing.T) {
	writer := &fakeStatusWriter{err: errors.New("connection reset")}
	m := NewManager(writer)

	first := testPoll(models.StatusActive)
	first.ID = "poll-a"
	second := testPoll(models.StatusActive)
	second.ID = "poll-b"

	polls, err := m.ReconcileAll(context.Background(), []models.Poll{first, second}, windowEnd.Add(time.Hour))
	if err == nil {
		t.Fatal("Expected the first write failure to surface")
	}

	// Both polls still got their write attempt and carry the effective status.
	if len(writer.writes) != 2 {
		t.Errorf("Expected both polls to be attempted, got %v", writer.writes)
	}
	for _, p := range polls {
		if p.Status != models.StatusCompleted {
			t.Errorf("Expected %s to carry completed, got %s", p.ID, p.Status)
		}
	}
}

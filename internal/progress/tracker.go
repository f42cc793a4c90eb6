// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package progress

import (
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Timing constants for the polling loop.
const (
	// PollInterval is how often a running job is polled.
	PollInterval = 500 * time.Millisecond

	// CompleteHold is how long the overlay stays at 100% before the
	// tracker returns to idle.
	CompleteHold = 500 * time.Millisecond
)

// Error variables for job lifecycle violations.
var (
	// ErrJobRunning is returned when a submission arrives while another
	// job is active.
	ErrJobRunning = errors.New("an ingestion job is already running")

	// ErrNoJob is returned for poll results arriving with no active job.
	ErrNoJob = errors.New("no active ingestion job")
)

// State is the tracker's position in the job lifecycle.
type State int

const (
	// StateIdle means no job is active.
	StateIdle State = iota

	// StateSubmitted means the submission request is in flight and no
	// process id exists yet.
	StateSubmitted

	// StatePolling means the job is running and being polled.
	StatePolling

	// StateComplete means the job reached 100% and the overlay is in
	// its hold period.
	StateComplete
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitted:
		return "submitted"
	case StatePolling:
		return "polling"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Clock abstracts time for the tracker.
type Clock interface {
	Now() time.Time
}

// systemClock is the production clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Job is one ingestion job record.
type Job struct {
	// ID identifies the job record locally; ProcessID is the backend's
	// id for polling.
	ID        string
	ProcessID string

	// Label names what is being ingested, for the overlay title.
	Label string

	Percentage  float64
	StartedAt   time.Time
	CompletedAt time.Time
}

// =============================================================================
// TRACKER
// =============================================================================

// Tracker is the single-job progress state machine.
type Tracker struct {
	mu    sync.Mutex
	state State
	job   *Job
	clock Clock
}

// NewTracker creates an idle tracker on the system clock.
func NewTracker() *Tracker {
	return NewTrackerWithClock(systemClock{})
}

// NewTrackerWithClock creates an idle tracker on the given clock.
func NewTrackerWithClock(c Clock) *Tracker {
	return &Tracker{state: StateIdle, clock: c}
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Active reports whether a job is in any non-idle state.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != StateIdle
}

// Job returns a copy of the current job record, or nil when idle.
func (t *Tracker) Job() *Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.job == nil {
		return nil
	}
	j := *t.job
	return &j
}

// Begin claims the tracker for a new job. Fails with ErrJobRunning when
// another job is active; the UI disables ingestion entry points while
// one runs, so hitting this means a race, not a user error.
func (t *Tracker) Begin(label string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateIdle {
		return ErrJobRunning
	}
	t.state = StateSubmitted
	t.job = &Job{
		ID:        uuid.NewString(),
		Label:     label,
		StartedAt: t.clock.Now(),
	}
	return nil
}

// Start moves a submitted job into polling with the backend's process id.
// An empty process id is the submission protocol being violated: the job
// dies immediately.
func (t *Tracker) Start(processID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateSubmitted {
		return ErrNoJob
	}
	if processID == "" {
		t.state = StateIdle
		t.job = nil
		return errors.New("submission returned no process id")
	}
	t.state = StatePolling
	t.job.ProcessID = processID
	return nil
}

// RecordProgress applies one poll result. Returns true when the job just
// completed and the hold period began.
func (t *Tracker) RecordProgress(percentage float64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePolling {
		return false, ErrNoJob
	}
	if percentage >= 100 {
		t.job.Percentage = 100
		t.job.CompletedAt = t.clock.Now()
		t.state = StateComplete
		return true, nil
	}
	if percentage > t.job.Percentage {
		t.job.Percentage = percentage
	}
	return false, nil
}

// Fail aborts the job. The first failed poll lands here; so does a
// failed submission.
func (t *Tracker) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = StateIdle
	t.job = nil
}

// Cancel is an explicit user abort. Identical to Fail in effect; named
// separately because the UI reports the two differently.
func (t *Tracker) Cancel() {
	t.Fail()
}

// ShouldDismiss reports whether a completed job's hold period has
// elapsed.
func (t *Tracker) ShouldDismiss() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == StateComplete &&
		t.clock.Now().Sub(t.job.CompletedAt) >= CompleteHold
}

// Dismiss returns the tracker to idle after the hold period.
func (t *Tracker) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateComplete {
		t.state = StateIdle
		t.job = nil
	}
}

// Percentage returns the current percentage, or 0 when idle.
func (t *Tracker) Percentage() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.job == nil {
		return 0
	}
	return t.job.Percentage
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// PollTickMsg asks the UI to poll the active job.
type PollTickMsg struct {
	ProcessID string
}

// DoneMsg reports the job outcome to the UI. Err is nil on success.
type DoneMsg struct {
	Label string
	Err   error
}

// PollCmd schedules the next poll tick for processID.
func PollCmd(processID string) tea.Cmd {
	return tea.Tick(PollInterval, func(time.Time) tea.Msg {
		return PollTickMsg{ProcessID: processID}
	})
}

// HoldCmd schedules the overlay dismissal after the completion hold.
func HoldCmd() tea.Cmd {
	return tea.Tick(CompleteHold, func(time.Time) tea.Msg {
		return DismissMsg{}
	})
}

// DismissMsg ends the completion hold.
type DismissMsg struct{}

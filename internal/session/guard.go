// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// SESSION GUARD
// =============================================================================

// Guard gates the protected views. It owns the in-memory bearer token,
// tracks idle time, and decides when the session must end: idle timeout
// and a failed backend revalidation both force a logout the same way.
type Guard struct {
	mu sync.Mutex

	token        string
	username     string
	startTime    time.Time
	lastActivity time.Time

	timeout       time.Duration
	warningBefore time.Duration
	warningShown  bool

	// revalidateInterval is how often the token is re-checked against
	// the backend while a protected view is open.
	revalidateInterval time.Duration
	lastRevalidate     time.Time

	onLogout func(reason string)
}

// Config holds guard configuration.
type Config struct {
	// Timeout is how long the session may sit idle (default: 15 minutes).
	Timeout time.Duration

	// WarningBefore is how long before timeout to warn (default: 2 minutes).
	WarningBefore time.Duration

	// RevalidateInterval is how often to re-check the token with the
	// backend (default: 5 minutes).
	RevalidateInterval time.Duration
}

// DefaultConfig returns the default guard configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:            15 * time.Minute,
		WarningBefore:      2 * time.Minute,
		RevalidateInterval: 5 * time.Minute,
	}
}

// NewGuard creates a logged-out guard.
func NewGuard(cfg Config) *Guard {
	now := time.Now()
	return &Guard{
		startTime:          now,
		lastActivity:       now,
		timeout:            cfg.Timeout,
		warningBefore:      cfg.WarningBefore,
		revalidateInterval: cfg.RevalidateInterval,
		lastRevalidate:     now,
	}
}

// =============================================================================
// AUTH STATE
// =============================================================================

// Begin installs a token after a successful login or restore.
func (g *Guard) Begin(username, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now()
	g.username = username
	g.token = token
	g.startTime = now
	g.lastActivity = now
	g.lastRevalidate = now
	g.warningShown = false
}

// End clears the in-memory token. The persisted copy is the Store's
// problem; callers clear both on logout.
func (g *Guard) End() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = ""
	g.username = ""
}

// Token returns the current bearer token, or "" when logged out. This is
// the API client's token source.
func (g *Guard) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// Username returns who is logged in, or "".
func (g *Guard) Username() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.username
}

// Authenticated reports whether a token is held.
func (g *Guard) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token != ""
}

// SetLogoutCallback sets the function called when the guard forces a
// logout. The reason string is shown to the user.
func (g *Guard) SetLogoutCallback(fn func(reason string)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onLogout = fn
}

// =============================================================================
// ACTIVITY TRACKING
// =============================================================================

// RecordActivity resets the idle clock. Called on every keypress that
// reaches a protected view.
func (g *Guard) RecordActivity() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastActivity = time.Now()
	g.warningShown = false
}

// RemainingTime returns time until idle timeout.
func (g *Guard) RemainingTime() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	remaining := g.timeout - time.Since(g.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsExpired reports whether the session has idled out.
func (g *Guard) IsExpired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token != "" && time.Since(g.lastActivity) >= g.timeout
}

// Expire forces the session to end now, regardless of idle time. Used
// when the backend rejects the token mid-session.
func (g *Guard) Expire(reason string) {
	g.mu.Lock()
	g.token = ""
	g.username = ""
	onLogout := g.onLogout
	g.mu.Unlock()

	if onLogout != nil {
		onLogout(reason)
	}
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to check session state.
type TickMsg struct {
	Time time.Time
}

// TimeoutWarningMsg indicates the session is about to idle out.
type TimeoutWarningMsg struct {
	Remaining time.Duration
}

// ExpiredMsg indicates the session ended and the login view must take
// over.
type ExpiredMsg struct {
	Reason string
}

// RevalidateMsg indicates the token should be re-checked with the
// backend.
type RevalidateMsg struct{}

// TickCmd returns a command that ticks once per second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick evaluates guard state on a tick and returns the resulting
// messages plus the next tick.
func (g *Guard) HandleTick() tea.Cmd {
	var cmds []tea.Cmd

	g.mu.Lock()
	loggedIn := g.token != ""
	idle := time.Since(g.lastActivity)
	expired := loggedIn && idle >= g.timeout

	shouldWarn := false
	var remaining time.Duration
	if loggedIn && !expired && !g.warningShown && idle >= g.timeout-g.warningBefore {
		shouldWarn = true
		remaining = g.timeout - idle
		g.warningShown = true
	}

	shouldRevalidate := false
	if loggedIn && !expired && time.Since(g.lastRevalidate) >= g.revalidateInterval {
		shouldRevalidate = true
		g.lastRevalidate = time.Now()
	}

	if expired {
		g.token = ""
		g.username = ""
	}
	onLogout := g.onLogout
	g.mu.Unlock()

	if shouldWarn {
		cmds = append(cmds, func() tea.Msg {
			return TimeoutWarningMsg{Remaining: remaining}
		})
	}
	if shouldRevalidate {
		cmds = append(cmds, func() tea.Msg {
			return RevalidateMsg{}
		})
	}
	if expired {
		if onLogout != nil {
			onLogout("session expired")
		}
		cmds = append(cmds, func() tea.Msg {
			return ExpiredMsg{Reason: "Session expired. Please log in again."}
		})
	}

	cmds = append(cmds, TickCmd())
	return tea.Batch(cmds...)
}

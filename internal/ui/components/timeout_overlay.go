// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/ui/styles"
)

// =============================================================================
// SESSION TIMEOUT OVERLAY
// =============================================================================

// TimeoutOverlay warns that the session is about to expire from inactivity.
// Any key press dismisses it and counts as activity.
type TimeoutOverlay struct {
	visible   bool
	remaining time.Duration

	width  int
	height int
	theme  *styles.Theme
}

// NewTimeoutOverlay creates a hidden overlay.
func NewTimeoutOverlay(theme *styles.Theme) TimeoutOverlay {
	return TimeoutOverlay{theme: theme}
}

// SetSize sets the placement dimensions.
func (o *TimeoutOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Show displays the overlay with the given time remaining.
func (o *TimeoutOverlay) Show(remaining time.Duration) {
	o.visible = true
	o.remaining = remaining
}

// Update refreshes the countdown while visible.
func (o *TimeoutOverlay) Update(remaining time.Duration) {
	if o.visible {
		o.remaining = remaining
	}
}

// Hide dismisses the overlay.
func (o *TimeoutOverlay) Hide() {
	o.visible = false
}

// Visible reports whether the overlay is showing.
func (o *TimeoutOverlay) Visible() bool {
	return o.visible
}

// View renders the centered warning panel, or "" when hidden.
func (o TimeoutOverlay) View() string {
	if !o.visible {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		o.theme.Warning.Render(styles.StatusIndicators.Warning+" Session expiring"),
		"",
		fmt.Sprintf("You will be logged out in %s.", formatCountdown(o.remaining)),
		o.theme.Muted.Render("Press any key to stay signed in."),
	)
	panel := o.theme.Overlay.Render(body)
	if o.width == 0 || o.height == 0 {
		return panel
	}
	return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, panel)
}

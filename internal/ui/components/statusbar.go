// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/ui/styles"
	"github.com/legalia/legalia-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status represents the current application status shown in the bar.
type Status int

const (
	StatusReady Status = iota
	StatusSending
	StatusIngesting
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusSending:
		return "Waiting for reply..."
	case StatusIngesting:
		return "Ingesting..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a plain-ASCII glyph for the status. Shapes stay distinct so
// state is readable without color.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusSending:
		return styles.StatusIndicators.Pending
	case StatusIngesting:
		return styles.StatusIndicators.Active
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar: active space, model, session countdown,
// and current status.
type StatusBar struct {
	SpaceName     string
	ModelName     string
	Provider      string
	Status        Status
	SessionLeft   time.Duration
	ShowCountdown bool
	Width         int

	theme *styles.Theme
}

// NewStatusBar creates a status bar with sensible defaults.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// View renders the status bar as a single line fitted to the configured width.
func (b *StatusBar) View() string {
	left := fmt.Sprintf("%s %s", b.Status.Icon(), b.Status)
	if b.SpaceName != "" {
		left += "  |  " + util.TruncateWidth(b.SpaceName, 30)
	}
	if b.ModelName != "" {
		left += fmt.Sprintf("  |  %s (%s)", b.ModelName, b.Provider)
	}

	right := ""
	if b.ShowCountdown && b.SessionLeft > 0 {
		right = "session " + formatCountdown(b.SessionLeft)
	}

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return b.theme.StatusBar.Width(b.Width).Render(util.TruncateWidth(line, b.Width-2))
}

// formatCountdown renders a duration as m:ss for the session countdown.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

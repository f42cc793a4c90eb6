// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the color palette and theme for the LEGALIA TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// COLOR PALETTE
// =============================================================================

// Accent colors. Each pair adapts to the terminal background so the UI stays
// readable on both light and dark terminals.
var (
	// Purple is the primary brand accent (headers, focused borders).
	Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

	// Cyan marks informational elements and keyboard hints.
	Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

	// Emerald marks success states and completed jobs.
	Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

	// Rose marks errors and destructive actions.
	Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// Amber marks warnings, including the session-timeout countdown.
	Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
)

// Surface colors used for panels, dialogs, and bars.
var (
	Surface       = lipgloss.AdaptiveColor{Light: "#F8FAFC", Dark: "#1E1E2E"}
	SurfaceRaised = lipgloss.AdaptiveColor{Light: "#EEF2F7", Dark: "#27273A"}
	Border        = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#45475A"}
	BorderFocus   = Purple
)

// Text colors.
var (
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#E2E8F0"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"}
	TextInverted  = lipgloss.AdaptiveColor{Light: "#F8FAFC", Dark: "#11111B"}
)

// Chat bubble colors. User messages carry the brand accent; assistant
// messages sit on a neutral raised surface.
var (
	UserBubbleBg      = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#3B3B5C"}
	UserBubbleFg      = TextPrimary
	AssistantBubbleBg = SurfaceRaised
	AssistantBubbleFg = TextPrimary
	SourceFg          = TextMuted
)

// StatusIndicators holds plain-ASCII status glyphs. Shapes are distinct from
// one another so state is readable without color.
var StatusIndicators = struct {
	Success string
	Error   string
	Warning string
	Pending string
	Active  string
}{
	Success: "+",
	Error:   "x",
	Warning: "!",
	Pending: "o",
	Active:  ">",
}

// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds every lipgloss style used by the TUI, built once at startup
// from the detected terminal capabilities and the configured color scheme.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Application chrome
	App       lipgloss.Style
	Header    lipgloss.Style
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	KeyHint   lipgloss.Style

	// Chat transcript
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SenderLabel     lipgloss.Style
	Timestamp       lipgloss.Style
	SourceLine      lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Placeholder  lipgloss.Style

	// Panels and dialogs
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Overlay     lipgloss.Style

	// Lists and menus
	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style
	Checkbox         lipgloss.Style
	CheckboxChecked  lipgloss.Style

	// Feedback
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style

	// Tables (knowledge base browser)
	TableHeader      lipgloss.Style
	TableRow         lipgloss.Style
	TableRowSelected lipgloss.Style
}

// New builds a Theme from the detected terminal profile. The scheme argument
// comes from configuration: "light" forces a light background, anything else
// defers to terminal detection.
func New(scheme string) *Theme {
	profile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()
	if scheme == "light" {
		isDark = false
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}

	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Header = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceRaised).
		Padding(0, 1)

	t.KeyHint = lipgloss.NewStyle().
		Foreground(Cyan)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		Padding(0, 1)

	t.SenderLabel = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SourceLine = lipgloss.NewStyle().
		Foreground(SourceFg).
		Italic(true)

	t.Input = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.InputFocused = t.Input.
		BorderForeground(BorderFocus)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	t.PanelTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		MarginBottom(1)

	t.Dialog = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(BorderFocus).
		Background(Surface).
		Padding(1, 3)

	t.DialogTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		MarginBottom(1)

	t.Overlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Background(Surface).
		Padding(1, 2)

	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.MenuItemSelected = lipgloss.NewStyle().
		Foreground(TextInverted).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.Checkbox = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CheckboxChecked = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.Success = lipgloss.NewStyle().Foreground(Emerald)
	t.Error = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.Info = lipgloss.NewStyle().Foreground(Cyan)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border)

	t.TableRow = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TableRowSelected = lipgloss.NewStyle().
		Foreground(TextInverted).
		Background(Purple).
		Bold(true)

	return t
}

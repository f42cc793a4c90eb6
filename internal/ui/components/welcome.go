// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

const logo = `
 _     _____ ____    _    _     ___    _
| |   | ____/ ___|  / \  | |   |_ _|  / \
| |   |  _|| |  _  / _ \ | |    | |  / _ \
| |___| |__| |_| |/ ___ \| |___ | | / ___ \
|_____|_____\____/_/   \_\_____|___/_/   \_\
`

// Welcome is the pre-login landing screen.
type Welcome struct {
	Version   string
	ServerURL string

	width  int
	height int
	theme  *styles.Theme
}

// NewWelcome creates the welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		Version: "dev",
		theme:   theme,
	}
}

// SetSize sets the render dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// View renders the centered welcome screen.
func (w Welcome) View() string {
	var b strings.Builder
	b.WriteString(w.theme.Header.Render(strings.TrimPrefix(logo, "\n")))
	b.WriteString("\n")
	b.WriteString(w.theme.Title.Render("Your legal knowledge assistant"))
	b.WriteString("\n\n")
	if w.ServerURL != "" {
		b.WriteString(w.theme.Muted.Render("server: " + w.ServerURL))
		b.WriteString("\n")
	}
	b.WriteString(w.theme.Muted.Render("version " + w.Version))
	b.WriteString("\n\n")
	b.WriteString(w.theme.KeyHint.Render("enter") + " log in    ")
	b.WriteString(w.theme.KeyHint.Render("s") + " sign up    ")
	b.WriteString(w.theme.KeyHint.Render("q") + " quit")

	content := b.String()
	if w.width == 0 || w.height == 0 {
		return content
	}
	return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, content)
}

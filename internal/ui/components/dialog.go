// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRMATION DIALOG
// =============================================================================

// ConfirmDialog is a modal yes/no prompt used before destructive actions
// (deleting a chat space, wiping history, deleting a knowledge base row).
type ConfirmDialog struct {
	Title    string
	Message  string
	YesLabel string
	NoLabel  string

	// Selected reports which button is highlighted; false selects No, which
	// is also the default so a stray Enter never destroys anything.
	Selected bool

	theme *styles.Theme
}

// NewConfirmDialog creates a dialog defaulting to the No button.
func NewConfirmDialog(theme *styles.Theme, title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:    title,
		Message:  message,
		YesLabel: "Yes",
		NoLabel:  "No",
		theme:    theme,
	}
}

// Toggle flips the highlighted button.
func (d *ConfirmDialog) Toggle() {
	d.Selected = !d.Selected
}

// View renders the dialog panel.
func (d *ConfirmDialog) View() string {
	var b strings.Builder
	b.WriteString(d.theme.DialogTitle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yes := d.theme.MenuItem.Render("[ " + d.YesLabel + " ]")
	no := d.theme.MenuItemSelected.Render("[ " + d.NoLabel + " ]")
	if d.Selected {
		yes = d.theme.MenuItemSelected.Render("[ " + d.YesLabel + " ]")
		no = d.theme.MenuItem.Render("[ " + d.NoLabel + " ]")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yes, "  ", no))
	b.WriteString("\n")
	b.WriteString(d.theme.Muted.Render("tab: switch  enter: choose  esc: cancel"))

	return d.theme.Dialog.Render(b.String())
}

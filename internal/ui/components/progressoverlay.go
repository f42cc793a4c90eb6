// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/ui/styles"
)

// =============================================================================
// INGESTION PROGRESS OVERLAY
// =============================================================================

// ProgressOverlay renders a centered panel with a progress bar for long
// running ingestion jobs. The percentage comes straight from the backend
// poll loop; the bar never animates on its own.
type ProgressOverlay struct {
	Label      string
	Percentage float64
	Failed     bool

	bar   progress.Model
	theme *styles.Theme
	width int
}

// NewProgressOverlay creates an overlay with a gradient bar.
func NewProgressOverlay(theme *styles.Theme) *ProgressOverlay {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)
	bar.Width = 40
	return &ProgressOverlay{
		bar:   bar,
		theme: theme,
		width: 80,
	}
}

// SetWidth sizes the overlay; the bar takes most of the panel width.
func (o *ProgressOverlay) SetWidth(width int) {
	o.width = width
	barWidth := width - 20
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 10 {
		barWidth = 10
	}
	o.bar.Width = barWidth
}

// View renders the overlay panel.
func (o *ProgressOverlay) View() string {
	pct := o.Percentage
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	title := o.theme.PanelTitle.Render(o.Label)
	bar := o.bar.ViewAs(pct / 100)
	status := fmt.Sprintf("%.0f%%", pct)
	if o.Failed {
		status = o.theme.Error.Render("Ingestion failed")
	} else if pct >= 100 {
		status = o.theme.Success.Render(styles.StatusIndicators.Success + " Done")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, bar, "", status)
	return o.theme.Overlay.Render(body)
}

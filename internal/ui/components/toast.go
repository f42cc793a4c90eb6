// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/legalia/legalia-tui/internal/ui/styles"
	"github.com/legalia/legalia-tui/internal/util"
)

// =============================================================================
// TOASTS
// =============================================================================

// ToastKind classifies a toast notification.
type ToastKind int

const (
	ToastStatus ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Auto-dismiss durations. Errors stay longer so they can be read.
const (
	StatusToastDuration  = 4 * time.Second
	SuccessToastDuration = 4 * time.Second
	WarningToastDuration = 6 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

var toastCounter atomic.Int64

// Toast is a non-blocking corner notification that auto-dismisses.
type Toast struct {
	ID      int64
	Message string
	Kind    ToastKind
}

// ToastExpiredMsg dismisses the toast with the given ID.
type ToastExpiredMsg struct {
	ID int64
}

// NewToast creates a toast of the given kind.
func NewToast(kind ToastKind, message string) Toast {
	return Toast{
		ID:      toastCounter.Add(1),
		Message: message,
		Kind:    kind,
	}
}

// DismissCmd returns a command that fires ToastExpiredMsg after the
// kind-appropriate duration.
func (t Toast) DismissCmd() tea.Cmd {
	d := StatusToastDuration
	switch t.Kind {
	case ToastError:
		d = ErrorToastDuration
	case ToastWarning:
		d = WarningToastDuration
	}
	id := t.ID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// View renders the toast using the theme style for its kind.
func (t Toast) View(theme *styles.Theme, maxWidth int) string {
	if t.Message == "" {
		return ""
	}
	msg := util.TruncateWidth(t.Message, maxWidth)
	switch t.Kind {
	case ToastError:
		return theme.Error.Render(styles.StatusIndicators.Error + " " + msg)
	case ToastWarning:
		return theme.Warning.Render(styles.StatusIndicators.Warning + " " + msg)
	case ToastSuccess:
		return theme.Success.Render(styles.StatusIndicators.Success + " " + msg)
	default:
		return theme.Info.Render(msg)
	}
}

// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/legalia/legalia-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.New("dark")
}

func TestStatusString(t *testing.T) {
	if StatusReady.String() != "Ready" {
		t.Errorf("StatusReady = %q", StatusReady.String())
	}
	if StatusError.String() != "Error" {
		t.Errorf("StatusError = %q", StatusError.String())
	}
}

func TestStatusBarContainsSpaceAndModel(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SpaceName = "Default Chat"
	bar.ModelName = "llama3"
	bar.Provider = "local"
	bar.Width = 100

	out := bar.View()
	if !strings.Contains(out, "Default Chat") {
		t.Error("status bar missing space name")
	}
	if !strings.Contains(out, "llama3") {
		t.Error("status bar missing model name")
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Second, "1:30"},
		{5 * time.Second, "0:05"},
		{0, "0:00"},
		{-time.Second, "0:00"},
	}
	for _, tc := range cases {
		if got := formatCountdown(tc.d); got != tc.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestToastIDsUnique(t *testing.T) {
	a := NewToast(ToastError, "first")
	b := NewToast(ToastError, "second")
	if a.ID == b.ID {
		t.Error("toast IDs must be unique")
	}
}

func TestToastViewEmptyMessage(t *testing.T) {
	toast := Toast{Message: ""}
	if toast.View(testTheme(), 40) != "" {
		t.Error("empty toast should render nothing")
	}
}

func TestConfirmDialogDefaultsToNo(t *testing.T) {
	d := NewConfirmDialog(testTheme(), "Delete chat space", "Really delete?")
	if d.Selected {
		t.Error("dialog must default to No")
	}
	d.Toggle()
	if !d.Selected {
		t.Error("toggle should select Yes")
	}
}

func TestProgressOverlayClampsPercentage(t *testing.T) {
	o := NewProgressOverlay(testTheme())
	o.Label = "Processing PDF"
	o.Percentage = 250
	out := o.View()
	if !strings.Contains(out, "Done") {
		t.Error("overlay at >=100%% should show Done")
	}

	o.Percentage = 40
	o.Failed = true
	if !strings.Contains(o.View(), "failed") {
		t.Error("failed overlay should say so")
	}
}

func TestTimeoutOverlayVisibility(t *testing.T) {
	o := NewTimeoutOverlay(testTheme())
	if o.Visible() || o.View() != "" {
		t.Error("overlay should start hidden")
	}
	o.Show(90 * time.Second)
	if !o.Visible() {
		t.Error("overlay should be visible after Show")
	}
	if !strings.Contains(o.View(), "1:30") {
		t.Error("overlay should show the countdown")
	}
	o.Hide()
	if o.Visible() {
		t.Error("overlay should hide")
	}
}

func TestWelcomeView(t *testing.T) {
	w := NewWelcome(testTheme())
	w.Version = "1.2.3"
	w.ServerURL = "http://localhost:5000"
	out := w.View()
	if !strings.Contains(out, "1.2.3") {
		t.Error("welcome missing version")
	}
	if !strings.Contains(out, "localhost:5000") {
		t.Error("welcome missing server URL")
	}
}

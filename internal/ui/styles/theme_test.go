// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := New("dark")
	if theme == nil {
		t.Fatal("New returned nil")
	}
	if theme.Error.GetBold() != true {
		t.Error("error style should be bold")
	}
}

func TestLightSchemeOverridesDetection(t *testing.T) {
	theme := New("light")
	if theme.IsDark {
		t.Error("light scheme should force IsDark=false")
	}
}

func TestAdaptivePaletteDistinct(t *testing.T) {
	// Error and success accents must never collapse to the same color.
	if Rose.Dark == Emerald.Dark || Rose.Light == Emerald.Light {
		t.Error("rose and emerald accents must be distinct")
	}
}

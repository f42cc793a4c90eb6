// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/ui/styles"
)

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantPass bool
	}{
		{"valid", "Abcdef1!", true},
		{"valid long", "Sup3r$ecretPass", true},
		{"too short", "Ab1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no uppercase", "abcdef1!", false},
		{"no digit", "Abcdefg!", false},
		{"no special", "Abcdefg1", false},
		{"wrong special", "Abcdefg1#", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reason := CheckPassword(tc.password)
			if tc.wantPass && reason != "" {
				t.Errorf("CheckPassword(%q) = %q, want pass", tc.password, reason)
			}
			if !tc.wantPass && reason == "" {
				t.Errorf("CheckPassword(%q) passed, want failure", tc.password)
			}
		})
	}
}

func newTestModel() Model {
	return New(api.New("http://localhost:5000"), styles.New("dark"))
}

func TestLoginModeHidesSignupFields(t *testing.T) {
	m := newTestModel()
	for i := fieldConfirm; i < fieldCount; i++ {
		if m.fieldVisible(i) {
			t.Errorf("field %d should be hidden in login mode", i)
		}
	}
	m.SetMode(ModeSignup)
	for i := 0; i < fieldCount; i++ {
		if !m.fieldVisible(i) {
			t.Errorf("field %d should be visible in signup mode", i)
		}
	}
}

func TestSubmitRequiresCredentials(t *testing.T) {
	m := newTestModel()
	m, cmd := m.submit()
	if cmd != nil {
		t.Error("empty form must not issue a request")
	}
	if m.errText == "" {
		t.Error("empty form should set an error")
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	m := newTestModel()
	m.SetMode(ModeSignup)
	m.inputs[fieldUsername].SetValue("alice")
	m.inputs[fieldPassword].SetValue("weak")
	m, cmd := m.submit()
	if cmd != nil {
		t.Error("weak password must not issue a request")
	}
	if !strings.Contains(m.errText, "8 characters") {
		t.Errorf("errText = %q", m.errText)
	}
}

func TestSignupRejectsMismatchedConfirm(t *testing.T) {
	m := newTestModel()
	m.SetMode(ModeSignup)
	m.inputs[fieldUsername].SetValue("alice")
	m.inputs[fieldPassword].SetValue("Abcdef1!")
	m.inputs[fieldConfirm].SetValue("Abcdef1?")
	m, cmd := m.submit()
	if cmd != nil {
		t.Error("mismatched confirm must not issue a request")
	}
	if !strings.Contains(m.errText, "match") {
		t.Errorf("errText = %q", m.errText)
	}
}

func TestTabCyclesOnlyVisibleFields(t *testing.T) {
	m := newTestModel()
	m.cycleFocus(1)
	if m.focus != fieldPassword {
		t.Errorf("focus = %d, want password", m.focus)
	}
	m.cycleFocus(1)
	if m.focus != fieldUsername {
		t.Errorf("focus = %d, want wrap to username", m.focus)
	}
}

func TestAuthErrClearsBusy(t *testing.T) {
	m := newTestModel()
	m.busy = true
	m, _ = m.Update(authErrMsg{err: &api.APIError{Status: 401, Message: "Invalid credentials"}})
	if m.busy {
		t.Error("error must clear busy state")
	}
	if !strings.Contains(m.errText, "Invalid credentials") {
		t.Errorf("errText = %q", m.errText)
	}
}

func TestBusyIgnoresKeys(t *testing.T) {
	m := newTestModel()
	m.busy = true
	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("busy form should ignore keys")
	}
	if m2.focus != m.focus {
		t.Error("busy form should not move focus")
	}
}

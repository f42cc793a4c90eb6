// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/config"
	"github.com/legalia/legalia-tui/internal/session"
	"github.com/legalia/legalia-tui/internal/ui/chat"
	"github.com/legalia/legalia-tui/internal/ui/kb"
	"github.com/legalia/legalia-tui/internal/ui/login"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	cfg := config.Default()
	client := api.New("http://localhost:5000")
	store := session.NewStore(t.TempDir())
	guard := session.NewGuard(session.DefaultConfig())
	return NewApp(cfg, client, store, guard, nil, "test")
}

func TestStartsOnWelcome(t *testing.T) {
	a := newTestApp(t)
	if a.view != viewWelcome {
		t.Errorf("view = %d, want welcome", a.view)
	}
}

func TestLoginEntersChat(t *testing.T) {
	a := newTestApp(t)
	m, cmd := a.Update(login.LoggedInMsg{Username: "alice", Token: "tok"})
	a = m.(App)
	if a.view != viewChat {
		t.Errorf("view = %d, want chat", a.view)
	}
	if cmd == nil {
		t.Error("entering chat should start history load and session ticks")
	}
	if !a.guard.Authenticated() {
		t.Error("guard should hold the session")
	}
	if tok, err := a.store.Load(); err != nil || tok != "tok" {
		t.Error("token should be persisted")
	}
}

func TestExpiryReturnsToWelcome(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(login.LoggedInMsg{Username: "alice", Token: "tok"})
	a = m.(App)

	m, _ = a.Update(session.ExpiredMsg{Reason: "Session expired. Please log in again."})
	a = m.(App)
	if a.view != viewWelcome {
		t.Errorf("view = %d, want welcome", a.view)
	}
	if a.guard.Authenticated() {
		t.Error("guard should be cleared")
	}
	if _, err := a.store.Load(); err == nil {
		t.Error("stored token should be cleared")
	}
	if a.notice == "" {
		t.Error("expiry reason should be shown on the welcome screen")
	}
}

func TestChatLogoutMessageEndsSession(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(login.LoggedInMsg{Username: "alice", Token: "tok"})
	a = m.(App)
	m, _ = a.Update(chat.LoggedOutMsg{Reason: "Session expired. Please log in again."})
	a = m.(App)
	if a.view != viewWelcome {
		t.Error("stale-token logout should land on welcome")
	}
}

func TestKBCloseReturnsToChat(t *testing.T) {
	a := newTestApp(t)
	a.view = viewKB
	m, _ := a.Update(kb.CloseMsg{})
	a = m.(App)
	if a.view != viewChat {
		t.Errorf("view = %d, want chat", a.view)
	}
}

func TestSignupReturnsToLoginForm(t *testing.T) {
	a := newTestApp(t)
	a.view = viewLogin
	m, _ := a.Update(login.SignedUpMsg{Username: "bob"})
	a = m.(App)
	if a.view != viewLogin {
		t.Error("signup success should stay on the auth view in login mode")
	}
}

func TestConfigReloadAppliesOnEventLoop(t *testing.T) {
	a := newTestApp(t)
	next := config.Default()
	next.Model.Temperature = 0.9
	next.Server.URL = "http://localhost:9999"

	m, _ := a.Update(ConfigReloadedMsg{Cfg: next})
	a = m.(App)
	if a.cfg.Model.Temperature != 0.9 {
		t.Errorf("temperature = %v, want 0.9", a.cfg.Model.Temperature)
	}
	if a.cfg.Server.URL != "http://localhost:9999" {
		t.Errorf("server URL = %q, want the reloaded value", a.cfg.Server.URL)
	}

	m, _ = a.Update(ConfigReloadedMsg{Cfg: nil})
	a = m.(App)
	if a.cfg.Model.Temperature != 0.9 {
		t.Error("nil reload must not clear the config")
	}
}

// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui wires the LEGALIA TUI together: the welcome screen, the auth
// forms, the chat view, and the knowledge base browser, guarded by the
// inactivity session watchdog.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/config"
	"github.com/legalia/legalia-tui/internal/history"
	"github.com/legalia/legalia-tui/internal/session"
	"github.com/legalia/legalia-tui/internal/ui/chat"
	"github.com/legalia/legalia-tui/internal/ui/components"
	"github.com/legalia/legalia-tui/internal/ui/kb"
	"github.com/legalia/legalia-tui/internal/ui/login"
	"github.com/legalia/legalia-tui/internal/ui/styles"
)

// =============================================================================
// VIEWS
// =============================================================================

// view identifies the active top-level screen.
type view int

const (
	viewWelcome view = iota
	viewLogin
	viewChat
	viewKB
)

// authCheckedMsg reports whether a stored token is still valid.
type authCheckedMsg struct {
	OK bool
}

// ConfigReloadedMsg carries a freshly parsed config file. The fsnotify
// watcher runs on its own goroutine, so it sends this through the program
// and the swap happens on the event loop like every other state change.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	cfg    *config.Config
	client *api.Client
	store  *session.Store
	guard  *session.Guard
	theme  *styles.Theme

	view    view
	welcome components.Welcome
	login   login.Model
	chat    chat.Model
	kb      kb.Model

	timeout components.TimeoutOverlay

	// notice is shown on the welcome screen after a logout or expiry.
	notice string

	version string
	width   int
	height  int
}

// NewApp builds the root model. The mirror may be nil.
func NewApp(cfg *config.Config, client *api.Client, store *session.Store, guard *session.Guard, mirror *history.Mirror, version string) App {
	theme := styles.New(cfg.UI.Theme)
	client = client.WithTokenSource(guard.Token)

	welcome := components.NewWelcome(theme)
	welcome.Version = version
	welcome.ServerURL = cfg.Server.URL

	return App{
		cfg:     cfg,
		client:  client,
		store:   store,
		guard:   guard,
		theme:   theme,
		view:    viewWelcome,
		welcome: welcome,
		login:   login.New(client, theme),
		chat:    chat.New(client, cfg, mirror, theme),
		kb:      kb.New(client, theme),
		timeout: components.NewTimeoutOverlay(theme),
		version: version,
	}
}

// Init implements tea.Model: try to resume a stored session.
func (a App) Init() tea.Cmd {
	token, err := a.store.Load()
	if err != nil || token == "" {
		return nil
	}
	a.guard.Begin("", token)
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		ok, err := client.CheckAuth(ctx)
		return authCheckedMsg{OK: err == nil && ok}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.welcome.SetSize(msg.Width, msg.Height)
		a.login.SetSize(msg.Width, msg.Height)
		a.timeout.SetSize(msg.Width, msg.Height)
		var chatCmd, kbCmd tea.Cmd
		a.chat, chatCmd = a.chat.Update(msg)
		a.kb, kbCmd = a.kb.Update(msg)
		return a, tea.Batch(chatCmd, kbCmd)

	case authCheckedMsg:
		if msg.OK && a.view == viewWelcome {
			a.view = viewChat
			return a, tea.Batch(a.chat.Init(), session.TickCmd())
		}
		a.guard.End()
		_ = a.store.Clear()
		return a, nil

	case ConfigReloadedMsg:
		if msg.Cfg != nil {
			*a.cfg = *msg.Cfg
		}
		return a, nil

	case login.LoggedInMsg:
		return a.beginSession(msg.Username, msg.Token)

	case login.SignedUpMsg:
		a.login.SetMode(login.ModeLogin)
		a.login.PrefillUsername(msg.Username)
		return a, nil

	case session.TickMsg:
		if !a.guard.Authenticated() {
			return a, nil
		}
		return a, a.guard.HandleTick()

	case session.TimeoutWarningMsg:
		a.timeout.Show(msg.Remaining)
		return a, nil

	case session.ExpiredMsg:
		return a.endSession(msg.Reason)

	case session.RevalidateMsg:
		client := a.client
		return a, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			ok, err := client.CheckAuth(ctx)
			if err == nil && !ok {
				return session.ExpiredMsg{Reason: "Session expired. Please log in again."}
			}
			return nil
		}

	case chat.LoggedOutMsg:
		return a.endSession(msg.Reason)

	case kb.CloseMsg:
		a.view = viewChat
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.route(msg)
}

// handleKey applies global bindings, records activity, and forwards the key
// to the active view.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.guard.Authenticated() {
		a.guard.RecordActivity()
		if a.timeout.Visible() {
			a.timeout.Hide()
			return a, nil
		}
	}

	switch a.view {
	case viewWelcome:
		switch msg.String() {
		case "enter":
			a.view = viewLogin
			a.notice = ""
			a.login.SetMode(login.ModeLogin)
			return a, a.login.Init()
		case "s":
			a.view = viewLogin
			a.notice = ""
			a.login.SetMode(login.ModeSignup)
			return a, a.login.Init()
		case "q", "ctrl+c":
			return a, tea.Quit
		}
		return a, nil

	case viewLogin:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "esc" {
			a.view = viewWelcome
			return a, nil
		}

	case viewChat:
		switch msg.String() {
		case "ctrl+k":
			a.view = viewKB
			return a, a.kb.Init()
		case "ctrl+x":
			return a.logout()
		}

	case viewKB:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	return a.route(msg)
}

// route forwards a message to the active view. The chat model additionally
// sees every non-key message regardless of the active view: it owns the
// background work (replies, ingestion polls, toast timers) that must keep
// making progress while the KB browser or login form is on screen.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
		cmds = append(cmds, cmd)
	case viewKB:
		a.kb, cmd = a.kb.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey || a.view == viewChat {
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// beginSession installs a fresh login and enters the chat view.
func (a App) beginSession(username, token string) (tea.Model, tea.Cmd) {
	a.guard.Begin(username, token)
	_ = a.store.Save(token)
	a.view = viewChat
	return a, tea.Batch(a.chat.Init(), session.TickCmd())
}

// endSession drops the session after expiry or a forced logout and returns
// to the welcome screen.
func (a App) endSession(reason string) (tea.Model, tea.Cmd) {
	a.guard.End()
	_ = a.store.Clear()
	a.timeout.Hide()
	a.view = viewWelcome
	a.notice = reason
	return a, nil
}

// logout tells the backend, then tears the session down.
func (a App) logout() (tea.Model, tea.Cmd) {
	client := a.client
	fire := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = client.Logout(ctx)
		return nil
	}
	model, cmd := a.endSession("Logged out.")
	return model, tea.Batch(cmd, fire)
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (a App) View() string {
	if a.timeout.Visible() {
		return a.timeout.View()
	}
	switch a.view {
	case viewLogin:
		return a.login.View()
	case viewChat:
		return a.chat.View()
	case viewKB:
		return a.kb.View()
	default:
		out := a.welcome.View()
		if a.notice != "" {
			out += "\n" + a.theme.Warning.Render(a.notice)
		}
		return out
	}
}

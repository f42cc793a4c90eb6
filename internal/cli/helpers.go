// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - shared setup for CLI command handlers.
package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/config"
	"github.com/legalia/legalia-tui/internal/model"
	"github.com/legalia/legalia-tui/internal/session"
	"github.com/legalia/legalia-tui/internal/ui/styles"
)

// ErrNotLoggedIn is returned by commands that need a session.
var ErrNotLoggedIn = errors.New("not logged in: run 'legalia login' first")

// Styles for plain CLI output.
var (
	promptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	errStyle    = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(styles.Emerald)
)

// Env bundles the pieces every command handler needs.
type Env struct {
	Cfg    *config.Config
	Client *api.Client
	Store  *session.Store

	token   string
	logFile *os.File
}

// NewEnv loads configuration, applies CLI overrides, and builds the API
// client. A stored session token is loaded if present; commands that
// require one call RequireAuth.
func NewEnv(args *Args) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if args.Server != "" {
		cfg.Server.URL = args.Server
	}
	if args.Model != "" {
		if cfg.Model.Provider == string(model.ProviderGroq) {
			cfg.Model.GroqModel = args.Model
		} else {
			cfg.Model.LocalModel = args.Model
		}
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	env := &Env{
		Cfg:   cfg,
		Store: session.NewStore(dir),
	}
	if token, err := env.Store.Load(); err == nil {
		env.token = token
	}

	client := api.New(cfg.Server.URL).WithTokenSource(func() string { return env.token })

	// Request logging goes to a file under the config dir so it never
	// interferes with terminal output.
	if f, err := os.OpenFile(filepath.Join(dir, "client.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
		env.logFile = f
		client.WithLogger(log.New(f, "", log.LstdFlags))
	}

	env.Client = client
	return env, nil
}

// Close releases resources held by the environment.
func (e *Env) Close() error {
	if e.logFile != nil {
		return e.logFile.Close()
	}
	return nil
}

// RequireAuth fails fast when no session token is stored.
func (e *Env) RequireAuth() error {
	if e.token == "" {
		return ErrNotLoggedIn
	}
	return nil
}

// SetToken stores a fresh token for subsequent requests and on disk.
func (e *Env) SetToken(token string) error {
	e.token = token
	return e.Store.Save(token)
}

// ClearToken forgets the session.
func (e *Env) ClearToken() error {
	e.token = ""
	return e.Store.Clear()
}

// printErr writes a styled error line to stderr.
func printErr(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
}

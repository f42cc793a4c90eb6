// legalia - terminal client for the LEGALIA legal knowledge assistant.
//
// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/legalia/legalia-tui/internal/cli"
	"github.com/legalia/legalia-tui/internal/config"
	"github.com/legalia/legalia-tui/internal/history"
	"github.com/legalia/legalia-tui/internal/session"
	"github.com/legalia/legalia-tui/internal/ui"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n%s", err, cli.Usage())
		os.Exit(2)
	}

	switch args.Command {
	case cli.CmdHelp:
		fmt.Print(cli.Usage())
		return
	case cli.CmdVersion:
		fmt.Println(cli.VersionString())
		return
	}

	env, err := cli.NewEnv(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	switch args.Command {
	case cli.CmdTUI:
		runTUI(env, args)
		return
	case cli.CmdAsk:
		err = cli.RunAsk(env, args.Query, args.Space)
	case cli.CmdChat:
		err = cli.RunChat(env)
	case cli.CmdLogin:
		err = cli.RunLogin(env, args.Query)
	case cli.CmdLogout:
		err = cli.RunLogout(env)
	case cli.CmdWhoami:
		err = cli.RunWhoami(env)
	case cli.CmdKB:
		err = cli.RunKB(env, args.Subcommand, args.Raw)
	case cli.CmdExport:
		err = cli.RunExport(env, args.Space)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the full-screen client: config watcher, session guard,
// local history mirror, and the Bubble Tea program.
func runTUI(env *cli.Env, args *cli.Args) {
	cfg := env.Cfg

	guardCfg := session.DefaultConfig()
	if mins := cfg.Session.TimeoutMins; mins > 0 {
		guardCfg.Timeout = time.Duration(mins) * time.Minute
	}
	guard := session.NewGuard(guardCfg)

	// The mirror is best-effort; the TUI works without it.
	var mirror *history.Mirror
	if dir, err := config.Dir(); err == nil {
		if m, err := history.Open(filepath.Join(dir, "history.db")); err == nil {
			mirror = m
			defer mirror.Close()
		} else if args.Verbose {
			fmt.Fprintf(os.Stderr, "history mirror disabled: %v\n", err)
		}
	}

	app := ui.NewApp(cfg, env.Client, env.Store, guard, mirror, Version)
	program := tea.NewProgram(app, tea.WithAltScreen())

	// Reload model and UI settings when the config file changes on disk.
	// The watcher fires on its own goroutine, so hand the new config to the
	// event loop instead of writing it here.
	if path, err := config.Path(); err == nil {
		watcher, err := config.NewWatcher(path, func(next *config.Config) {
			program.Send(ui.ConfigReloadedMsg{Cfg: next})
		})
		if err == nil && watcher.Watch() == nil {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

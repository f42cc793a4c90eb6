// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and command dispatch for the legalia CLI.
package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdLogin
	CmdLogout
	CmdWhoami
	CmdKB
	CmdExport
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Global flags
	Server  string // override the configured backend URL
	Model   string // override the configured model
	Verbose bool

	// Command-specific
	Query      string // ask: the question
	Space      string // ask/export: chat space name
	Subcommand string // kb: collections|embeddings|delete
	Raw        []string
}

const usageText = `legalia - terminal client for the LEGALIA legal knowledge assistant

Usage:
  legalia                      Start the TUI (default)
  legalia ask "question"       Ask a single question and print the answer
  legalia chat                 Interactive chat in the terminal
  legalia login [username]     Log in and store the session
  legalia logout               Log out and clear the stored session
  legalia whoami               Show the signed-in account
  legalia kb [subcommand]      Browse the knowledge base
  legalia export [space]       Export a chat space to markdown
  legalia version              Show version information
  legalia help                 Show this help

KB subcommands:
  legalia kb collections       List document collections
  legalia kb embeddings        List stored document chunks
  legalia kb delete TABLE UUID Delete a row by UUID

Flags:
  --server URL     Backend URL (overrides config and LEGALIA_SERVER_URL)
  --model NAME     Model name for this invocation
  --space NAME     Chat space for ask/export (default: active space)
  -v, --verbose    Verbose output

Examples:
  legalia ask "What is the notice period in the lease?"
  legalia ask --space "Contract Review" "Summarize the indemnity clause"
  legalia export "Contract Review"
  legalia kb delete langchain_pg_collection 3f1a...
`

// Usage returns the top-level help text.
func Usage() string {
	return usageText
}

// Parse interprets os.Args[1:] into an Args value.
func Parse(argv []string) (*Args, error) {
	args := &Args{Command: CmdTUI}

	rest := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		switch {
		case a == "--server":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("--server requires a URL")
			}
			i++
			args.Server = argv[i]
		case strings.HasPrefix(a, "--server="):
			args.Server = strings.TrimPrefix(a, "--server=")
		case a == "--model" || a == "-m":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("--model requires a name")
			}
			i++
			args.Model = argv[i]
		case strings.HasPrefix(a, "--model="):
			args.Model = strings.TrimPrefix(a, "--model=")
		case a == "--space":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("--space requires a name")
			}
			i++
			args.Space = argv[i]
		case strings.HasPrefix(a, "--space="):
			args.Space = strings.TrimPrefix(a, "--space=")
		case a == "-v" || a == "--verbose":
			args.Verbose = true
		case a == "-h" || a == "--help":
			args.Command = CmdHelp
			return args, nil
		case strings.HasPrefix(a, "-") && a != "-":
			return nil, fmt.Errorf("unknown flag: %s", a)
		default:
			rest = append(rest, a)
		}
	}

	if len(rest) == 0 {
		return args, nil
	}

	cmd, tail := rest[0], rest[1:]
	args.Raw = tail
	switch cmd {
	case "ask":
		args.Command = CmdAsk
		if len(tail) == 0 {
			return nil, fmt.Errorf("ask requires a question")
		}
		args.Query = strings.Join(tail, " ")
	case "chat":
		args.Command = CmdChat
	case "login":
		args.Command = CmdLogin
		if len(tail) > 0 {
			args.Query = tail[0]
		}
	case "logout":
		args.Command = CmdLogout
	case "whoami":
		args.Command = CmdWhoami
	case "kb":
		args.Command = CmdKB
		if len(tail) > 0 {
			args.Subcommand = tail[0]
			args.Raw = tail[1:]
		}
	case "export":
		args.Command = CmdExport
		if len(tail) > 0 {
			args.Space = strings.Join(tail, " ")
		}
	case "version", "--version":
		args.Command = CmdVersion
	case "help":
		args.Command = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
	return args, nil
}

// VersionString formats the version banner.
func VersionString() string {
	return fmt.Sprintf("legalia %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestParseDefaultsToTUI(t *testing.T) {
	args, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if args.Command != CmdTUI {
		t.Errorf("command = %d, want TUI", args.Command)
	}
}

func TestParseAsk(t *testing.T) {
	args, err := Parse([]string{"ask", "what", "is", "a", "lease?"})
	if err != nil {
		t.Fatal(err)
	}
	if args.Command != CmdAsk {
		t.Fatalf("command = %d, want ask", args.Command)
	}
	if args.Query != "what is a lease?" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseAskWithoutQuestion(t *testing.T) {
	if _, err := Parse([]string{"ask"}); err == nil {
		t.Error("ask without a question should fail")
	}
}

func TestParseFlags(t *testing.T) {
	args, err := Parse([]string{"--server", "http://example:5000", "--space=Contract Review", "-m", "gemma2:9b", "ask", "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if args.Server != "http://example:5000" {
		t.Errorf("server = %q", args.Server)
	}
	if args.Space != "Contract Review" {
		t.Errorf("space = %q", args.Space)
	}
	if args.Model != "gemma2:9b" {
		t.Errorf("model = %q", args.Model)
	}
}

func TestParseKBSubcommand(t *testing.T) {
	args, err := Parse([]string{"kb", "delete", "langchain_pg_collection", "abc-123"})
	if err != nil {
		t.Fatal(err)
	}
	if args.Command != CmdKB || args.Subcommand != "delete" {
		t.Errorf("command/sub = %d/%q", args.Command, args.Subcommand)
	}
	if len(args.Raw) != 2 || args.Raw[1] != "abc-123" {
		t.Errorf("raw = %v", args.Raw)
	}
}

func TestParseExportSpaceWithSpaces(t *testing.T) {
	args, err := Parse([]string{"export", "Contract", "Review"})
	if err != nil {
		t.Fatal(err)
	}
	if args.Space != "Contract Review" {
		t.Errorf("space = %q", args.Space)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	if _, err := Parse([]string{"frobnicate"}); err == nil {
		t.Error("unknown command should fail")
	}
}

func TestParseUnknownFlag(t *testing.T) {
	if _, err := Parse([]string{"--bogus"}); err == nil {
		t.Error("unknown flag should fail")
	}
}

func TestParseMissingFlagValue(t *testing.T) {
	if _, err := Parse([]string{"--server"}); err == nil {
		t.Error("--server without value should fail")
	}
}

func TestUsageMentionsEveryCommand(t *testing.T) {
	for _, cmd := range []string{"ask", "chat", "login", "logout", "whoami", "kb", "export", "version"} {
		if !strings.Contains(usageText, cmd) {
			t.Errorf("usage missing %q", cmd)
		}
	}
}

func TestVersionString(t *testing.T) {
	if !strings.Contains(VersionString(), Version) {
		t.Error("version banner should include the version")
	}
}

func TestREPLCommandQuit(t *testing.T) {
	// handleREPLCommand needs no backend for /quit.
	if !handleREPLCommand(nil, nil, "/quit") {
		t.Error("/quit should exit")
	}
}

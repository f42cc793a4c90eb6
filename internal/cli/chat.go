// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - interactive chat REPL command handler.
//
// Provides a line-oriented chat session for terminals where the full TUI is
// unwanted (SSH sessions, scripts driving a pty, accessibility tooling).
//
// Interactive commands:
//   /spaces             List chat spaces
//   /space NAME         Switch to a chat space
//   /new                Create a chat space
//   /export             Export the current space to markdown
//   /help               Show commands
//   /quit, Ctrl+D       Exit
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/config"
	"github.com/legalia/legalia-tui/internal/export"
	"github.com/legalia/legalia-tui/internal/model"
	"github.com/legalia/legalia-tui/internal/workspace"
)

// historyFileName stores REPL input history under the config directory.
const historyFileName = "chat_history"

// chatREPL wraps liner with persistent input history.
type chatREPL struct {
	line        *liner.State
	historyFile string
}

// newChatREPL creates the line editor and loads prior input history.
func newChatREPL() *chatREPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	historyFile := filepath.Join(dir, historyFileName)
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return &chatREPL{line: line, historyFile: historyFile}
}

// close persists input history and restores the terminal.
func (r *chatREPL) close() {
	if f, err := os.Create(r.historyFile); err == nil {
		_, _ = r.line.WriteHistory(f)
		f.Close()
	}
	r.line.Close()
}

// RunChat runs the interactive REPL.
func RunChat(env *Env) error {
	if err := env.RequireAuth(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	order, history, err := env.Client.ChatHistory(ctx)
	cancel()

	var ws *workspace.Workspace
	if err != nil {
		printErr(fmt.Errorf("load history: %w", err))
		ws = workspace.New()
	} else {
		ws = workspace.NewFromHistory(order, history)
	}

	repl := newChatREPL()
	defer repl.close()

	fmt.Println(promptStyle.Render("LEGALIA chat") + infoStyle.Render("  ("+env.Cfg.ActiveModel()+", /help for commands)"))
	fmt.Println(infoStyle.Render("space: " + ws.Active()))

	for {
		input, err := repl.line.Prompt(ws.Active() + " > ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		repl.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := handleREPLCommand(env, ws, input); quit {
				return nil
			}
			continue
		}

		answer, sources, err := askInSpace(env, ws.Active(), input)
		if err != nil {
			printErr(err)
			fmt.Println(renderMarkdown(model.FallbackErrorText))
			continue
		}
		fmt.Println(renderMarkdown(answer))
		for _, s := range sources {
			fmt.Println(infoStyle.Render("  source: " + s))
		}
		ws.Append(ws.Active(), model.NewUserMessage(input))
		ws.Append(ws.Active(), model.NewAssistantMessage(answer, sources))
	}
}

// askInSpace sends one question scoped to the named space.
func askInSpace(env *Env, space, question string) (string, []string, error) {
	req := api.ChatRequest{
		Question:     question,
		ModelName:    env.Cfg.ActiveModel(),
		Temperature:  env.Cfg.Model.Temperature,
		GroqAPIToken: env.Cfg.GroqToken(),
		ChatName:     space,
		Collections:  "all",
	}
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()
	resp, err := env.Client.Chat(ctx, req)
	if err != nil {
		return "", nil, err
	}
	return resp.Answer, resp.SourceDocuments, nil
}

// handleREPLCommand executes a slash command. It returns true to exit.
func handleREPLCommand(env *Env, ws *workspace.Workspace, input string) bool {
	parts := strings.SplitN(input, " ", 2)
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch parts[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/spaces":
		active := ws.Active()
		for _, name := range ws.Spaces() {
			marker := "  "
			if name == active {
				marker = "* "
			}
			fmt.Println(marker + name)
		}

	case "/space":
		if arg == "" {
			fmt.Println(infoStyle.Render("usage: /space NAME"))
			break
		}
		if !ws.Has(arg) {
			printErr(fmt.Errorf("no such chat space: %s", arg))
			break
		}
		ws.SetActive(arg)
		fmt.Println(infoStyle.Render("space: " + ws.Active()))

	case "/new":
		created := ws.Create()
		fmt.Println(infoStyle.Render("space: " + created))

	case "/export":
		path, err := export.WriteFile(ws.Active(), ws.Messages(ws.Active()), export.DefaultOptions())
		if err != nil {
			printErr(err)
			break
		}
		fmt.Println(okStyle.Render("Exported to " + path))

	case "/help", "/h":
		fmt.Println(infoStyle.Render("/spaces  /space NAME  /new  /export  /quit"))

	default:
		fmt.Println(infoStyle.Render("unknown command; /help for commands"))
	}
	return false
}

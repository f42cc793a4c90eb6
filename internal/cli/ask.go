// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - single question command handler.
//
// Sends one question to the backend and prints the rendered answer with its
// source documents.
//
// Examples:
//   legalia ask "What is the notice period in the lease?"
//   legalia ask --space "Contract Review" "Summarize the indemnity clause"
//   legalia ask --model gemma2:9b "Define force majeure"
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/workspace"
)

// askTimeout allows for retrieval plus generation.
const askTimeout = 3 * time.Minute

// markdownRenderer renders answers for the terminal. Nil falls back to
// plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		markdownRenderer = r
	}
}

// renderMarkdown renders text as markdown, falling back to the raw text.
func renderMarkdown(text string) string {
	if markdownRenderer == nil {
		return text
	}
	out, err := markdownRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// RunAsk sends a single question in the given space (default space when
// empty) and prints the answer.
func RunAsk(env *Env, question, space string) error {
	if err := env.RequireAuth(); err != nil {
		return err
	}
	if space == "" {
		space = workspace.DefaultSpaceName
	}

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
		return err
	}

	fmt.Println(renderMarkdown(resp.Answer))
	if len(resp.SourceDocuments) > 0 {
		fmt.Println()
		fmt.Println(infoStyle.Render("Sources:"))
		for _, s := range resp.SourceDocuments {
			fmt.Println(infoStyle.Render("  - " + s))
		}
	}
	return nil
}

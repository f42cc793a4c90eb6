// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/legalia/legalia-tui/internal/model"
)

// ChatRequest is the payload for POST /api/chat. Collections is either an
// explicit list of collection names or the literal string "all".
type ChatRequest struct {
	Question     string  `json:"question"`
	ModelName    string  `json:"model_name"`
	Temperature  float64 `json:"temperature"`
	GroqAPIToken *string `json:"groq_api_token"`
	ChatName     string  `json:"chatName"`
	Collections  any     `json:"collections"`
}

// ChatResponse is the answer to a chat request.
type ChatResponse struct {
	Answer          string   `json:"answer"`
	SourceDocuments []string `json:"source_documents"`
}

// Chat sends one question and blocks until the backend answers. Per-request
// model parameters ride along; the backend routes to Groq when a token is
// present and to the local runtime otherwise.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.postJSON(ctx, http.MethodPost, "/api/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// historyMessage is one transcript entry as the backend stores it.
type historyMessage struct {
	Text      string `json:"text"`
	IsUser    bool   `json:"isUser"`
	Timestamp string `json:"timestamp"`
}

// ChatHistory fetches every chat space for the authenticated user and
// converts the wire transcripts to model messages. The returned order is
// the space names sorted lexically; the backend groups by name and does
// not preserve creation order across sessions.
func (c *Client) ChatHistory(ctx context.Context) ([]string, map[string][]*model.Message, error) {
	var raw map[string][]historyMessage
	if err := c.getJSON(ctx, "/api/chat_history", &raw); err != nil {
		return nil, nil, err
	}

	order := make([]string, 0, len(raw))
	history := make(map[string][]*model.Message, len(raw))
	for name, entries := range raw {
		order = append(order, name)
		msgs := make([]*model.Message, 0, len(entries))
		for _, e := range entries {
			var m *model.Message
			if e.IsUser {
				m = model.NewUserMessage(e.Text)
			} else {
				m = model.NewAssistantMessage(e.Text, nil)
			}
			if ts, err := time.Parse(time.RFC3339, e.Timestamp); err == nil {
				m.Timestamp = ts
			}
			msgs = append(msgs, m)
		}
		history[name] = msgs
	}
	sort.Strings(order)
	return order, history, nil
}

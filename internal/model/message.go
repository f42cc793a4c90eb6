// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the sender label rendered next to a message.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Bot"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in a chat-space transcript. Messages are
// immutable once created and strictly append-ordered within their space.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// Sources holds the retrieval source documents backing an assistant
	// reply. Always empty for user messages.
	Sources []string `json:"sources,omitempty"`
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message with its source documents.
func NewAssistantMessage(text string, sources []string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: time.Now(),
		Sources:   sources,
	}
}

// FallbackErrorText is the reply shown when a chat request fails and the
// backend supplied no error string of its own.
const FallbackErrorText = "Sorry, there was an error processing your request."

// NewErrorReply wraps a human-readable error string as an assistant message.
// It enters the transcript like any other reply. An empty text falls back to
// FallbackErrorText.
func NewErrorReply(text string) *Message {
	if text == "" {
		text = FallbackErrorText
	}
	return NewAssistantMessage(text, nil)
}

// IsUser reports whether the message was authored by the user.
func (m *Message) IsUser() bool {
	return m.Role == RoleUser
}

// Preview returns a truncated single-glance preview of the message text.
// Rune-based so multi-byte characters are never split.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}

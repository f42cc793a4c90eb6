// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Bot"},
		{Role("other"), "other"},
	}
	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestNewErrorReply_IsPlainAssistantMessage(t *testing.T) {
	errMsg := NewErrorReply("rate limited")
	reply := NewAssistantMessage("rate limited", nil)

	if errMsg.Role != reply.Role {
		t.Errorf("error reply role = %q, want %q", errMsg.Role, reply.Role)
	}
	if errMsg.Text != "rate limited" {
		t.Errorf("error reply text = %q", errMsg.Text)
	}
	if len(errMsg.Sources) != 0 {
		t.Errorf("error reply carries sources: %v", errMsg.Sources)
	}
}

func TestMessage_Preview(t *testing.T) {
	m := NewUserMessage(strings.Repeat("a", 100))
	got := m.Preview(10)
	if got != strings.Repeat("a", 7)+"..." {
		t.Errorf("Preview = %q", got)
	}

	short := NewUserMessage("hi")
	if short.Preview(10) != "hi" {
		t.Errorf("Preview of short message = %q", short.Preview(10))
	}
}

func TestMessage_IDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		m := NewUserMessage("x")
		if seen[m.ID] {
			t.Fatalf("duplicate message ID %q", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestCollections_Vocabulary(t *testing.T) {
	if len(Collections) != 5 {
		t.Fatalf("vocabulary size = %d, want 5", len(Collections))
	}
	for _, c := range Collections {
		if !IsKnownCollection(c) {
			t.Errorf("IsKnownCollection(%q) = false", c)
		}
	}
	if IsKnownCollection("S3 Bucket") {
		t.Error("IsKnownCollection accepted an unknown name")
	}
}

func TestValidModel(t *testing.T) {
	if !ValidModel(ProviderLocal, DefaultLocalModel) {
		t.Error("default local model not valid")
	}
	if !ValidModel(ProviderGroq, DefaultGroqModel) {
		t.Error("default groq model not valid")
	}
	if ValidModel(ProviderLocal, DefaultGroqModel) {
		t.Error("groq model accepted under local provider")
	}
}

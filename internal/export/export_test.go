// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"strings"
	"testing"

	"github.com/legalia/legalia-tui/internal/model"
)

func sampleTranscript() []*model.Message {
	return []*model.Message{
		model.NewUserMessage("What does clause 4 mean?"),
		model.NewAssistantMessage("Clause 4 limits liability.", []string{"contract.pdf p.3"}),
	}
}

func TestMarkdown_Structure(t *testing.T) {
	out, err := Markdown("Contract Review", sampleTranscript(), nil)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"# Contract Review",
		"### You",
		"### Bot",
		"What does clause 4 mean?",
		"Clause 4 limits liability.",
		"contract.pdf p.3",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMarkdown_EmptyTranscriptRejected(t *testing.T) {
	if _, err := Markdown("Empty", nil, nil); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestMarkdown_SourcesOmittedWhenDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeSources = false
	out, err := Markdown("X", sampleTranscript(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "contract.pdf p.3") {
		t.Error("sources present despite IncludeSources=false")
	}
}

func TestWriteFile(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()

	path, err := WriteFile("Contract Review", sampleTranscript(), opts)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(content), "# Contract Review") {
		t.Error("written file missing title")
	}
	if !strings.Contains(path, "Contract_Review") {
		t.Errorf("filename %q not sanitized from the space name", path)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Default Chat", "Default_Chat"},
		{"a/b\\c:d", "a-b-c-d"},
		{"", "chat"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

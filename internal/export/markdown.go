// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/legalia/legalia-tui/internal/model"
	"github.com/legalia/legalia-tui/internal/util"
)

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where files are written. Default: current directory.
	OutputDir string

	// IncludeMetadata includes the header section (space, message count,
	// export time).
	IncludeMetadata bool

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool

	// IncludeSources includes the source documents under assistant
	// replies.
	IncludeSources bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		IncludeSources:    true,
	}
}

// =============================================================================
// MARKDOWN EXPORT
// =============================================================================

// Markdown renders one chat space's transcript to Markdown.
func Markdown(space string, msgs []*model.Message, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("chat space %q has no messages", space)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", space))

	if opts.IncludeMetadata {
		sb.WriteString(fmt.Sprintf("- **Messages**: %d\n", len(msgs)))
		sb.WriteString(fmt.Sprintf("- **Exported**: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("\n---\n\n")
	}

	for i, msg := range msgs {
		label := msg.Role.DisplayName()
		if opts.IncludeTimestamps && !msg.Timestamp.IsZero() {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
				label, msg.Timestamp.Format("2006-01-02 15:04")))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", label))
		}

		sb.WriteString(msg.Text)
		sb.WriteString("\n\n")

		if opts.IncludeSources && len(msg.Sources) > 0 {
			sb.WriteString("<details><summary>Sources</summary>\n\n")
			for _, src := range msg.Sources {
				sb.WriteString(fmt.Sprintf("> %s\n\n", strings.ReplaceAll(src, "\n", "\n> ")))
			}
			sb.WriteString("</details>\n\n")
		}

		if i < len(msgs)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// WriteFile renders a space and writes it under opts.OutputDir, returning
// the output path.
func WriteFile(space string, msgs []*model.Message, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	content, err := Markdown(space, msgs, opts)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.md", sanitizeFilename(space), time.Now().Format("20060102_150405"))
	path := filepath.Join(opts.OutputDir, name)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := util.AtomicWriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// sanitizeFilename makes a space name safe as a file name.
func sanitizeFilename(s string) string {
	s = util.TruncateRunes(s, 50)
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			sb.WriteRune('-')
		case ' ', '\t':
			sb.WriteRune('_')
		default:
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	if out == "" {
		return "chat"
	}
	return out
}

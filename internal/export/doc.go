// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders chat-space transcripts to Markdown files.
package export

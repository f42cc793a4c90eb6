// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat view of the LEGALIA TUI: the
// transcript, the composer, the chat-space menu, per-space settings
// (rename, context selection, deletion), model settings, document
// ingestion, artifact generation, and the account panel.
//
// The view is a single Bubble Tea model. Backend calls run as tea.Cmds so
// the UI never blocks; replies are routed back into the workspace by space
// name, surviving renames and discarding results for deleted spaces.
package chat

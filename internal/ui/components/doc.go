// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared visual components of the LEGALIA
// TUI: the status bar, toast notifications, the ingestion progress overlay,
// confirmation dialogs, and the welcome screen. Components are plain view
// structs rendered by their parent Bubble Tea model; the ones that need
// timers ship their own tea.Cmd constructors.
package components

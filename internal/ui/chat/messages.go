// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// replyMsg carries a backend chat reply. Space names the chat space the
// question was asked in; routing follows renames via the workspace.
type replyMsg struct {
	Space string
	Reply *model.Message
	Err   error
}

// historyMsg carries the server-side transcript loaded at startup.
type historyMsg struct {
	Order   []string
	History map[string][]*model.Message
	Err     error
}

// renameAckMsg reports the outcome of a rename request. The local state
// changes only after the backend acknowledges.
type renameAckMsg struct {
	OldName string
	NewName string
	Err     error
}

// deleteAckMsg reports the outcome of a chat-space delete request.
type deleteAckMsg struct {
	Space string
	Err   error
}

// clearAckMsg reports the outcome of a delete-all-history request.
type clearAckMsg struct {
	Err error
}

// ingestStartedMsg carries the job handle returned when an ingestion
// request is accepted.
type ingestStartedMsg struct {
	ProcessID string
	Label     string
	Err       error
}

// progressMsg carries one backend progress poll result.
type progressMsg struct {
	ProcessID  string
	Percentage float64
	Err        error
}

// userInfoMsg carries the account profile fetch result.
type userInfoMsg struct {
	Info api.UserInfo
	Err  error
}

// userInfoSavedMsg reports the outcome of a profile update.
type userInfoSavedMsg struct {
	Err error
}

// generateDoneMsg carries a generated CSV artifact or the failure.
type generateDoneMsg struct {
	Kind string
	Path string
	Err  error
}

// exportDoneMsg reports a transcript export.
type exportDoneMsg struct {
	Path string
	Err  error
}

// LoggedOutMsg asks the parent model to return to the login screen.
type LoggedOutMsg struct {
	Reason string
}

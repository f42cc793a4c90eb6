// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/model"
	"github.com/legalia/legalia-tui/internal/progress"
	"github.com/legalia/legalia-tui/internal/ui/components"
	"github.com/legalia/legalia-tui/internal/workspace"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.waiting && !m.tracker.Active() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastExpiredMsg:
		m.dropToast(msg.ID)
		return m, nil

	case historyMsg:
		return m.handleHistory(msg)

	case replyMsg:
		return m.handleReply(msg)

	case renameAckMsg:
		return m.handleRenameAck(msg)

	case deleteAckMsg:
		return m.handleDeleteAck(msg)

	case clearAckMsg:
		if msg.Err != nil {
			return m, m.pushToast(components.ToastError, "Could not clear history: "+msg.Err.Error())
		}
		m.workspace.Reset()
		if m.mirror != nil {
			_ = m.mirror.Reset()
		}
		m.refreshTranscript()
		return m, m.pushToast(components.ToastSuccess, "All chat history cleared.")

	case ingestStartedMsg:
		return m.handleIngestStarted(msg)

	case progressMsg:
		return m.handleProgress(msg)

	case progress.DismissMsg:
		m.tracker.Dismiss()
		return m, nil

	case userInfoMsg:
		return m.handleUserInfo(msg)

	case userInfoSavedMsg:
		if msg.Err != nil {
			return m, m.pushToast(components.ToastError, "Could not save profile: "+msg.Err.Error())
		}
		m.overlay = overlayNone
		return m, m.pushToast(components.ToastSuccess, "Profile updated.")

	case generateDoneMsg:
		return m.handleGenerateDone(msg)

	case exportDoneMsg:
		if msg.Err != nil {
			return m, m.pushToast(components.ToastError, "Export failed: "+msg.Err.Error())
		}
		return m, m.pushToast(components.ToastSuccess, "Exported to "+msg.Path)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// =============================================================================
// BACKEND MESSAGE HANDLERS
// =============================================================================

// handleHistory installs the server transcript at startup.
func (m Model) handleHistory(msg historyMsg) (Model, tea.Cmd) {
	m.historyLoaded = true
	if msg.Err != nil {
		if restored, ok := m.restoreFromMirror(); ok {
			m.workspace = restored
			m.refreshTranscript()
			return m, m.pushToast(components.ToastWarning, "Server unreachable; showing locally cached history.")
		}
		return m, m.pushToast(components.ToastWarning, "Could not load chat history: "+msg.Err.Error())
	}
	m.workspace = workspace.NewFromHistory(msg.Order, msg.History)
	if m.mirror != nil {
		for _, space := range msg.Order {
			_ = m.mirror.RecordAll(space, msg.History[space])
		}
	}
	m.refreshTranscript()
	return m, nil
}

// restoreFromMirror rebuilds the workspace from the local history mirror
// when the server transcript cannot be fetched.
func (m *Model) restoreFromMirror() (*workspace.Workspace, bool) {
	if m.mirror == nil {
		return nil, false
	}
	order, err := m.mirror.Spaces()
	if err != nil || len(order) == 0 {
		return nil, false
	}
	history := make(map[string][]*model.Message, len(order))
	for _, space := range order {
		msgs, err := m.mirror.Messages(space)
		if err != nil {
			return nil, false
		}
		history[space] = msgs
	}
	return workspace.NewFromHistory(order, history), true
}

// handleGenerateDone reports a finished CSV generation in the transcript,
// the same way the assistant would answer.
func (m Model) handleGenerateDone(msg generateDoneMsg) (Model, tea.Cmd) {
	space := m.workspace.Active()
	var note *model.Message
	var cmd tea.Cmd
	if msg.Err != nil {
		note = model.NewErrorReply("Generation failed: " + msg.Err.Error())
		cmd = m.pushToast(components.ToastError, "Generation failed: "+msg.Err.Error())
	} else {
		note = model.NewAssistantMessage("Generated CSV saved to `"+msg.Path+"`.", nil)
		cmd = m.pushToast(components.ToastSuccess, "Saved "+msg.Path)
		m.overlay = overlayNone
	}
	m.workspace.Append(space, note)
	m.recordMirror(space, note)
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, cmd
}

// handleReply routes a chat reply into the workspace. Delivery follows
// renames; replies for deleted spaces are dropped.
func (m Model) handleReply(msg replyMsg) (Model, tea.Cmd) {
	m.waiting = false
	m.statusBar.Status = components.StatusReady

	reply := msg.Reply
	var cmd tea.Cmd
	if msg.Err != nil {
		var apiErr *api.APIError
		text := ""
		if errors.As(msg.Err, &apiErr) {
			text = apiErr.Message
		}
		reply = model.NewErrorReply(text)
		cmd = m.pushToast(components.ToastError, msg.Err.Error())
	}

	if space, ok := m.workspace.Deliver(msg.Space, reply); ok {
		m.recordMirror(space, reply)
		if space == m.workspace.Active() {
			m.refreshTranscript()
			m.viewport.GotoBottom()
		}
	}
	return m, cmd
}

// handleRenameAck applies a rename only after the backend acknowledged it.
func (m Model) handleRenameAck(msg renameAckMsg) (Model, tea.Cmd) {
	m.pendingRename = false
	if msg.Err != nil {
		return m, m.pushToast(components.ToastError, "Rename failed: "+msg.Err.Error())
	}
	if err := m.workspace.Rename(msg.OldName, msg.NewName); err != nil {
		return m, m.pushToast(components.ToastError, "Rename failed: "+err.Error())
	}
	if m.mirror != nil {
		_ = m.mirror.Rename(msg.OldName, msg.NewName)
	}
	m.renaming = false
	m.renameInput.SetValue("")
	m.refreshTranscript()
	return m, m.pushToast(components.ToastSuccess, "Renamed to "+msg.NewName)
}

// handleDeleteAck removes a space after the backend acknowledged the delete.
// The backend refuses to delete the only remaining space; that refusal is
// surfaced verbatim.
func (m Model) handleDeleteAck(msg deleteAckMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.pushToast(components.ToastError, msg.Err.Error())
	}
	if err := m.workspace.Delete(msg.Space); err != nil && !errors.Is(err, workspace.ErrUnknownSpace) {
		return m, m.pushToast(components.ToastError, err.Error())
	}
	if m.mirror != nil {
		_ = m.mirror.DeleteSpace(msg.Space)
	}
	m.overlay = overlayNone
	m.refreshTranscript()
	return m, m.pushToast(components.ToastSuccess, "Deleted "+msg.Space)
}

// handleIngestStarted begins polling for an accepted ingestion job.
func (m Model) handleIngestStarted(msg ingestStartedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.tracker.Fail()
		m.statusBar.Status = components.StatusReady
		return m, m.pushToast(components.ToastError, "Ingestion failed: "+msg.Err.Error())
	}
	if err := m.tracker.Start(msg.ProcessID); err != nil {
		m.statusBar.Status = components.StatusReady
		return m, m.pushToast(components.ToastError, "Ingestion failed: "+err.Error())
	}
	m.overlay = overlayNone
	m.statusBar.Status = components.StatusIngesting
	return m, m.pollProgressCmd(msg.ProcessID)
}

// handleProgress advances the active ingestion job. The first failed poll
// aborts the job; a completed job holds briefly at 100% before dismissing.
func (m Model) handleProgress(msg progressMsg) (Model, tea.Cmd) {
	job := m.tracker.Job()
	if job == nil || job.ProcessID != msg.ProcessID {
		return m, nil
	}
	if msg.Err != nil {
		m.tracker.Fail()
		m.statusBar.Status = components.StatusReady
		return m, m.pushToast(components.ToastError, "Ingestion failed: "+msg.Err.Error())
	}

	done, err := m.tracker.RecordProgress(msg.Percentage)
	if err != nil {
		return m, nil
	}
	if done {
		m.statusBar.Status = components.StatusReady
		return m, tea.Batch(progress.HoldCmd(), m.pushToast(components.ToastSuccess, "Ingestion complete."))
	}
	return m, m.pollProgressCmd(msg.ProcessID)
}

// handleUserInfo installs the fetched profile into the account panel. A
// stale token shows up here as a session-expired error.
func (m Model) handleUserInfo(msg userInfoMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrSessionExpired) {
			return m, func() tea.Msg {
				return LoggedOutMsg{Reason: "Session expired. Please log in again."}
			}
		}
		return m, m.pushToast(components.ToastError, "Could not load profile: "+msg.Err.Error())
	}
	m.accountLoaded = true
	m.accountUser = msg.Info.Username
	m.accountInputs[0].SetValue(msg.Info.FirstName)
	m.accountInputs[1].SetValue(msg.Info.LastName)
	m.accountInputs[2].SetValue(msg.Info.Email)
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey dispatches key presses to the open overlay, or to the composer.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlaySpaces:
		return m.updateSpacesMenu(msg)
	case overlaySettings:
		return m.updateSettings(msg)
	case overlayModels:
		return m.updateModels(msg)
	case overlayAccount:
		return m.updateAccount(msg)
	case overlayIngest:
		return m.updateIngest(msg)
	case overlayGenerate:
		return m.updateGenerate(msg)
	case overlayConfirmDelete, overlayConfirmClear:
		return m.updateConfirm(msg)
	case overlayHelp:
		if key.Matches(msg, m.keyMap.Cancel) || key.Matches(msg, m.keyMap.Help) {
			m.overlay = overlayNone
		}
		return m, nil
	}

	return m.updateComposer(msg)
}

// updateComposer handles the main transcript view: scrolling, shortcuts,
// and the input line.
func (m Model) updateComposer(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submitQuestion()

	case key.Matches(msg, m.keyMap.Spaces):
		m.overlay = overlaySpaces
		m.spacesCursor = m.activeSpaceIndex()
		return m, nil

	case key.Matches(msg, m.keyMap.NewSpace):
		created := m.workspace.Create()
		m.refreshTranscript()
		return m, m.pushToast(components.ToastStatus, "Switched to "+created)

	case key.Matches(msg, m.keyMap.Settings):
		m.openSettings()
		return m, nil

	case key.Matches(msg, m.keyMap.Models):
		m.overlay = overlayModels
		m.modelsCursor = 0
		m.editingGroq = false
		return m, nil

	case key.Matches(msg, m.keyMap.Account):
		m.overlay = overlayAccount
		m.accountFocus = 0
		m.accountInputs[0].Focus()
		if !m.accountLoaded {
			return m, m.fetchUserInfoCmd()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Ingest):
		m.overlay = overlayIngest
		m.ingestPicking = true
		m.ingestSource = sourcePDF
		return m, nil

	case key.Matches(msg, m.keyMap.Generate):
		m.overlay = overlayGenerate
		m.generateInput.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keyMap.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitQuestion sends the composer draft. Whitespace-only drafts are a
// no-op; the draft survives untouched. The user message is appended
// optimistically and the draft cleared before the reply arrives.
func (m Model) submitQuestion() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if m.waiting {
		return m, m.pushToast(components.ToastWarning, "Still waiting for the previous reply.")
	}

	space := m.workspace.Active()
	userMsg := model.NewUserMessage(text)
	m.workspace.Append(space, userMsg)
	m.recordMirror(space, userMsg)
	m.input.SetValue("")
	m.waiting = true
	m.statusBar.Status = components.StatusSending
	m.refreshTranscript()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.sendChatCmd(space, text, m.workspace.Scope(space)), m.spinner.Tick)
}

// activeSpaceIndex returns the index of the active space in directory order.
func (m *Model) activeSpaceIndex() int {
	active := m.workspace.Active()
	for i, name := range m.workspace.Spaces() {
		if name == active {
			return i
		}
	}
	return 0
}

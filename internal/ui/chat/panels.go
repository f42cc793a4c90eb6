// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/config"
	"github.com/legalia/legalia-tui/internal/model"
	"github.com/legalia/legalia-tui/internal/ui/components"
)

// =============================================================================
// SPACES MENU
// =============================================================================

// updateSpacesMenu handles the chat-space directory overlay.
func (m Model) updateSpacesMenu(msg tea.KeyMsg) (Model, tea.Cmd) {
	spaces := m.workspace.Spaces()
	switch msg.String() {
	case "up":
		if m.spacesCursor > 0 {
			m.spacesCursor--
		}
	case "down":
		if m.spacesCursor < len(spaces)-1 {
			m.spacesCursor++
		}
	case "enter":
		if m.spacesCursor < len(spaces) {
			m.workspace.SetActive(spaces[m.spacesCursor])
			m.refreshTranscript()
			m.viewport.GotoBottom()
		}
		m.overlay = overlayNone
	case "esc":
		m.overlay = overlayNone
	}
	return m, nil
}

// =============================================================================
// SPACE SETTINGS
// =============================================================================

// Settings rows precede the per-collection checkboxes.
const (
	settingsRowRename = iota
	settingsRowUseAll
	settingsRowFirstCollection
)

// openSettings opens the per-space settings panel seeded from the active
// space's saved context.
func (m *Model) openSettings() {
	m.overlay = overlaySettings
	m.settingsCursor = settingsRowRename
	m.renaming = false
	m.renameInput.SetValue(m.workspace.Active())

	m.contextChecked = make(map[string]bool)
	saved := m.workspace.Context(m.workspace.Active())
	for _, c := range saved {
		m.contextChecked[c] = true
	}
	m.useAllContext = len(saved) == 0
}

// settingsRowCount is the row count: rename, use-all, one per collection,
// delete space, clear all history.
func (m *Model) settingsRowCount() int {
	return settingsRowFirstCollection + len(model.Collections) + 2
}

// saveContext persists the checkbox state to the workspace. An empty
// selection means search everything.
func (m *Model) saveContext() {
	if m.useAllContext {
		m.workspace.SaveContext(m.workspace.Active(), nil)
		return
	}
	var selected []string
	for _, c := range model.Collections {
		if m.contextChecked[c] {
			selected = append(selected, c)
		}
	}
	m.workspace.SaveContext(m.workspace.Active(), selected)
}

// updateSettings handles the space settings overlay.
func (m Model) updateSettings(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.renaming {
		switch msg.String() {
		case "enter":
			return m.submitRename()
		case "esc":
			m.renaming = false
			return m, nil
		}
		var cmd tea.Cmd
		m.renameInput, cmd = m.renameInput.Update(msg)
		return m, cmd
	}

	deleteRow := settingsRowFirstCollection + len(model.Collections)
	clearRow := deleteRow + 1

	switch msg.String() {
	case "up":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "down":
		if m.settingsCursor < m.settingsRowCount()-1 {
			m.settingsCursor++
		}
	case "enter", " ":
		switch {
		case m.settingsCursor == settingsRowRename:
			m.renaming = true
			m.renameInput.SetValue(m.workspace.Active())
			m.renameInput.CursorEnd()
			m.renameInput.Focus()
		case m.settingsCursor == settingsRowUseAll:
			m.toggleUseAll()
		case m.settingsCursor >= settingsRowFirstCollection && m.settingsCursor < deleteRow:
			m.toggleCollection(model.Collections[m.settingsCursor-settingsRowFirstCollection])
		case m.settingsCursor == deleteRow:
			if m.workspace.Len() <= 1 {
				return m, m.pushToast(components.ToastWarning, "Cannot delete the only chat space.")
			}
			m.confirmTarget = m.workspace.Active()
			m.confirm = components.NewConfirmDialog(m.theme, "Delete chat space",
				"Delete \""+m.confirmTarget+"\" and its history?")
			m.overlay = overlayConfirmDelete
		case m.settingsCursor == clearRow:
			m.confirm = components.NewConfirmDialog(m.theme, "Clear all history",
				"Delete every message in every chat space?")
			m.overlay = overlayConfirmClear
		}
	case "esc":
		m.saveContext()
		m.overlay = overlayNone
	}
	return m, nil
}

// toggleUseAll flips the search-everything checkbox. Turning it off with
// nothing selected seeds the first collection so the scope is never
// silently empty.
func (m *Model) toggleUseAll() {
	m.useAllContext = !m.useAllContext
	if !m.useAllContext && !m.anyCollectionChecked() {
		m.contextChecked[model.Collections[0]] = true
	}
}

// toggleCollection flips one collection checkbox. Clearing the last one
// falls back to searching everything.
func (m *Model) toggleCollection(name string) {
	if m.useAllContext {
		m.useAllContext = false
		m.contextChecked = make(map[string]bool)
	}
	m.contextChecked[name] = !m.contextChecked[name]
	if !m.anyCollectionChecked() {
		m.useAllContext = true
	}
}

func (m *Model) anyCollectionChecked() bool {
	for _, c := range model.Collections {
		if m.contextChecked[c] {
			return true
		}
	}
	return false
}

// submitRename validates the new name and asks the backend. The local
// rename happens in handleRenameAck, never before.
func (m Model) submitRename() (Model, tea.Cmd) {
	oldName := m.workspace.Active()
	newName := strings.TrimSpace(m.renameInput.Value())
	if newName == "" || newName == oldName {
		m.renaming = false
		return m, nil
	}
	if m.pendingRename {
		return m, nil
	}
	m.pendingRename = true
	return m, m.renameSpaceCmd(oldName, newName)
}

// =============================================================================
// MODEL SETTINGS
// =============================================================================

// Model settings rows.
const (
	modelRowProvider = iota
	modelRowModel
	modelRowTemperature
	modelRowGroqToken
	modelRowCount
)

// updateModels handles the model settings overlay.
func (m Model) updateModels(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editingGroq {
		switch msg.String() {
		case "enter", "esc":
			if msg.String() == "enter" {
				m.cfg.Model.GroqAPIToken = strings.TrimSpace(m.groqInput.Value())
			}
			m.editingGroq = false
			m.groqInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.groqInput, cmd = m.groqInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up":
		if m.modelsCursor > 0 {
			m.modelsCursor--
		}
	case "down":
		if m.modelsCursor < modelRowCount-1 {
			m.modelsCursor++
		}
	case "left", "right":
		m.adjustModelRow(msg.String() == "right")
	case "enter":
		if m.modelsCursor == modelRowGroqToken {
			m.editingGroq = true
			m.groqInput.SetValue(m.cfg.Model.GroqAPIToken)
			m.groqInput.Focus()
		}
	case "esc":
		m.statusBar.ModelName = m.cfg.ActiveModel()
		m.statusBar.Provider = m.cfg.Model.Provider
		m.overlay = overlayNone
		if err := config.Save(m.cfg); err != nil {
			return m, m.pushToast(components.ToastWarning, "Could not save settings: "+err.Error())
		}
	}
	return m, nil
}

// adjustModelRow applies a left/right key to the highlighted setting.
func (m *Model) adjustModelRow(forward bool) {
	switch m.modelsCursor {
	case modelRowProvider:
		if m.cfg.Model.Provider == string(model.ProviderLocal) {
			m.cfg.Model.Provider = string(model.ProviderGroq)
		} else {
			m.cfg.Model.Provider = string(model.ProviderLocal)
		}
	case modelRowModel:
		names := model.ModelsFor(model.Provider(m.cfg.Model.Provider))
		cur := m.cfg.ActiveModel()
		idx := 0
		for i, n := range names {
			if n == cur {
				idx = i
				break
			}
		}
		if forward {
			idx = (idx + 1) % len(names)
		} else {
			idx = (idx - 1 + len(names)) % len(names)
		}
		if m.cfg.Model.Provider == string(model.ProviderGroq) {
			m.cfg.Model.GroqModel = names[idx]
		} else {
			m.cfg.Model.LocalModel = names[idx]
		}
	case modelRowTemperature:
		t := m.cfg.Model.Temperature
		if forward {
			t += 0.1
		} else {
			t -= 0.1
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		m.cfg.Model.Temperature = t
	}
}

// =============================================================================
// ACCOUNT PANEL
// =============================================================================

// updateAccount handles the profile overlay.
func (m Model) updateAccount(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.accountInputs[m.accountFocus].Blur()
		m.accountFocus = (m.accountFocus + 1) % len(m.accountInputs)
		m.accountInputs[m.accountFocus].Focus()
		return m, nil
	case "shift+tab", "up":
		m.accountInputs[m.accountFocus].Blur()
		m.accountFocus = (m.accountFocus + len(m.accountInputs) - 1) % len(m.accountInputs)
		m.accountInputs[m.accountFocus].Focus()
		return m, nil
	case "enter":
		info := api.UserInfo{
			Username:  m.accountUser,
			FirstName: strings.TrimSpace(m.accountInputs[0].Value()),
			LastName:  strings.TrimSpace(m.accountInputs[1].Value()),
			Email:     strings.TrimSpace(m.accountInputs[2].Value()),
		}
		return m, m.saveUserInfoCmd(info)
	case "esc":
		m.overlay = overlayNone
		return m, nil
	}

	var cmd tea.Cmd
	m.accountInputs[m.accountFocus], cmd = m.accountInputs[m.accountFocus].Update(msg)
	return m, cmd
}

// =============================================================================
// INGESTION PANEL
// =============================================================================

// updateIngest handles the two-step ingestion overlay: pick a source, then
// fill in its fields.
func (m Model) updateIngest(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.ingestPicking {
		switch msg.String() {
		case "up":
			if m.ingestSource > 0 {
				m.ingestSource--
			}
		case "down":
			if m.ingestSource < sourceCount-1 {
				m.ingestSource++
			}
		case "enter":
			m.buildIngestForm()
		case "esc":
			m.overlay = overlayNone
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.ingestInputs[m.ingestFocus].Blur()
		m.ingestFocus = (m.ingestFocus + 1) % len(m.ingestInputs)
		m.ingestInputs[m.ingestFocus].Focus()
		return m, nil
	case "shift+tab", "up":
		m.ingestInputs[m.ingestFocus].Blur()
		m.ingestFocus = (m.ingestFocus + len(m.ingestInputs) - 1) % len(m.ingestInputs)
		m.ingestInputs[m.ingestFocus].Focus()
		return m, nil
	case "enter":
		return m.submitIngest()
	case "esc":
		m.ingestPicking = true
		return m, nil
	}

	var cmd tea.Cmd
	m.ingestInputs[m.ingestFocus], cmd = m.ingestInputs[m.ingestFocus].Update(msg)
	return m, cmd
}

// buildIngestForm creates the input fields for the chosen source.
func (m *Model) buildIngestForm() {
	labels := m.ingestSource.fieldLabels()
	m.ingestInputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 512
		in.Width = 48
		if strings.Contains(strings.ToLower(label), "token") {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		m.ingestInputs[i] = in
	}
	m.ingestInputs[0].Focus()
	m.ingestFocus = 0
	m.ingestPicking = false
}

// submitIngest validates the form and starts the ingestion job.
func (m Model) submitIngest() (Model, tea.Cmd) {
	values := make([]string, len(m.ingestInputs))
	for i := range m.ingestInputs {
		values[i] = strings.TrimSpace(m.ingestInputs[i].Value())
	}
	for i, v := range values {
		// Tokens may be blank for public sources; the first field never is.
		if v == "" && i == 0 {
			return m, m.pushToast(components.ToastWarning, m.ingestSource.fieldLabels()[0]+" is required.")
		}
	}

	label := "Processing " + m.ingestSource.String()
	if err := m.tracker.Begin(label); err != nil {
		return m, m.pushToast(components.ToastWarning, "An ingestion job is already running.")
	}
	m.statusBar.Status = components.StatusIngesting

	client := m.client
	var cmd tea.Cmd
	switch m.ingestSource {
	case sourcePDF:
		cmd = m.submitPDFCmd(values[0])
	case sourceConfluence:
		cmd = submitIngestCmd(label, func(ctx context.Context) (string, error) {
			return client.ProcessConfluence(ctx, values[0], values[1])
		})
	case sourceJiraProject:
		cmd = submitIngestCmd(label, func(ctx context.Context) (string, error) {
			return client.ProcessJira(ctx, values[0], values[1])
		})
	case sourceJiraIssue:
		cmd = submitIngestCmd(label, func(ctx context.Context) (string, error) {
			return client.ProcessJiraIssue(ctx, values[0], values[1], values[2])
		})
	case sourceGitHub:
		cmd = submitIngestCmd(label, func(ctx context.Context) (string, error) {
			return client.ProcessGitHub(ctx, values[0])
		})
	case sourceGitLab:
		cmd = submitIngestCmd(label, func(ctx context.Context) (string, error) {
			return client.ProcessGitLab(ctx, values[0], values[1], values[2])
		})
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// =============================================================================
// GENERATION PANEL
// =============================================================================

// updateGenerate handles the artifact generation overlay.
func (m Model) updateGenerate(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.generateKind == generateKindTests {
			m.generateKind = generateKindCriteria
		} else {
			m.generateKind = generateKindTests
		}
		return m, nil
	case "enter":
		prompt := strings.TrimSpace(m.generateInput.Value())
		if prompt == "" {
			return m, m.pushToast(components.ToastWarning, "Describe what to generate first.")
		}
		m.generateInput.SetValue("")
		return m, m.generateCmd(m.generateKind, prompt)
	case "esc":
		m.overlay = overlayNone
		return m, nil
	}

	var cmd tea.Cmd
	m.generateInput, cmd = m.generateInput.Update(msg)
	return m, cmd
}

// =============================================================================
// CONFIRM DIALOGS
// =============================================================================

// updateConfirm handles the delete and clear confirmation dialogs.
func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		m.confirm.Toggle()
		return m, nil
	case "enter":
		confirmed := m.confirm.Selected
		wasDelete := m.overlay == overlayConfirmDelete
		if !confirmed {
			m.overlay = overlaySettings
			return m, nil
		}
		m.overlay = overlayNone
		if wasDelete {
			return m, m.deleteSpaceCmd(m.confirmTarget)
		}
		return m, m.clearHistoryCmd()
	case "esc":
		m.overlay = overlaySettings
		return m, nil
	}
	return m, nil
}

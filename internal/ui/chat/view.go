// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/model"
	"github.com/legalia/legalia-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	header := m.theme.Header.Render("LEGALIA") +
		"  " + m.theme.Muted.Render(m.workspace.Active())

	body := m.viewport.View()
	if m.overlay != overlayNone {
		body = m.overlayView()
	} else if m.tracker.Active() {
		m.overlayUI.Label = m.trackerLabel()
		m.overlayUI.Percentage = m.tracker.Percentage()
		body = lipgloss.Place(m.viewport.Width, m.viewport.Height,
			lipgloss.Center, lipgloss.Center, m.overlayUI.View())
	}

	inputLine := m.theme.InputFocused.Render(m.input.View())
	if m.waiting {
		inputLine = m.theme.Input.Render(m.spinner.View() + " waiting for reply...")
	}

	parts := []string{header, body, inputLine, m.statusBar.View()}
	if line := m.toastLine(); line != "" {
		parts = append(parts, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// toastLine renders the most recent toast, newest wins.
func (m Model) toastLine() string {
	if len(m.toasts) == 0 {
		return ""
	}
	return m.toasts[len(m.toasts)-1].View(m.theme, m.width-2)
}

// trackerLabel returns the label of the running job.
func (m Model) trackerLabel() string {
	if job := m.tracker.Job(); job != nil {
		return job.Label
	}
	return "Processing"
}

// overlayView renders the open panel centered over the transcript area.
func (m Model) overlayView() string {
	var panel string
	switch m.overlay {
	case overlaySpaces:
		panel = m.spacesView()
	case overlaySettings:
		panel = m.settingsView()
	case overlayModels:
		panel = m.modelsView()
	case overlayAccount:
		panel = m.accountView()
	case overlayIngest:
		panel = m.ingestView()
	case overlayGenerate:
		panel = m.generateView()
	case overlayConfirmDelete, overlayConfirmClear:
		panel = m.confirm.View()
	case overlayHelp:
		panel = m.helpView()
	}
	return lipgloss.Place(m.viewport.Width, m.viewport.Height,
		lipgloss.Center, lipgloss.Center, panel)
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshTranscript rebuilds the viewport content from the active space.
func (m *Model) refreshTranscript() {
	msgs := m.workspace.Messages(m.workspace.Active())
	if len(msgs) == 0 {
		m.viewport.SetContent(m.theme.Muted.Render("\n  No messages yet. Ask a question below."))
		return
	}
	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	m.viewport.SetContent(b.String())
}

// renderMessage renders one transcript entry. Assistant messages go through
// the markdown renderer; user messages stay verbatim.
func (m *Model) renderMessage(msg *model.Message) string {
	label := m.theme.SenderLabel.Render(msg.Role.DisplayName())
	ts := ""
	if !msg.Timestamp.IsZero() {
		ts = "  " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}

	body := msg.Text
	if !msg.IsUser() && m.renderer != nil {
		if out, err := m.renderer.Render(msg.Text); err == nil {
			body = strings.TrimRight(out, "\n")
		}
	}

	bubble := m.theme.AssistantBubble
	if msg.IsUser() {
		bubble = m.theme.UserBubble
	}

	out := label + ts + "\n" + bubble.MaxWidth(m.viewport.Width-2).Render(body)
	if m.cfg.UI.ShowSources && len(msg.Sources) > 0 {
		var src strings.Builder
		for _, s := range msg.Sources {
			src.WriteString("\n" + m.theme.SourceLine.Render("  source: "+s))
		}
		out += src.String()
	}
	return out + "\n"
}

// =============================================================================
// PANEL VIEWS
// =============================================================================

func (m Model) spacesView() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Chat spaces"))
	b.WriteString("\n")
	active := m.workspace.Active()
	for i, name := range m.workspace.Spaces() {
		marker := "  "
		if name == active {
			marker = styles.StatusIndicators.Active + " "
		}
		line := marker + name
		if i == m.spacesCursor {
			b.WriteString(m.theme.MenuItemSelected.Render(line))
		} else {
			b.WriteString(m.theme.MenuItem.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.theme.Muted.Render("enter: switch  esc: close"))
	return m.theme.Panel.Render(b.String())
}

func (m Model) settingsView() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Settings: " + m.workspace.Active()))
	b.WriteString("\n")

	row := func(idx int, text string) {
		if idx == m.settingsCursor && !m.renaming {
			b.WriteString(m.theme.MenuItemSelected.Render(text))
		} else {
			b.WriteString(m.theme.MenuItem.Render(text))
		}
		b.WriteString("\n")
	}

	if m.renaming {
		b.WriteString("Rename: " + m.renameInput.View() + "\n")
	} else {
		row(settingsRowRename, "Rename this chat space")
	}

	b.WriteString("\n" + m.theme.Title.Render("Search scope") + "\n")
	row(settingsRowUseAll, m.checkbox(m.useAllContext)+" Use all collections")
	for i, c := range model.Collections {
		checked := !m.useAllContext && m.contextChecked[c]
		row(settingsRowFirstCollection+i, "  "+m.checkbox(checked)+" "+c)
	}

	b.WriteString("\n")
	deleteRow := settingsRowFirstCollection + len(model.Collections)
	row(deleteRow, m.theme.Error.Render("Delete this chat space"))
	row(deleteRow+1, m.theme.Error.Render("Clear all chat history"))

	b.WriteString("\n" + m.theme.Muted.Render("enter/space: toggle  esc: save and close"))
	return m.theme.Panel.Render(b.String())
}

// checkbox renders a themed checkbox glyph.
func (m Model) checkbox(checked bool) string {
	if checked {
		return m.theme.CheckboxChecked.Render("[x]")
	}
	return m.theme.Checkbox.Render("[ ]")
}

func (m Model) modelsView() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Model settings"))
	b.WriteString("\n")

	rows := []string{
		fmt.Sprintf("Provider:     < %s >", m.cfg.Model.Provider),
		fmt.Sprintf("Model:        < %s >", m.cfg.ActiveModel()),
		fmt.Sprintf("Temperature:  < %.1f >", m.cfg.Model.Temperature),
	}
	tokenRow := "Groq token:   "
	if m.editingGroq {
		tokenRow += m.groqInput.View()
	} else if m.cfg.Model.GroqAPIToken != "" {
		tokenRow += "(set)"
	} else {
		tokenRow += "(not set)"
	}
	rows = append(rows, tokenRow)

	for i, r := range rows {
		if i == m.modelsCursor && !m.editingGroq {
			b.WriteString(m.theme.MenuItemSelected.Render(r))
		} else {
			b.WriteString(m.theme.MenuItem.Render(r))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.theme.Muted.Render("left/right: change  enter: edit token  esc: save and close"))
	return m.theme.Panel.Render(b.String())
}

func (m Model) accountView() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Account"))
	b.WriteString("\n")
	if !m.accountLoaded {
		b.WriteString(m.theme.Info.Render("Loading profile..."))
	} else {
		b.WriteString(m.theme.Muted.Render("Signed in as " + m.accountUser))
	}
	b.WriteString("\n\n")
	for i := range m.accountInputs {
		b.WriteString(m.accountInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.theme.Muted.Render("enter: save  tab: next field  esc: close"))
	return m.theme.Panel.Render(b.String())
}

func (m Model) ingestView() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Add documents"))
	b.WriteString("\n")

	if m.ingestPicking {
		for s := ingestSource(0); s < sourceCount; s++ {
			if s == m.ingestSource {
				b.WriteString(m.theme.MenuItemSelected.Render(s.String()))
			} else {
				b.WriteString(m.theme.MenuItem.Render(s.String()))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n" + m.theme.Muted.Render("enter: choose  esc: close"))
		return m.theme.Panel.Render(b.String())
	}

	b.WriteString(m.theme.Title.Render(m.ingestSource.String()))
	b.WriteString("\n")
	for i := range m.ingestInputs {
		b.WriteString(m.ingestInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.theme.Muted.Render("enter: start  tab: next field  esc: back"))
	return m.theme.Panel.Render(b.String())
}

func (m Model) generateView() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Generate artifacts"))
	b.WriteString("\n")

	tests := "( ) Unit tests"
	criteria := "( ) Acceptance criteria"
	if m.generateKind == generateKindTests {
		tests = "(x) Unit tests"
	} else {
		criteria = "(x) Acceptance criteria"
	}
	b.WriteString(m.theme.MenuItem.Render(tests) + "  " + m.theme.MenuItem.Render(criteria))
	b.WriteString("\n\n")
	b.WriteString(m.generateInput.View())
	b.WriteString("\n\n" + m.theme.Muted.Render("tab: switch kind  enter: generate CSV  esc: close"))
	return m.theme.Panel.Render(b.String())
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	bindings := []struct{ keys, desc string }{
		{"Enter", "send question"},
		{"C-l", "chat space directory"},
		{"C-n", "new chat space"},
		{"C-o", "space settings (rename, scope, delete)"},
		{"C-p", "model settings"},
		{"C-b", "add documents"},
		{"C-g", "generate unit tests / acceptance criteria"},
		{"C-u", "account"},
		{"C-e", "export chat to markdown"},
		{"C-h", "this help"},
		{"C-c", "quit"},
	}
	for _, kb := range bindings {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			m.theme.KeyHint.Render(fmt.Sprintf("%-6s", kb.keys)), kb.desc))
	}
	b.WriteString("\n" + m.theme.Muted.Render("esc: close"))
	return m.theme.Panel.Render(b.String())
}

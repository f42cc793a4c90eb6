// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kb implements the knowledge base browser: a table view over the
// vector store's collection and embedding tables with row deletion.
package kb

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/ui/components"
	"github.com/legalia/legalia-tui/internal/ui/styles"
	"github.com/legalia/legalia-tui/internal/util"
)

// requestTimeout bounds one browser request.
const requestTimeout = 30 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// rowsMsg carries the fetched rows for one of the two tables.
type rowsMsg struct {
	Table string
	Rows  []table.Row
	UUIDs []string
	Err   error
}

// deletedMsg reports a row deletion.
type deletedMsg struct {
	UUID string
	Err  error
}

// CloseMsg asks the parent model to return to the chat view.
type CloseMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the knowledge base browser.
type Model struct {
	client *api.Client
	theme  *styles.Theme

	activeTable string
	view        table.Model
	uuids       []string

	loading   bool
	confirm   *components.ConfirmDialog
	confirmID string
	toasts    []components.Toast

	width  int
	height int
}

// New creates the browser opened on the collections table.
func New(client *api.Client, theme *styles.Theme) Model {
	t := table.New(
		table.WithColumns(collectionColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	st := table.DefaultStyles()
	st.Header = theme.TableHeader
	st.Selected = theme.TableRowSelected
	t.SetStyles(st)

	return Model{
		client:      client,
		theme:       theme,
		activeTable: api.TableCollections,
		view:        t,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// SetSize resizes the table.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	h := height - 8
	if h < 5 {
		h = 5
	}
	m.view.SetHeight(h)
	m.applyColumns()
}

// applyColumns sets the column layout for the active table.
func (m *Model) applyColumns() {
	w := m.width
	if w == 0 {
		w = 80
	}
	if m.activeTable == api.TableCollections {
		m.view.SetColumns(collectionColumns(w))
	} else {
		m.view.SetColumns(embeddingColumns(w))
	}
}

func collectionColumns(width int) []table.Column {
	return []table.Column{
		{Title: "Collection", Width: width / 2},
		{Title: "UUID", Width: width/2 - 4},
	}
}

func embeddingColumns(width int) []table.Column {
	return []table.Column{
		{Title: "Collection ID", Width: width / 4},
		{Title: "Document", Width: width / 2},
		{Title: "UUID", Width: width/4 - 4},
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// loadCmd fetches the rows of the active table.
func (m *Model) loadCmd() tea.Cmd {
	client := m.client
	which := m.activeTable
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if which == api.TableCollections {
			rows, err := client.KBCollections(ctx)
			if err != nil {
				return rowsMsg{Table: which, Err: err}
			}
			out := make([]table.Row, len(rows))
			uuids := make([]string, len(rows))
			for i, r := range rows {
				out[i] = table.Row{r.Name, r.UUID}
				uuids[i] = r.UUID
			}
			return rowsMsg{Table: which, Rows: out, UUIDs: uuids}
		}

		rows, err := client.KBEmbeddings(ctx)
		if err != nil {
			return rowsMsg{Table: which, Err: err}
		}
		out := make([]table.Row, len(rows))
		uuids := make([]string, len(rows))
		for i, r := range rows {
			out[i] = table.Row{r.CollectionID, util.TruncateRunes(util.FirstLine(r.Document), 80), r.UUID}
			uuids[i] = r.UUID
		}
		return rowsMsg{Table: which, Rows: out, UUIDs: uuids}
	}
}

// deleteCmd deletes a row of the active table by UUID.
func (m *Model) deleteCmd(uuid string) tea.Cmd {
	client := m.client
	which := m.activeTable
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return deletedMsg{UUID: uuid, Err: client.KBDelete(ctx, which, uuid)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case rowsMsg:
		m.loading = false
		if msg.Table != m.activeTable {
			return m, nil
		}
		if msg.Err != nil {
			return m, m.pushToast(components.ToastError, "Load failed: "+msg.Err.Error())
		}
		m.view.SetRows(msg.Rows)
		m.uuids = msg.UUIDs
		m.view.GotoTop()
		return m, nil

	case deletedMsg:
		if msg.Err != nil {
			return m, m.pushToast(components.ToastError, "Delete failed: "+msg.Err.Error())
		}
		m.loading = true
		return m, tea.Batch(m.loadCmd(), m.pushToast(components.ToastSuccess, "Row deleted."))

	case components.ToastExpiredMsg:
		for i, t := range m.toasts {
			if t.ID == msg.ID {
				m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey drives the table, the tab switcher, and the delete dialog.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirm != nil {
		switch msg.String() {
		case "tab", "left", "right":
			m.confirm.Toggle()
		case "enter":
			confirmed := m.confirm.Selected
			id := m.confirmID
			m.confirm = nil
			if confirmed {
				return m, m.deleteCmd(id)
			}
		case "esc":
			m.confirm = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if m.activeTable == api.TableCollections {
			m.activeTable = api.TableEmbeddings
		} else {
			m.activeTable = api.TableCollections
		}
		m.applyColumns()
		m.view.SetRows(nil)
		m.uuids = nil
		m.loading = true
		return m, m.loadCmd()

	case "r":
		m.loading = true
		return m, m.loadCmd()

	case "d", "delete":
		idx := m.view.Cursor()
		if idx < 0 || idx >= len(m.uuids) {
			return m, nil
		}
		m.confirmID = m.uuids[idx]
		m.confirm = components.NewConfirmDialog(m.theme, "Delete row",
			"Delete this entry from the knowledge base?")
		return m, nil

	case "esc", "q":
		return m, func() tea.Msg { return CloseMsg{} }
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *Model) pushToast(kind components.ToastKind, text string) tea.Cmd {
	t := components.NewToast(kind, text)
	m.toasts = append(m.toasts, t)
	return t.DismissCmd()
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	title := "Knowledge base: collections"
	if m.activeTable == api.TableEmbeddings {
		title = "Knowledge base: embeddings"
	}

	header := m.theme.Header.Render(title)
	body := m.view.View()
	if m.loading {
		body = m.theme.Info.Render("Loading...")
	}
	if m.confirm != nil {
		body = lipgloss.Place(m.width, m.view.Height(),
			lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	hints := m.theme.Muted.Render("tab: switch table  d: delete row  r: refresh  esc: back")
	parts := []string{header, body, hints}
	if len(m.toasts) > 0 {
		parts = append(parts, m.toasts[len(m.toasts)-1].View(m.theme, m.width-2))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/config"
	"github.com/legalia/legalia-tui/internal/history"
	"github.com/legalia/legalia-tui/internal/model"
	"github.com/legalia/legalia-tui/internal/progress"
	"github.com/legalia/legalia-tui/internal/ui/components"
	"github.com/legalia/legalia-tui/internal/ui/styles"
	"github.com/legalia/legalia-tui/internal/workspace"
)

// =============================================================================
// OVERLAYS
// =============================================================================

// overlay identifies which modal panel is open over the transcript.
type overlay int

const (
	overlayNone overlay = iota
	overlaySpaces
	overlaySettings
	overlayModels
	overlayAccount
	overlayIngest
	overlayGenerate
	overlayConfirmDelete
	overlayConfirmClear
	overlayHelp
)

// Generation artifact kinds.
const (
	generateKindTests    = "unit_tests"
	generateKindCriteria = "acceptance_criteria"
)

// ingestSource identifies a document source in the ingestion panel.
type ingestSource int

const (
	sourcePDF ingestSource = iota
	sourceConfluence
	sourceJiraProject
	sourceJiraIssue
	sourceGitHub
	sourceGitLab
	sourceCount
)

// String returns the menu label for the source.
func (s ingestSource) String() string {
	switch s {
	case sourcePDF:
		return "PDF document"
	case sourceConfluence:
		return "Confluence space"
	case sourceJiraProject:
		return "Jira project"
	case sourceJiraIssue:
		return "Jira issue"
	case sourceGitHub:
		return "GitHub repository"
	case sourceGitLab:
		return "GitLab repository"
	default:
		return "Unknown"
	}
}

// fieldLabels returns the input labels for the source, in form order.
func (s ingestSource) fieldLabels() []string {
	switch s {
	case sourcePDF:
		return []string{"Path to PDF file"}
	case sourceConfluence:
		return []string{"Space URL", "API token"}
	case sourceJiraProject:
		return []string{"Project key", "API token"}
	case sourceJiraIssue:
		return []string{"Project key", "Issue ID", "API token"}
	case sourceGitHub:
		return []string{"Repository URL"}
	case sourceGitLab:
		return []string{"Repository URL", "Personal token", "Project token"}
	default:
		return nil
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme  *styles.Theme
	keyMap KeyMap

	// Dimensions
	width  int
	height int

	// Domain state
	client    *api.Client
	cfg       *config.Config
	workspace *workspace.Workspace
	tracker   *progress.Tracker
	mirror    *history.Mirror // nil disables the local transcript mirror

	// Core components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	statusBar *components.StatusBar
	overlayUI *components.ProgressOverlay
	toasts    []components.Toast

	// Transcript state
	waiting       bool
	historyLoaded bool

	// Active overlay
	overlay overlay

	// Spaces menu
	spacesCursor int

	// Space settings panel
	settingsCursor int
	renameInput    textinput.Model
	renaming       bool
	pendingRename  bool
	contextChecked map[string]bool
	useAllContext  bool

	// Model settings panel
	modelsCursor int
	groqInput    textinput.Model
	editingGroq  bool

	// Account panel
	accountInputs [3]textinput.Model // first name, last name, email
	accountFocus  int
	accountUser   string
	accountLoaded bool

	// Ingestion panel
	ingestSource  ingestSource
	ingestPicking bool // true while choosing the source
	ingestInputs  []textinput.Model
	ingestFocus   int

	// Generation panel
	generateKind  string
	generateInput textinput.Model

	// Confirm dialog
	confirm       *components.ConfirmDialog
	confirmTarget string
}

// New creates the chat view. The mirror may be nil when the local history
// database could not be opened.
func New(client *api.Client, cfg *config.Config, mirror *history.Mirror, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.CharLimit = 4096
	input.Focus()

	rename := textinput.New()
	rename.Placeholder = "New name"
	rename.CharLimit = 100

	groq := textinput.New()
	groq.Placeholder = "Groq API token"
	groq.EchoMode = textinput.EchoPassword
	groq.EchoCharacter = '*'

	gen := textinput.New()
	gen.Placeholder = "Describe the feature or code to cover..."
	gen.CharLimit = 4096

	var account [3]textinput.Model
	for i, label := range []string{"First name", "Last name", "Email"} {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 128
		account[i] = in
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		theme:          theme,
		keyMap:         DefaultKeyMap(),
		client:         client,
		cfg:            cfg,
		workspace:      workspace.New(),
		tracker:        progress.NewTracker(),
		mirror:         mirror,
		viewport:       viewport.New(80, 20),
		input:          input,
		spinner:        sp,
		statusBar:      components.NewStatusBar(theme),
		overlayUI:      components.NewProgressOverlay(theme),
		renameInput:    rename,
		groqInput:      groq,
		generateInput:  gen,
		accountInputs:  account,
		contextChecked: make(map[string]bool),
		useAllContext:  true,
		generateKind:   generateKindTests,
	}
	m.statusBar.ModelName = cfg.ActiveModel()
	m.statusBar.Provider = cfg.Model.Provider
	return m
}

// Init implements tea.Model: load server history and start the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadHistoryCmd(), m.spinner.Tick, textinput.Blink)
}

// SetSize resizes the chat layout. The transcript viewport takes everything
// above the input line and the status bar.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 8
	m.statusBar.Width = width
	m.overlayUI.SetWidth(width / 2)

	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-6, 100)),
	); err == nil {
		m.renderer = r
	}
	m.refreshTranscript()
}

// Workspace exposes the workspace for the parent model and for exports.
func (m *Model) Workspace() *workspace.Workspace {
	return m.workspace
}

// pushToast queues a toast and returns its dismiss timer.
func (m *Model) pushToast(kind components.ToastKind, text string) tea.Cmd {
	t := components.NewToast(kind, text)
	m.toasts = append(m.toasts, t)
	return t.DismissCmd()
}

// dropToast removes a toast by ID.
func (m *Model) dropToast(id int64) {
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// recordMirror writes a message to the local history mirror, ignoring
// failures so mirror trouble never blocks the chat.
func (m *Model) recordMirror(space string, msg *model.Message) {
	if m.mirror == nil || msg == nil {
		return
	}
	_ = m.mirror.Record(space, msg)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

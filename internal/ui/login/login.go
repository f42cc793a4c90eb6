// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the login and signup forms for the LEGALIA TUI.
package login

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/ui/styles"
)

// =============================================================================
// FORM MODES
// =============================================================================

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// Field indexes into the input slice. Login uses the first two; signup uses
// all of them.
const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
	fieldFirstName
	fieldLastName
	fieldEmail
	fieldCount
)

// requestTimeout bounds a single auth request.
const requestTimeout = 30 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// LoggedInMsg reports a successful login to the parent model.
type LoggedInMsg struct {
	Username string
	Token    string
}

// SignedUpMsg reports a successful signup; the parent switches back to the
// login form with the username prefilled.
type SignedUpMsg struct {
	Username string
}

// authErrMsg carries an auth failure back into the form.
type authErrMsg struct {
	err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the auth forms.
type Model struct {
	mode   Mode
	inputs []textinput.Model
	focus  int

	client *api.Client
	theme  *styles.Theme

	busy    bool
	errText string

	width  int
	height int
}

// New creates the auth form model in login mode.
func New(client *api.Client, theme *styles.Theme) Model {
	inputs := make([]textinput.Model, fieldCount)
	labels := []string{"Username", "Password", "Confirm password", "First name", "Last name", "Email"}
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 128
		in.Width = 36
		if i == fieldPassword || i == fieldConfirm {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		inputs[i] = in
	}
	inputs[fieldUsername].Focus()

	return Model{
		mode:   ModeLogin,
		inputs: inputs,
		client: client,
		theme:  theme,
	}
}

// SetMode switches between login and signup, clearing transient state.
func (m *Model) SetMode(mode Mode) {
	m.mode = mode
	m.errText = ""
	m.busy = false
	for i := range m.inputs {
		if i != fieldUsername {
			m.inputs[i].SetValue("")
		}
		m.inputs[i].Blur()
	}
	m.focus = fieldUsername
	m.inputs[fieldUsername].Focus()
}

// SetSize sets the render dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// PrefillUsername seeds the username field after signup.
func (m *Model) PrefillUsername(username string) {
	m.inputs[fieldUsername].SetValue(username)
}

// fieldVisible reports whether the field participates in the current mode.
func (m *Model) fieldVisible(i int) bool {
	if m.mode == ModeLogin {
		return i == fieldUsername || i == fieldPassword
	}
	return true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "enter":
			return m.submit()
		case "ctrl+s":
			if m.mode == ModeLogin {
				m.SetMode(ModeSignup)
			} else {
				m.SetMode(ModeLogin)
			}
			return m, nil
		}

	case authErrMsg:
		m.busy = false
		m.errText = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// cycleFocus moves focus to the next visible field in the given direction.
func (m *Model) cycleFocus(dir int) {
	m.inputs[m.focus].Blur()
	for {
		m.focus = (m.focus + dir + fieldCount) % fieldCount
		if m.fieldVisible(m.focus) {
			break
		}
	}
	m.inputs[m.focus].Focus()
}

// submit validates the form and issues the auth request.
func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()

	if username == "" || password == "" {
		m.errText = "Username and password are required."
		return m, nil
	}

	if m.mode == ModeSignup {
		if reason := CheckPassword(password); reason != "" {
			m.errText = reason
			return m, nil
		}
		if password != m.inputs[fieldConfirm].Value() {
			m.errText = "Passwords do not match."
			return m, nil
		}
		req := api.SignupRequest{
			Username:  username,
			Password:  password,
			FirstName: strings.TrimSpace(m.inputs[fieldFirstName].Value()),
			LastName:  strings.TrimSpace(m.inputs[fieldLastName].Value()),
			Email:     strings.TrimSpace(m.inputs[fieldEmail].Value()),
		}
		m.busy = true
		m.errText = ""
		return m, signupCmd(m.client, req)
	}

	m.busy = true
	m.errText = ""
	return m, loginCmd(m.client, username, password)
}

// loginCmd performs the login request off the UI goroutine.
func loginCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := client.Login(ctx, username, password)
		if err != nil {
			return authErrMsg{err: err}
		}
		return LoggedInMsg{Username: username, Token: resp.Token}
	}
}

// signupCmd performs the signup request off the UI goroutine.
func signupCmd(client *api.Client, req api.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := client.Signup(ctx, req); err != nil {
			return authErrMsg{err: err}
		}
		return SignedUpMsg{Username: req.Username}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	title := "Log in"
	hint := "enter: log in  ctrl+s: sign up  tab: next field"
	if m.mode == ModeSignup {
		title = "Sign up"
		hint = "enter: create account  ctrl+s: back to login  tab: next field"
	}

	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render(title))
	b.WriteString("\n")
	for i := range m.inputs {
		if !m.fieldVisible(i) {
			continue
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString("\n" + m.theme.Info.Render("Contacting server..."))
	}
	if m.errText != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.errText))
	}
	b.WriteString("\n\n" + m.theme.Muted.Render(hint))

	panel := m.theme.Panel.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return panel
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the sign-in / sign-up view shown whenever no
// session exists.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/ui/components"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// Mode selects between signing in and creating an account.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// LoggedInMsg tells the app model that authentication succeeded.
type LoggedInMsg struct {
	Token string
	Email string
}

type authOkMsg struct {
	token string
	email string
}

type authErrMsg struct {
	err error
}

// Model is the login view model.
type Model struct {
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager

	width  int
	height int

	mode       Mode
	name       textinput.Model
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	formErr    string
}

// New creates the login view.
func New(client *api.Client, theme *styles.Theme, toasts *components.ToastManager) *Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 100
	name.Width = 36

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 254
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.Width = 36
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return &Model{
		client:   client,
		theme:    theme,
		toasts:   toasts,
		name:     name,
		email:    email,
		password: password,
	}
}

// Init is a no-op; the view waits for input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the login view.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case authOkMsg:
		m.submitting = false
		return m, func() tea.Msg {
			return LoggedInMsg{Token: msg.token, Email: msg.email}
		}

	case authErrMsg:
		m.submitting = false
		if api.IsConnection(msg.err) {
			m.toasts.AddError(msg.err.Error())
		} else {
			m.formErr = msg.err.Error()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.cycleFocus(1)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, textinput.Blink
	case "ctrl+t":
		m.toggleMode()
		return m, nil
	case "enter":
		return m, m.submit()
	}

	var cmd tea.Cmd
	switch m.focusedField() {
	case &m.name:
		m.name, cmd = m.name.Update(msg)
	case &m.email:
		m.email, cmd = m.email.Update(msg)
	default:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// fields returns the visible inputs in focus order.
func (m *Model) fields() []*textinput.Model {
	if m.mode == ModeSignup {
		return []*textinput.Model{&m.name, &m.email, &m.password}
	}
	return []*textinput.Model{&m.email, &m.password}
}

func (m *Model) focusedField() *textinput.Model {
	fields := m.fields()
	if m.focus < 0 || m.focus >= len(fields) {
		m.focus = 0
	}
	return fields[m.focus]
}

func (m *Model) cycleFocus(delta int) {
	fields := m.fields()
	m.focus = (m.focus + delta + len(fields)) % len(fields)
	for i, field := range fields {
		if i == m.focus {
			field.Focus()
		} else {
			field.Blur()
		}
	}
}

func (m *Model) toggleMode() {
	if m.mode == ModeLogin {
		m.mode = ModeSignup
	} else {
		m.mode = ModeLogin
	}
	m.focus = 0
	m.formErr = ""
	m.cycleFocus(0)
}

// submit validates the form and sends the auth request.
func (m *Model) submit() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	name := strings.TrimSpace(m.name.Value())

	if email == "" || !strings.Contains(email, "@") {
		m.formErr = "Enter a valid email address"
		return nil
	}
	if password == "" {
		m.formErr = "Password is required"
		return nil
	}
	if m.mode == ModeSignup && name == "" {
		m.formErr = "Name is required"
		return nil
	}

	m.formErr = ""
	m.submitting = true

	client := m.client
	signup := m.mode == ModeSignup
	return func() tea.Msg {
		var token string
		var err error
		if signup {
			token, err = client.Signup(context.Background(), name, email, password)
		} else {
			token, err = client.Login(context.Background(), email, password)
		}
		if err != nil {
			return authErrMsg{err: err}
		}
		return authOkMsg{token: token, email: email}
	}
}

// View renders the login form centered on screen.
func (m *Model) View() string {
	title := "Sign in to TaskFlow"
	action := "ctrl+t create an account"
	if m.mode == ModeSignup {
		title = "Create your TaskFlow account"
		action = "ctrl+t sign in instead"
	}

	var rows []string
	rows = append(rows, m.theme.FormTitle.Render(title))
	if m.mode == ModeSignup {
		rows = append(rows, m.theme.FormLabel.Render("Name"), m.name.View(), "")
	}
	rows = append(rows,
		m.theme.FormLabel.Render("Email"), m.email.View(), "",
		m.theme.FormLabel.Render("Password"), m.password.View(), "",
	)

	if m.formErr != "" {
		rows = append(rows, m.theme.FormError.Render(m.formErr), "")
	}
	if m.submitting {
		rows = append(rows, m.theme.FormHint.Render("Signing in..."))
	} else {
		rows = append(rows, m.theme.FormHint.Render("enter submit  "+action))
	}

	box := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

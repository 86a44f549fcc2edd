// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings implements the profile view: edit the account name and
// email, and review the current connection settings.
package settings

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

// SessionExpiredMsg tells the app model that the server rejected our token
// and the user has to sign in again.
type SessionExpiredMsg struct{}

// ProfileChangedMsg tells the app model the account name or email changed,
// so the header and stored session can follow.
type ProfileChangedMsg struct {
	Name  string
	Email string
}

type profileLoadedMsg struct {
	user *api.User
}

type profileLoadErrMsg struct {
	err error
}

type profileSavedMsg struct {
	user *api.User
}

type profileSaveErrMsg struct {
	err error
}

// Model is the settings view model.
type Model struct {
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager

	width  int
	height int

	user    *api.User
	name    textinput.Model
	email   textinput.Model
	focus   int
	loading bool
	saving  bool
	formErr string
}

// New creates the settings view.
func New(client *api.Client, theme *styles.Theme, toasts *components.ToastManager) *Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 100
	name.Width = 36
	name.Focus()

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 254
	email.Width = 36

	return &Model{
		client: client,
		theme:  theme,
		toasts: toasts,
		name:   name,
		email:  email,
	}
}

// Init fetches the current profile.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	client := m.client
	return func() tea.Msg {
		user, err := client.Me(context.Background())
		if err != nil {
			return profileLoadErrMsg{err: err}
		}
		return profileLoadedMsg{user: user}
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// User returns the loaded profile, or nil before the first fetch completes.
func (m *Model) User() *api.User {
	return m.user
}

// Update handles messages for the settings view.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case profileLoadedMsg:
		m.loading = false
		m.user = msg.user
		m.name.SetValue(msg.user.Name)
		m.email.SetValue(msg.user.Email)
		return m, nil

	case profileLoadErrMsg:
		m.loading = false
		if api.IsUnauthorized(msg.err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		m.toasts.AddError(msg.err.Error())
		return m, nil

	case profileSavedMsg:
		m.saving = false
		m.user = msg.user
		m.name.SetValue(msg.user.Name)
		m.email.SetValue(msg.user.Email)
		m.toasts.AddSuccess("Profile updated")
		return m, func() tea.Msg {
			return ProfileChangedMsg{Name: msg.user.Name, Email: msg.user.Email}
		}

	case profileSaveErrMsg:
		m.saving = false
		if api.IsUnauthorized(msg.err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		if api.IsValidation(msg.err) {
			m.formErr = msg.err.Error()
		} else {
			m.toasts.AddError(msg.err.Error())
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.saving || m.loading {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.name.Focus()
			m.email.Blur()
		} else {
			m.name.Blur()
			m.email.Focus()
		}
		return m, textinput.Blink
	case "enter":
		return m, m.save()
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

// save sends only the fields that actually changed.
func (m *Model) save() tea.Cmd {
	if m.user == nil {
		return nil
	}

	name := strings.TrimSpace(m.name.Value())
	email := strings.TrimSpace(m.email.Value())

	if name == "" {
		m.formErr = "Name cannot be empty"
		return nil
	}
	if email == "" || !strings.Contains(email, "@") {
		m.formErr = "Enter a valid email address"
		return nil
	}

	var update api.ProfileUpdate
	if name != m.user.Name {
		update.Name = &name
	}
	if email != m.user.Email {
		update.Email = &email
	}
	if update.Name == nil && update.Email == nil {
		m.toasts.AddStatus("No changes to save")
		return nil
	}

	m.formErr = ""
	m.saving = true

	client := m.client
	return func() tea.Msg {
		user, err := client.UpdateMe(context.Background(), update)
		if err != nil {
			return profileSaveErrMsg{err: err}
		}
		return profileSavedMsg{user: user}
	}
}

// View renders the profile form with connection details underneath.
func (m *Model) View() string {
	var rows []string
	rows = append(rows, m.theme.FormTitle.Render("Profile"))

	if m.loading {
		rows = append(rows, m.theme.FormHint.Render("Loading profile..."))
	} else {
		rows = append(rows,
			m.theme.FormLabel.Render("Name"), m.name.View(), "",
			m.theme.FormLabel.Render("Email"), m.email.View(), "",
		)
		if m.formErr != "" {
			rows = append(rows, m.theme.FormError.Render(m.formErr), "")
		}
		if m.saving {
			rows = append(rows, m.theme.FormHint.Render("Saving..."))
		} else {
			rows = append(rows, m.theme.FormHint.Render("enter save  tab switch field"))
		}
	}

	rows = append(rows, "",
		m.theme.FormLabel.Render("Server"),
		m.theme.FormHint.Render(m.client.BaseURL()),
	)

	box := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

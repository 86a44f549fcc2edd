// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui wires the views together: it owns the session, routes
// messages to the active view, and handles the global chrome (header,
// toasts, tab switching).
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/config"
	"github.com/taskflowhq/taskflow-tui/internal/session"
	"github.com/taskflowhq/taskflow-tui/internal/ui/chat"
	"github.com/taskflowhq/taskflow-tui/internal/ui/components"
	"github.com/taskflowhq/taskflow-tui/internal/ui/dashboard"
	"github.com/taskflowhq/taskflow-tui/internal/ui/login"
	"github.com/taskflowhq/taskflow-tui/internal/ui/settings"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// =============================================================================
// VIEWS
// =============================================================================

// View identifies the screen currently shown.
type View int

const (
	ViewLogin View = iota
	ViewTasks
	ViewChat
	ViewSettings
)

type accountLoadedMsg struct {
	user *api.User
}

// =============================================================================
// APP MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager
	header *components.Header

	width  int
	height int
	view   View

	login    *login.Model
	tasks    *dashboard.Model
	chat     *chat.Model
	settings *settings.Model
}

// New creates the root model. When a stored session exists the app opens
// on the task list; otherwise it opens on the login view.
func New(cfg *config.Config, store *session.Store, client *api.Client, theme *styles.Theme) *Model {
	toasts := components.NewToastManager()
	header := components.NewHeader(theme, []components.Tab{
		{Label: "Tasks", Key: "F1"},
		{Label: "Chat", Key: "F2"},
		{Label: "Settings", Key: "F3"},
	})

	m := &Model{
		cfg:    cfg,
		store:  store,
		client: client,
		theme:  theme,
		toasts: toasts,
		header: header,
		login:  login.New(client, theme, toasts),
		view:   ViewLogin,
	}

	if sess := store.Current(); sess != nil {
		m.view = ViewTasks
		m.tasks = dashboard.New(client, theme, toasts)
		header.SetAccount(sess.Email)
	}
	return m
}

// Init starts the toast ticker and the initial view.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{components.ToastTickCmd()}
	switch m.view {
	case ViewTasks:
		cmds = append(cmds, m.tasks.Init(), m.fetchAccount())
	default:
		cmds = append(cmds, m.login.Init())
	}
	return tea.Batch(cmds...)
}

// Update routes messages. Key presses go to the active view only; async
// results fan out to every live view so a command that completes after a
// tab switch still lands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case login.LoggedInMsg:
		return m.completeLogin(msg)

	case accountLoadedMsg:
		m.header.SetAccount(msg.user.Email)
		if sess := m.store.Current(); sess != nil && sess.Name != msg.user.Name {
			sess.Name = msg.user.Name
			if err := m.store.Save(*sess); err != nil {
				m.toasts.AddWarning(err.Error())
			}
		}
		return m, nil

	case dashboard.SessionExpiredMsg:
		return m.expireSession()

	case settings.SessionExpiredMsg:
		return m.expireSession()

	case settings.ProfileChangedMsg:
		m.header.SetAccount(msg.Email)
		if sess := m.store.Current(); sess != nil {
			sess.Email = msg.Email
			sess.Name = msg.Name
			if err := m.store.Save(*sess); err != nil {
				m.toasts.AddWarning(err.Error())
			}
		}
		return m, nil
	}

	return m, m.broadcast(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "f1":
		if m.view != ViewLogin {
			return m, m.switchTo(ViewTasks)
		}
	case "f2":
		if m.view != ViewLogin {
			return m, m.switchTo(ViewChat)
		}
	case "f3":
		if m.view != ViewLogin {
			return m, m.switchTo(ViewSettings)
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case ViewTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case ViewChat:
		m.chat, cmd = m.chat.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

// broadcast delivers an async message to every initialized view. Each view
// ignores messages it doesn't recognize.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.login != nil && m.view == ViewLogin {
		m.login, cmd = m.login.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.tasks != nil {
		m.tasks, cmd = m.tasks.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.chat != nil {
		m.chat, cmd = m.chat.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.settings != nil {
		m.settings, cmd = m.settings.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// switchTo activates a view, initializing it on first visit.
func (m *Model) switchTo(view View) tea.Cmd {
	if view == m.view {
		return nil
	}

	var cmd tea.Cmd
	switch view {
	case ViewTasks:
		if m.tasks == nil {
			m.tasks = dashboard.New(m.client, m.theme, m.toasts)
			cmd = m.tasks.Init()
		}
		m.header.SetActive(0)
	case ViewChat:
		if m.chat == nil {
			m.chat = chat.New(m.client, m.theme, m.toasts, m.cfg.UI.ShowSidebar)
			cmd = m.chat.Init()
		}
		m.header.SetActive(1)
	case ViewSettings:
		if m.settings == nil {
			m.settings = settings.New(m.client, m.theme, m.toasts)
			cmd = m.settings.Init()
		}
		m.header.SetActive(2)
	}

	m.view = view
	m.setSize(m.width, m.height)
	return cmd
}

// completeLogin persists the session and opens the task list.
func (m *Model) completeLogin(msg login.LoggedInMsg) (tea.Model, tea.Cmd) {
	err := m.store.Save(session.Session{Token: msg.Token, Email: msg.Email})
	if err != nil {
		m.toasts.AddError(err.Error())
		return m, nil
	}

	m.header.SetAccount(msg.Email)
	m.tasks = dashboard.New(m.client, m.theme, m.toasts)
	m.view = ViewTasks
	m.header.SetActive(0)
	m.setSize(m.width, m.height)
	return m, tea.Batch(m.tasks.Init(), m.fetchAccount())
}

// expireSession clears local credentials and drops back to login. Only the
// task and settings paths signal expiry; the chat path surfaces auth
// failures as toasts without redirecting.
func (m *Model) expireSession() (tea.Model, tea.Cmd) {
	if err := m.store.Clear(); err != nil {
		m.toasts.AddWarning(err.Error())
	}

	m.toasts.AddWarning("Session expired. Please sign in again.")
	m.header.SetAccount("")
	m.tasks = nil
	m.chat = nil
	m.settings = nil
	m.login = login.New(m.client, m.theme, m.toasts)
	m.view = ViewLogin
	m.setSize(m.width, m.height)
	return m, m.login.Init()
}

func (m *Model) fetchAccount() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Me(context.Background())
		if err != nil {
			if api.IsUnauthorized(err) {
				return dashboard.SessionExpiredMsg{}
			}
			return nil
		}
		return accountLoadedMsg{user: user}
	}
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)

	contentHeight := height - 2
	if contentHeight < 0 {
		contentHeight = 0
	}

	if m.login != nil {
		m.login.SetSize(width, height)
	}
	if m.tasks != nil {
		m.tasks.SetSize(width, contentHeight)
	}
	if m.chat != nil {
		m.chat.SetSize(width, contentHeight)
	}
	if m.settings != nil {
		m.settings.SetSize(width, contentHeight)
	}
}

// View renders the active screen with the global chrome.
func (m *Model) View() string {
	if m.view == ViewLogin {
		view := m.login.View()
		if m.toasts.HasToasts() {
			view += "\n" + components.RenderToastStack(m.toasts.Toasts(), m.width, 0)
		}
		return view
	}

	var content string
	switch m.view {
	case ViewTasks:
		content = m.tasks.View()
	case ViewChat:
		content = m.chat.View()
	case ViewSettings:
		content = m.settings.View()
	}

	view := m.header.View() + "\n" + content
	if m.toasts.HasToasts() {
		view += "\n" + components.RenderToastStack(m.toasts.Toasts(), m.width, 0)
	}
	return view
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the assistant chat view.
//
// The model owns the conversation index shown in the sidebar, the open
// transcript, and the per-conversation message quota. Sends are optimistic:
// the user's message goes into the transcript immediately and stays there
// even when the request fails; failures add a synthetic assistant reply and
// a toast instead of rolling back.
package chat

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/model"
	"github.com/taskflowhq/taskflow-tui/internal/ui/components"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// Focus selects which pane receives keys.
type Focus int

const (
	// FocusInput types into the message box.
	FocusInput Focus = iota
	// FocusSidebar navigates the conversation history.
	FocusSidebar
)

// errorReply is the synthetic assistant message appended when a send fails.
const errorReply = "❌ Sorry, I encountered an error. Please try again."

// quotaNotice is surfaced when the conversation's message quota is used up.
const quotaNotice = "Message limit reached for this conversation. Start a new chat to continue."

// Model is the chat view model.
type Model struct {
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager

	width  int
	height int

	focus Focus

	conversations []model.Conversation
	selected      int    // sidebar cursor
	activeID      string // open conversation, "" for a fresh chat

	messages  []model.Message
	quotaUsed int
	busy      bool // a send or open is in flight
	opening   string

	input      textarea.Model
	transcript viewport.Model
	confirm    *components.ConfirmDialog
	statusBar  *components.StatusBar

	// pendingDelete is the conversation the confirm dialog is about.
	pendingDelete string

	showSidebar bool
}

// New creates the chat view. showSidebar comes from the ui.show_sidebar
// config key; without the sidebar the history pane and its focus cycle are
// disabled and the transcript takes the full width.
func New(client *api.Client, theme *styles.Theme, toasts *components.ToastManager, showSidebar bool) *Model {
	input := textarea.New()
	input.Placeholder = "Ask the assistant..."
	input.CharLimit = model.MaxMessageLen
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	return &Model{
		client:      client,
		theme:       theme,
		toasts:      toasts,
		input:       input,
		transcript:  viewport.New(80, 20),
		confirm:     components.NewConfirmDialog(theme),
		statusBar:   components.NewStatusBar(theme),
		showSidebar: showSidebar,
	}
}

// Init loads the conversation index.
func (m *Model) Init() tea.Cmd {
	return m.loadConversations()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.statusBar.SetWidth(width)

	transcriptWidth := width
	if m.showSidebar {
		transcriptWidth -= sidebarWidth
	}
	m.transcript.Width = transcriptWidth
	m.transcript.Height = height - 7
	if m.transcript.Height < 3 {
		m.transcript.Height = 3
	}
	m.input.SetWidth(transcriptWidth - 4)
	m.refreshTranscript()
}

// ActiveConversation returns the open conversation ID, "" for a fresh chat.
func (m *Model) ActiveConversation() string {
	return m.activeID
}

// Messages returns the current transcript.
func (m *Model) Messages() []model.Message {
	return m.messages
}

// Conversations returns the sidebar index.
func (m *Model) Conversations() []model.Conversation {
	return m.conversations
}

// Busy reports whether a send or open is in flight.
func (m *Model) Busy() bool {
	return m.busy
}

// QuotaUsed returns how many user messages the open conversation has.
func (m *Model) QuotaUsed() int {
	return m.quotaUsed
}

// QuotaReached reports whether the open conversation is out of messages.
func (m *Model) QuotaReached() bool {
	return m.quotaUsed >= model.MaxUserMessages
}

// Update handles messages for the chat view.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case conversationsLoadedMsg:
		m.conversations = msg.conversations
		if m.selected >= len(m.conversations) {
			m.selected = len(m.conversations) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil

	case conversationsLoadErrMsg:
		m.toasts.AddError(msg.err.Error())
		return m, nil

	case openedMsg:
		// A stale open (user re-opened something else meanwhile) is dropped.
		if msg.id != m.opening {
			return m, nil
		}
		m.busy = false
		m.opening = ""
		m.activeID = msg.id
		m.messages = msg.messages
		m.quotaUsed = model.CountUserMessages(msg.messages)
		m.refreshTranscript()
		if m.QuotaReached() {
			m.toasts.AddWarning(quotaNotice)
		}
		return m, nil

	case openErrMsg:
		if msg.id != m.opening {
			return m, nil
		}
		m.busy = false
		m.opening = ""
		m.toasts.AddError(msg.err.Error())
		return m, nil

	case sendOkMsg:
		m.busy = false
		m.messages = append(m.messages, model.NewMessage(model.RoleAssistant, msg.reply))
		m.refreshTranscript()

		var cmd tea.Cmd
		if m.activeID == "" && msg.conversationID != "" {
			// First message of a fresh chat: adopt the server's
			// conversation and refresh the sidebar.
			m.activeID = msg.conversationID
			cmd = m.loadConversations()
		}
		if m.QuotaReached() {
			m.toasts.AddWarning(quotaNotice)
		}
		return m, cmd

	case sendErrMsg:
		// The optimistic user message stays; only the reply is synthetic.
		m.busy = false
		m.messages = append(m.messages, model.NewMessage(model.RoleAssistant, errorReply))
		m.refreshTranscript()
		m.toasts.AddError(msg.err.Error())
		return m, nil

	case deletedMsg:
		m.removeConversation(msg.id)
		if m.activeID == msg.id {
			// The open conversation is gone; fall back to a fresh chat.
			m.startNew()
		}
		return m, nil

	case deleteErrMsg:
		m.toasts.AddError(msg.err.Error())
		return m, nil

	case clipboardOkMsg:
		m.toasts.AddSuccess("Reply copied to clipboard")
		return m, nil

	case clipboardErrMsg:
		m.toasts.AddError("Clipboard unavailable: " + msg.err.Error())
		return m, nil
	}

	return m, nil
}

// handleKey dispatches keys, giving the confirm dialog priority.
func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.confirm.Visible {
		return m.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "tab":
		if m.showSidebar {
			if m.focus == FocusInput {
				m.focus = FocusSidebar
				m.input.Blur()
			} else {
				m.focus = FocusInput
				m.input.Focus()
			}
		}
		return m, nil
	case "ctrl+n":
		return m.startNewKey()
	case "ctrl+y":
		return m, m.copyLastReply()
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab":
		m.confirm.Toggle()
	case "esc", "n":
		m.confirm.Hide()
		m.pendingDelete = ""
	case "y":
		id := m.pendingDelete
		m.confirm.Hide()
		m.pendingDelete = ""
		return m, m.deleteConversation(id)
	case "enter":
		id := m.pendingDelete
		confirmed := m.confirm.YesSelected
		m.confirm.Hide()
		m.pendingDelete = ""
		if confirmed {
			return m, m.deleteConversation(id)
		}
	}
	return m, nil
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.conversations)-1 {
			m.selected++
		}
	case "enter":
		if m.selected >= 0 && m.selected < len(m.conversations) {
			return m, m.openConversation(m.conversations[m.selected].ID)
		}
	case "d", "backspace":
		if m.selected >= 0 && m.selected < len(m.conversations) {
			conv := m.conversations[m.selected]
			m.pendingDelete = conv.ID
			m.confirm.Show("Delete conversation", "Delete \""+conv.DisplayTitle()+"\"? This cannot be undone.")
		}
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.send(m.input.Value())
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startNewKey resets to a fresh conversation unless a request is in flight.
func (m *Model) startNewKey() (*Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.startNew()
	return m, nil
}

// startNew clears the transcript and quota. Purely local; the server learns
// about the conversation on the first send.
func (m *Model) startNew() {
	m.activeID = ""
	m.messages = nil
	m.quotaUsed = 0
	m.focus = FocusInput
	m.input.Focus()
	m.refreshTranscript()
}

// removeConversation drops an entry from the sidebar index.
func (m *Model) removeConversation(id string) {
	for i, conv := range m.conversations {
		if conv.ID == id {
			m.conversations = append(m.conversations[:i], m.conversations[i+1:]...)
			break
		}
	}
	if m.selected >= len(m.conversations) {
		m.selected = len(m.conversations) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflowhq/taskflow-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

type conversationsLoadedMsg struct {
	conversations []model.Conversation
}

type conversationsLoadErrMsg struct {
	err error
}

type openedMsg struct {
	id       string
	messages []model.Message
}

type openErrMsg struct {
	id  string
	err error
}

type sendOkMsg struct {
	conversationID string
	reply          string
}

type sendErrMsg struct {
	err error
}

type deletedMsg struct {
	id string
}

type deleteErrMsg struct {
	id  string
	err error
}

// =============================================================================
// COMMANDS
// =============================================================================

// loadConversations refreshes the sidebar index.
func (m *Model) loadConversations() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		conversations, err := client.ListConversations(context.Background())
		if err != nil {
			return conversationsLoadErrMsg{err: err}
		}
		return conversationsLoadedMsg{conversations: conversations}
	}
}

// openConversation loads a conversation's transcript. Opening the already
// active conversation, or anything while a request is in flight, is a
// no-op so double-presses can't duplicate loads. The old transcript is
// discarded as soon as the switch starts: a failed load leaves a fresh
// chat, never the previous conversation.
func (m *Model) openConversation(id string) tea.Cmd {
	if m.busy || id == m.activeID {
		return nil
	}
	m.activeID = ""
	m.messages = nil
	m.quotaUsed = 0
	m.refreshTranscript()
	m.busy = true
	m.opening = id

	client := m.client
	return func() tea.Msg {
		messages, err := client.GetMessages(context.Background(), id)
		if err != nil {
			return openErrMsg{id: id, err: err}
		}
		return openedMsg{id: id, messages: messages}
	}
}

// send appends the user's message and posts it. The optimistic message is
// never rolled back; failures append a synthetic assistant reply instead.
// Blank input, a busy model, and an exhausted quota all reject locally.
func (m *Model) send(text string) tea.Cmd {
	if m.busy {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if m.QuotaReached() {
		m.toasts.AddWarning(quotaNotice)
		return nil
	}
	if err := model.ValidateMessage(text); err != nil {
		m.toasts.AddWarning(err.Error())
		return nil
	}

	m.messages = append(m.messages, model.NewMessage(model.RoleUser, text))
	m.quotaUsed++
	m.busy = true
	m.input.Reset()
	m.refreshTranscript()

	client := m.client
	conversationID := m.activeID
	return func() tea.Msg {
		reply, err := client.SendMessage(context.Background(), text, conversationID)
		if err != nil {
			return sendErrMsg{err: err}
		}
		return sendOkMsg{conversationID: reply.ConversationID, reply: reply.Response}
	}
}

// deleteConversation removes a conversation server-side; the sidebar entry
// goes on the confirmation message. Deletes are busy-guarded like opens and
// sends: deleting the active conversation mid-send would let the send's
// response re-adopt the just-deleted ID.
func (m *Model) deleteConversation(id string) tea.Cmd {
	if id == "" || m.busy {
		return nil
	}
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteConversation(context.Background(), id); err != nil {
			return deleteErrMsg{id: id, err: err}
		}
		return deletedMsg{id: id}
	}
}

// copyLastReply puts the most recent assistant message on the clipboard.
func (m *Model) copyLastReply() tea.Cmd {
	var last string
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == model.RoleAssistant {
			last = m.messages[i].Content
			break
		}
	}
	if last == "" {
		return nil
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(last); err != nil {
			return clipboardErrMsg{err: err}
		}
		return clipboardOkMsg{}
	}
}

type clipboardOkMsg struct{}

type clipboardErrMsg struct {
	err error
}

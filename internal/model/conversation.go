// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CONVERSATIONS
// =============================================================================

// MaxUserMessages is the per-conversation quota of user messages. The limit
// is enforced locally before a send and mirrored by the server.
const MaxUserMessages = 7

// Conversation is a chat session summary as listed in the history sidebar.
// Transcripts are fetched separately when a conversation is opened.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayTitle returns the sidebar label, falling back to "New Chat" for
// conversations the server has not titled yet.
func (c Conversation) DisplayTitle() string {
	if c.Title == "" {
		return "New Chat"
	}
	return c.Title
}

// QuotaReached reports whether a transcript has used up its message quota.
func QuotaReached(messages []Message) bool {
	return CountUserMessages(messages) >= MaxUserMessages
}

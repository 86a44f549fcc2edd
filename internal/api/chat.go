// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taskflowhq/taskflow-tui/internal/model"
)

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// chatRequest is the payload for POST /api/chat. ConversationID is omitted
// to start a new conversation; the server replies with the ID it assigned.
type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the assistant's reply to a sent message.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// ListConversations fetches the conversation index for the history sidebar,
// most recently updated first.
func (c *Client) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	var conversations []model.Conversation
	if err := c.do(ctx, http.MethodGet, "/api/chat/conversations", nil, nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetMessages fetches the full transcript of a conversation.
func (c *Client) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	path := "/api/chat/conversations/" + url.PathEscape(conversationID) + "/messages"
	var messages []model.Message
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage sends a user message and returns the assistant's reply.
// An empty conversationID starts a new conversation.
func (c *Client) SendMessage(ctx context.Context, message, conversationID string) (*ChatResponse, error) {
	if err := model.ValidateMessage(message); err != nil {
		return nil, &APIError{Type: ErrTypeValidation, Detail: err.Error(), Cause: err}
	}

	var reply ChatResponse
	body := chatRequest{Message: message, ConversationID: conversationID}
	if err := c.do(ctx, http.MethodPost, "/api/chat", nil, body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// DeleteConversation deletes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	path := "/api/chat/conversations/" + url.PathEscape(conversationID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// Message length limits enforced before a send.
const (
	MaxMessageLen = 5000
)

var (
	ErrMessageEmpty   = errors.New("message cannot be empty")
	ErrMessageTooLong = errors.New("message must be 5000 characters or less")
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DisplayName returns the label shown next to a message in the transcript.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Message is a single transcript entry. Messages created locally (the
// optimistic user echo and synthetic error replies) get a client-generated
// ID; server-loaded messages keep the server's.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a message with a fresh local ID and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// CountUserMessages returns how many transcript entries were authored by the
// user. The chat quota is recomputed from this on every conversation load.
func CountUserMessages(messages []Message) int {
	n := 0
	for _, m := range messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// ValidateMessage checks chat input against the length limits.
func ValidateMessage(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrMessageEmpty
	}
	if len([]rune(content)) > MaxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}

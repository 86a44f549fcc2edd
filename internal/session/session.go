// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the signed-in state between runs.
//
// The session file at ~/.taskflow/session.json holds the opaque bearer
// token and a snapshot of the profile it belongs to. It is written with
// owner-only permissions through an atomic rename, and deleted on logout.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/taskflowhq/taskflow-tui/internal/util"
)

// Session is the persisted login state.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages the session file. It is safe for concurrent use; the UI
// reads the token on every request while login/logout may replace it.
type Store struct {
	path    string
	mu      sync.RWMutex
	current *Session
}

// NewStore creates a store over the given session file path. The file is
// not read until Load.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.taskflow/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".taskflow", "session.json"), nil
}

// Load reads the session file. A missing file leaves the store signed out
// and is not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.current = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is treated as signed out rather than
		// blocking startup.
		s.current = nil
		return nil
	}
	if sess.Token == "" {
		s.current = nil
		return nil
	}

	s.current = &sess
	return nil
}

// Save persists a new session and makes it current.
func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("refusing to save session without a token")
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	s.current = &sess
	return nil
}

// Clear signs out: the file is removed and the in-memory session dropped.
// Used both by explicit logout and by the unauthorized redirect.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Current returns a copy of the active session, or nil when signed out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	copy := *s.current
	return &copy
}

// SignedIn reports whether a session is loaded.
func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Token returns the bearer token, or "" when signed out. Implements the
// API client's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

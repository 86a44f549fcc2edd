// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
	"github.com/taskflowhq/taskflow-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status represents the current view status shown at the left edge.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusSaving
	StatusThinking
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusSaving:
		return "Saving..."
	case StatusThinking:
		return "Thinking..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusSaving, StatusThinking:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar: status on the left, key hints on the right.
type StatusBar struct {
	Status    Status
	Detail    string // extra text after the status, e.g. "12 tasks"
	Shortcuts []Shortcut
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the status segment.
func (s *StatusBar) SetStatus(status Status, detail string) {
	s.Status = status
	s.Detail = detail
}

// SetShortcuts replaces the key hints. Each view installs its own.
func (s *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	s.Shortcuts = shortcuts
}

// View renders the status bar at the configured width.
func (s *StatusBar) View() string {
	left := s.Status.Icon() + " " + s.Status.String()
	if s.Detail != "" {
		left += "  " + s.Detail
	}

	parts := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		parts = append(parts,
			s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(parts, "  ")

	// Pad the middle so the hints sit flush right.
	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
		maxLeft := s.Width - lipgloss.Width(right) - 3
		if maxLeft > 0 {
			left = util.TruncateWidth(left, maxLeft)
		}
	}

	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

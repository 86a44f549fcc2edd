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
// HEADER
// =============================================================================

// Tab is one entry in the header's view switcher.
type Tab struct {
	Label string
	Key   string // shortcut hint shown next to the label
}

// Header is the top bar: brand on the left, view tabs in the middle, the
// signed-in account on the right.
type Header struct {
	Tabs      []Tab
	ActiveTab int
	Account   string // signed-in email, empty before login
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header with the given tabs.
func NewHeader(theme *styles.Theme, tabs []Tab) *Header {
	return &Header{
		Tabs:  tabs,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the available width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetActive selects the highlighted tab.
func (h *Header) SetActive(index int) {
	if index >= 0 && index < len(h.Tabs) {
		h.ActiveTab = index
	}
}

// SetAccount sets the signed-in account label.
func (h *Header) SetAccount(email string) {
	h.Account = email
}

// View renders the header at the configured width.
func (h *Header) View() string {
	brand := h.theme.HeaderBrand.Render("TaskFlow")

	activeStyle := lipgloss.NewStyle().Foreground(styles.Indigo).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	tabs := make([]string, 0, len(h.Tabs))
	for i, tab := range h.Tabs {
		label := tab.Label
		if tab.Key != "" {
			label += " (" + tab.Key + ")"
		}
		if i == h.ActiveTab {
			tabs = append(tabs, activeStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveStyle.Render(label))
		}
	}
	middle := strings.Join(tabs, "  ")

	right := ""
	if h.Account != "" {
		right = h.theme.HeaderSubtitle.Render(util.TruncateWidth(h.Account, 30))
	}

	left := brand + "  " + middle
	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	bar := left + strings.Repeat(" ", gap) + right
	return h.theme.Header.Width(h.Width).Render(bar)
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

// ConfirmDialog is a modal yes/no prompt used before destructive actions
// such as deleting a conversation.
type ConfirmDialog struct {
	Title       string
	Prompt      string
	Visible     bool
	YesSelected bool
	theme       *styles.Theme
}

// NewConfirmDialog creates a hidden dialog.
func NewConfirmDialog(theme *styles.Theme) *ConfirmDialog {
	return &ConfirmDialog{theme: theme}
}

// Show opens the dialog with the given title and prompt. The safe choice
// (No) starts selected.
func (d *ConfirmDialog) Show(title, prompt string) {
	d.Title = title
	d.Prompt = prompt
	d.Visible = true
	d.YesSelected = false
}

// Hide closes the dialog.
func (d *ConfirmDialog) Hide() {
	d.Visible = false
}

// Toggle flips the selected button.
func (d *ConfirmDialog) Toggle() {
	d.YesSelected = !d.YesSelected
}

// View renders the dialog centered over the given area.
func (d *ConfirmDialog) View(width, height int) string {
	if !d.Visible {
		return ""
	}

	yes := d.theme.ButtonInactive.Render("Yes")
	no := d.theme.ButtonActive.Render("No")
	if d.YesSelected {
		yes = lipgloss.NewStyle().
			Foreground(styles.TextInverse).
			Background(styles.Rose).
			Bold(true).
			Padding(0, 3).
			Render("Yes")
		no = d.theme.ButtonInactive.Render("No")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		d.theme.DialogTitle.Render(d.Title),
		"",
		d.theme.DialogPrompt.Render(d.Prompt),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, yes, "  ", no),
	)

	box := d.theme.DialogBox.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

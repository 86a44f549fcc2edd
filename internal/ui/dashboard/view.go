// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow-tui/internal/ui/components"
	"github.com/taskflowhq/taskflow-tui/internal/util"
)

// View renders the dashboard.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderQueryLine())
	b.WriteString("\n\n")

	if m.mode == ModeEdit {
		b.WriteString(m.renderEditForm())
	} else {
		b.WriteString(m.renderTaskList())
	}

	if m.mode == ModeCreate {
		b.WriteString("\n")
		b.WriteString(m.theme.InputContainer.Render(
			m.theme.InputPrompt.Render("New task: ") + m.createInput.View()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

// renderQueryLine shows the search box and the active filter/sort.
func (m *Model) renderQueryLine() string {
	var search string
	if m.mode == ModeSearch {
		search = m.theme.InputPrompt.Render("/ ") + m.searchInput.View()
	} else if m.query.Search != "" {
		search = m.theme.InputPrompt.Render("/ ") + m.query.Search
	} else {
		search = m.theme.InputPlaceholder.Render("/ to search")
	}

	meta := m.theme.TaskMeta.Render(fmt.Sprintf("filter:%s  sort:%s %s",
		m.query.Status, m.query.SortBy, m.query.Order))

	gap := m.width - lipgloss.Width(search) - lipgloss.Width(meta) - 4
	if gap < 1 {
		gap = 1
	}
	return search + strings.Repeat(" ", gap) + meta
}

// renderTaskList renders the rows.
func (m *Model) renderTaskList() string {
	if m.loading && len(m.tasks) == 0 {
		return m.theme.TaskMeta.Render("Loading tasks...")
	}
	if len(m.tasks) == 0 {
		if m.query.Search != "" {
			return m.theme.TaskMeta.Render("No tasks match your search.")
		}
		return m.theme.TaskMeta.Render("No tasks yet. Press n to add one.")
	}

	rows := make([]string, 0, len(m.tasks))
	for i, task := range m.tasks {
		check := m.theme.TaskCheckOpen.Render("[ ]")
		title := task.Title
		if task.Completed {
			check = m.theme.TaskCheckDone.Render("[x]")
			title = m.theme.TaskTitleDone.Render(title)
		}

		line := check + " " + title
		if task.Description != "" {
			line += "  " + m.theme.TaskDescription.Render(util.TruncateWidth(task.Description, 40))
		}

		if i == m.selected && m.mode == ModeList {
			rows = append(rows, m.theme.TaskItemSelected.Width(m.width-2).Render(line))
		} else {
			rows = append(rows, m.theme.TaskItem.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

// renderEditForm renders the edit overlay.
func (m *Model) renderEditForm() string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.FormTitle.Render("Edit task"),
		m.theme.FormLabel.Render("Title"),
		m.editTitle.View(),
		"",
		m.theme.FormLabel.Render("Description"),
		m.editDesc.View(),
		"",
		m.theme.FormHint.Render("enter save  tab switch field  esc cancel"),
	)
	return m.theme.FormBox.Render(form)
}

// renderStatusBar fills the bottom bar with the list stats and key hints.
func (m *Model) renderStatusBar() string {
	status := components.StatusReady
	if m.loading {
		status = components.StatusLoading
	}

	open := 0
	for _, task := range m.tasks {
		if !task.Completed {
			open++
		}
	}
	detail := fmt.Sprintf("%d tasks, %d open", len(m.tasks), open)

	m.statusBar.SetStatus(status, detail)
	m.statusBar.SetShortcuts([]components.Shortcut{
		{Key: "n", Desc: "new"},
		{Key: "e", Desc: "edit"},
		{Key: "spc", Desc: "toggle"},
		{Key: "d", Desc: "delete"},
		{Key: "f", Desc: "filter"},
		{Key: "s", Desc: "sort"},
		{Key: "o", Desc: "order"},
	})
	return m.statusBar.View()
}

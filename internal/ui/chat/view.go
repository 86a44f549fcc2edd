// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow-tui/internal/model"
	"github.com/taskflowhq/taskflow-tui/internal/ui/components"
	"github.com/taskflowhq/taskflow-tui/internal/util"
)

// sidebarWidth is the fixed width of the conversation history pane.
const sidebarWidth = 28

// View renders the chat view.
func (m *Model) View() string {
	transcript := m.transcript.View()

	var main string
	if m.showSidebar {
		main = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), transcript)
	} else {
		main = transcript
	}

	sections := []string{
		main,
		m.renderQuotaLine(),
		m.theme.InputContainer.Render(m.input.View()),
		m.renderStatusBar(),
	}
	out := strings.Join(sections, "\n")

	if m.confirm.Visible {
		return m.confirm.View(m.width, m.height)
	}
	return out
}

// renderSidebar renders the conversation history pane.
func (m *Model) renderSidebar() string {
	var rows []string
	rows = append(rows, m.theme.FormLabel.Render("Conversations"))

	if len(m.conversations) == 0 {
		rows = append(rows, m.theme.SidebarMeta.Render("No chats yet"))
	}

	for i, conv := range m.conversations {
		label := util.TruncateWidth(conv.DisplayTitle(), sidebarWidth-4)
		switch {
		case conv.ID == m.activeID:
			rows = append(rows, m.theme.SidebarItemActive.Render(label))
		case i == m.selected && m.focus == FocusSidebar:
			rows = append(rows, m.theme.SidebarItemSelected.Render(label))
		default:
			rows = append(rows, m.theme.SidebarItem.Render(label))
		}
	}

	height := m.transcript.Height
	body := strings.Join(rows, "\n")
	return m.theme.Sidebar.Width(sidebarWidth).Height(height).Render(body)
}

// refreshTranscript re-renders the transcript into the viewport and keeps
// it scrolled to the latest message.
func (m *Model) refreshTranscript() {
	width := m.transcript.Width - 8
	if width < 20 {
		width = 20
	}

	var blocks []string
	for _, msg := range m.messages {
		label := m.theme.FormLabel.Render(msg.Role.DisplayName())
		switch msg.Role {
		case model.RoleAssistant:
			body := renderMarkdown(msg.Content, width)
			blocks = append(blocks, label+"\n"+m.theme.AssistantBubble.Width(width).Render(body))
		default:
			blocks = append(blocks, label+"\n"+m.theme.UserBubble.Width(width).Render(msg.Content))
		}
	}

	if len(blocks) == 0 {
		blocks = append(blocks, m.theme.SidebarMeta.Render("Ask the assistant to plan, break down, or summarize your tasks."))
	}

	m.transcript.SetContent(strings.Join(blocks, "\n\n"))
	m.transcript.GotoBottom()
}

// renderMarkdown renders assistant markdown for the terminal, falling back
// to the raw text when rendering fails.
func renderMarkdown(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// renderQuotaLine shows the per-conversation message budget.
func (m *Model) renderQuotaLine() string {
	counter := m.theme.QuotaCounter.Render(
		fmt.Sprintf("%d/%d messages used", m.quotaUsed, model.MaxUserMessages))
	if m.QuotaReached() {
		return counter + "  " + m.theme.QuotaNotice.Render(quotaNotice)
	}
	return counter
}

// renderStatusBar fills the bottom bar.
func (m *Model) renderStatusBar() string {
	status := components.StatusReady
	if m.busy {
		status = components.StatusThinking
	}

	detail := "new chat"
	if m.activeID != "" {
		for _, conv := range m.conversations {
			if conv.ID == m.activeID {
				detail = util.TruncateWidth(conv.DisplayTitle(), 30)
				break
			}
		}
	}

	m.statusBar.SetStatus(status, detail)
	m.statusBar.SetShortcuts([]components.Shortcut{
		{Key: "enter", Desc: "send"},
		{Key: "tab", Desc: "history"},
		{Key: "^n", Desc: "new chat"},
		{Key: "^y", Desc: "copy reply"},
		{Key: "d", Desc: "delete"},
	})
	return m.statusBar.View()
}

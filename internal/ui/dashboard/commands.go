// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/model"
)

// DebounceDelay is how long a query change waits before fetching, giving
// fast typists a single request per term.
const DebounceDelay = 300 * time.Millisecond

// =============================================================================
// MESSAGES
// =============================================================================

// debounceMsg fires when a query-change timer elapses. Stale seqs are
// ignored by Update.
type debounceMsg struct {
	seq int
}

type tasksLoadedMsg struct {
	seq   int
	tasks []model.Task
}

type tasksLoadErrMsg struct {
	seq int
	err error
}

type taskCreatedMsg struct {
	task *model.Task
}

type taskCreateErrMsg struct {
	err error
}

type taskToggledMsg struct {
	task *model.Task
}

type taskToggleErrMsg struct {
	err error
}

type taskDeletedMsg struct {
	id int
}

type taskDeleteErrMsg struct {
	id  int
	err error
}

type taskEditedMsg struct {
	task *model.Task
}

type taskEditErrMsg struct {
	err error
}

// =============================================================================
// COMMANDS
// =============================================================================

// scheduleFetch arms the debounce timer for the current query. Bumping
// fetchSeq invalidates any timer or in-flight fetch armed earlier.
func (m *Model) scheduleFetch() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	return tea.Tick(DebounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// fetchNow skips the debounce and fetches immediately. Used for the initial
// load, manual refresh, and reverting failed optimistic mutations.
func (m *Model) fetchNow() tea.Cmd {
	m.fetchSeq++
	m.loading = true
	return m.fetchCmd(m.fetchSeq)
}

// fetchCmd performs the list request for one seq.
func (m *Model) fetchCmd(seq int) tea.Cmd {
	client := m.client
	query := m.query
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background(), query)
		if err != nil {
			return tasksLoadErrMsg{seq: seq, err: err}
		}
		return tasksLoadedMsg{seq: seq, tasks: tasks}
	}
}

// createTask sends the create without touching the list; the task appears
// only when the server confirms it. Creates are not optimistic: unlike a
// toggle there is no local value to show until the server assigns an ID.
func (m *Model) createTask(title, description string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.CreateTask(context.Background(), title, description)
		if err != nil {
			return taskCreateErrMsg{err: err}
		}
		return taskCreatedMsg{task: task}
	}
}

// toggleTask flips completion locally and sends the update. A failure is
// reverted by refetch, not by flipping back, so concurrent edits from other
// clients aren't clobbered.
func (m *Model) toggleTask(task model.Task) tea.Cmd {
	completed := !task.Completed
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i].Completed = completed
			break
		}
	}

	client := m.client
	id := task.ID
	return func() tea.Msg {
		updated, err := client.UpdateTask(context.Background(), id, api.TaskUpdate{Completed: &completed})
		if err != nil {
			return taskToggleErrMsg{err: err}
		}
		return taskToggledMsg{task: updated}
	}
}

// deleteTask removes the task locally and sends the delete. A failure is
// reverted by refetch.
func (m *Model) deleteTask(task model.Task) tea.Cmd {
	m.removeTask(task.ID)
	m.clampSelection()

	client := m.client
	id := task.ID
	return func() tea.Msg {
		if err := client.DeleteTask(context.Background(), id); err != nil {
			return taskDeleteErrMsg{id: id, err: err}
		}
		return taskDeletedMsg{id: id}
	}
}

// editTask sends a title/description update without touching the list;
// the row changes only when the server confirms.
func (m *Model) editTask(id int, title, description string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		updated, err := client.UpdateTask(context.Background(), id, api.TaskUpdate{
			Title:       &title,
			Description: &description,
		})
		if err != nil {
			return taskEditErrMsg{err: err}
		}
		return taskEditedMsg{task: updated}
	}
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard implements the task list view.
//
// The model owns the task list and its query (search, status filter, sort).
// Query edits are debounced: each change arms a 300ms timer and a newer
// change supersedes the pending one, so typing "abc" costs one fetch.
// Toggle and delete are optimistic, with failures reverted by refetching
// the authoritative list; create and edit touch the list only when the
// server confirms.
package dashboard

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/model"
	"github.com/taskflowhq/taskflow-tui/internal/ui/components"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// Mode is the dashboard's input mode.
type Mode int

const (
	// ModeList browses the task list.
	ModeList Mode = iota
	// ModeSearch types into the search box.
	ModeSearch
	// ModeCreate types a new task title.
	ModeCreate
	// ModeEdit edits the selected task in a form overlay.
	ModeEdit
)

// SessionExpiredMsg tells the app model that a task request came back 401.
// The app clears the session and returns to login.
type SessionExpiredMsg struct{}

// Model is the dashboard view model.
type Model struct {
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager

	width  int
	height int

	mode     Mode
	tasks    []model.Task
	query    model.TaskQuery
	loading  bool
	selected int

	// fetchSeq tags every scheduled fetch. Debounce timers and fetch
	// results carrying an older seq are stale and dropped.
	fetchSeq int

	searchInput textinput.Model
	createInput textinput.Model

	editTaskID    int
	editTitle     textinput.Model
	editDesc      textinput.Model
	editFocusDesc bool

	statusBar *components.StatusBar
}

// New creates the dashboard view.
func New(client *api.Client, theme *styles.Theme, toasts *components.ToastManager) *Model {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = model.MaxTitleLen
	search.Width = 40

	create := textinput.New()
	create.Placeholder = "What needs doing?"
	create.CharLimit = model.MaxTitleLen
	create.Width = 50

	title := textinput.New()
	title.CharLimit = model.MaxTitleLen
	title.Width = 50

	desc := textinput.New()
	desc.CharLimit = model.MaxDescriptionLen
	desc.Width = 50

	return &Model{
		client:      client,
		theme:       theme,
		toasts:      toasts,
		query:       model.DefaultTaskQuery(),
		searchInput: search,
		createInput: create,
		editTitle:   title,
		editDesc:    desc,
		statusBar:   components.NewStatusBar(theme),
	}
}

// Init fetches the initial task list.
func (m *Model) Init() tea.Cmd {
	return m.fetchNow()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.statusBar.SetWidth(width)
}

// Tasks returns the current task list. Used by the app for the status line.
func (m *Model) Tasks() []model.Task {
	return m.tasks
}

// Query returns the current task query.
func (m *Model) Query() model.TaskQuery {
	return m.query
}

// Loading reports whether a fetch is in flight.
func (m *Model) Loading() bool {
	return m.loading
}

// Update handles messages for the dashboard view.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		// A newer query change superseded this timer.
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = true
		return m, m.fetchCmd(msg.seq)

	case tasksLoadedMsg:
		// Drop responses from superseded fetches.
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.tasks = msg.tasks
		m.clampSelection()
		return m, nil

	case tasksLoadErrMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		if api.IsUnauthorized(msg.err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		m.toasts.AddError(msg.err.Error())
		return m, nil

	case taskCreatedMsg:
		// The server's task is the first and only copy to enter the list;
		// the input clears only now that the create is confirmed.
		m.tasks = append(m.tasks, *msg.task)
		m.selected = len(m.tasks) - 1
		m.createInput.Reset()
		if m.mode == ModeCreate {
			m.mode = ModeList
			m.createInput.Blur()
		}
		return m, nil

	case taskCreateErrMsg:
		if api.IsUnauthorized(msg.err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		// The list was never touched and the input keeps its draft, so the
		// user can retry; just surface the failure.
		m.toasts.AddError(msg.err.Error())
		return m, nil

	case taskToggledMsg:
		for i, task := range m.tasks {
			if task.ID == msg.task.ID {
				m.tasks[i] = *msg.task
				break
			}
		}
		return m, nil

	case taskToggleErrMsg:
		if api.IsUnauthorized(msg.err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		// Revert the optimistic flip by refetching the server's state.
		m.toasts.AddError(msg.err.Error())
		return m, m.fetchNow()

	case taskDeletedMsg:
		return m, nil

	case taskDeleteErrMsg:
		if api.IsUnauthorized(msg.err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		// The optimistic removal was wrong; restore from the server.
		m.toasts.AddError(msg.err.Error())
		return m, m.fetchNow()

	case taskEditedMsg:
		for i, task := range m.tasks {
			if task.ID == msg.task.ID {
				m.tasks[i] = *msg.task
				break
			}
		}
		return m, nil

	case taskEditErrMsg:
		if api.IsUnauthorized(msg.err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		// Edits are not applied optimistically, so the list is already
		// correct; just surface the failure.
		m.toasts.AddError(msg.err.Error())
		return m, nil
	}

	return m, nil
}

// handleKey dispatches keys by input mode.
func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeCreate:
		return m.handleCreateKey(msg)
	case ModeEdit:
		return m.handleEditKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}
	case "/":
		m.mode = ModeSearch
		m.searchInput.SetValue(m.query.Search)
		m.searchInput.Focus()
		return m, textinput.Blink
	case "n":
		m.mode = ModeCreate
		m.createInput.Reset()
		m.createInput.Focus()
		return m, textinput.Blink
	case "e":
		if task, ok := m.selectedTask(); ok {
			m.mode = ModeEdit
			m.editTaskID = task.ID
			m.editTitle.SetValue(task.Title)
			m.editDesc.SetValue(task.Description)
			m.editFocusDesc = false
			m.editTitle.Focus()
			m.editDesc.Blur()
			return m, textinput.Blink
		}
	case " ", "x":
		if task, ok := m.selectedTask(); ok {
			return m, m.toggleTask(task)
		}
	case "d", "backspace":
		if task, ok := m.selectedTask(); ok {
			return m, m.deleteTask(task)
		}
	case "f":
		m.query.Status = m.query.Status.Next()
		return m, m.scheduleFetch()
	case "s":
		m.query.SortBy = m.query.SortBy.Next()
		return m, m.scheduleFetch()
	case "o":
		m.query.Order = m.query.Order.Toggle()
		return m, m.scheduleFetch()
	case "r":
		return m, m.fetchNow()
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeList
		m.searchInput.Blur()
		// Leaving search keeps the current filter.
		return m, nil
	case "enter":
		m.mode = ModeList
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Every keystroke that changes the term re-arms the debounce timer.
	if term := m.searchInput.Value(); term != m.query.Search {
		m.query.Search = term
		return m, tea.Batch(cmd, m.scheduleFetch())
	}
	return m, cmd
}

func (m *Model) handleCreateKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeList
		m.createInput.Blur()
		return m, nil
	case "enter":
		title := m.createInput.Value()
		if err := model.ValidateTitle(title); err != nil {
			m.toasts.AddWarning(err.Error())
			return m, nil
		}
		// Stay in create mode with the draft intact until the server
		// answers; success clears the input, failure keeps it for retry.
		return m, m.createTask(title, "")
	}

	var cmd tea.Cmd
	m.createInput, cmd = m.createInput.Update(msg)
	return m, cmd
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeList
		m.editTitle.Blur()
		m.editDesc.Blur()
		return m, nil
	case "tab", "shift+tab":
		m.editFocusDesc = !m.editFocusDesc
		if m.editFocusDesc {
			m.editTitle.Blur()
			m.editDesc.Focus()
		} else {
			m.editDesc.Blur()
			m.editTitle.Focus()
		}
		return m, textinput.Blink
	case "enter":
		title := m.editTitle.Value()
		desc := m.editDesc.Value()
		if err := model.ValidateTitle(title); err != nil {
			m.toasts.AddWarning(err.Error())
			return m, nil
		}
		if err := model.ValidateDescription(desc); err != nil {
			m.toasts.AddWarning(err.Error())
			return m, nil
		}
		m.mode = ModeList
		m.editTitle.Blur()
		m.editDesc.Blur()
		return m, m.editTask(m.editTaskID, title, desc)
	}

	var cmd tea.Cmd
	if m.editFocusDesc {
		m.editDesc, cmd = m.editDesc.Update(msg)
	} else {
		m.editTitle, cmd = m.editTitle.Update(msg)
	}
	return m, cmd
}

// selectedTask returns the task under the cursor.
func (m *Model) selectedTask() (model.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.selected], true
}

// removeTask drops a task by ID.
func (m *Model) removeTask(id int) {
	for i, task := range m.tasks {
		if task.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

// clampSelection keeps the cursor inside the list after it shrinks.
func (m *Model) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

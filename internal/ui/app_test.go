// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/config"
	"github.com/taskflowhq/taskflow-tui/internal/session"
	"github.com/taskflowhq/taskflow-tui/internal/ui/dashboard"
	"github.com/taskflowhq/taskflow-tui/internal/ui/login"
	"github.com/taskflowhq/taskflow-tui/internal/ui/settings"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

func newTestApp(t *testing.T, signedIn bool) (*Model, *session.Store) {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Load())
	if signedIn {
		require.NoError(t, store.Save(session.Session{Token: "tok", Email: "dev@taskflow.dev"}))
	}

	client := api.NewClient(&api.ClientConfig{BaseURL: "http://127.0.0.1:1"}, store)
	app := New(config.Default(), store, client, styles.NewTheme())
	app.setSize(100, 30)
	return app, store
}

func TestOpensOnLoginWhenSignedOut(t *testing.T) {
	app, _ := newTestApp(t, false)
	assert.Equal(t, ViewLogin, app.view)
	assert.Nil(t, app.tasks)
}

func TestOpensOnTasksWhenSignedIn(t *testing.T) {
	app, _ := newTestApp(t, true)
	assert.Equal(t, ViewTasks, app.view)
	require.NotNil(t, app.tasks)
	assert.Equal(t, "dev@taskflow.dev", app.header.Account)
}

func TestLoginPersistsSessionAndOpensTasks(t *testing.T) {
	app, store := newTestApp(t, false)

	_, cmd := app.Update(login.LoggedInMsg{Token: "tok", Email: "new@taskflow.dev"})

	assert.True(t, store.SignedIn())
	assert.Equal(t, ViewTasks, app.view)
	assert.Equal(t, "new@taskflow.dev", app.header.Account)
	assert.NotNil(t, cmd, "expected the task fetch to start")
}

func TestSessionExpiredDropsToLogin(t *testing.T) {
	app, store := newTestApp(t, true)

	_, _ = app.Update(dashboard.SessionExpiredMsg{})

	assert.False(t, store.SignedIn())
	assert.Equal(t, ViewLogin, app.view)
	assert.Nil(t, app.tasks)
	assert.Nil(t, app.chat)
	assert.True(t, app.toasts.HasToasts(), "expected an expiry warning toast")
}

func TestTabSwitchingInitializesViewsLazily(t *testing.T) {
	app, _ := newTestApp(t, true)
	assert.Nil(t, app.chat)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyF2})
	assert.Equal(t, ViewChat, app.view)
	require.NotNil(t, app.chat)
	assert.NotNil(t, cmd, "first visit should load conversations")

	// Returning to an already-initialized view must not re-init it.
	_, _ = app.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, ViewTasks, app.view)
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyF2})
	assert.Equal(t, ViewChat, app.view)
	assert.Nil(t, cmd)
}

func TestChatSidebarFollowsConfig(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.cfg.UI.ShowSidebar = false

	_, _ = app.Update(tea.KeyMsg{Type: tea.KeyF2})
	require.NotNil(t, app.chat)
	assert.NotContains(t, app.chat.View(), "Conversations")
}

func TestTabKeysIgnoredWhileSignedOut(t *testing.T) {
	app, _ := newTestApp(t, false)

	_, _ = app.Update(tea.KeyMsg{Type: tea.KeyF2})
	assert.Equal(t, ViewLogin, app.view)
	assert.Nil(t, app.chat)
}

func TestProfileChangeUpdatesHeaderAndSession(t *testing.T) {
	app, store := newTestApp(t, true)

	_, _ = app.Update(settings.ProfileChangedMsg{Name: "Dev", Email: "renamed@taskflow.dev"})

	assert.Equal(t, "renamed@taskflow.dev", app.header.Account)
	sess := store.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "renamed@taskflow.dev", sess.Email)
	assert.Equal(t, "Dev", sess.Name)
}

func TestWindowSizePropagates(t *testing.T) {
	app, _ := newTestApp(t, true)

	_, _ = app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
	assert.NotEmpty(t, app.View())
}

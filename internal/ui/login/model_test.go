// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/ui/components"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// authServer is a stub backend recording auth requests.
type authServer struct {
	mu          sync.Mutex
	logins      int
	signups     int
	failLogin   bool
	lastPayload map[string]string
}

func (s *authServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		s.lastPayload = body

		switch r.URL.Path {
		case "/api/auth/login":
			s.logins++
			if s.failLogin {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Incorrect email or password"}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-login"})
		case "/api/auth/signup":
			s.signups++
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-signup"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestModel(t *testing.T, server *authServer) *Model {
	t.Helper()
	srv := httptest.NewServer(server.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(&api.ClientConfig{BaseURL: srv.URL}, api.StaticToken(""))
	m := New(client, styles.NewTheme(), components.NewToastManager())
	m.SetSize(100, 30)
	return m
}

// submit presses enter and runs the resulting command chain, capturing the
// message the app model would receive.
func submit(t *testing.T, m *Model) tea.Msg {
	t.Helper()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return nil
		}
		if done, ok := msg.(LoggedInMsg); ok {
			return done
		}
		_, cmd = m.Update(msg)
	}
	return nil
}

func TestLoginSuccessEmitsLoggedIn(t *testing.T) {
	server := &authServer{}
	m := newTestModel(t, server)

	m.email.SetValue("dev@taskflow.dev")
	m.password.SetValue("hunter22")

	msg := submit(t, m)
	require.IsType(t, LoggedInMsg{}, msg)
	done := msg.(LoggedInMsg)
	assert.Equal(t, "tok-login", done.Token)
	assert.Equal(t, "dev@taskflow.dev", done.Email)
	assert.Equal(t, 1, server.logins)
}

func TestSignupSendsName(t *testing.T) {
	server := &authServer{}
	m := newTestModel(t, server)
	m.toggleMode()
	require.Equal(t, ModeSignup, m.mode)

	m.name.SetValue("Dev")
	m.email.SetValue("dev@taskflow.dev")
	m.password.SetValue("hunter22")

	msg := submit(t, m)
	require.IsType(t, LoggedInMsg{}, msg)
	assert.Equal(t, "tok-signup", msg.(LoggedInMsg).Token)
	assert.Equal(t, 1, server.signups)
	assert.Equal(t, "Dev", server.lastPayload["name"])
}

func TestLoginFailureShowsFormError(t *testing.T) {
	server := &authServer{failLogin: true}
	m := newTestModel(t, server)

	m.email.SetValue("dev@taskflow.dev")
	m.password.SetValue("wrong")

	msg := submit(t, m)
	assert.Nil(t, msg, "no LoggedInMsg on failure")
	assert.False(t, m.submitting)
	assert.Contains(t, m.formErr, "Incorrect email or password")
}

func TestValidatesLocallyBeforeRequest(t *testing.T) {
	server := &authServer{}
	m := newTestModel(t, server)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  string
	}{
		{"missing email", "", "pw", "valid email"},
		{"malformed email", "not-an-email", "pw", "valid email"},
		{"missing password", "dev@taskflow.dev", "", "Password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.email.SetValue(tt.email)
			m.password.SetValue(tt.password)

			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			assert.Nil(t, cmd)
			assert.Contains(t, m.formErr, tt.wantErr)
		})
	}

	assert.Zero(t, server.logins, "invalid forms must not reach the server")
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	m := newTestModel(t, &authServer{})
	m.submitting = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t, &authServer{})
	view := m.View()
	assert.Contains(t, view, "Sign in to TaskFlow")

	m.toggleMode()
	assert.Contains(t, m.View(), "Create your TaskFlow account")
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow-tui/internal/model"
)

func TestListTasksQueryParams(t *testing.T) {
	tests := []struct {
		name  string
		query model.TaskQuery
		want  map[string]string
		unset []string
	}{
		{
			name:  "defaults omit search and status",
			query: model.DefaultTaskQuery(),
			want:  map[string]string{"sort_by": "created_at", "order": "desc"},
			unset: []string{"search", "status"},
		},
		{
			name: "search and status filter",
			query: model.TaskQuery{
				Search: "groceries",
				Status: model.StatusActive,
				SortBy: model.SortByTitle,
				Order:  model.OrderAsc,
			},
			want: map[string]string{
				"search":  "groceries",
				"status":  "active",
				"sort_by": "title",
				"order":   "asc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery map[string][]string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Write([]byte(`[]`))
			})

			_, err := client.ListTasks(context.Background(), tt.query)
			require.NoError(t, err)

			for key, want := range tt.want {
				require.Len(t, gotQuery[key], 1, "param %s", key)
				assert.Equal(t, want, gotQuery[key][0], "param %s", key)
			}
			for _, key := range tt.unset {
				assert.Empty(t, gotQuery[key], "param %s should be absent", key)
			}
		})
	}
}

func TestCreateTask(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"title":"Buy milk","completed":false}`))
	})

	task, err := client.CreateTask(context.Background(), "Buy milk", "2 liters")
	require.NoError(t, err)
	assert.Equal(t, 7, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "Buy milk", gotBody["title"])
	assert.Equal(t, "2 liters", gotBody["description"])
}

func TestCreateTaskRejectsInvalidInputLocally(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	_, err := client.CreateTask(context.Background(), "", "")
	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, model.ErrTitleRequired)

	_, err = client.CreateTask(context.Background(), "ok", string(make([]rune, 1001)))
	assert.True(t, IsValidation(err))

	assert.Zero(t, requests, "invalid input must not reach the server")
}

func TestUpdateTaskSendsOnlySetFields(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/tasks/3", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id":3,"title":"t","completed":true}`))
	})

	completed := true
	task, err := client.UpdateTask(context.Background(), 3, TaskUpdate{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, task.Completed)

	assert.Equal(t, true, gotBody["completed"])
	_, hasTitle := gotBody["title"]
	assert.False(t, hasTitle, "unset fields must be omitted")
}

func TestDeleteTask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/tasks/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteTask(context.Background(), 9))
}

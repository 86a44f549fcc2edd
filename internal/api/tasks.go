// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/taskflowhq/taskflow-tui/internal/model"
)

// =============================================================================
// TASK OPERATIONS
// =============================================================================

// createTaskRequest is the payload for POST /api/tasks.
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TaskUpdate carries the fields of a PATCH /api/tasks/{id}. Nil fields are
// omitted and left unchanged by the server.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ListTasks fetches the task list filtered and ordered by query.
func (c *Client) ListTasks(ctx context.Context, query model.TaskQuery) ([]model.Task, error) {
	params := url.Values{}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	// "all" is the server default and is not sent.
	if query.Status != "" && query.Status != model.StatusAll {
		params.Set("status", string(query.Status))
	}
	if query.SortBy != "" {
		params.Set("sort_by", string(query.SortBy))
	}
	if query.Order != "" {
		params.Set("order", string(query.Order))
	}

	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", params, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server's copy, including the
// assigned ID and timestamps.
func (c *Client) CreateTask(ctx context.Context, title, description string) (*model.Task, error) {
	if err := model.ValidateTitle(title); err != nil {
		return nil, &APIError{Type: ErrTypeValidation, Detail: err.Error(), Cause: err}
	}
	if err := model.ValidateDescription(description); err != nil {
		return nil, &APIError{Type: ErrTypeValidation, Detail: err.Error(), Cause: err}
	}

	var task model.Task
	body := createTaskRequest{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id int, update TaskUpdate) (*model.Task, error) {
	if update.Title != nil {
		if err := model.ValidateTitle(*update.Title); err != nil {
			return nil, &APIError{Type: ErrTypeValidation, Detail: err.Error(), Cause: err}
		}
	}
	if update.Description != nil {
		if err := model.ValidateDescription(*update.Description); err != nil {
			return nil, &APIError{Type: ErrTypeValidation, Detail: err.Error(), Cause: err}
		}
	}

	var task model.Task
	path := fmt.Sprintf("/api/tasks/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, update, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task. The server responds 204 with no body.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/tasks/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain types shared between the API client and
// the UI: tasks, conversations, messages, and their validation rules.
package model

import (
	"errors"
	"strings"
	"time"
)

// =============================================================================
// TASK
// =============================================================================

// Input limits enforced client-side before a request is made. The server
// enforces the same bounds.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title must be 200 characters or less")
	ErrDescriptionTooLong = errors.New("description must be 1000 characters or less")
)

// Task is a single todo item owned by the signed-in user.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidateTitle checks a task title against the input limits.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTitleRequired
	}
	if len([]rune(trimmed)) > MaxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

// ValidateDescription checks a task description against the input limits.
// An empty description is valid.
func ValidateDescription(description string) error {
	if len([]rune(description)) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// =============================================================================
// TASK QUERY
// =============================================================================

// StatusFilter narrows a task fetch by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// SortField selects the task list ordering column.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByTitle     SortField = "title"
	SortByUpdatedAt SortField = "updated_at"
)

// SortOrder is the direction of the task list ordering.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// TaskQuery holds the task list filter, search, and sort parameters.
// The zero value is not useful; use DefaultTaskQuery.
type TaskQuery struct {
	Search string
	Status StatusFilter
	SortBy SortField
	Order  SortOrder
}

// DefaultTaskQuery returns the query the dashboard opens with: everything,
// newest first.
func DefaultTaskQuery() TaskQuery {
	return TaskQuery{
		Status: StatusAll,
		SortBy: SortByCreatedAt,
		Order:  OrderDesc,
	}
}

// Next cycles all -> active -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case StatusAll:
		return StatusActive
	case StatusActive:
		return StatusCompleted
	default:
		return StatusAll
	}
}

// Next cycles created_at -> title -> updated_at -> created_at.
func (s SortField) Next() SortField {
	switch s {
	case SortByCreatedAt:
		return SortByTitle
	case SortByTitle:
		return SortByUpdatedAt
	default:
		return SortByCreatedAt
	}
}

// Toggle flips asc <-> desc.
func (o SortOrder) Toggle() SortOrder {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared UI components for the taskflow TUI.
//
// Errors surface as non-blocking toasts in the bottom-right corner rather
// than modal dialogs, so a failed save never interrupts typing.
package components

import (
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind selects the toast's color and icon.
type ToastKind int

const (
	// ToastKindStatus is an informational toast
	ToastKindStatus ToastKind = iota
	// ToastKindError is an error toast
	ToastKindError
	// ToastKindWarning is a warning toast
	ToastKindWarning
	// ToastKindSuccess is a success toast
	ToastKindSuccess
)

// Auto-dismiss durations. Errors linger longer so they can be read.
const (
	StatusToastDuration  = 4 * time.Second
	WarningToastDuration = 6 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

// Toast is a single non-blocking notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// NewErrorToast creates an error toast.
func NewErrorToast(message string) Toast {
	return newToast(message, ToastKindError, ErrorToastDuration)
}

// NewWarningToast creates a warning toast.
func NewWarningToast(message string) Toast {
	return newToast(message, ToastKindWarning, WarningToastDuration)
}

// NewStatusToast creates an informational toast.
func NewStatusToast(message string) Toast {
	return newToast(message, ToastKindStatus, StatusToastDuration)
}

// NewSuccessToast creates a success toast.
func NewSuccessToast(message string) Toast {
	return newToast(message, ToastKindSuccess, StatusToastDuration)
}

func newToast(message string, kind ToastKind, duration time.Duration) Toast {
	return Toast{
		ID:        nextToastID(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// IsExpired returns true once the toast should be dismissed.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns how long until auto-dismiss.
func (t *Toast) TimeRemaining() time.Duration {
	remaining := t.Duration - time.Since(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the active toasts. The mutex matters because commands
// completing off the Elm loop may add toasts while a tick prunes them.
type ToastManager struct {
	toasts    []Toast
	maxToasts int
	mutex     sync.Mutex
}

// NewToastManager creates an empty toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{
		toasts:    make([]Toast, 0),
		maxToasts: 5,
	}
}

// Add inserts a toast, newest first, trimming to the visible maximum.
func (m *ToastManager) Add(toast Toast) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return toast.ID
}

// AddError adds an error toast with the given message.
func (m *ToastManager) AddError(message string) int {
	return m.Add(NewErrorToast(message))
}

// AddWarning adds a warning toast.
func (m *ToastManager) AddWarning(message string) int {
	return m.Add(NewWarningToast(message))
}

// AddStatus adds an informational toast.
func (m *ToastManager) AddStatus(message string) int {
	return m.Add(NewStatusToast(message))
}

// AddSuccess adds a success toast.
func (m *ToastManager) AddSuccess(message string) int {
	return m.Add(NewSuccessToast(message))
}

// Remove dismisses a toast by ID.
func (m *ToastManager) Remove(id int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Tick prunes expired toasts and returns what remains. Called from the
// 100ms toast ticker.
func (m *ToastManager) Tick() []Toast {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	active := make([]Toast, 0, len(m.toasts))
	for _, toast := range m.toasts {
		if !toast.IsExpired() {
			active = append(active, toast)
		}
	}
	m.toasts = active
	return m.toasts
}

// Toasts returns a copy of the current toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]Toast, len(m.toasts))
	copy(result, m.toasts)
	return result
}

// HasToasts reports whether anything is on screen.
func (m *ToastManager) HasToasts() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.toasts = m.toasts[:0]
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next toast tick.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderToast renders a single toast box.
func RenderToast(toast Toast, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	var accent lipgloss.AdaptiveColor
	var icon string
	switch toast.Kind {
	case ToastKindError:
		accent = styles.Rose
		icon = styles.StatusIndicators.Error
	case ToastKindWarning:
		accent = styles.Amber
		icon = styles.StatusIndicators.Warning
	case ToastKindSuccess:
		accent = styles.Emerald
		icon = styles.StatusIndicators.Success
	default:
		accent = styles.Cyan
		icon = styles.StatusIndicators.Info
	}

	iconStyle := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 8)

	content := iconStyle.Render(icon+" ") + messageStyle.Render(toast.Message)

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	hints := []string{"[x] Dismiss"}
	if secs := int(toast.TimeRemaining().Seconds()); secs > 0 {
		hints = append(hints, strconv.Itoa(secs)+"s")
	}
	content += "\n" + hintStyle.Render(strings.Join(hints, "  "))

	boxStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 2).
		MaxWidth(maxWidth)

	return boxStyle.Render(content)
}

// RenderToastStack renders the toasts stacked in the bottom-right corner.
func RenderToastStack(toasts []Toast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(toast, width))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	positioned := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(stack)

	if width > 0 && height > 0 {
		return lipgloss.Place(
			width, height,
			lipgloss.Right, lipgloss.Bottom,
			positioned,
		)
	}
	return positioned
}

// =============================================================================
// HELPERS
// =============================================================================

var toastIDMutex sync.Mutex
var toastIDCounter int

func nextToastID() int {
	toastIDMutex.Lock()
	defer toastIDMutex.Unlock()
	toastIDCounter++
	return toastIDCounter
}

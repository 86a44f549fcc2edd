// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

func TestToastManagerAddAndRemove(t *testing.T) {
	m := NewToastManager()
	if m.HasToasts() {
		t.Error("new manager should be empty")
	}

	id := m.AddError("save failed")
	if !m.HasToasts() {
		t.Error("expected a toast after AddError")
	}

	toasts := m.Toasts()
	if len(toasts) != 1 || toasts[0].Message != "save failed" || toasts[0].Kind != ToastKindError {
		t.Errorf("unexpected toasts: %+v", toasts)
	}

	m.Remove(id)
	if m.HasToasts() {
		t.Error("expected empty after Remove")
	}
}

func TestToastManagerNewestFirstAndTrim(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 7; i++ {
		m.AddStatus(strings.Repeat("x", i+1))
	}

	toasts := m.Toasts()
	if len(toasts) != 5 {
		t.Fatalf("expected trim to 5, got %d", len(toasts))
	}
	if toasts[0].Message != "xxxxxxx" {
		t.Errorf("newest toast should be first, got %q", toasts[0].Message)
	}
}

func TestToastTickPrunesExpired(t *testing.T) {
	m := NewToastManager()
	expired := NewStatusToast("old")
	expired.CreatedAt = time.Now().Add(-time.Minute)
	m.Add(expired)
	m.AddStatus("fresh")

	remaining := m.Tick()
	if len(remaining) != 1 || remaining[0].Message != "fresh" {
		t.Errorf("unexpected remaining toasts: %+v", remaining)
	}
}

func TestToastIDsUnique(t *testing.T) {
	a := NewErrorToast("a")
	b := NewErrorToast("b")
	if a.ID == b.ID {
		t.Error("toast IDs must be unique")
	}
}

func TestRenderToastStackEmpty(t *testing.T) {
	if got := RenderToastStack(nil, 80, 24); got != "" {
		t.Errorf("empty stack should render nothing, got %q", got)
	}
}

func TestStatusBarView(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.SetWidth(100)
	bar.SetStatus(StatusLoading, "3 tasks")
	bar.SetShortcuts([]Shortcut{{Key: "n", Desc: "new"}, {Key: "q", Desc: "quit"}})

	out := bar.View()
	if !strings.Contains(out, "Loading...") {
		t.Error("missing status text")
	}
	if !strings.Contains(out, "3 tasks") {
		t.Error("missing detail text")
	}
	if !strings.Contains(out, "new") || !strings.Contains(out, "quit") {
		t.Error("missing shortcuts")
	}
}

func TestHeaderView(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme, []Tab{{Label: "Tasks", Key: "F1"}, {Label: "Chat", Key: "F2"}})
	h.SetWidth(100)
	h.SetActive(1)
	h.SetAccount("ada@example.com")

	out := h.View()
	for _, want := range []string{"TaskFlow", "Tasks", "Chat", "ada@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestConfirmDialog(t *testing.T) {
	theme := styles.NewTheme()
	d := NewConfirmDialog(theme)

	if d.View(80, 24) != "" {
		t.Error("hidden dialog should render nothing")
	}

	d.Show("Delete conversation", "This cannot be undone.")
	if !d.Visible {
		t.Error("expected visible after Show")
	}
	if d.YesSelected {
		t.Error("No must start selected")
	}

	d.Toggle()
	if !d.YesSelected {
		t.Error("Toggle should select Yes")
	}

	out := d.View(80, 24)
	if !strings.Contains(out, "Delete conversation") {
		t.Error("missing dialog title")
	}

	d.Hide()
	if d.Visible {
		t.Error("expected hidden after Hide")
	}
}

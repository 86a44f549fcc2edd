// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestLoadMissingFileIsSignedOut(t *testing.T) {
	store := newTestStore(t)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.SignedIn() {
		t.Error("expected signed out")
	}
	if store.Token() != "" {
		t.Error("expected empty token")
	}
	if store.Current() != nil {
		t.Error("expected nil session")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path)
	sess := Session{Token: "tok-123", Email: "a@b.c", Name: "Ada"}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}

	// A fresh store reading the same file sees the session.
	other := NewStore(path)
	if err := other.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !other.SignedIn() {
		t.Fatal("expected signed in")
	}
	got := other.Current()
	if got.Token != "tok-123" || got.Email != "a@b.c" || got.Name != "Ada" {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be filled in")
	}
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(Session{Email: "a@b.c"}); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	if err := store.Save(Session{Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if store.SignedIn() {
		t.Error("expected signed out after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be removed")
	}

	// Clearing again is a no-op, not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestLoadCorruptFileIsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load should tolerate corrupt files, got %v", err)
	}
	if store.SignedIn() {
		t.Error("expected signed out for corrupt session")
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(Session{Token: "tok", Email: "a@b.c"}); err != nil {
		t.Fatal(err)
	}

	got := store.Current()
	got.Token = "mutated"
	if store.Token() != "tok" {
		t.Error("Current must return a copy, not the internal pointer")
	}
}

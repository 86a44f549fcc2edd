// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d", cfg.Server.TimeoutSeconds)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if !cfg.UI.ShowSidebar {
		t.Error("ShowSidebar should default to true")
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[server]\nbase_url = \"https://api.example.com\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30", cfg.Server.TimeoutSeconds)
	}
}

func TestLoadFromRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[server]\nbase_url = \"ftp://wrong\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected validation error for non-http base_url")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TASKFLOW_BASE_URL", "https://override.example.com")
	t.Setenv("TASKFLOW_TIMEOUT_SECONDS", "5")
	t.Setenv("TASKFLOW_THEME", "dark")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.BaseURL != "https://override.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d", cfg.Server.TimeoutSeconds)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
}

func TestEnvOverrideIgnoresBadTimeout(t *testing.T) {
	t.Setenv("TASKFLOW_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30", cfg.Server.TimeoutSeconds)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Server.BaseURL = "https://saved.example.com"
	cfg.UI.Theme = "light"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if reloaded.Server.BaseURL != "https://saved.example.com" {
		t.Errorf("BaseURL = %q", reloaded.Server.BaseURL)
	}
	if reloaded.UI.Theme != "light" {
		t.Errorf("Theme = %q", reloaded.UI.Theme)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("ui.theme", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := cfg.Get("ui.theme"); got != "dark" {
		t.Errorf("Get = %q", got)
	}

	if err := cfg.Set("ui.theme", "neon"); err == nil {
		t.Error("expected validation error for unknown theme")
	}
	if err := cfg.Set("does.not.exist", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := cfg.Get("does.not.exist"); err == nil {
		t.Error("expected error for unknown key")
	}

	if err := cfg.Set("server.timeout_seconds", "12"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := cfg.Get("server.timeout_seconds"); got != "12" {
		t.Errorf("Get = %q", got)
	}
}

func TestList(t *testing.T) {
	entries := Default().List()
	if len(entries) != 4 {
		t.Fatalf("List returned %d entries", len(entries))
	}
	// Sorted order: server.* before ui.*
	if entries[0] != "server.base_url = http://127.0.0.1:8000" {
		t.Errorf("first entry = %q", entries[0])
	}
}

// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"path/filepath"
	"testing"

	"github.com/taskflowhq/taskflow-tui/internal/config"
	"github.com/taskflowhq/taskflow-tui/internal/session"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"empty defaults to TUI", nil, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"status", []string{"status"}, CmdStatus},
		{"status alias", []string{"s"}, CmdStatus},
		{"config", []string{"config", "list"}, CmdConfig},
		{"logout", []string{"logout"}, CmdLogout},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"-h"}, CmdHelp},
		{"unknown falls back to help", []string{"frobnicate"}, CmdHelp},
		{"mixed case", []string{"STATUS"}, CmdStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := parse(tt.args)
			if got != tt.want {
				t.Errorf("parse(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseConfigArgs(t *testing.T) {
	cmd, args := parse([]string{"config", "set", "ui.theme", "dark"})
	if cmd != CmdConfig {
		t.Fatalf("cmd = %v, want CmdConfig", cmd)
	}
	if args.Subcommand != "set" {
		t.Errorf("Subcommand = %q, want %q", args.Subcommand, "set")
	}
	if args.ConfigKey != "ui.theme" {
		t.Errorf("ConfigKey = %q, want %q", args.ConfigKey, "ui.theme")
	}
	if args.ConfigVal != "dark" {
		t.Errorf("ConfigVal = %q, want %q", args.ConfigVal, "dark")
	}
}

func TestParseQuietFlag(t *testing.T) {
	cmd, args := parse([]string{"--quiet", "status"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.Quiet {
		t.Error("Quiet = false, want true")
	}
}

func TestHandleConfigList(t *testing.T) {
	cfg := config.Default()
	if code := HandleConfig(cfg, Args{Subcommand: "list"}); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestHandleConfigGetUnknownKey(t *testing.T) {
	cfg := config.Default()
	if code := HandleConfig(cfg, Args{Subcommand: "get", ConfigKey: "bogus.key"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestHandleConfigSetRejectsBadValue(t *testing.T) {
	cfg := config.Default()
	args := Args{Subcommand: "set", ConfigKey: "ui.theme", ConfigVal: "neon"}
	if code := HandleConfig(cfg, args); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestHandleLogoutIdempotent(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if code := HandleLogout(store); code != 0 {
		t.Errorf("first logout exit code = %d, want 0", code)
	}
	if code := HandleLogout(store); code != 0 {
		t.Errorf("second logout exit code = %d, want 0", code)
	}
}

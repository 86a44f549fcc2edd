// TaskFlow TUI - a terminal client for TaskFlow tasks and chat.
//
// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/cli"
	"github.com/taskflowhq/taskflow-tui/internal/config"
	"github.com/taskflowhq/taskflow-tui/internal/session"
	"github.com/taskflowhq/taskflow-tui/internal/ui"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg, store)
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(cfg, store, args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(cfg, args))
	case cli.CmdLogout:
		os.Exit(cli.HandleLogout(store))
	case cli.CmdVersion:
		os.Exit(cli.HandleVersion())
	case cli.CmdHelp:
		os.Exit(cli.HandleHelp())
	}
}

func openSession() (*session.Store, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	store := session.NewStore(path)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func runTUI(cfg *config.Config, store *session.Store) {
	styles.ApplyPreference(cfg.UI.Theme)
	theme := styles.NewTheme()

	client := api.NewClient(&api.ClientConfig{
		BaseURL: cfg.Server.BaseURL,
		Timeout: cfg.Server.Timeout(),
	}, store)

	app := ui.New(cfg, store, client, theme)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

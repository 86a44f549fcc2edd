// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the non-TUI
// commands: status, config, logout, version, help.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdConfig
	CmdLogout
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Subcommand string // config subcommand: get, set, list
	ConfigKey  string
	ConfigVal  string
	Quiet      bool
	Raw        []string
}

const usageText = `taskflow - terminal client for TaskFlow

TaskFlow keeps your tasks and your AI assistant in one place. Running
taskflow without arguments starts the TUI.

Usage:
  taskflow                   Start TUI (default)
  taskflow status, s         Show connection and session status
  taskflow config list       Show all configuration values
  taskflow config get KEY    Read one configuration value
  taskflow config set KEY V  Write one configuration value
  taskflow logout            Clear the stored session
  taskflow version           Print version information
  taskflow help              Show this help

Configuration keys:
  server.base_url            API server address
  server.timeout_seconds     Request timeout
  ui.theme                   auto, dark or light
  ui.show_sidebar            Show the chat sidebar

Environment:
  TASKFLOW_BASE_URL          Overrides server.base_url
  TASKFLOW_TIMEOUT_SECONDS   Overrides server.timeout_seconds
  TASKFLOW_THEME             Overrides ui.theme

Examples:
  taskflow config set server.base_url http://127.0.0.1:8000
  taskflow status
`

// Parse reads os.Args and returns the command to run.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(raw []string) (Command, Args) {
	var args Args

	remaining := make([]string, 0, len(raw))
	for _, arg := range raw {
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-h", "--help":
			return CmdHelp, args
		case "-V", "--version":
			return CmdVersion, args
		default:
			remaining = append(remaining, arg)
		}
	}

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "status", "s":
		return CmdStatus, args

	case "config":
		if len(remaining) > 0 {
			args.Subcommand = strings.ToLower(remaining[0])
		}
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = strings.Join(remaining[2:], " ")
		}
		return CmdConfig, args

	case "logout":
		return CmdLogout, args

	case "version", "v":
		return CmdVersion, args

	case "help", "h":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, args
	}
}

// HandleHelp prints usage.
func HandleHelp() int {
	fmt.Print(usageText)
	return 0
}

// HandleVersion prints version information.
func HandleVersion() int {
	fmt.Printf("taskflow %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	return 0
}

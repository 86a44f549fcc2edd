// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/taskflowhq/taskflow-tui/internal/config"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig implements `taskflow config [list|get|set]`.
func HandleConfig(cfg *config.Config, args Args) int {
	switch args.Subcommand {
	case "", "list", "show":
		for _, line := range cfg.List() {
			fmt.Println("  " + line)
		}
		return 0

	case "get":
		if args.ConfigKey == "" {
			fmt.Println(styles.RenderError("Usage: taskflow config get KEY"))
			return 1
		}
		value, err := cfg.Get(args.ConfigKey)
		if err != nil {
			fmt.Println(styles.RenderError(err.Error()))
			return 1
		}
		fmt.Println(value)
		return 0

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			fmt.Println(styles.RenderError("Usage: taskflow config set KEY VALUE"))
			return 1
		}
		if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
			fmt.Println(styles.RenderError(err.Error()))
			return 1
		}
		if err := cfg.Save(); err != nil {
			fmt.Println(styles.RenderError("Failed to save config: " + err.Error()))
			return 1
		}
		fmt.Println(styles.RenderSuccess(args.ConfigKey + " = " + args.ConfigVal))
		return 0

	default:
		fmt.Println(styles.RenderError("Unknown config subcommand: " + args.Subcommand))
		fmt.Println("Usage: taskflow config [list|get KEY|set KEY VALUE]")
		return 1
	}
}

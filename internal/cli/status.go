// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/taskflowhq/taskflow-tui/internal/api"
	"github.com/taskflowhq/taskflow-tui/internal/config"
	"github.com/taskflowhq/taskflow-tui/internal/session"
	"github.com/taskflowhq/taskflow-tui/internal/ui/styles"
)

// =============================================================================
// STATUS COMMAND
// =============================================================================

// HandleStatus prints server reachability and session state.
func HandleStatus(cfg *config.Config, store *session.Store, args Args) int {
	client := api.NewClient(&api.ClientConfig{
		BaseURL: cfg.Server.BaseURL,
		Timeout: 5 * time.Second,
	}, store)

	fmt.Println("TaskFlow Status")
	fmt.Println()
	fmt.Printf("  Server:  %s\n", cfg.Server.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		fmt.Printf("  Health:  %s\n", styles.RenderError("unreachable ("+err.Error()+")"))
	} else {
		fmt.Printf("  Health:  %s\n", styles.RenderSuccess("ok"))
	}

	if sess := store.Current(); sess != nil {
		fmt.Printf("  Session: %s\n", styles.RenderSuccess("signed in as "+sess.Email))
		if !args.Quiet {
			fmt.Printf("  Since:   %s\n", sess.CreatedAt.Format(time.RFC1123))
		}
	} else {
		fmt.Printf("  Session: %s\n", styles.RenderWarning("signed out"))
	}

	return 0
}

// HandleLogout clears the stored session.
func HandleLogout(store *session.Store) int {
	wasSignedIn := store.SignedIn()
	if err := store.Clear(); err != nil {
		fmt.Println(styles.RenderError("Failed to clear session: " + err.Error()))
		return 1
	}

	if wasSignedIn {
		fmt.Println(styles.RenderSuccess("Signed out."))
	} else {
		fmt.Println(styles.RenderInfo("No active session."))
	}
	return 0
}

// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - chat transcript export from the command line.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/legalia/legalia-tui/internal/export"
	"github.com/legalia/legalia-tui/internal/workspace"
)

// RunExport writes one space's transcript (or every space when none is
// named) to markdown files in the working directory.
func RunExport(env *Env, space string) error {
	if err := env.RequireAuth(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	order, history, err := env.Client.ChatHistory(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	ws := workspace.NewFromHistory(order, history)

	spaces := ws.Spaces()
	if space != "" {
		if !ws.Has(space) {
			return fmt.Errorf("no such chat space: %s", space)
		}
		spaces = []string{space}
	}

	for _, name := range spaces {
		msgs := ws.Messages(name)
		if len(msgs) == 0 {
			fmt.Println(infoStyle.Render("skipping empty space: " + name))
			continue
		}
		path, err := export.WriteFile(name, msgs, export.DefaultOptions())
		if err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
		fmt.Println(okStyle.Render("Exported " + name + " to " + path))
	}
	return nil
}

// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// kb_cmd.go - knowledge base listing and deletion from the command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/legalia/legalia-tui/internal/util"
)

// kbTimeout bounds one knowledge base request.
const kbTimeout = 30 * time.Second

// RunKB dispatches the kb subcommands.
func RunKB(env *Env, subcommand string, rest []string) error {
	if err := env.RequireAuth(); err != nil {
		return err
	}

	switch subcommand {
	case "", "collections":
		return kbCollections(env)
	case "embeddings":
		return kbEmbeddings(env)
	case "delete":
		if len(rest) != 2 {
			return fmt.Errorf("usage: legalia kb delete TABLE UUID")
		}
		return kbDelete(env, rest[0], rest[1])
	default:
		return fmt.Errorf("unknown kb subcommand: %s", subcommand)
	}
}

func kbCollections(env *Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), kbTimeout)
	defer cancel()
	rows, err := env.Client.KBCollections(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tUUID")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.UUID)
	}
	return w.Flush()
}

func kbEmbeddings(env *Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), kbTimeout)
	defer cancel()
	rows, err := env.Client.KBEmbeddings(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLLECTION ID\tDOCUMENT\tUUID")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.CollectionID,
			util.TruncateRunes(util.FirstLine(r.Document), 60), r.UUID)
	}
	return w.Flush()
}

func kbDelete(env *Env, table, uuid string) error {
	ctx, cancel := context.WithTimeout(context.Background(), kbTimeout)
	defer cancel()
	if err := env.Client.KBDelete(ctx, table, uuid); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Deleted " + uuid + " from " + table))
	return nil
}

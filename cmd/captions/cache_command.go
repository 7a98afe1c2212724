package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"captions/internal/cuecache"
)

type cacheEntryJSON struct {
	Digest    string     `json:"digest"`
	Source    string     `json:"source,omitempty"`
	CueCount  int        `json:"cue_count"`
	CreatedAt time.Time  `json:"created_at"`
	LastHitAt *time.Time `json:"last_hit_at,omitempty"`
}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the cue cache",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func withCache(ctx *commandContext, fn func(*cuecache.Store) error) error {
	store, err := ctx.openCache(false)
	if err != nil {
		return fmt.Errorf("open cue cache: %w", err)
	}
	if store == nil {
		return errors.New("cue cache is disabled (set cache.enabled = true)")
	}
	defer store.Close()
	return fn(store)
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(ctx, func(store *cuecache.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					payload := make([]cacheEntryJSON, 0, len(entries))
					for _, e := range entries {
						payload = append(payload, cacheEntryJSON(e))
					}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Cue cache is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for i, e := range entries {
					lastHit := "-"
					if e.LastHitAt != nil {
						lastHit = e.LastHitAt.Local().Format(time.DateTime)
					}
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						shortDigest(e.Digest),
						e.Source,
						strconv.Itoa(e.CueCount),
						e.CreatedAt.Local().Format(time.DateTime),
						lastHit,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Digest", "Source", "Cues", "Created", "Last Hit"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(ctx, func(store *cuecache.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine("Cache", statusOK,
					fmt.Sprintf("removed %d entries from %s", removed, store.Path()), shouldColorize(out)))
				return nil
			})
		},
	}
}

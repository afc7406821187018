package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and prune the rating cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				entries, err := rt.store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list cache: %w", err)
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty")
					return nil
				}

				now := time.Now()
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					result := "not found"
					if teacher, ok := entry.Resolution.Teacher(); ok {
						result = teacher.FullName()
					}
					expires := "never"
					if entry.ExpiresAt != nil {
						if entry.ExpiresAt.Before(now) {
							expires = "expired"
						} else {
							expires = time.Until(*entry.ExpiresAt).Round(time.Minute).String()
						}
					}
					rows = append(rows, []string{
						entry.Key,
						result,
						entry.CachedAt.Local().Format("2006-01-02 15:04"),
						expires,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Key", "Result", "Cached", "Expires In"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove one cached resolution by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				if err := rt.store.Remove(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("remove cache entry: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				count, err := rt.store.Count(cmd.Context())
				if err != nil {
					return fmt.Errorf("count cache entries: %w", err)
				}
				if err := rt.store.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached resolutions\n", count)
				return nil
			})
		},
	}
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"proflens/internal/nameutil"
)

func newOverrideCommand(ctx *commandContext) *cobra.Command {
	overrideCmd := &cobra.Command{
		Use:   "override",
		Short: "Manage manual name-to-instructor overrides",
		Long: `Manage the manual override catalog. Overrides pin a schedule name to an
exact instructor id, bypassing fuzzy matching for names the heuristic gets
wrong. They are consulted on every cache miss before any search runs.`,
	}

	overrideCmd.AddCommand(newOverrideListCommand(ctx))
	overrideCmd.AddCommand(newOverrideSetCommand(ctx))
	overrideCmd.AddCommand(newOverrideRemoveCommand(ctx))

	return overrideCmd
}

func newOverrideListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List manual overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				entries, err := rt.catalog.List()
				if err != nil {
					return fmt.Errorf("list overrides: %w", err)
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No manual overrides configured")
					return nil
				}

				names := make([]string, 0, len(entries))
				for name := range entries {
					names = append(names, name)
				}
				sort.Strings(names)

				rows := make([][]string, 0, len(names))
				for _, name := range names {
					rows = append(rows, []string{nameutil.DisplayName("", name), entries[name]})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Name", "Instructor ID"}, rows,
					[]columnAlignment{alignLeft, alignLeft}))
				return nil
			})
		},
	}
}

func newOverrideSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <instructor-id>",
		Short: "Pin a schedule name to an instructor id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				if err := rt.catalog.Set(args[0], args[1]); err != nil {
					return fmt.Errorf("set override: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pinned %q to %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newOverrideRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a manual override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				if err := rt.catalog.Remove(args[0]); err != nil {
					return fmt.Errorf("remove override: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed override for %q\n", args[0])
				return nil
			})
		},
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var school string

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search instructors by free text",
		Long: `Run a raw throttled search against the rating service without caching or
matching. Useful for checking what the service returns for a name before
pinning a manual override.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				text := strings.Join(args, " ")
				schoolID := ctx.schoolOrDefault(school)
				teachers := rt.service.SearchTeachers(cmd.Context(), text, schoolID)

				if ctx.jsonOutput() {
					return writeJSON(cmd, teachers)
				}
				if len(teachers) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No instructors found")
					return nil
				}

				rows := make([][]string, 0, len(teachers))
				for _, t := range teachers {
					row := teacherRow(t, rt.Score(t))
					row[0] = row[0] + "  [" + t.ID + "]"
					rows = append(rows, row)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(teacherHeaders, rows, teacherAligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "Institution id (default: configured school)")

	return cmd
}

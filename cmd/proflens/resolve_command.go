package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var school string

	cmd := &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Resolve schedule names to instructor ratings",
		Long: `Resolve one or more free-text instructor names against the rating service.
Each name is checked against the local cache, then manual overrides, then a
throttled search. Results are cached so repeated runs are fast.

Examples:
  proflens resolve "John Smith"
  proflens resolve "Smith, J." "Doe, Jane" --school U2Nob29sLTE1MTM`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				schoolID := ctx.schoolOrDefault(school)
				results := rt.service.ResolveBatch(cmd.Context(), schoolID, args)

				if ctx.jsonOutput() {
					return writeJSON(cmd, results)
				}

				names := make([]string, 0, len(results))
				for name := range results {
					names = append(names, name)
				}
				sort.Strings(names)

				rows := make([][]string, 0, len(names))
				for _, name := range names {
					teacher, ok := results[name].Teacher()
					if !ok {
						rows = append(rows, []string{name, "not found", "", "", "", "", ""})
						continue
					}
					match := teacher.FullName()
					if teacher.Department != "" {
						match += " (" + teacher.Department + ")"
					}
					row := teacherRow(teacher, rt.Score(teacher))
					row[0] = name
					row[1] = match
					rows = append(rows, row)
				}

				headers := []string{"Schedule Name", "Match", "Rating", "Difficulty", "# Ratings", "Would Retake", "Score"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "Institution id (default: configured school)")

	return cmd
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"proflens/internal/subjects"
)

func newSubjectCommand(ctx *commandContext) *cobra.Command {
	var school string

	cmd := &cobra.Command{
		Use:   "subject <code>",
		Short: "List all rated instructors for a subject",
		Long: `List every rated instructor the rating service knows for a subject code at
the configured school, best-rated first. Subject codes map to department
search terms (STAT searches "Statistics"); unmapped codes search as-is.

Results always come from a live search, never from the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				schoolID := ctx.schoolOrDefault(school)
				teachers := rt.browser.ListAll(cmd.Context(), args[0], schoolID)

				if ctx.jsonOutput() {
					return writeJSON(cmd, teachers)
				}
				if len(teachers) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No rated instructors found for %s (searched %q)\n",
						args[0], subjects.TermForSubject(args[0]))
					return nil
				}

				rows := make([][]string, 0, len(teachers))
				for _, t := range teachers {
					rows = append(rows, teacherRow(t, rt.Score(t)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(teacherHeaders, rows, teacherAligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "Institution id (default: configured school)")

	return cmd
}

func newAlternativesCommand(ctx *commandContext) *cobra.Command {
	var school string

	cmd := &cobra.Command{
		Use:   "alternatives <subject> <current-name> <current-rating>",
		Short: "Suggest better-rated instructors for a subject",
		Long: `Suggest up to five instructors from the same subject rated meaningfully
higher than the current one. A candidate must reach at least
max(2.5, current rating + 0.5) and have at least one rating.

Example:
  proflens alternatives STAT "Jane Doe" 2.8`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			currentRating, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("parse current rating %q: %w", args[2], err)
			}

			return ctx.withRuntime(func(rt *runtime) error {
				schoolID := ctx.schoolOrDefault(school)
				teachers := rt.browser.Alternatives(cmd.Context(), args[0], args[1], currentRating, schoolID)

				if ctx.jsonOutput() {
					return writeJSON(cmd, teachers)
				}
				if len(teachers) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No better-rated alternatives found")
					return nil
				}

				rows := make([][]string, 0, len(teachers))
				for _, t := range teachers {
					rows = append(rows, teacherRow(t, rt.Score(t)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(teacherHeaders, rows, teacherAligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "Institution id (default: configured school)")

	return cmd
}

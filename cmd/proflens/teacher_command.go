package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTeacherCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "teacher <id>",
		Short: "Fetch one instructor record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(rt *runtime) error {
				teacher := rt.service.FetchByID(cmd.Context(), args[0])
				if teacher == nil {
					return fmt.Errorf("no instructor found for id %q", args[0])
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, teacher)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Name:          %s\n", teacher.FullName())
				fmt.Fprintf(out, "Department:    %s\n", teacher.Department)
				fmt.Fprintf(out, "School:        %s (%s)\n", teacher.School.Name, teacher.School.ID)
				fmt.Fprintf(out, "Rating:        %s\n", formatRating(teacher.AvgRating))
				fmt.Fprintf(out, "Difficulty:    %s\n", formatRating(teacher.AvgDifficulty))
				fmt.Fprintf(out, "Ratings:       %d\n", teacher.NumRatings)
				fmt.Fprintf(out, "Would retake:  %s\n", formatPercent(teacher.WouldTakeAgainPercent))
				fmt.Fprintf(out, "Score:         %s\n", formatScore(rt.Score(*teacher)))
				return nil
			})
		},
	}
}

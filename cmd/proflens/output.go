package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"proflens/internal/rmp"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if stdoutIsTerminal() {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRating(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatPercent(value float64) string {
	if value <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", value)
}

// teacherRow renders the shared candidate columns used by search, subject,
// and alternatives output.
func teacherRow(t rmp.Teacher, score float64) []string {
	return []string{
		t.FullName(),
		t.Department,
		formatRating(t.AvgRating),
		formatRating(t.AvgDifficulty),
		strconv.Itoa(t.NumRatings),
		formatPercent(t.WouldTakeAgainPercent),
		formatScore(score),
	}
}

var teacherHeaders = []string{"Name", "Department", "Rating", "Difficulty", "# Ratings", "Would Retake", "Score"}

var teacherAligns = []columnAlignment{
	alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight,
}

package webtab

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// FormatTable renders a table as aligned plain text with a header line.
// Null cells render as empty strings.
func FormatTable(t *Table) string {
	if t == nil || len(t.Columns) == 0 {
		return ""
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(sanitizeCells(t.Columns), "\t"))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = c.String()
		}
		fmt.Fprintln(w, strings.Join(sanitizeCells(cells), "\t"))
	}
	_ = w.Flush()
	return sb.String()
}

// FormatSummary renders overview statistics as one line.
func FormatSummary(s Summary) string {
	return fmt.Sprintf("%d rows, %d columns, %d numeric columns, %d missing values",
		s.Rows, s.Columns, s.NumericColumns, s.MissingValues)
}

func sanitizeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.Join(strings.Fields(c), " ")
	}
	return out
}

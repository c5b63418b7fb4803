package logger

import (
	"fmt"
	"io"
	"strings"
)

// Table renders a bordered two-dimensional table of strings.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
	out     io.Writer
}

// NewTable returns an empty table with the given column headers.
func NewTable(headers []string, out io.Writer) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
		out:     out,
	}
}

// AddRow appends one row; missing cells are padded, extras dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	for i, cell := range row {
		if len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
	t.rows = append(t.rows, row)
}

// Print renders the table to the configured writer.
func (t *Table) Print() {
	var sb strings.Builder

	sb.WriteString(t.border("┌", "┬", "┐"))
	t.writeRow(&sb, t.headers)
	sb.WriteString(t.border("├", "┼", "┤"))
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	sb.WriteString(t.border("└", "┴", "┘"))

	fmt.Fprint(t.out, sb.String())
}

func (t *Table) border(left, mid, right string) string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right + "\n"
}

func (t *Table) writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("│")
	for i, cell := range cells {
		fmt.Fprintf(sb, " %-*s │", t.widths[i], cell)
	}
	sb.WriteString("\n")
}

package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Table is a simple ANSI-aware table printer
type Table struct {
	writer   io.Writer
	headers  []string
	rows     [][]string
	maxWidth map[int]int
	padding  int
}

// NewTable creates a new table writing to w
func NewTable(w io.Writer) *Table {
	return &Table{
		writer:   w,
		padding:  2,
		maxWidth: make(map[int]int),
	}
}

// SetHeaders sets the table headers
func (t *Table) SetHeaders(headers ...string) {
	t.headers = headers
}

// SetMaxWidth caps column col at width cells. Longer cells are truncated
// with an ellipsis; their styling is dropped.
func (t *Table) SetMaxWidth(col, width int) {
	t.maxWidth[col] = width
}

// AddRow adds a row to the table
func (t *Table) AddRow(cols ...string) {
	t.rows = append(t.rows, cols)
}

// Render prints the table
func (t *Table) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}

	numCols := len(t.headers)
	for _, row := range t.rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	rows := make([][]string, 0, len(t.rows)+1)
	if len(t.headers) > 0 {
		rows = append(rows, t.headers)
	}
	for _, row := range t.rows {
		rows = append(rows, t.fit(row))
	}

	colWidths := make([]int, numCols)
	for _, row := range rows {
		for i, col := range row {
			if w := VisibleLen(col); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	for _, row := range rows {
		t.printRow(row, colWidths)
	}
}

func (t *Table) fit(row []string) []string {
	out := make([]string, len(row))
	for i, col := range row {
		max, ok := t.maxWidth[i]
		if !ok || VisibleLen(col) <= max {
			out[i] = col
			continue
		}
		out[i] = runewidth.Truncate(StripANSI(col), max, "…")
	}
	return out
}

func (t *Table) printRow(row []string, widths []int) {
	for i, col := range row {
		pad := widths[i] - VisibleLen(col)

		fmt.Fprint(t.writer, col)

		// Add padding if not last column
		if i < len(row)-1 {
			fmt.Fprint(t.writer, strings.Repeat(" ", pad+t.padding))
		}
	}
	fmt.Fprintln(t.writer)
}

// StripANSI removes ANSI escape codes from a string
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLen returns the visible length of a string (excluding ANSI codes)
func VisibleLen(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

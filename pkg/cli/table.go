package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table collects rows and writes them column-aligned under a header line and
// a dash divider. Cells go through Cell, so router ids, costs and distances
// can be passed as-is.
type Table struct {
	out     io.Writer
	columns []string
	indent  string
	rows    [][]string
}

// NewTable creates a table that writes to out.
func NewTable(out io.Writer, columns ...string) *Table {
	return &Table{out: out, columns: columns}
}

// Indent sets a prefix for every line, used to nest a router's table under
// its heading.
func (t *Table) Indent(prefix string) *Table {
	t.indent = prefix
	return t
}

// Row appends a row. Missing trailing cells print as "-" and extra cells are
// dropped.
func (t *Table) Row(cells ...any) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = Cell(cells[i])
		} else {
			row[i] = "-"
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of buffered rows.
func (t *Table) Len() int { return len(t.rows) }

// Flush writes the header, the divider and every buffered row, then empties
// the buffer.
func (t *Table) Flush() error {
	tw := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	line := func(cells []string) {
		fmt.Fprintln(tw, t.indent+strings.Join(cells, "\t"))
	}

	line(t.columns)
	divider := make([]string, len(t.columns))
	for i, c := range t.columns {
		divider[i] = strings.Repeat("-", len(c))
	}
	line(divider)
	for _, r := range t.rows {
		line(r)
	}
	t.rows = nil
	return tw.Flush()
}

// Cell formats one table cell. nil and the empty string print as "-".
func Cell(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Package render prints dashboard snapshots to a terminal as aligned tables,
// or encodes them as JSON or YAML.
package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align is the horizontal alignment of a table column.
type Align int

const (
	Left Align = iota
	Right
)

// Column describes one table column.
type Column struct {
	Header string
	Align  Align
}

// Table is a plain-text table with columns sized by display width, so
// wide characters line up.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// NewTable creates a table with left-aligned columns.
func NewTable(headers ...string) *Table {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Header: h}
	}
	return &Table{Columns: cols}
}

// AlignRight right-aligns the given columns.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.Columns) {
			t.Columns[c].Align = Right
		}
	}
	return t
}

// Append adds a row. Missing cells render empty; extra cells are dropped.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// WriteTo writes the table: header, a dash separator, then the rows.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c.Header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	cw := &countingWriter{w: bufio.NewWriter(w)}
	headers := make([]string, len(t.Columns))
	seps := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
		seps[i] = strings.Repeat("-", widths[i])
	}
	t.writeRow(cw, widths, headers)
	t.writeRow(cw, widths, seps)
	for _, row := range t.Rows {
		t.writeRow(cw, widths, row)
	}
	if cw.err == nil {
		cw.err = cw.w.Flush()
	}
	return cw.n, cw.err
}

func (t *Table) writeRow(cw *countingWriter, widths []int, cells []string) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if t.Columns[i].Align == Right {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	cw.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) WriteString(s string) {
	if c.err != nil {
		return
	}
	n, err := c.w.WriteString(s)
	c.n += int64(n)
	c.err = err
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align is the horizontal alignment of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one table column.
type Column struct {
	Header string
	Align  Align
}

// Cell is one table cell. Style, when set, is applied after padding so escape
// sequences never count towards the column width.
type Cell struct {
	Text  string
	Style func(string) string
}

// Table renders rows of cells as aligned columns. Widths are measured in
// terminal cells, so wide runes in descriptions or ids line up.
type Table struct {
	Columns []Column
	Rows    [][]Cell
}

// AddRow appends a row of unstyled cells.
func (t *Table) AddRow(values ...string) {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = Cell{Text: v}
	}
	t.Rows = append(t.Rows, row)
}

// AddStyledRow appends a row of cells.
func (t *Table) AddStyledRow(cells ...Cell) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table to w. Headers are rendered with the keyword style
// when styles is not nil.
func (t *Table) Render(w io.Writer, styles *Styles) error {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c.Header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell.Text))
			}
		}
	}

	header := make([]Cell, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = Cell{Text: c.Header}
		if styles != nil {
			header[i].Style = styles.Keyword
		}
	}
	if err := t.writeRow(w, header, widths); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := t.writeRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) writeRow(w io.Writer, row []Cell, widths []int) error {
	var b strings.Builder
	for i, width := range widths {
		var cell Cell
		if i < len(row) {
			cell = row[i]
		}
		text := pad(cell.Text, width, t.Columns[i].Align)
		if i == len(widths)-1 && t.Columns[i].Align == AlignLeft {
			text = cell.Text
		}
		if cell.Style != nil {
			text = cell.Style(text)
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(text)
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

func pad(s string, width int, align Align) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

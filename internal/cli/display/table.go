package display

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Column is one column of a Table.
type Column struct {
	Title string
	Width int
	Color string
}

// Table renders rows as aligned columns under a bold header.
type Table struct {
	columns   []Column
	colorizer *Colorizer
}

// NewTable creates a table with the given columns.
func NewTable(colorizer *Colorizer, columns ...Column) *Table {
	return &Table{columns: columns, colorizer: colorizer}
}

// Render returns the header followed by one line per row. Missing cells are blank.
func (t *Table) Render(rows [][]string) string {
	var buf bytes.Buffer

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.Title
	}
	buf.WriteString(t.colorizer.Bold(t.line(header, false)))
	buf.WriteByte('\n')

	for _, row := range rows {
		buf.WriteString(t.line(row, true))
		buf.WriteByte('\n')
	}
	return buf.String()
}

func (t *Table) line(cells []string, colored bool) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		// The last column is not padded to avoid trailing spaces.
		if col.Width > 0 && i < len(t.columns)-1 {
			cell = padToWidth(cell, col.Width)
		} else if col.Width > 0 {
			cell = truncate(cell, col.Width)
		}
		if colored && col.Color != "" {
			cell = t.colorizer.Color(cell, col.Color)
		}
		parts[i] = cell
	}
	return strings.Join(parts, "  ")
}

// padToWidth pads or truncates a string to exactly the given width.
func padToWidth(s string, width int) string {
	s = truncate(s, width)
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width > 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

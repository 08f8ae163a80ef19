package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines one table column.
type Column struct {
	Title string
	Width int
}

// Row is a slice of cell values, positionally matching the columns.
type Row []string

// Table renders fixed-width columnar output for method listings, RPC probe
// results and wallet inventories.
type Table struct {
	Columns []Column
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	tableCellStyle   = lipgloss.NewStyle().Foreground(ColorValue)
)

// fit pads s to exactly width runes, truncating overlong cells with an
// ellipsis. Widths are counted in runes, not bytes; cells holding wide
// glyphs may still overflow their column.
func fit(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return string(runes) + strings.Repeat(" ", width-len(runes))
}

// renderLine styles every cell of one row and joins them.
func (t *Table) renderLine(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		val := ""
		if i < len(cells) {
			val = cells[i]
		}
		parts[i] = style.Render(fit(val, col.Width))
	}
	return strings.Join(parts, " ")
}

// Render returns the table: header, divider, then data rows.
func (t *Table) Render() string {
	titles := make([]string, len(t.Columns))
	divider := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		titles[i] = col.Title
		divider[i] = strings.Repeat("─", col.Width)
	}

	var b strings.Builder
	b.WriteString(t.renderLine(titles, tableHeaderStyle) + "\n")
	b.WriteString(t.renderLine(divider, StyleMeta) + "\n")
	for _, row := range t.Rows {
		b.WriteString(t.renderLine(row, tableCellStyle) + "\n")
	}
	return b.String()
}

// KeyValueBlock renders labeled values in a bordered box, with the label
// column sized to the longest key.
func KeyValueBlock(title string, pairs [][2]string) string {
	keyWidth := 0
	for _, p := range pairs {
		if n := len([]rune(p[0])); n > keyWidth {
			keyWidth = n
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(StyleTitle.Render(title) + "\n")
	}
	for _, p := range pairs {
		key := fit(p[0]+":", keyWidth+1)
		b.WriteString("  " + StyleMeta.Render(key) + " " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(b.String())
}

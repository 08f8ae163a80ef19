package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRender(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "NAME", Width: 10},
		{Title: "VALUE", Width: 8},
	})
	tbl.AddRow(Row{"alpha", "1"})
	tbl.AddRow(Row{"a-very-long-name", "2"})
	tbl.AddRow(Row{"short"}) // missing cells render empty

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5, "header, divider and three rows")

	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "────")
	assert.Contains(t, lines[2], "alpha")
	// Overlong cells are truncated to the column width with an ellipsis.
	assert.Contains(t, lines[3], "a-very-lo…")
	assert.NotContains(t, lines[3], "a-very-long-name")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", fit("ab", 4))
	assert.Equal(t, "abc…", fit("abcde", 4))
	assert.Equal(t, "日本語 ", fit("日本語", 4))
}

func TestBanner(t *testing.T) {
	out := Banner()
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Any ABI")
}

func TestKeyValueBlock(t *testing.T) {
	out := KeyValueBlock("Result", [][2]string{
		{"total", "500"},
		{"open", "true"},
	})
	assert.Contains(t, out, "Result")
	assert.Contains(t, out, "total:")
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "open:")
}

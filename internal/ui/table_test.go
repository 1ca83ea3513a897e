package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Text"},
		Rows: [][]string{
			{"abc123", "buy milk"},
			{"def456", "call the plumber about the sink"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 6, widths[0])
	assert.Equal(t, 31, widths[1])
}

func TestTable_ColumnWidths_WideRunes(t *testing.T) {
	table := &Table{
		Headers: []string{"Text"},
		Rows:    [][]string{{"牛乳を買う"}},
	}
	// Five double-width runes.
	assert.Equal(t, 10, table.ColumnWidths()[0])
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Text"},
		Rows:     [][]string{{"a", "This is a very long description that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Text"},
		Rows: [][]string{
			{"1", "Alice"},
			{"2", "Bob"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Text")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "Bob")
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}
	assert.Empty(t, table.Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}

	output := table.Render()

	assert.Contains(t, output, "This is w…")
	assert.NotContains(t, output, "too long")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "short", fit("short", 10))
	assert.Equal(t, "abcd…", fit("abcdefgh", 5))
	assert.Equal(t, "…", fit("abcdefgh", 1))
	assert.Equal(t, "", fit("abc", 0))
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Text", "State"},
		Rows: [][]string{
			{"1", "Alice"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Alice")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 3, len(lines))
}

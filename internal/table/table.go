// Package table holds the parsed tabular data and the stdin parsers that
// produce it. A Model is built once at startup and treated as read-only by
// everything downstream.
package table

// Format selects the input decoder.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Model is parsed tabular data. Headers is nil when the source neither
// declared nor implied column names. Rows may be ragged: short rows carry
// fewer cells, long rows more, and nothing pads or truncates them.
type Model struct {
	Headers []string
	Rows    [][]string
}

// ColumnCount derives the column count used by position-based consumers:
// the header count when headers exist, else the width of the first row,
// else zero.
func (m *Model) ColumnCount() int {
	if len(m.Headers) > 0 {
		return len(m.Headers)
	}
	if len(m.Rows) > 0 {
		return len(m.Rows[0])
	}
	return 0
}

// Cell returns the cell at (row, col), or "" when the row is too short.
// The row index must be in range.
func (m *Model) Cell(row, col int) string {
	r := m.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// HeaderAt returns the header name for col, or "" when there is none.
func (m *Model) HeaderAt(col int) string {
	if col < 0 || col >= len(m.Headers) {
		return ""
	}
	return m.Headers[col]
}

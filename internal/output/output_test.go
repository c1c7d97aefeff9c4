package output

import (
	"strings"
	"testing"

	"github.com/jask/tabsel/internal/table"
)

func tableWithHeaders() *table.Model {
	return &table.Model{
		Headers: []string{"name", "age"},
		Rows:    [][]string{{"Alice", "30"}, {"Bob", "25"}},
	}
}

func tableWithoutHeaders() *table.Model {
	return &table.Model{
		Rows: [][]string{{"Alice", "30"}, {"Bob", "25"}},
	}
}

// ---------------------------------------------------------------------------
// Row output
// ---------------------------------------------------------------------------

func TestFormatRowPlain(t *testing.T) {
	if got := FormatRow(tableWithHeaders(), FormatPlain, 0); got != "Alice,30" {
		t.Errorf("plain row = %q, want %q", got, "Alice,30")
	}
	if got := FormatRow(tableWithoutHeaders(), FormatPlain, 1); got != "Bob,25" {
		t.Errorf("plain row = %q, want %q", got, "Bob,25")
	}
}

func TestFormatRowPlainNoEscaping(t *testing.T) {
	m := &table.Model{Rows: [][]string{{"a,b", "c"}}}
	if got := FormatRow(m, FormatPlain, 0); got != "a,b,c" {
		t.Errorf("plain row = %q, want %q", got, "a,b,c")
	}
}

func TestFormatRowJSONWithHeaders(t *testing.T) {
	want := `{"name":"Alice","age":"30"}`
	if got := FormatRow(tableWithHeaders(), FormatJSON, 0); got != want {
		t.Errorf("json row = %q, want %q", got, want)
	}
}

func TestFormatRowJSONHeaderOrderPreserved(t *testing.T) {
	// Field order follows header order, not lexical order.
	m := &table.Model{
		Headers: []string{"z", "a", "m"},
		Rows:    [][]string{{"1", "2", "3"}},
	}
	want := `{"z":"1","a":"2","m":"3"}`
	if got := FormatRow(m, FormatJSON, 0); got != want {
		t.Errorf("json row = %q, want %q", got, want)
	}
}

func TestFormatRowJSONWithoutHeaders(t *testing.T) {
	want := `["Alice","30"]`
	if got := FormatRow(tableWithoutHeaders(), FormatJSON, 0); got != want {
		t.Errorf("json row = %q, want %q", got, want)
	}
}

func TestFormatRowJSONRaggedRowPadsMissing(t *testing.T) {
	m := &table.Model{
		Headers: []string{"a", "b", "c"},
		Rows:    [][]string{{"1"}},
	}
	want := `{"a":"1","b":"","c":""}`
	if got := FormatRow(m, FormatJSON, 0); got != want {
		t.Errorf("json row = %q, want %q", got, want)
	}
}

func TestFormatRowCSV(t *testing.T) {
	if got := FormatRow(tableWithHeaders(), FormatCSV, 0); got != "Alice,30" {
		t.Errorf("csv row = %q, want %q", got, "Alice,30")
	}
}

func TestFormatRowCSVQuoting(t *testing.T) {
	m := &table.Model{
		Headers: []string{"name", "bio"},
		Rows:    [][]string{{"Alice", "likes cats, dogs"}},
	}
	want := `Alice,"likes cats, dogs"`
	if got := FormatRow(m, FormatCSV, 0); got != want {
		t.Errorf("csv row = %q, want %q", got, want)
	}
}

// Parsing then re-encoding reproduces the original quoting for any cell
// containing commas, quotes, or newlines.
func TestCSVRoundTripQuoting(t *testing.T) {
	records := []string{
		`a,"b,c",d`,
		`"say ""hi""",x`,
		"\"line1\nline2\",tail",
	}
	input := "h1,h2,h3\n" + strings.Join(records, "\n")
	m, err := table.Parse([]byte(input), table.FormatCSV, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, want := range records {
		if got := FormatRow(m, FormatCSV, i); got != want {
			t.Errorf("row %d re-encoded = %q, want %q", i, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Column output
// ---------------------------------------------------------------------------

func TestFormatColumnPlain(t *testing.T) {
	m := tableWithHeaders()
	if got := FormatColumn(m, FormatPlain, 0); got != "name" {
		t.Errorf("column = %q, want %q", got, "name")
	}
	if got := FormatColumn(m, FormatPlain, 1); got != "age" {
		t.Errorf("column = %q, want %q", got, "age")
	}
}

func TestFormatColumnFallsBackToIndex(t *testing.T) {
	m := tableWithoutHeaders()
	if got := FormatColumn(m, FormatPlain, 0); got != "0" {
		t.Errorf("column = %q, want %q", got, "0")
	}
	if got := FormatColumn(m, FormatCSV, 1); got != "1" {
		t.Errorf("column = %q, want %q", got, "1")
	}
}

func TestFormatColumnJSON(t *testing.T) {
	if got := FormatColumn(tableWithHeaders(), FormatJSON, 0); got != `{"column":"name"}` {
		t.Errorf("json column = %q, want %q", got, `{"column":"name"}`)
	}
	if got := FormatColumn(tableWithoutHeaders(), FormatJSON, 1); got != `{"column":"1"}` {
		t.Errorf("json column = %q, want %q", got, `{"column":"1"}`)
	}
}

// ---------------------------------------------------------------------------
// Cell output
// ---------------------------------------------------------------------------

func TestFormatCellPlain(t *testing.T) {
	m := tableWithHeaders()
	if got := FormatCell(m, FormatPlain, 0, 0); got != "Alice" {
		t.Errorf("cell = %q, want %q", got, "Alice")
	}
	if got := FormatCell(m, FormatPlain, 1, 1); got != "25" {
		t.Errorf("cell = %q, want %q", got, "25")
	}
}

func TestFormatCellJSON(t *testing.T) {
	want := `{"value":"Alice","row":0,"column":"name"}`
	if got := FormatCell(tableWithHeaders(), FormatJSON, 0, 0); got != want {
		t.Errorf("json cell = %q, want %q", got, want)
	}
}

func TestFormatCellJSONHeaderlessColumnLabel(t *testing.T) {
	want := `{"value":"30","row":0,"column":"1"}`
	if got := FormatCell(tableWithoutHeaders(), FormatJSON, 0, 1); got != want {
		t.Errorf("json cell = %q, want %q", got, want)
	}
}

func TestFormatCellCSV(t *testing.T) {
	if got := FormatCell(tableWithHeaders(), FormatCSV, 0, 0); got != "Alice" {
		t.Errorf("csv cell = %q, want %q", got, "Alice")
	}
	m := &table.Model{Rows: [][]string{{`needs "quotes", here`}}}
	want := `"needs ""quotes"", here"`
	if got := FormatCell(m, FormatCSV, 0, 0); got != want {
		t.Errorf("csv cell = %q, want %q", got, want)
	}
}

func TestFormatCellRaggedRowMissingColumn(t *testing.T) {
	m := &table.Model{
		Headers: []string{"a", "b"},
		Rows:    [][]string{{"only"}},
	}
	if got := FormatCell(m, FormatPlain, 0, 1); got != "" {
		t.Errorf("cell = %q, want empty", got)
	}
	want := `{"value":"","row":0,"column":"b"}`
	if got := FormatCell(m, FormatJSON, 0, 1); got != want {
		t.Errorf("json cell = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// Edge cases
// ---------------------------------------------------------------------------

func TestSingleColumnRow(t *testing.T) {
	m := &table.Model{Headers: []string{"item"}, Rows: [][]string{{"apple"}}}
	if got := FormatRow(m, FormatPlain, 0); got != "apple" {
		t.Errorf("plain row = %q, want %q", got, "apple")
	}
	if got := FormatRow(m, FormatJSON, 0); got != `{"item":"apple"}` {
		t.Errorf("json row = %q, want %q", got, `{"item":"apple"}`)
	}
}

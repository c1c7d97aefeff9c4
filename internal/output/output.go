// Package output renders a selected row, column, or cell into its final
// encoding. Indices passed in are already resolved from filtered/visible
// space; out-of-range indices are a caller bug, not a runtime error.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jask/tabsel/internal/table"
)

// Format selects the output encoding.
type Format string

const (
	FormatPlain Format = "plain"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// FormatRow renders one row of t.
func FormatRow(t *table.Model, format Format, rowIdx int) string {
	row := t.Rows[rowIdx]
	switch format {
	case FormatCSV:
		return encodeCSVRecord(row)
	case FormatJSON:
		if t.Headers != nil {
			var buf bytes.Buffer
			buf.WriteByte('{')
			for i, h := range t.Headers {
				if i > 0 {
					buf.WriteByte(',')
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				writeJSONString(&buf, h)
				buf.WriteByte(':')
				writeJSONString(&buf, val)
			}
			buf.WriteByte('}')
			return buf.String()
		}
		if row == nil {
			row = []string{}
		}
		return string(jsonText(row))
	default:
		return strings.Join(row, ",")
	}
}

// FormatColumn renders a column reference: the header name when one
// exists, otherwise the column index as text.
func FormatColumn(t *table.Model, format Format, colIdx int) string {
	label := columnLabel(t, colIdx)
	if format == FormatJSON {
		var buf bytes.Buffer
		buf.WriteString(`{"column":`)
		writeJSONString(&buf, label)
		buf.WriteByte('}')
		return buf.String()
	}
	return label
}

// FormatCell renders a single cell. A column beyond the end of a ragged
// row renders as the empty value.
func FormatCell(t *table.Model, format Format, rowIdx, colIdx int) string {
	value := t.Cell(rowIdx, colIdx)
	switch format {
	case FormatCSV:
		return encodeCSVRecord([]string{value})
	case FormatJSON:
		var buf bytes.Buffer
		buf.WriteString(`{"value":`)
		writeJSONString(&buf, value)
		buf.WriteString(`,"row":`)
		buf.WriteString(strconv.Itoa(rowIdx))
		buf.WriteString(`,"column":`)
		writeJSONString(&buf, columnLabel(t, colIdx))
		buf.WriteByte('}')
		return buf.String()
	default:
		return value
	}
}

func columnLabel(t *table.Model, colIdx int) string {
	if colIdx >= 0 && colIdx < len(t.Headers) {
		return t.Headers[colIdx]
	}
	return strconv.Itoa(colIdx)
}

// encodeCSVRecord writes fields as one RFC4180 record, quoting cells that
// contain commas, quotes, or newlines, without the trailing record
// terminator.
func encodeCSVRecord(fields []string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(fields)
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

// writeJSONString appends s as a JSON string literal. Field order in the
// surrounding object is assembled by hand because encoding/json sorts map
// keys, and header order must survive.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.Write(jsonText(s))
}

// jsonText encodes v without HTML escaping, so cell text like "<" or "&"
// passes through verbatim.
func jsonText(v any) []byte {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	return bytes.TrimRight(b.Bytes(), "\n")
}

package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotArray is returned when JSON input is not a top-level array.
	ErrNotArray = errors.New("json input must be a top-level array")
	// ErrInconsistentShape is returned when JSON array elements are not a
	// uniform sequence of objects or a uniform sequence of arrays.
	ErrInconsistentShape = errors.New("json input must be an array of objects or an array of arrays")
)

// Parse decodes raw input into a Model. hasHeader only applies to CSV.
func Parse(data []byte, format Format, hasHeader bool) (*Model, error) {
	switch format {
	case FormatCSV:
		return parseCSV(data, hasHeader)
	case FormatJSON:
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

func parseCSV(data []byte, hasHeader bool) (*Model, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are accepted as-is

	m := &Model{}
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if first && hasHeader {
			first = false
			if len(rec) > 0 {
				m.Headers = rec
			}
			continue
		}
		first = false
		m.Rows = append(m.Rows, rec)
	}
	return m, nil
}

func parseJSON(data []byte) (*Model, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, ErrNotArray
	}

	// Grab each element raw so nested values keep their exact text and
	// object keys keep their order.
	var elems []json.RawMessage
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		elems = append(elems, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse json: trailing data after top-level array")
	}

	if len(elems) == 0 {
		return &Model{}, nil
	}

	switch firstByte(elems[0]) {
	case '{':
		return parseJSONObjects(elems)
	case '[':
		return parseJSONArrays(elems)
	default:
		return nil, ErrInconsistentShape
	}
}

// parseJSONObjects builds headers as the union of keys in order of first
// appearance across all elements. Missing keys become empty cells.
func parseJSONObjects(elems []json.RawMessage) (*Model, error) {
	var headers []string
	seen := make(map[string]int)
	values := make([]map[string]string, 0, len(elems))

	for _, elem := range elems {
		if firstByte(elem) != '{' {
			return nil, ErrInconsistentShape
		}
		keys, vals, err := objectFields(elem)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = len(headers)
				headers = append(headers, k)
			}
		}
		values = append(values, vals)
	}

	rows := make([][]string, 0, len(elems))
	for _, vals := range values {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = vals[h]
		}
		rows = append(rows, row)
	}
	return &Model{Headers: headers, Rows: rows}, nil
}

func parseJSONArrays(elems []json.RawMessage) (*Model, error) {
	rows := make([][]string, 0, len(elems))
	for _, elem := range elems {
		if firstByte(elem) != '[' {
			return nil, ErrInconsistentShape
		}
		dec := json.NewDecoder(bytes.NewReader(elem))
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		var row []string
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("parse json: %w", err)
			}
			row = append(row, stringifyValue(raw))
		}
		rows = append(rows, row)
	}
	return &Model{Rows: rows}, nil
}

// objectFields walks one JSON object with a token decoder, preserving key
// order. Duplicate keys keep the last value, like a map decode would.
func objectFields(elem json.RawMessage) ([]string, map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(elem))
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("parse json: %w", err)
	}

	var keys []string
	vals := make(map[string]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("parse json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, ErrInconsistentShape
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("parse json: %w", err)
		}
		if _, dup := vals[key]; !dup {
			keys = append(keys, key)
		}
		vals[key] = stringifyValue(raw)
	}
	return keys, vals, nil
}

// stringifyValue collapses a JSON value to its cell text: strings pass
// through, null becomes "", everything else keeps its compact JSON form.
// Lossy on purpose; cells are display text, not round-trippable values.
func stringifyValue(raw json.RawMessage) string {
	switch firstByte(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	case 'n':
		return ""
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw)
		}
		return buf.String()
	}
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ReadJSON parses an array of flat objects. Keys become headers in order
// of first appearance. Strings are kept, numbers and booleans are turned
// into their literal text and null becomes the empty string. Nested values
// are kept as compact JSON text with a warning.
func ReadJSON(source string, r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	data, enc, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
	}

	var items []map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of objects: %w", source, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoRows)
	}

	header, err := jsonKeyOrder(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var warnings []ParseWarning
	records := make([][]string, len(items))
	for i, item := range items {
		rec := make([]string, len(header))
		for j, key := range header {
			v, ok := item[key]
			if !ok {
				continue
			}
			s, nested := jsonScalar(v)
			if nested {
				warnings = append(warnings, ParseWarning{
					Row:     i + 2,
					Message: fmt.Sprintf("field %q holds a nested value; keeping it as text", key),
				})
			}
			rec[j] = s
		}
		records[i] = rec
	}

	t, err := newTable(source, header, records, 2)
	if err != nil {
		return nil, err
	}
	t.Encoding = enc
	t.Warnings = append(t.Warnings, warnings...)
	return t, nil
}

// jsonKeyOrder returns object keys in order of first appearance, which a
// decoded Go map does not keep.
func jsonKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
		return nil, fmt.Errorf("expected a JSON array of objects")
	}

	seen := make(map[string]bool)
	var keys []string
	for i := 0; dec.More(); i++ {
		if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: unexpected token %v", i, tok)
			}
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return keys, nil
}

// jsonScalar renders a raw JSON value as text. nested reports objects and
// arrays.
func jsonScalar(v json.RawMessage) (s string, nested bool) {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return "", false
	}
	switch trimmed[0] {
	case '"':
		var str string
		if err := json.Unmarshal(trimmed, &str); err == nil {
			return strings.TrimSpace(str), false
		}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String(), true
		}
		return string(trimmed), true
	}
	return string(trimmed), false
}

package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// CSVOptions tunes ReadCSV. A zero Delimiter means comma.
type CSVOptions struct {
	Delimiter rune
}

// ParseDelimiter converts a config or flag value into a delimiter rune.
// The empty string yields 0 (use the format default); `\t` and "tab" both
// mean a tab.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q must be a single character", s)
	}
	return r, nil
}

// ReadCSV parses delimited text. Rows with too few or too many fields are
// padded or truncated with a warning; rows the CSV reader rejects are
// skipped with a warning.
func ReadCSV(source string, r io.Reader, opts CSVOptions) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	data, enc, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
		}
		return nil, fmt.Errorf("%s: reading header row: %w", source, err)
	}

	var records [][]string
	var skipped []ParseWarning
	rowNum := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			skipped = append(skipped, ParseWarning{Row: rowNum, Message: fmt.Sprintf("parse error: %v", err)})
			records = append(records, nil)
			continue
		}
		records = append(records, rec)
	}

	t, err := newTable(source, header, records, 2)
	if err != nil {
		return nil, err
	}
	t.Encoding = enc
	t.Warnings = append(t.Warnings, skipped...)
	return t, nil
}

package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when a file has no header row.
	ErrEmptyInput = errors.New("input has no header row")

	// ErrNoRows is returned when a file has a header but no data rows.
	ErrNoRows = errors.New("input has no data rows")

	// ErrUnsupportedFormat is returned for formats orgtree cannot read.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// ParseWarning is a non-fatal problem found while reading a file. Row is
// 1-based and counts the header as row 1.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("row %d: %s", w.Row, w.Message)
}

// Table is a parsed file: trimmed headers and one map per data row keyed by
// header. Every row holds every header.
type Table struct {
	Source   string
	Encoding string
	Headers  []string
	Rows     []map[string]string
	Warnings []ParseWarning
}

// newTable builds a Table from a header row and raw records, padding short
// records and truncating long ones with a warning each. Blank records are
// skipped. firstRow is the 1-based row number of records[0].
func newTable(source string, header []string, records [][]string, firstRow int) (*Table, error) {
	t := &Table{Source: source}

	for _, h := range header {
		t.Headers = append(t.Headers, strings.TrimSpace(h))
	}
	if len(t.Headers) == 0 || allBlank(t.Headers) {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
	}
	t.dedupeHeaders()

	n := len(t.Headers)
	for i, rec := range records {
		rowNum := firstRow + i
		if allBlank(rec) {
			continue
		}
		switch {
		case len(rec) < n:
			t.warn(rowNum, "row has %d columns, expected %d; padding with empty values", len(rec), n)
			padded := make([]string, n)
			copy(padded, rec)
			rec = padded
		case len(rec) > n:
			t.warn(rowNum, "row has %d columns, expected %d; truncating extra columns", len(rec), n)
			rec = rec[:n]
		}

		row := make(map[string]string, n)
		for j, h := range t.Headers {
			row[h] = rec[j]
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoRows)
	}
	return t, nil
}

// dedupeHeaders renames repeated or blank headers so every column stays
// addressable: a second "Name" becomes "Name (2)", a blank one "Column 3".
func (t *Table) dedupeHeaders() {
	seen := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
			t.warn(1, "column %d has no header; using %q", i+1, h)
		}
		seen[h]++
		if seen[h] > 1 {
			renamed := fmt.Sprintf("%s (%d)", h, seen[h])
			t.warn(1, "duplicate header %q; renamed to %q", h, renamed)
			h = renamed
		}
		t.Headers[i] = h
	}
}

func (t *Table) warn(row int, format string, args ...any) {
	t.Warnings = append(t.Warnings, ParseWarning{Row: row, Message: fmt.Sprintf(format, args...)})
}

func allBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

package ingest

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a requested worksheet does not exist.
var ErrSheetNotFound = errors.New("worksheet not found")

// XLSXOptions tunes ReadXLSX. An empty Sheet selects the first worksheet.
type XLSXOptions struct {
	Sheet string
}

// ReadXLSX parses one worksheet of an Excel workbook. Cells are read as
// their formatted text; empty trailing cells become empty strings.
func ReadXLSX(source string, r io.Reader, opts XLSXOptions) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", source, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets: %w", source, ErrEmptyInput)
	}

	sheet := sheets[0]
	if opts.Sheet != "" {
		if !slices.Contains(sheets, opts.Sheet) {
			return nil, fmt.Errorf("%s: %w: %q (have %v)", source, ErrSheetNotFound, opts.Sheet, sheets)
		}
		sheet = opts.Sheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: reading sheet %q: %w", source, sheet, err)
	}

	// Leading blank rows are common above the real header.
	for len(rows) > 0 && allBlank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty: %w", source, sheet, ErrEmptyInput)
	}

	header := rows[0]
	records := rows[1:]
	// excelize drops trailing empty cells, so short rows are normal here.
	for i, rec := range records {
		if len(rec) > 0 && len(rec) < len(header) {
			padded := make([]string, len(header))
			copy(padded, rec)
			records[i] = padded
		}
	}

	t, err := newTable(source+"#"+sheet, header, records, 2)
	if err != nil {
		return nil, err
	}
	t.Encoding = EncodingUTF8
	return t, nil
}

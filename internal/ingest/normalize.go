package ingest

import (
	"strings"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

// Normalize projects every table row onto an org.Record using m. Values
// are trimmed; unmapped fields and blank cells become empty strings. Empty
// ids are kept so the validator can report them, and a blank manager cell
// means the record has no manager.
func Normalize(t *Table, m Mapping) []org.Record {
	records := make([]org.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		get := func(f Field) string {
			h, ok := m[f]
			if !ok || h == "" {
				return ""
			}
			return strings.TrimSpace(row[strings.TrimSpace(h)])
		}
		records = append(records, org.Record{
			ID:         get(FieldEmployeeID),
			Name:       get(FieldFullName),
			Title:      get(FieldTitle),
			Department: get(FieldDepartment),
			ManagerID:  get(FieldManagerID),
			Email:      get(FieldEmail),
			Location:   get(FieldLocation),
			PhotoURL:   get(FieldPhotoURL),
		})
	}
	return records
}

// Sample returns up to n non-empty values of header, for previews.
func (t *Table) Sample(header string, n int) []string {
	var out []string
	for _, row := range t.Rows {
		if len(out) >= n {
			break
		}
		if v := strings.TrimSpace(row[header]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

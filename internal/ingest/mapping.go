package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Field is a canonical record field. Values match the [columns] keys of
// orgtree.toml.
type Field string

const (
	FieldEmployeeID Field = "employee_id"
	FieldFullName   Field = "full_name"
	FieldTitle      Field = "title"
	FieldDepartment Field = "department"
	FieldManagerID  Field = "manager_id"
	FieldEmail      Field = "email"
	FieldLocation   Field = "location"
	FieldPhotoURL   Field = "photo_url"
)

// Fields lists every canonical field in display order.
var Fields = []Field{
	FieldEmployeeID,
	FieldFullName,
	FieldTitle,
	FieldDepartment,
	FieldManagerID,
	FieldEmail,
	FieldLocation,
	FieldPhotoURL,
}

// RequiredFields must be mapped before records can be built. The manager
// column is required even though individual manager values may be blank.
var RequiredFields = []Field{
	FieldEmployeeID,
	FieldFullName,
	FieldTitle,
	FieldDepartment,
	FieldManagerID,
}

var fieldLabels = map[Field]string{
	FieldEmployeeID: "Employee ID",
	FieldFullName:   "Full Name",
	FieldTitle:      "Title",
	FieldDepartment: "Department",
	FieldManagerID:  "Manager ID",
	FieldEmail:      "Email",
	FieldLocation:   "Location",
	FieldPhotoURL:   "Photo URL",
}

// Label returns the human-readable name of f.
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// Required reports whether f must be mapped.
func (f Field) Required() bool {
	for _, r := range RequiredFields {
		if r == f {
			return true
		}
	}
	return false
}

// ParseField converts a [columns] key into a Field.
func ParseField(key string) (Field, error) {
	for _, f := range Fields {
		if string(f) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown column field %q", key)
}

// ErrUnmappedColumns is returned when required fields have no source
// column.
var ErrUnmappedColumns = errors.New("required columns are not mapped")

// Mapping assigns a source header to each canonical field. Unmapped fields
// are absent.
type Mapping map[Field]string

// exactHeaders maps normalized headers to fields. Normalization lowercases
// and strips spaces, underscores and hyphens.
var exactHeaders = map[string]Field{
	"employeeid": FieldEmployeeID,
	"empid":      FieldEmployeeID,
	"empno":      FieldEmployeeID,
	"id":         FieldEmployeeID,
	"staffid":    FieldEmployeeID,

	"fullname":    FieldFullName,
	"name":        FieldFullName,
	"displayname": FieldFullName,

	"title":    FieldTitle,
	"jobtitle": FieldTitle,
	"position": FieldTitle,
	"role":     FieldTitle,

	"department": FieldDepartment,
	"dept":       FieldDepartment,
	"division":   FieldDepartment,
	"team":       FieldDepartment,

	"managerid":  FieldManagerID,
	"mgrid":      FieldManagerID,
	"manager":    FieldManagerID,
	"reportsto":  FieldManagerID,
	"supervisor": FieldManagerID,

	"email":        FieldEmail,
	"emailaddress": FieldEmail,
	"mail":         FieldEmail,

	"location": FieldLocation,
	"office":   FieldLocation,
	"city":     FieldLocation,
	"site":     FieldLocation,

	"photo":    FieldPhotoURL,
	"photourl": FieldPhotoURL,
	"image":    FieldPhotoURL,
	"picture":  FieldPhotoURL,
	"avatar":   FieldPhotoURL,
}

// substringHeaders is tried in order after exact matches. Manager patterns
// come first so "Manager ID" is never taken for the employee id, and the
// bare "id" and "name" patterns come last.
var substringHeaders = []struct {
	sub   string
	field Field
}{
	{"manager", FieldManagerID},
	{"mgr", FieldManagerID},
	{"reportsto", FieldManagerID},
	{"supervisor", FieldManagerID},
	{"email", FieldEmail},
	{"mail", FieldEmail},
	{"photo", FieldPhotoURL},
	{"avatar", FieldPhotoURL},
	{"image", FieldPhotoURL},
	{"employeeid", FieldEmployeeID},
	{"empid", FieldEmployeeID},
	{"fullname", FieldFullName},
	{"jobtitle", FieldTitle},
	{"title", FieldTitle},
	{"position", FieldTitle},
	{"department", FieldDepartment},
	{"dept", FieldDepartment},
	{"division", FieldDepartment},
	{"location", FieldLocation},
	{"office", FieldLocation},
	{"id", FieldEmployeeID},
	{"name", FieldFullName},
}

func normalizeHeader(h string) string {
	s := strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(s)
}

// AutoDetect guesses a mapping from headers. Exact matches are assigned
// first across all headers, then substring matches fill the remaining
// fields. Each header is used for at most one field and each field takes
// the leftmost qualifying header.
func AutoDetect(headers []string) Mapping {
	m := Mapping{}
	claimed := make(map[string]bool)

	for _, h := range headers {
		f, ok := exactHeaders[normalizeHeader(h)]
		if !ok || m.Has(f) || claimed[h] {
			continue
		}
		m[f] = h
		claimed[h] = true
	}

	for _, sm := range substringHeaders {
		if m.Has(sm.field) {
			continue
		}
		for _, h := range headers {
			if claimed[h] || !strings.Contains(normalizeHeader(h), sm.sub) {
				continue
			}
			m[sm.field] = h
			claimed[h] = true
			break
		}
	}
	return m
}

// Has reports whether f is mapped.
func (m Mapping) Has(f Field) bool {
	return m[f] != ""
}

// Missing returns the unmapped required fields in canonical order.
func (m Mapping) Missing() []Field {
	var out []Field
	for _, f := range RequiredFields {
		if !m.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Merge returns a copy of m with overrides applied. Override keys are
// [columns] keys; an unknown key is an error.
func (m Mapping) Merge(overrides map[string]string) (Mapping, error) {
	out := make(Mapping, len(m)+len(overrides))
	for f, h := range m {
		out[f] = h
	}
	for key, header := range overrides {
		f, err := ParseField(key)
		if err != nil {
			return nil, err
		}
		if header == "" {
			continue
		}
		out[f] = header
	}
	return out, nil
}

// Check verifies that every required field is mapped and every mapped
// header exists in headers. Headers are compared after trimming.
func (m Mapping) Check(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}
	for _, f := range Fields {
		h, ok := m[f]
		if !ok || h == "" {
			continue
		}
		if !present[strings.TrimSpace(h)] {
			return fmt.Errorf("column %q mapped to %s is not in the header row", h, f.Label())
		}
	}
	if missing := m.Missing(); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, f := range missing {
			labels[i] = f.Label()
		}
		return fmt.Errorf("%w: %s", ErrUnmappedColumns, strings.Join(labels, ", "))
	}
	return nil
}

package ingest

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

func TestAutoDetect_ExactHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers []string
		want    Mapping
	}{
		{
			name:    "canonical",
			headers: []string{"Employee ID", "Full Name", "Title", "Department", "Manager ID"},
			want: Mapping{
				FieldEmployeeID: "Employee ID",
				FieldFullName:   "Full Name",
				FieldTitle:      "Title",
				FieldDepartment: "Department",
				FieldManagerID:  "Manager ID",
			},
		},
		{
			name:    "short forms",
			headers: []string{"id", "name", "role", "dept", "reports_to", "e-mail"},
			want: Mapping{
				FieldEmployeeID: "id",
				FieldFullName:   "name",
				FieldTitle:      "role",
				FieldDepartment: "dept",
				FieldManagerID:  "reports_to",
				FieldEmail:      "e-mail",
			},
		},
		{
			name:    "optional columns",
			headers: []string{"EmpID", "Name", "Job Title", "Team", "Supervisor", "Email Address", "Office", "Photo URL"},
			want: Mapping{
				FieldEmployeeID: "EmpID",
				FieldFullName:   "Name",
				FieldTitle:      "Job Title",
				FieldDepartment: "Team",
				FieldManagerID:  "Supervisor",
				FieldEmail:      "Email Address",
				FieldLocation:   "Office",
				FieldPhotoURL:   "Photo URL",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AutoDetect(tt.headers))
		})
	}
}

func TestAutoDetect_SubstringFallback(t *testing.T) {
	t.Parallel()

	got := AutoDetect([]string{"Staff Code ID", "Worker Name", "Position Title", "Home Department", "Line Manager"})
	assert.Equal(t, Mapping{
		FieldEmployeeID: "Staff Code ID",
		FieldFullName:   "Worker Name",
		FieldTitle:      "Position Title",
		FieldDepartment: "Home Department",
		FieldManagerID:  "Line Manager",
	}, got)
}

func TestAutoDetect_ManagerIDNotTakenAsEmployeeID(t *testing.T) {
	t.Parallel()

	got := AutoDetect([]string{"Manager Emp ID", "Person ID"})
	assert.Equal(t, "Manager Emp ID", got[FieldManagerID])
	assert.Equal(t, "Person ID", got[FieldEmployeeID])
}

func TestAutoDetect_NothingRecognised(t *testing.T) {
	t.Parallel()

	got := AutoDetect([]string{"foo", "bar"})
	assert.Empty(t, got)
	assert.Equal(t, RequiredFields, got.Missing())
}

func TestMapping_Merge(t *testing.T) {
	t.Parallel()

	base := Mapping{FieldEmployeeID: "id", FieldFullName: "name"}
	got, err := base.Merge(map[string]string{"full_name": "Display", "title": "Role", "email": ""})
	require.NoError(t, err)

	assert.Equal(t, Mapping{FieldEmployeeID: "id", FieldFullName: "Display", FieldTitle: "Role"}, got)
	assert.Equal(t, "name", base[FieldFullName], "receiver is not modified")

	_, err = base.Merge(map[string]string{"salary": "Pay"})
	require.Error(t, err)
}

func TestMapping_Check(t *testing.T) {
	t.Parallel()

	headers := []string{"id", "name", "title", "dept", "mgr"}
	full := Mapping{
		FieldEmployeeID: "id",
		FieldFullName:   "name",
		FieldTitle:      "title",
		FieldDepartment: "dept",
		FieldManagerID:  "mgr",
	}
	require.NoError(t, full.Check(headers))

	partial := Mapping{FieldEmployeeID: "id", FieldFullName: "name"}
	err := partial.Check(headers)
	require.ErrorIs(t, err, ErrUnmappedColumns)
	assert.Contains(t, err.Error(), "Title, Department, Manager ID")

	bad, err := full.Merge(map[string]string{"email": "Mail"})
	require.NoError(t, err)
	err = bad.Check(headers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Mail"`)
}

func TestMapping_Snippet(t *testing.T) {
	t.Parallel()

	m := Mapping{FieldEmployeeID: "Emp #", FieldManagerID: "Boss", FieldFullName: "Name", FieldEmail: ""}
	snippet, err := m.Snippet()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(snippet, "[columns]\n"))

	var decoded struct {
		Columns map[string]string `toml:"columns"`
	}
	_, err = toml.Decode(snippet, &decoded)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"employee_id": "Emp #",
		"full_name":   "Name",
		"manager_id":  "Boss",
	}, decoded.Columns)
}

func TestField(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Photo URL", FieldPhotoURL.Label())
	assert.True(t, FieldManagerID.Required())
	assert.False(t, FieldEmail.Required())

	f, err := ParseField("location")
	require.NoError(t, err)
	assert.Equal(t, FieldLocation, f)

	_, err = ParseField("Location")
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tbl := &Table{
		Headers: []string{"id", "name", "title", "dept", "mgr", "mail"},
		Rows: []map[string]string{
			{"id": " E1 ", "name": "Alex", "title": "CEO", "dept": "Exec", "mgr": "  ", "mail": "a@x.io"},
			{"id": "", "name": "Ghost", "title": "", "dept": "Ops", "mgr": "E1", "mail": ""},
		},
	}
	m := Mapping{
		FieldEmployeeID: "id",
		FieldFullName:   "name",
		FieldTitle:      "title",
		FieldDepartment: "dept",
		FieldManagerID:  "mgr",
		FieldEmail:      "mail",
	}

	got := Normalize(tbl, m)
	assert.Equal(t, []org.Record{
		{ID: "E1", Name: "Alex", Title: "CEO", Department: "Exec", Email: "a@x.io"},
		{ID: "", Name: "Ghost", Department: "Ops", ManagerID: "E1"},
	}, got)
	assert.False(t, got[0].HasManager())
}

func TestTable_Sample(t *testing.T) {
	t.Parallel()

	tbl := &Table{Rows: []map[string]string{{"a": "1"}, {"a": ""}, {"a": "2"}, {"a": "3"}}}
	assert.Equal(t, []string{"1", "2"}, tbl.Sample("a", 2))
	assert.Empty(t, tbl.Sample("missing", 2))
}

func TestColumnOptions(t *testing.T) {
	t.Parallel()

	tbl := &Table{
		Headers: []string{"id", "name"},
		Rows:    []map[string]string{{"id": "E1", "name": "Alex"}, {"id": "E2", "name": ""}},
	}

	required := columnOptions(tbl, FieldEmployeeID)
	require.Len(t, required, 2)
	assert.Equal(t, "id", required[0].Value)
	assert.Equal(t, "id  e.g. E1, E2", required[0].Key)

	optional := columnOptions(tbl, FieldEmail)
	require.Len(t, optional, 3)
	assert.Equal(t, noColumn, optional[0].Value)

	assert.Error(t, requireColumn(FieldTitle)(noColumn))
	assert.NoError(t, requireColumn(FieldEmail)(noColumn))
	assert.Equal(t, "Email column (optional)", fieldTitle(FieldEmail))
}

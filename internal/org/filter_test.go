package org

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleForest builds:
//
//	Alex (CEO, Exec)
//	├── Jamie (VP Engineering, Engineering)
//	│   ├── Riley (Engineer, Engineering)
//	│   └── Taylor (Designer, Design)
//	└── Sam (VP Sales, Sales)
//	    └── Morgan (Account Exec, Sales)
func sampleForest(t *testing.T) []*Node {
	t.Helper()
	records := []Record{
		{ID: "E1", Name: "Alex", Title: "CEO", Department: "Exec"},
		{ID: "E2", Name: "Jamie", Title: "VP Engineering", Department: "Engineering", ManagerID: "E1"},
		{ID: "E3", Name: "Sam", Title: "VP Sales", Department: "Sales", ManagerID: "E1"},
		{ID: "E4", Name: "Riley", Title: "Engineer", Department: "Engineering", ManagerID: "E2"},
		{ID: "E5", Name: "Taylor", Title: "Designer", Department: "Design", ManagerID: "E2"},
		{ID: "E6", Name: "Morgan", Title: "Account Exec", Department: "Sales", ManagerID: "E3"},
	}
	return Build(records, BuildOptions{}).Roots
}

func countNodes(roots []*Node) int {
	total := 0
	for _, r := range roots {
		total += r.Size()
	}
	return total
}

func TestFilter_EmptyIsIdentity(t *testing.T) {
	t.Parallel()

	roots := sampleForest(t)
	got, err := Filter(roots, ViewFilter{})
	require.NoError(t, err)
	assert.Equal(t, countNodes(roots), countNodes(got))
	assert.Equal(t, roots, got)
}

func TestFilter_AncestorPreservation(t *testing.T) {
	t.Parallel()

	records := []Record{
		{ID: "A", Name: "Ann", Title: "Boss", Department: "X"},
		{ID: "B", Name: "Ben", Title: "Lead", Department: "X", ManagerID: "A"},
		{ID: "C", Name: "Cleo", Title: "Wizard", Department: "X", ManagerID: "B"},
	}
	roots := Build(records, BuildOptions{}).Roots

	got, err := Filter(roots, ViewFilter{Query: "wizard"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ID)
	assert.False(t, got[0].Match)
	require.Len(t, got[0].Children, 1)
	assert.Equal(t, "B", got[0].Children[0].ID)
	assert.False(t, got[0].Children[0].Match)
	require.Len(t, got[0].Children[0].Children, 1)
	assert.Equal(t, "C", got[0].Children[0].Children[0].ID)
	assert.True(t, got[0].Children[0].Children[0].Match)
}

func TestFilter_Department(t *testing.T) {
	t.Parallel()

	got, err := Filter(sampleForest(t), ViewFilter{Departments: []string{"Sales"}})
	require.NoError(t, err)

	rows := Flatten(got)
	var kept []string
	for _, r := range rows {
		kept = append(kept, r.ID)
	}
	assert.Equal(t, []string{"E1", "E3", "E6"}, kept)
	assert.False(t, rows[0].Match, "Alex is kept only as an ancestor")
	assert.True(t, rows[1].Match)
}

func TestFilter_QueryIsCaseInsensitiveAcrossFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "name", query: "RILEY", want: []string{"E1", "E2", "E4"}},
		{name: "title", query: "designer", want: []string{"E1", "E2", "E5"}},
		{name: "department", query: "sAlEs", want: []string{"E1", "E3", "E6"}},
		{name: "substring in several", query: "vp", want: []string{"E1", "E2", "E3"}},
		{name: "no match", query: "nobody", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Filter(sampleForest(t), ViewFilter{Query: tt.query})
			require.NoError(t, err)
			var kept []string
			for _, r := range Flatten(got) {
				kept = append(kept, r.ID)
			}
			assert.Equal(t, tt.want, kept)
		})
	}
}

func TestFilter_BothPredicatesMustHold(t *testing.T) {
	t.Parallel()

	// "exec" matches Alex's department and Morgan's title, but only Morgan
	// is in Sales.
	got, err := Filter(sampleForest(t), ViewFilter{Departments: []string{"Sales"}, Query: "exec"})
	require.NoError(t, err)

	var matched []string
	for _, r := range Flatten(got) {
		if r.Match {
			matched = append(matched, r.ID)
		}
	}
	assert.Equal(t, []string{"E6"}, matched)
}

func TestFilter_MatchingParentKeepsOnlyQualifyingChildren(t *testing.T) {
	t.Parallel()

	got, err := Filter(sampleForest(t), ViewFilter{Departments: []string{"Engineering"}})
	require.NoError(t, err)

	require.Len(t, got, 1)
	jamie := got[0].Children[0]
	assert.Equal(t, "E2", jamie.ID)
	assert.True(t, jamie.Match)
	assert.Equal(t, []string{"E4"}, ids(jamie.Children), "Taylor (Design) is dropped")
}

func TestFilter_FoldsUnicode(t *testing.T) {
	t.Parallel()

	roots := Build([]Record{{ID: "1", Name: "JÜRGEN Weiß", Title: "t", Department: "d"}}, BuildOptions{}).Roots
	got, err := Filter(roots, ViewFilter{Query: "jürgen"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	roots := sampleForest(t)
	before := Flatten(roots)

	_, err := Filter(roots, ViewFilter{Query: "riley", Departments: []string{"Engineering"}})
	require.NoError(t, err)

	assert.Equal(t, before, Flatten(roots))
	for _, r := range Flatten(roots) {
		assert.False(t, r.Match)
	}
}

func TestFilter_InvalidPredicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    ViewFilter
	}{
		{name: "query", f: ViewFilter{Query: "bad\xff"}},
		{name: "department", f: ViewFilter{Departments: []string{"ok", "\xfe"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Filter(sampleForest(t), tt.f)
			require.ErrorIs(t, err, ErrInvalidPredicate)
		})
	}
}

func TestViewFilter_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, ViewFilter{}.IsEmpty())
	assert.True(t, ViewFilter{Departments: []string{}}.IsEmpty())
	assert.False(t, ViewFilter{Query: "x"}.IsEmpty())
	assert.False(t, ViewFilter{Departments: []string{"x"}}.IsEmpty())
}

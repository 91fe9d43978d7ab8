package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stringPtr returns a pointer to the given string value.
func stringPtr(s string) *string {
	return &s
}

// mockEnvFunc creates an EnvFunc backed by a map.
func mockEnvFunc(vars map[string]string) EnvFunc {
	return func(key string) (string, bool) {
		val, ok := vars[key]
		return val, ok
	}
}

// noEnv is an EnvFunc that returns no environment variables.
func noEnv(_ string) (string, bool) {
	return "", false
}

// --- Resolve with only defaults ---

func TestResolve_OnlyDefaults(t *testing.T) {
	t.Parallel()

	rc := Resolve(NewDefaults(), nil, noEnv, nil)
	require.NotNil(t, rc.Config)

	assert.Equal(t, "und", rc.Config.Hierarchy.Locale)
	assert.Equal(t, "detach", rc.Config.Hierarchy.CyclePolicy)
	assert.Equal(t, DefaultConcurrency, rc.Config.Input.Concurrency)
	assert.Equal(t, OutputText, rc.Config.Output.Format)

	for key, src := range rc.Sources {
		assert.Equal(t, SourceDefault, src, key)
	}
	assert.Contains(t, rc.Sources, "columns.manager_id")
}

func TestResolve_NilArguments(t *testing.T) {
	t.Parallel()

	rc := Resolve(nil, nil, nil, nil)
	require.NotNil(t, rc)
	assert.Empty(t, rc.Config.Hierarchy.Locale)
	assert.NotNil(t, rc.Config.View.Departments)
}

// --- File layer ---

func TestResolve_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	file := &Config{
		Input:     InputConfig{Delimiter: ";", Concurrency: 2},
		Columns:   ColumnsConfig{FullName: "Employee Name"},
		Hierarchy: HierarchyConfig{Locale: "de"},
		View:      ViewConfig{Departments: []string{"Ops"}},
	}

	rc := Resolve(NewDefaults(), file, noEnv, nil)

	assert.Equal(t, ";", rc.Config.Input.Delimiter)
	assert.Equal(t, 2, rc.Config.Input.Concurrency)
	assert.Equal(t, "Employee Name", rc.Config.Columns.FullName)
	assert.Equal(t, "de", rc.Config.Hierarchy.Locale)
	assert.Equal(t, "detach", rc.Config.Hierarchy.CyclePolicy, "unset file keys keep defaults")
	assert.Equal(t, []string{"Ops"}, rc.Config.View.Departments)

	assert.Equal(t, SourceFile, rc.Sources["input.delimiter"])
	assert.Equal(t, SourceFile, rc.Sources["input.concurrency"])
	assert.Equal(t, SourceFile, rc.Sources["columns.full_name"])
	assert.Equal(t, SourceDefault, rc.Sources["columns.title"])
	assert.Equal(t, SourceFile, rc.Sources["hierarchy.locale"])
	assert.Equal(t, SourceDefault, rc.Sources["hierarchy.cycle_policy"])
	assert.Equal(t, SourceFile, rc.Sources["view.departments"])
}

func TestResolve_DoesNotAliasInputs(t *testing.T) {
	t.Parallel()

	file := &Config{View: ViewConfig{Departments: []string{"Ops"}}}
	rc := Resolve(NewDefaults(), file, noEnv, nil)

	rc.Config.View.Departments[0] = "Changed"
	assert.Equal(t, "Ops", file.View.Departments[0])
}

// --- Env layer ---

func TestResolve_EnvOverridesFile(t *testing.T) {
	t.Parallel()

	file := &Config{Hierarchy: HierarchyConfig{Locale: "de", CyclePolicy: "detach"}}
	env := mockEnvFunc(map[string]string{
		"ORGTREE_LOCALE":       "fr",
		"ORGTREE_CYCLE_POLICY": "promote",
		"ORGTREE_OUTPUT":       "yaml",
		"ORGTREE_INPUT_FORMAT": "xlsx",
		"ORGTREE_DEPARTMENTS":  "Sales, , Support ",
		"ORGTREE_CONCURRENCY":  "16",
	})

	rc := Resolve(NewDefaults(), file, env, nil)

	assert.Equal(t, "fr", rc.Config.Hierarchy.Locale)
	assert.Equal(t, "promote", rc.Config.Hierarchy.CyclePolicy)
	assert.Equal(t, "yaml", rc.Config.Output.Format)
	assert.Equal(t, "xlsx", rc.Config.Input.Format)
	assert.Equal(t, []string{"Sales", "Support"}, rc.Config.View.Departments)
	assert.Equal(t, 16, rc.Config.Input.Concurrency)
	assert.Equal(t, SourceEnv, rc.Sources["hierarchy.locale"])
	assert.Equal(t, SourceEnv, rc.Sources["view.departments"])
}

func TestResolve_EnvIgnoresBadConcurrency(t *testing.T) {
	t.Parallel()

	env := mockEnvFunc(map[string]string{"ORGTREE_CONCURRENCY": "lots"})
	rc := Resolve(NewDefaults(), nil, env, nil)

	assert.Equal(t, DefaultConcurrency, rc.Config.Input.Concurrency)
	assert.Equal(t, SourceDefault, rc.Sources["input.concurrency"])
}

// --- CLI layer ---

func TestResolve_CLIOverridesEverything(t *testing.T) {
	t.Parallel()

	file := &Config{Output: OutputConfig{Format: "yaml"}, View: ViewConfig{Query: "file"}}
	env := mockEnvFunc(map[string]string{"ORGTREE_OUTPUT": "text", "ORGTREE_LOCALE": "fr"})
	depts := []string{"Legal"}
	overrides := &CLIOverrides{
		Output:      stringPtr("json"),
		Locale:      stringPtr("ja"),
		Query:       stringPtr(""),
		Departments: &depts,
		Sheet:       stringPtr("People"),
		Columns:     map[string]string{"employee_id": "Badge", "bogus": "x"},
	}

	rc := Resolve(NewDefaults(), file, env, overrides)

	assert.Equal(t, "json", rc.Config.Output.Format)
	assert.Equal(t, "ja", rc.Config.Hierarchy.Locale)
	assert.Empty(t, rc.Config.View.Query, "a pointer to \"\" overrides to empty")
	assert.Equal(t, []string{"Legal"}, rc.Config.View.Departments)
	assert.Equal(t, "People", rc.Config.Input.Sheet)
	assert.Equal(t, "Badge", rc.Config.Columns.EmployeeID)
	assert.NotContains(t, rc.Sources, "columns.bogus")

	for _, key := range []string{"output.format", "hierarchy.locale", "view.query", "view.departments", "input.sheet", "columns.employee_id"} {
		assert.Equal(t, SourceCLI, rc.Sources[key], key)
	}
}

func TestResolve_NilOverridesLeaveValues(t *testing.T) {
	t.Parallel()

	file := &Config{Output: OutputConfig{Format: "yaml"}}
	rc := Resolve(NewDefaults(), file, noEnv, &CLIOverrides{})

	assert.Equal(t, "yaml", rc.Config.Output.Format)
	assert.Equal(t, SourceFile, rc.Sources["output.format"])
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, splitList(" a ,b,,"))
	assert.Equal(t, []string{}, splitList(""))
}

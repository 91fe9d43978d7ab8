package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStarter_Defaults(t *testing.T) {
	t.Parallel()

	out, err := RenderStarter(nil)
	require.NoError(t, err)

	var cfg Config
	md, err := toml.Decode(string(out), &cfg)
	require.NoError(t, err, "rendered starter must be valid TOML:\n%s", out)
	assert.Empty(t, md.Undecoded())

	assert.Equal(t, DefaultConcurrency, cfg.Input.Concurrency)
	assert.Equal(t, "und", cfg.Hierarchy.Locale)
	assert.Equal(t, "detach", cfg.Hierarchy.CyclePolicy)
	assert.Equal(t, OutputText, cfg.Output.Format)
	assert.Empty(t, cfg.View.Departments)
	assert.False(t, Validate(&cfg, &md).HasErrors())
}

func TestRenderStarter_RoundTripsValues(t *testing.T) {
	t.Parallel()

	in := NewDefaults()
	in.Columns.EmployeeID = `Emp "No"`
	in.Columns.ManagerID = "Reports To"
	in.View.Departments = []string{"Sales", "R&D"}
	in.Hierarchy.Locale = "de"

	out, err := RenderStarter(in)
	require.NoError(t, err)

	var cfg Config
	_, err = toml.Decode(string(out), &cfg)
	require.NoError(t, err, "%s", out)
	assert.Equal(t, `Emp "No"`, cfg.Columns.EmployeeID)
	assert.Equal(t, "Reports To", cfg.Columns.ManagerID)
	assert.Equal(t, []string{"Sales", "R&D"}, cfg.View.Departments)
	assert.Equal(t, "de", cfg.Hierarchy.Locale)
}

func TestWriteStarter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := WriteStarter(dir, nil, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), path)
	assert.FileExists(t, path)

	_, err = WriteStarter(dir, nil, false)
	require.ErrorIs(t, err, ErrConfigExists)

	require.NoError(t, os.WriteFile(path, []byte("# custom\n"), 0o644))
	_, err = WriteStarter(dir, nil, true)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[hierarchy]")
}

package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/config"
)

func readStarter(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg, _, err := config.LoadFromFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	return cfg
}

func TestInitCmd_Flags(t *testing.T) {
	for _, name := range []string{"force", "format", "sheet", "delimiter", "column", "interactive"} {
		assert.NotNil(t, initCmd.Flags().Lookup(name), name)
	}
}

func TestInitCmd_WritesDefaults(t *testing.T) {
	dir := inTempDir(t)

	_, errOut, err := runCLI(t, "init")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Wrote ")
	assert.Contains(t, errOut, "Next steps:")

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	var generic map[string]any
	_, err = toml.Decode(string(data), &generic)
	require.NoError(t, err, "starter file must be valid TOML")

	cfg := readStarter(t, dir)
	assert.Equal(t, "und", cfg.Hierarchy.Locale)
	assert.Equal(t, "detach", cfg.Hierarchy.CyclePolicy)
	assert.Equal(t, config.DefaultConcurrency, cfg.Input.Concurrency)
	assert.False(t, config.Validate(cfg, nil).HasErrors())
}

func TestInitCmd_SeedsColumnsFromSample(t *testing.T) {
	dir := inTempDir(t)
	sample := writeInput(t, dir, "people.csv", csvLines(
		"Staff No,Name,Job Title,Team,Reports To,Work Email",
		"1,Alex,CEO,Exec,,alex@example.com",
	))

	_, _, err := runCLI(t, "init", sample, "--column", "department=Team")
	require.NoError(t, err)

	cfg := readStarter(t, dir)
	assert.Equal(t, "Name", cfg.Columns.FullName)
	assert.Equal(t, "Job Title", cfg.Columns.Title)
	assert.Equal(t, "Team", cfg.Columns.Department)
	assert.Equal(t, "Reports To", cfg.Columns.ManagerID)
	assert.Equal(t, "Work Email", cfg.Columns.Email)
	assert.Empty(t, cfg.Columns.EmployeeID, "\"Staff No\" is not recognised")
	assert.Empty(t, cfg.Input.Format, "sample settings are not persisted")
}

func TestInitCmd_ExistingFile(t *testing.T) {
	dir := inTempDir(t)
	writeConfig(t, dir, "# mine\n")

	_, _, err := runCLI(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Contains(t, err.Error(), "--force")

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data), "existing file must be kept")

	_, _, err = runCLI(t, "init", "--force")
	require.NoError(t, err)
	assert.Equal(t, "und", readStarter(t, dir).Hierarchy.Locale)
}

func TestInitCmd_DoesNotReadExistingConfig(t *testing.T) {
	dir := inTempDir(t)
	writeConfig(t, dir, "[hierarchy\nbroken")

	_, _, err := runCLI(t, "init", "--force")
	require.NoError(t, err)
}

func TestInitCmd_RespectsGlobalDirFlag(t *testing.T) {
	inTempDir(t)
	target := t.TempDir()

	_, _, err := runCLI(t, "--dir", target, "init")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, config.ConfigFileName))
	assert.NoError(t, err)
}

func TestInitCmd_Errors(t *testing.T) {
	dir := inTempDir(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing sample", args: []string{"init", filepath.Join(dir, "nope.csv")}},
		{name: "bad column flag", args: []string{"init", "--column", "nonsense"}},
		{name: "unknown column field", args: []string{"init", "--column", "salary=Pay"}},
		{name: "too many args", args: []string{"init", "a.csv", "b.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestInitCmd_ReadOnlyDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := inTempDir(t)
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, _, err := runCLI(t, "init")
	require.Error(t, err)
}

package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

func TestFindCmd_PrintsChain(t *testing.T) {
	dir := inTempDir(t)
	path := writeInput(t, dir, "org.csv", cleanOrg)

	out, _, err := runCLI(t, "find", "rly", path)
	require.NoError(t, err)
	plain := stripANSI(out)
	assert.Contains(t, plain, "Riley  Engineer · Engineering  [E4]")
	assert.Contains(t, plain, "reports through Alex → Jamie")
}

func TestFindCmd_RootAndNoMatch(t *testing.T) {
	dir := inTempDir(t)
	path := writeInput(t, dir, "org.csv", cleanOrg)

	out, _, err := runCLI(t, "find", "alex", path)
	require.NoError(t, err)
	assert.Contains(t, stripANSI(out), "top of the hierarchy")

	out, _, err = runCLI(t, "find", "zzz", path)
	require.NoError(t, err)
	assert.Equal(t, "No one matches \"zzz\".\n", out)
}

func TestFindCmd_JSONAndLimit(t *testing.T) {
	dir := inTempDir(t)
	path := writeInput(t, dir, "org.csv", csvLines(
		"Employee ID,Full Name,Title,Department,Manager ID",
		"1,Samantha,CEO,Exec,",
		"2,Sam,VP,Sales,1",
		"3,Samuel,Rep,Sales,2",
	))

	out, _, err := runCLI(t, "find", "sam", path, "-o", "json")
	require.NoError(t, err)
	var hits []org.SearchHit
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 3)
	assert.Equal(t, "Sam", hits[0].Record.Name)
	assert.Equal(t, "1", hits[0].Chain[0].ID)

	out, _, err = runCLI(t, "find", "sam", path, "-o", "json", "--limit", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	assert.Len(t, hits, 1)
}

func TestFindCmd_WorksOnBrokenData(t *testing.T) {
	dir := inTempDir(t)
	path := writeInput(t, dir, "org.csv", brokenOrg)

	out, _, err := runCLI(t, "find", "jamie", path)
	require.NoError(t, err, "find does not gate on validation")
	assert.Contains(t, out, "Jamie")
}

func TestFindCmd_RequiresQueryAndInput(t *testing.T) {
	_, _, err := runCLI(t, "find", "only-query")
	require.Error(t, err)
}

func TestDepartmentsCmd(t *testing.T) {
	dir := inTempDir(t)
	path := writeInput(t, dir, "org.csv", cleanOrg)

	out, _, err := runCLI(t, "departments", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^DEPARTMENT\s+PEOPLE$`, lines[0])
	assert.Regexp(t, `^Engineering\s+2$`, lines[1])
	assert.Regexp(t, `^Exec\s+1$`, lines[2])
	assert.Regexp(t, `^Sales\s+2$`, lines[3])

	out, _, err = runCLI(t, "depts", path, "-o", "json")
	require.NoError(t, err)
	var depts []org.DepartmentCount
	require.NoError(t, json.Unmarshal([]byte(out), &depts))
	assert.Equal(t, []org.DepartmentCount{
		{Name: "Engineering", Count: 2},
		{Name: "Exec", Count: 1},
		{Name: "Sales", Count: 2},
	}, depts)
}

func TestDepartmentsCmd_None(t *testing.T) {
	dir := inTempDir(t)
	path := writeInput(t, dir, "org.csv", csvLines(
		"Employee ID,Full Name,Title,Department,Manager ID",
		"1,Alex,CEO,,",
	))

	out, _, err := runCLI(t, "departments", path)
	require.NoError(t, err)
	assert.Equal(t, "No departments found.\n", out)
}

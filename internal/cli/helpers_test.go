package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes rootCmd with args and returns what the command wrote to
// its stdout and stderr writers along with the returned error.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetRootCmd(t)

	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes color sequences so rendered text can be compared.
func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

// inTempDir changes into a fresh temporary directory for the test so no
// orgtree.toml from the repository is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

// writeInput writes content to name inside dir and returns the path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// csvLines joins rows into CSV file content.
func csvLines(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

// cleanOrg is a valid hierarchy:
//
//	Alex (CEO)
//	├── Jamie (VP Engineering)
//	│   └── Riley (Engineer)
//	└── Sam (VP Sales)
//	    └── Morgan (Account Exec)
var cleanOrg = csvLines(
	"Employee ID,Full Name,Title,Department,Manager ID",
	"E1,Alex,CEO,Exec,",
	"E2,Jamie,VP Engineering,Engineering,E1",
	"E3,Sam,VP Sales,Sales,E1",
	"E4,Riley,Engineer,Engineering,E2",
	"E6,Morgan,Account Exec,Sales,E3",
)

// brokenOrg has a duplicate id, a cycle and a dangling manager.
var brokenOrg = csvLines(
	"Employee ID,Full Name,Title,Department,Manager ID",
	"E1,Alex,CEO,Exec,",
	"E2,Jamie,Lead,Engineering,E3",
	"E3,Sam,Lead,Engineering,E2",
	"E4,Riley,Engineer,Engineering,E99",
	"E1,Alex Again,CEO,Exec,",
)

// warnOrg is acceptable but has two roots.
var warnOrg = csvLines(
	"Employee ID,Full Name,Title,Department,Manager ID",
	"E1,Alex,CEO,Exec,",
	"E2,Jamie,Founder,Exec,",
)

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetDefaults restores the global charmbracelet/log state after a test.
func resetDefaults(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		log.SetLevel(log.InfoLevel)
		log.SetOutput(os.Stderr)
		log.SetFormatter(log.TextFormatter)
		log.SetReportTimestamp(false)
	})
}

func TestOptions_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want log.Level
	}{
		{name: "default", opts: Options{}, want: log.InfoLevel},
		{name: "verbose", opts: Options{Verbose: true}, want: log.DebugLevel},
		{name: "quiet", opts: Options{Quiet: true}, want: log.ErrorLevel},
		{name: "quiet wins", opts: Options{Verbose: true, Quiet: true}, want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.opts.Level())
		})
	}
}

func TestSetup_AppliesLevel(t *testing.T) {
	resetDefaults(t)

	Setup(Options{Verbose: true, Output: &bytes.Buffer{}})
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Setup(Options{Quiet: true, Output: &bytes.Buffer{}})
	assert.Equal(t, log.ErrorLevel, log.GetLevel())
}

func TestSetup_JSONFormatter(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{JSON: true, Output: &buf})

	New("ingest").Info("loaded file", "rows", 3)

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "loaded file", rec["msg"])
	assert.Equal(t, "ingest", rec["prefix"])
	assert.EqualValues(t, 3, rec["rows"])
}

func TestSetup_TextFormatter(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{Output: &buf})

	New("cli").Warn("continuing despite warnings")

	out := buf.String()
	assert.Contains(t, out, "cli")
	assert.Contains(t, out, "continuing despite warnings")
}

func TestSetup_LevelFiltering(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{Quiet: true, Output: &buf})

	logger := New("watch")
	logger.Info("hidden")
	logger.Warn("hidden too")
	logger.Error("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestForFile(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{JSON: true, Output: &buf})

	ForFile(New("ingest"), "people.csv").Info("parsed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "people.csv", rec["file"])
}

func TestSetOutput(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{Output: os.Stderr})
	SetOutput(&buf)

	log.Info("captured")
	assert.Contains(t, buf.String(), "captured")
}

func TestLevelConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.DebugLevel, LevelDebug)
	assert.Equal(t, log.InfoLevel, LevelInfo)
	assert.Equal(t, log.WarnLevel, LevelWarn)
	assert.Equal(t, log.ErrorLevel, LevelError)
}

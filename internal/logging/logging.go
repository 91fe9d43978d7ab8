// Package logging configures orgtree's diagnostic output on top of
// charmbracelet/log.
//
// Diagnostics always go to stderr so that stdout carries only command
// output (trees, reports, JSON). Setup runs once from the root command's
// PersistentPreRunE; packages then take a component logger:
//
//	logger := logging.New("ingest")
//	logger.Debug("parsed file", "path", path, "rows", n)
//
// Child loggers copy the default logger's settings when created, so Setup
// must run before New is called for loggers that should honour --verbose.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases so callers need not import charmbracelet/log.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Options selects the verbosity and format of diagnostic output.
type Options struct {
	// Verbose lowers the level to Debug.
	Verbose bool
	// Quiet raises the level to Error. It wins over Verbose.
	Quiet bool
	// JSON switches to newline-delimited JSON records.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// Level returns the log level implied by the options.
func (o Options) Level() log.Level {
	switch {
	case o.Quiet:
		return log.ErrorLevel
	case o.Verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// Setup applies opts to the default logger.
func Setup(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	log.SetLevel(opts.Level())
	log.SetOutput(out)
	log.SetReportTimestamp(opts.JSON)

	if opts.JSON {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New returns a logger whose records carry the given component prefix,
// e.g. "INFO <ingest> loaded file".
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// ForFile returns a child of logger that tags every record with the input
// file it concerns.
func ForFile(logger *log.Logger, path string) *log.Logger {
	return logger.With("file", path)
}

// SetOutput redirects the default logger. Tests use it with a buffer.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

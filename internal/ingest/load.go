package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/logging"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

// Format is an input file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ErrNoMatches is returned when a glob pattern matches no files.
var ErrNoMatches = errors.New("pattern matched no files")

// DetectFormat returns override when set, otherwise the format implied by
// the file extension.
func DetectFormat(path string, override string) (Format, error) {
	name := override
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch Format(name) {
	case FormatCSV, FormatTSV, FormatXLSX, FormatJSON:
		return Format(name), nil
	case "txt":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, name)
}

// MappingFunc is consulted when a file's mapping is incomplete. It receives
// the detected mapping and returns the one to use. Returning an error
// aborts the load.
type MappingFunc func(t *Table, detected Mapping) (Mapping, error)

// Options controls Load.
type Options struct {
	// Format overrides extension-based detection when non-empty.
	Format string
	// Delimiter overrides the CSV/TSV delimiter when non-zero.
	Delimiter rune
	// Sheet selects the XLSX worksheet; empty means the first.
	Sheet string
	// Columns holds header overrides keyed by [columns] key.
	Columns map[string]string
	// Concurrency bounds parallel parsing. Values below 1 mean 1.
	Concurrency int
	// OnIncompleteMapping, when set, is called sequentially for files whose
	// required fields are not all mapped.
	OnIncompleteMapping MappingFunc
	// Logger receives per-file diagnostics. Nil discards them.
	Logger *log.Logger
}

// FileResult describes one loaded file.
type FileResult struct {
	Path     string         `json:"path"`
	Format   Format         `json:"format"`
	Encoding string         `json:"encoding"`
	Rows     int            `json:"rows"`
	Mapping  Mapping        `json:"mapping"`
	Warnings []ParseWarning `json:"warnings,omitempty"`
}

// Result is the outcome of Load. Records preserve file order, then row
// order within each file.
type Result struct {
	Records []org.Record
	Files   []FileResult
}

// Warnings returns all parse warnings prefixed with their file.
func (r *Result) Warnings() []string {
	var out []string
	for _, f := range r.Files {
		for _, w := range f.Warnings {
			out = append(out, fmt.Sprintf("%s: %s", f.Path, w))
		}
	}
	return out
}

// ExpandPatterns resolves each argument to file paths. Arguments without
// glob syntax are kept as is; globs use doublestar syntax (so "**" crosses
// directories) and must match at least one file. Matches are sorted within
// a pattern and duplicates across patterns are dropped.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}

	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[{") {
			add(p)
			continue
		}
		if !doublestar.ValidatePathPattern(filepath.ToSlash(p)) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%q: %w", p, ErrNoMatches)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

// Load reads every file named by patterns and returns their records.
// Files are parsed concurrently; column mapping then runs in argument
// order so interactive mapping never overlaps.
func Load(ctx context.Context, patterns []string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	paths, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	tables := make([]*Table, len(paths))
	formats := make([]Format, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			format, err := DetectFormat(path, opts.Format)
			if err != nil {
				return err
			}
			t, err := ReadFile(path, format, opts)
			if err != nil {
				return err
			}
			tables[i] = t
			formats[i] = format
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for i, t := range tables {
		m, err := resolveMapping(t, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
		records := Normalize(t, m)
		res.Records = append(res.Records, records...)
		res.Files = append(res.Files, FileResult{
			Path:     paths[i],
			Format:   formats[i],
			Encoding: t.Encoding,
			Rows:     len(records),
			Mapping:  m,
			Warnings: t.Warnings,
		})

		flog := logging.ForFile(logger, paths[i])
		flog.Debug("loaded", "format", formats[i], "encoding", t.Encoding, "rows", len(records))
		for _, w := range t.Warnings {
			flog.Warn(w.Message, "row", w.Row)
		}
	}
	return res, nil
}

func resolveMapping(t *Table, opts Options) (Mapping, error) {
	m, err := AutoDetect(t.Headers).Merge(opts.Columns)
	if err != nil {
		return nil, err
	}
	if len(m.Missing()) > 0 && opts.OnIncompleteMapping != nil {
		m, err = opts.OnIncompleteMapping(t, m)
		if err != nil {
			return nil, err
		}
	}
	if err := m.Check(t.Headers); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadFile parses a single file in the given format.
func ReadFile(path string, format Format, opts Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return ReadBytes(path, data, format, opts)
}

// ReadBytes parses in-memory file content in the given format.
func ReadBytes(source string, data []byte, format Format, opts Options) (*Table, error) {
	r := bytes.NewReader(data)
	switch format {
	case FormatCSV:
		return ReadCSV(source, r, CSVOptions{Delimiter: opts.Delimiter})
	case FormatTSV:
		delim := opts.Delimiter
		if delim == 0 {
			delim = '\t'
		}
		return ReadCSV(source, r, CSVOptions{Delimiter: delim})
	case FormatXLSX:
		return ReadXLSX(source, r, XLSXOptions{Sheet: opts.Sheet})
	case FormatJSON:
		return ReadJSON(source, r)
	default:
		return nil, fmt.Errorf("%s: %w %q", source, ErrUnsupportedFormat, format)
	}
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/config"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/ingest"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/logging"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

// inputFlags holds the flags shared by every command that reads records.
// Each command binds its own FlagSet to the same variables; only flags the
// user changed become configuration overrides.
type inputFlags struct {
	format      string
	sheet       string
	delimiter   string
	columns     []string
	interactive bool
	locale      string
	cyclePolicy string
	output      string
	departments []string
	query       string
}

var inFlags inputFlags

// addInputFlags registers the input and hierarchy flags on cmd. withView
// adds --dept and --query.
func addInputFlags(cmd *cobra.Command, withView bool) {
	f := cmd.Flags()
	f.StringVar(&inFlags.format, "format", "", "Input format: csv, tsv, xlsx, json (default: by extension)")
	f.StringVar(&inFlags.sheet, "sheet", "", "XLSX worksheet to read (default: first sheet)")
	f.StringVar(&inFlags.delimiter, "delimiter", "", `CSV delimiter, e.g. ";" or "\t"`)
	f.StringArrayVar(&inFlags.columns, "column", nil, "Map a field to a header, e.g. --column manager_id=\"Reports To\" (repeatable)")
	f.BoolVarP(&inFlags.interactive, "interactive", "i", false, "Prompt for columns that cannot be detected")
	f.StringVar(&inFlags.locale, "locale", "", "BCP 47 locale used to order names (default: und)")
	f.StringVar(&inFlags.cyclePolicy, "cycle-policy", "", "How to place reporting cycles: detach or promote")
	f.StringVarP(&inFlags.output, "output", "o", "", "Output format: text, json, yaml")
	if withView {
		f.StringArrayVar(&inFlags.departments, "dept", nil, "Show only this department (repeatable)")
		f.StringVar(&inFlags.query, "query", "", "Show only people whose name, title or department contains this text")
	}
}

// overrides turns the changed flags of cmd into configuration overrides.
func (fl *inputFlags) overrides(cmd *cobra.Command) (*config.CLIOverrides, error) {
	o := &config.CLIOverrides{}
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("format") {
		o.InputFormat = &fl.format
	}
	if changed("sheet") {
		o.Sheet = &fl.sheet
	}
	if changed("delimiter") {
		o.Delimiter = &fl.delimiter
	}
	if changed("locale") {
		o.Locale = &fl.locale
	}
	if changed("cycle-policy") {
		o.CyclePolicy = &fl.cyclePolicy
	}
	if changed("output") {
		o.Output = &fl.output
	}
	if changed("dept") {
		o.Departments = &fl.departments
	}
	if changed("query") {
		o.Query = &fl.query
	}

	if len(fl.columns) > 0 {
		o.Columns = make(map[string]string, len(fl.columns))
		for _, pair := range fl.columns {
			key, header, ok := strings.Cut(pair, "=")
			if !ok || strings.TrimSpace(header) == "" {
				return nil, fmt.Errorf("invalid --column %q: want field=header", pair)
			}
			key = strings.TrimSpace(key)
			if _, err := ingest.ParseField(key); err != nil {
				return nil, fmt.Errorf("invalid --column %q: %w", pair, err)
			}
			o.Columns[key] = strings.TrimSpace(header)
		}
	}
	return o, nil
}

// session is the loaded state shared by the record commands: resolved
// configuration, the records and the engine settings derived from both.
type session struct {
	resolved *config.ResolvedConfig
	loaded   *ingest.Result
	locale   language.Tag
	policy   org.CyclePolicy
	filter   org.ViewFilter
}

func (s *session) records() []org.Record {
	return s.loaded.Records
}

func (s *session) outputFormat() string {
	return s.resolved.Config.Output.Format
}

func (s *session) buildOptions() org.BuildOptions {
	return org.BuildOptions{Locale: s.locale, CyclePolicy: s.policy}
}

// source names the loaded input for headers and the browser title.
func (s *session) source() string {
	if len(s.loaded.Files) == 1 {
		return s.loaded.Files[0].Path
	}
	return fmt.Sprintf("%d files", len(s.loaded.Files))
}

// resolveSession resolves and validates configuration for cmd without
// reading any input.
func resolveSession(cmd *cobra.Command) (*session, error) {
	o, err := inFlags.overrides(cmd)
	if err != nil {
		return nil, err
	}
	resolved, meta, err := loadAndResolveConfig(o)
	if err != nil {
		return nil, err
	}

	result := config.Validate(resolved.Config, meta)
	logger := logging.New("config")
	for _, w := range result.Warnings() {
		logger.Warn(w.Message, "field", w.Field)
	}
	if result.HasErrors() {
		for _, e := range result.Errors() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  [%s] %s\n", e.Field, e.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s)", len(result.Errors()))
	}

	s := &session{resolved: resolved}
	c := resolved.Config
	if s.locale, err = org.ParseLocale(c.Hierarchy.Locale); err != nil {
		return nil, err
	}
	if s.policy, err = org.ParseCyclePolicy(c.Hierarchy.CyclePolicy); err != nil {
		return nil, err
	}
	s.filter = org.ViewFilter{Departments: c.View.Departments, Query: c.View.Query}
	return s, nil
}

// openSession resolves configuration and loads every input named by args.
func openSession(cmd *cobra.Command, args []string) (*session, error) {
	s, err := resolveSession(cmd)
	if err != nil {
		return nil, err
	}
	if err := s.load(cmd, args); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the inputs with the session's configuration, replacing any
// previously loaded records.
func (s *session) load(cmd *cobra.Command, args []string) error {
	in := s.resolved.Config.Input
	var delim rune
	if in.Delimiter != "" {
		d, err := ingest.ParseDelimiter(in.Delimiter)
		if err != nil {
			return err
		}
		delim = d
	}

	opts := ingest.Options{
		Format:      in.Format,
		Delimiter:   delim,
		Sheet:       in.Sheet,
		Columns:     s.resolved.Config.Columns.Overrides(),
		Concurrency: in.Concurrency,
		Logger:      logging.New("ingest"),
	}
	if inFlags.interactive {
		opts.OnIncompleteMapping = ingest.RunMappingWizard
	}

	loaded, err := ingest.Load(contextOrBackground(cmd.Context()), args, opts)
	if err != nil {
		return err
	}
	s.loaded = loaded
	return nil
}

// gate enforces the continue-or-stop decision on a report. Errors stop the
// command unless force is set; warnings are printed and never block.
func gate(cmd *cobra.Command, report *org.Report, force bool) error {
	logger := logging.New("validate")
	for _, w := range report.Warnings() {
		logger.Warn(w.Message, "category", w.Category)
	}
	if !report.HasErrors() {
		return nil
	}
	if force {
		logger.Warn("continuing despite validation errors", "errors", len(report.Errors()))
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), theme().ReportText(report))
	return fmt.Errorf("validation failed: %d error(s); fix the input or use --force", len(report.Errors()))
}

// contextOrBackground keeps commands usable when executed without a
// context, as in tests that call RunE directly.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

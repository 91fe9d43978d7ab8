package config

import (
	"strconv"
	"strings"
)

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from orgtree.toml.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// ResolvedConfig holds the merged configuration with per-key sources.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // dotted key, e.g. "hierarchy.locale"
	Path    string                  // config file used, empty if none
}

// CLIOverrides captures flag values that override configuration. A nil
// pointer means the flag was not given.
type CLIOverrides struct {
	InputFormat *string
	Delimiter   *string
	Sheet       *string
	Locale      *string
	CyclePolicy *string
	Departments *[]string
	Query       *string
	Output      *string
	// Columns maps column keys to headers, from repeated --column flags.
	Columns map[string]string
}

// EnvFunc looks up an environment variable. os.LookupEnv in production.
type EnvFunc func(key string) (string, bool)

// Resolve merges configuration in priority order:
// CLI flags > environment variables > config file > defaults.
//
// fileConfig is nil when no orgtree.toml was found.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	resolveFromDefaults(rc, defaults)
	if fileConfig != nil {
		resolveFromFile(rc, fileConfig)
	}
	resolveFromEnv(rc, envFn)
	resolveFromCLI(rc, overrides)

	return rc
}

// --- Layer 1: Defaults ---

func resolveFromDefaults(rc *ResolvedConfig, d *Config) {
	c := rc.Config

	setString(&c.Input.Format, d.Input.Format, "input.format", SourceDefault, rc.Sources)
	setString(&c.Input.Delimiter, d.Input.Delimiter, "input.delimiter", SourceDefault, rc.Sources)
	setString(&c.Input.Sheet, d.Input.Sheet, "input.sheet", SourceDefault, rc.Sources)
	c.Input.Concurrency = d.Input.Concurrency
	rc.Sources["input.concurrency"] = SourceDefault

	for _, key := range ColumnKeys {
		c.Columns.Set(key, d.Columns.Get(key))
		rc.Sources["columns."+key] = SourceDefault
	}

	setString(&c.Hierarchy.Locale, d.Hierarchy.Locale, "hierarchy.locale", SourceDefault, rc.Sources)
	setString(&c.Hierarchy.CyclePolicy, d.Hierarchy.CyclePolicy, "hierarchy.cycle_policy", SourceDefault, rc.Sources)

	c.View.Departments = copyStrings(d.View.Departments)
	rc.Sources["view.departments"] = SourceDefault
	setString(&c.View.Query, d.View.Query, "view.query", SourceDefault, rc.Sources)

	setString(&c.Output.Format, d.Output.Format, "output.format", SourceDefault, rc.Sources)
}

// --- Layer 2: File ---

func resolveFromFile(rc *ResolvedConfig, f *Config) {
	c := rc.Config

	mergeString(&c.Input.Format, f.Input.Format, "input.format", SourceFile, rc.Sources)
	mergeString(&c.Input.Delimiter, f.Input.Delimiter, "input.delimiter", SourceFile, rc.Sources)
	mergeString(&c.Input.Sheet, f.Input.Sheet, "input.sheet", SourceFile, rc.Sources)
	if f.Input.Concurrency != 0 {
		c.Input.Concurrency = f.Input.Concurrency
		rc.Sources["input.concurrency"] = SourceFile
	}

	for _, key := range ColumnKeys {
		if v := f.Columns.Get(key); v != "" {
			c.Columns.Set(key, v)
			rc.Sources["columns."+key] = SourceFile
		}
	}

	mergeString(&c.Hierarchy.Locale, f.Hierarchy.Locale, "hierarchy.locale", SourceFile, rc.Sources)
	mergeString(&c.Hierarchy.CyclePolicy, f.Hierarchy.CyclePolicy, "hierarchy.cycle_policy", SourceFile, rc.Sources)

	if len(f.View.Departments) > 0 {
		c.View.Departments = copyStrings(f.View.Departments)
		rc.Sources["view.departments"] = SourceFile
	}
	mergeString(&c.View.Query, f.View.Query, "view.query", SourceFile, rc.Sources)

	mergeString(&c.Output.Format, f.Output.Format, "output.format", SourceFile, rc.Sources)
}

// --- Layer 3: Environment ---

// Environment variable mapping:
//
//	ORGTREE_INPUT_FORMAT   -> input.format
//	ORGTREE_CONCURRENCY    -> input.concurrency (ignored unless an integer)
//	ORGTREE_LOCALE         -> hierarchy.locale
//	ORGTREE_CYCLE_POLICY   -> hierarchy.cycle_policy
//	ORGTREE_DEPARTMENTS    -> view.departments (comma-separated)
//	ORGTREE_OUTPUT         -> output.format
func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	c := rc.Config

	if val, ok := envFn("ORGTREE_INPUT_FORMAT"); ok {
		c.Input.Format = val
		rc.Sources["input.format"] = SourceEnv
	}
	if val, ok := envFn("ORGTREE_CONCURRENCY"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			c.Input.Concurrency = n
			rc.Sources["input.concurrency"] = SourceEnv
		}
	}
	if val, ok := envFn("ORGTREE_LOCALE"); ok {
		c.Hierarchy.Locale = val
		rc.Sources["hierarchy.locale"] = SourceEnv
	}
	if val, ok := envFn("ORGTREE_CYCLE_POLICY"); ok {
		c.Hierarchy.CyclePolicy = val
		rc.Sources["hierarchy.cycle_policy"] = SourceEnv
	}
	if val, ok := envFn("ORGTREE_DEPARTMENTS"); ok {
		c.View.Departments = splitList(val)
		rc.Sources["view.departments"] = SourceEnv
	}
	if val, ok := envFn("ORGTREE_OUTPUT"); ok {
		c.Output.Format = val
		rc.Sources["output.format"] = SourceEnv
	}
}

// --- Layer 4: CLI overrides ---

func resolveFromCLI(rc *ResolvedConfig, o *CLIOverrides) {
	c := rc.Config

	overrideString(&c.Input.Format, o.InputFormat, "input.format", rc.Sources)
	overrideString(&c.Input.Delimiter, o.Delimiter, "input.delimiter", rc.Sources)
	overrideString(&c.Input.Sheet, o.Sheet, "input.sheet", rc.Sources)
	overrideString(&c.Hierarchy.Locale, o.Locale, "hierarchy.locale", rc.Sources)
	overrideString(&c.Hierarchy.CyclePolicy, o.CyclePolicy, "hierarchy.cycle_policy", rc.Sources)
	overrideString(&c.View.Query, o.Query, "view.query", rc.Sources)
	overrideString(&c.Output.Format, o.Output, "output.format", rc.Sources)

	if o.Departments != nil {
		c.View.Departments = copyStrings(*o.Departments)
		rc.Sources["view.departments"] = SourceCLI
	}

	// The CLI rejects unknown column keys before resolution.
	for key, header := range o.Columns {
		if c.Columns.Set(key, header) {
			rc.Sources["columns."+key] = SourceCLI
		}
	}
}

// --- Helpers ---

// setString unconditionally sets the target and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only when value is non-empty. An empty
// string in the file means "not set in file".
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}

func overrideString(target *string, value *string, path string, sources map[string]ConfigSource) {
	if value != nil {
		*target = *value
		sources[path] = SourceCLI
	}
}

func copyStrings(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// splitList splits a comma-separated list, dropping blank entries.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError makes the configuration unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning is informational; the configuration still works.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue is a single configuration finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g. "hierarchy.locale"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors()) > 0
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings()) > 0
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	return vr.filter(SeverityError)
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	return vr.filter(SeverityWarning)
}

func (vr *ValidationResult) filter(s ValidationSeverity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}
	return out
}

var (
	recognizedInputFormats = map[string]bool{
		"":     true,
		"csv":  true,
		"tsv":  true,
		"xlsx": true,
		"json": true,
	}

	recognizedOutputFormats = map[string]bool{
		OutputText: true,
		OutputJSON: true,
		OutputYAML: true,
	}

	recognizedCyclePolicies = map[string]bool{
		"detach":  true,
		"promote": true,
	}
)

// MaxConcurrency caps input.concurrency.
const MaxConcurrency = 64

// Validate checks a resolved configuration. meta may be nil when no file
// was loaded; otherwise its undecoded keys become warnings.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateInput(vr, &cfg.Input)
	validateColumns(vr, &cfg.Columns)
	validateHierarchy(vr, &cfg.Hierarchy)
	validateView(vr, &cfg.View)
	validateOutput(vr, &cfg.Output)
	validateUnknownKeys(vr, meta)

	return vr
}

func validateInput(vr *ValidationResult, in *InputConfig) {
	if !recognizedInputFormats[in.Format] {
		addError(vr, "input.format",
			fmt.Sprintf("unrecognized format %q; must be one of: csv, tsv, xlsx, json, or empty", in.Format))
	}

	if in.Delimiter != "" {
		if utf8.RuneCountInString(in.Delimiter) != 1 {
			addError(vr, "input.delimiter",
				fmt.Sprintf("delimiter %q must be a single character", in.Delimiter))
		} else if strings.ContainsAny(in.Delimiter, "\"\r\n") {
			addError(vr, "input.delimiter",
				fmt.Sprintf("delimiter %q cannot be a quote or line break", in.Delimiter))
		}
	}

	if in.Concurrency < 1 || in.Concurrency > MaxConcurrency {
		addError(vr, "input.concurrency",
			fmt.Sprintf("must be between 1 and %d, got %d", MaxConcurrency, in.Concurrency))
	}

	if in.Sheet != "" && in.Format != "" && in.Format != "xlsx" {
		addWarning(vr, "input.sheet",
			fmt.Sprintf("sheet is only used for xlsx input, format is %q", in.Format))
	}
}

func validateColumns(vr *ValidationResult, c *ColumnsConfig) {
	claimed := make(map[string]string)
	for _, key := range ColumnKeys {
		header := c.Get(key)
		if header == "" {
			continue
		}
		if strings.TrimSpace(header) != header {
			addWarning(vr, "columns."+key,
				fmt.Sprintf("header %q has surrounding whitespace; headers are matched after trimming", header))
		}
		norm := strings.ToLower(strings.TrimSpace(header))
		if other, ok := claimed[norm]; ok {
			addWarning(vr, "columns."+key,
				fmt.Sprintf("header %q is also mapped to columns.%s", header, other))
			continue
		}
		claimed[norm] = key
	}
}

func validateHierarchy(vr *ValidationResult, h *HierarchyConfig) {
	if h.Locale != "" {
		if _, err := language.Parse(h.Locale); err != nil {
			addError(vr, "hierarchy.locale",
				fmt.Sprintf("invalid BCP 47 locale %q: %v", h.Locale, err))
		}
	}

	if h.CyclePolicy != "" && !recognizedCyclePolicies[h.CyclePolicy] {
		addError(vr, "hierarchy.cycle_policy",
			fmt.Sprintf("unrecognized cycle policy %q; must be one of: detach, promote", h.CyclePolicy))
	}
}

func validateView(vr *ValidationResult, v *ViewConfig) {
	for i, d := range v.Departments {
		if strings.TrimSpace(d) == "" {
			addError(vr, fmt.Sprintf("view.departments[%d]", i), "must not be empty")
		}
	}
}

func validateOutput(vr *ValidationResult, o *OutputConfig) {
	if !recognizedOutputFormats[o.Format] {
		addError(vr, "output.format",
			fmt.Sprintf("unrecognized output format %q; must be one of: text, json, yaml", o.Format))
	}
}

// validateUnknownKeys reports TOML keys that did not map to any field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}
	for _, key := range meta.Undecoded() {
		addWarning(vr, strings.Join(key, "."), "unknown configuration key")
	}
}

func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}

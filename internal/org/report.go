package org

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Severity distinguishes blocking issues from advisory ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category names the structural defect an Issue describes. Values are stable
// strings so they can be matched in JSON output.
type Category string

const (
	// CategoryMissingField aggregates every record lacking a required field.
	CategoryMissingField Category = "missing-field"

	// CategoryDuplicateID lists ids carried by more than one record.
	CategoryDuplicateID Category = "duplicate-id"

	// CategoryUnmatchedManager lists manager references that resolve to no
	// record.
	CategoryUnmatchedManager Category = "unmatched-manager"

	// CategoryCycle lists every record on a reporting cycle.
	CategoryCycle Category = "cycle"

	// CategoryMultipleRoots lists root ids when there is more than one.
	CategoryMultipleRoots Category = "multiple-roots"
)

// Issue is one structural finding. IDs is the complete affected set; it is
// never truncated for display.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Category Category `json:"category" yaml:"category"`
	Message  string   `json:"message" yaml:"message"`
	IDs      []string `json:"ids" yaml:"ids"`

	// Fields lists the missing field labels. Set for missing-field only.
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Cycles holds one id path per distinct cycle. Set for cycle only.
	Cycles [][]string `json:"cycles,omitempty" yaml:"cycles,omitempty"`
}

// Stats summarises a validated record set.
type Stats struct {
	TotalRecords          int `json:"totalRecords" yaml:"totalRecords"`
	RootCount             int `json:"rootCount" yaml:"rootCount"`
	UnmatchedManagerCount int `json:"unmatchedManagerCount" yaml:"unmatchedManagerCount"`
	DuplicateIDCount      int `json:"duplicateIdCount" yaml:"duplicateIdCount"`
}

// Report is the result of Validate. Acceptable is false exactly when an
// error-severity issue is present.
type Report struct {
	Acceptable bool     `json:"isAcceptable" yaml:"isAcceptable"`
	Issues     []Issue  `json:"issues" yaml:"issues"`
	Stats      Stats    `json:"stats" yaml:"stats"`
	Roots      []string `json:"roots" yaml:"roots"`
}

// HasErrors reports whether any issue blocks continuation.
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

// HasWarnings reports whether any advisory issue is present.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings()) > 0
}

// Errors returns the error-severity issues in report order.
func (r *Report) Errors() []Issue {
	return r.bySeverity(SeverityError)
}

// Warnings returns the warning-severity issues in report order.
func (r *Report) Warnings() []Issue {
	return r.bySeverity(SeverityWarning)
}

func (r *Report) bySeverity(s Severity) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Severity == s {
			out = append(out, is)
		}
	}
	return out
}

// ByCategory returns the issue of the given category, if present. Validate
// emits at most one issue per category.
func (r *Report) ByCategory(c Category) (Issue, bool) {
	for _, is := range r.Issues {
		if is.Category == c {
			return is, true
		}
	}
	return Issue{}, false
}

// Fingerprint returns a 16 hex digit digest of the report's canonical JSON
// encoding. Two reports for the same input always share a fingerprint.
func (r *Report) Fingerprint() string {
	data, err := json.Marshal(r)
	if err != nil {
		// Report holds only strings, ints and slices of them.
		panic(fmt.Sprintf("org: marshal report: %v", err))
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Summary returns a one-line description such as
// "12 records, 1 root, 2 errors, 0 warnings".
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s, %d %s", r.Stats.TotalRecords, plural(r.Stats.TotalRecords, "record"),
		r.Stats.RootCount, plural(r.Stats.RootCount, "root"))
	errs, warns := len(r.Errors()), len(r.Warnings())
	fmt.Fprintf(&b, ", %d %s, %d %s", errs, plural(errs, "error"), warns, plural(warns, "warning"))
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

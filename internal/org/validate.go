package org

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requiredLabels maps Record field names carrying a required tag to the
// label used in issue messages.
var requiredLabels = map[string]string{
	"ID":         "Employee ID",
	"Name":       "Full Name",
	"Title":      "Title",
	"Department": "Department",
}

// fieldValidator is safe for concurrent use and caches struct metadata.
var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate inspects records for structural defects and returns a report.
// It never modifies records and is deterministic: the same input always
// yields an equal report.
//
// Checks run independently, so one record can appear in several issues.
// Issues are emitted in a fixed order:
//
//  1. duplicate-id (error)
//  2. missing-field (error)
//  3. unmatched-manager (warning)
//  4. cycle (error)
//  5. multiple-roots (warning, only when more than one root exists)
//
// RootCount is always reported, even when there is a single root or none.
func Validate(records []Record) *Report {
	report := &Report{
		Issues: []Issue{},
		Roots:  []string{},
		Stats:  Stats{TotalRecords: len(records)},
	}

	if dup := duplicateIDs(records); len(dup) > 0 {
		report.Stats.DuplicateIDCount = len(dup)
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Category: CategoryDuplicateID,
			Message:  fmt.Sprintf("Found %d duplicate employee ID(s)", len(dup)),
			IDs:      dup,
		})
	}

	if fields, ids := missingFields(records); len(fields) > 0 {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Category: CategoryMissingField,
			Message:  "Some records are missing required fields: " + strings.Join(fields, ", "),
			IDs:      ids,
			Fields:   fields,
		})
	}

	graph := newManagerGraph(records)

	if unmatched := unmatchedManagers(records, graph); len(unmatched) > 0 {
		report.Stats.UnmatchedManagerCount = len(unmatched)
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Category: CategoryUnmatchedManager,
			Message:  fmt.Sprintf("%d manager ID(s) do not match any employee ID", len(unmatched)),
			IDs:      unmatched,
		})
	}

	if cs := graph.findCycles(); len(cs.paths) > 0 {
		var ids []string
		for _, p := range cs.paths {
			ids = append(ids, p...)
		}
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Category: CategoryCycle,
			Message:  fmt.Sprintf("Detected %d cycle(s) in reporting structure", len(cs.paths)),
			IDs:      ids,
			Cycles:   cs.paths,
		})
	}

	for _, r := range records {
		if isRoot(r, graph) {
			report.Roots = append(report.Roots, r.ID)
		}
	}
	report.Stats.RootCount = len(report.Roots)
	if len(report.Roots) > 1 {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Category: CategoryMultipleRoots,
			Message:  fmt.Sprintf("Found %d top-level employees (multiple roots)", len(report.Roots)),
			IDs:      append([]string(nil), report.Roots...),
		})
	}

	report.Acceptable = !report.HasErrors()
	return report
}

// isRoot is the single root rule shared by Validate and Build: a record is
// a root when it names no manager or names one that does not resolve.
func isRoot(r Record, g *managerGraph) bool {
	return r.ManagerID == "" || !g.resolves(r.ManagerID)
}

// duplicateIDs returns each id carried by more than one record, in order of
// its second occurrence. Empty ids are left to the missing-field check.
func duplicateIDs(records []Record) []string {
	seen := make(map[string]int, len(records))
	var dup []string
	for _, r := range records {
		// Empty ids surface through the missing-field issue instead.
		if r.ID == "" {
			continue
		}
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dup = append(dup, r.ID)
		}
	}
	return dup
}

// missingFields returns the distinct missing field labels in first-seen
// order and the distinct non-empty ids of incomplete records.
func missingFields(records []Record) (fields, ids []string) {
	seenField := make(map[string]bool)
	seenID := make(map[string]bool)
	for _, r := range records {
		err := fieldValidator.Struct(r)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			continue
		}
		for _, fe := range verrs {
			label, ok := requiredLabels[fe.StructField()]
			if !ok || seenField[label] {
				continue
			}
			seenField[label] = true
			fields = append(fields, label)
		}
		if r.ID != "" && !seenID[r.ID] {
			seenID[r.ID] = true
			ids = append(ids, r.ID)
		}
	}
	return fields, ids
}

// unmatchedManagers returns the distinct manager references that resolve
// to no record, in first-seen order.
func unmatchedManagers(records []Record, g *managerGraph) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.ManagerID == "" || g.resolves(r.ManagerID) || seen[r.ManagerID] {
			continue
		}
		seen[r.ManagerID] = true
		out = append(out, r.ManagerID)
	}
	return out
}

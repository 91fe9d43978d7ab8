package org

import "golang.org/x/text/language"

// DepartmentCount is one distinct department and how many records carry it.
type DepartmentCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Departments returns the distinct non-empty departments of records,
// collated under locale, with head-counts.
func Departments(records []Record, locale language.Tag) []DepartmentCount {
	counts := make(map[string]int)
	var names []string
	for _, r := range records {
		if r.Department == "" {
			continue
		}
		if counts[r.Department] == 0 {
			names = append(names, r.Department)
		}
		counts[r.Department]++
	}

	newNameSorter(locale).sortStrings(names)

	out := make([]DepartmentCount, 0, len(names))
	for _, n := range names {
		out = append(out, DepartmentCount{Name: n, Count: counts[n]})
	}
	return out
}

// DepartmentNames returns just the names from Departments.
func DepartmentNames(records []Record, locale language.Tag) []string {
	depts := Departments(records, locale)
	names := make([]string, len(depts))
	for i, d := range depts {
		names[i] = d.Name
	}
	return names
}

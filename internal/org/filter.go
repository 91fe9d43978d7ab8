package org

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// ErrInvalidPredicate is returned by Filter when a ViewFilter cannot be
// evaluated. It signals a caller bug, not a data problem.
var ErrInvalidPredicate = errors.New("invalid view predicate")

// ViewFilter restricts a forest to matching nodes and their ancestors.
// An empty Departments set and an empty Query each mean "no restriction".
type ViewFilter struct {
	Departments []string `json:"departments,omitempty" yaml:"departments,omitempty"`
	Query       string   `json:"query,omitempty" yaml:"query,omitempty"`
}

// IsEmpty reports whether the filter keeps every node.
func (f ViewFilter) IsEmpty() bool {
	return len(f.Departments) == 0 && f.Query == ""
}

func (f ViewFilter) check() error {
	if !utf8.ValidString(f.Query) {
		return fmt.Errorf("%w: query is not valid UTF-8", ErrInvalidPredicate)
	}
	for i, d := range f.Departments {
		if !utf8.ValidString(d) {
			return fmt.Errorf("%w: department %d is not valid UTF-8", ErrInvalidPredicate, i)
		}
	}
	return nil
}

// Filter returns a new forest holding the nodes of roots that satisfy f,
// plus every ancestor of such a node. A node satisfies f when its
// department is in f.Departments (or the set is empty) and f.Query is a
// case-insensitive substring of its name, title or department (or the
// query is empty). Satisfying nodes carry Match; ancestors kept only for
// context do not. Subtrees with no satisfying node are dropped.
//
// roots is never modified. When f is empty, roots is returned as is.
func Filter(roots []*Node, f ViewFilter) ([]*Node, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	if f.IsEmpty() {
		return roots, nil
	}

	m := newMatcher(f)
	out := []*Node{}
	for _, r := range roots {
		if kept := m.filter(r); kept != nil {
			out = append(out, kept)
		}
	}
	return out, nil
}

// matcher evaluates one ViewFilter. The caser is stateful, so a matcher
// belongs to a single Filter call.
type matcher struct {
	fold  cases.Caser
	depts map[string]bool
	query string
}

func newMatcher(f ViewFilter) *matcher {
	m := &matcher{fold: cases.Fold()}
	if len(f.Departments) > 0 {
		m.depts = make(map[string]bool, len(f.Departments))
		for _, d := range f.Departments {
			m.depts[d] = true
		}
	}
	m.query = m.fold.String(f.Query)
	return m
}

func (m *matcher) matches(n *Node) bool {
	if m.depts != nil && !m.depts[n.Department] {
		return false
	}
	if m.query == "" {
		return true
	}
	for _, field := range []string{n.Name, n.Title, n.Department} {
		if strings.Contains(m.fold.String(field), m.query) {
			return true
		}
	}
	return false
}

// filter works bottom-up: children are filtered first, then n is kept if
// it matches or any child survived.
func (m *matcher) filter(n *Node) *Node {
	children := []*Node{}
	for _, c := range n.Children {
		if kept := m.filter(c); kept != nil {
			children = append(children, kept)
		}
	}

	match := m.matches(n)
	if !match && len(children) == 0 {
		return nil
	}
	return &Node{Record: n.Record, Children: children, Match: match}
}

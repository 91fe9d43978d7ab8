package org

import (
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the CLDR root collation.
const DefaultLocale = "und"

// ParseLocale parses a BCP 47 tag. The empty string selects DefaultLocale.
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("parsing locale %q: %w", s, err)
	}
	return tag, nil
}

// nameSorter orders nodes by name under one locale. A collator keeps
// internal buffers, so each sorter belongs to a single call.
type nameSorter struct {
	col *collate.Collator
}

func newNameSorter(tag language.Tag) *nameSorter {
	return &nameSorter{col: collate.New(tag)}
}

// sort orders nodes by name in place. Equal names keep their input order.
func (s *nameSorter) sort(nodes []*Node) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return s.col.CompareString(a.Name, b.Name)
	})
}

// sortTree sorts every children list below the given nodes.
func (s *nameSorter) sortTree(nodes []*Node) {
	for _, n := range nodes {
		n.Walk(func(node *Node, _ int) bool {
			s.sort(node.Children)
			return true
		})
	}
}

// sortStrings orders plain strings in place.
func (s *nameSorter) sortStrings(values []string) {
	slices.SortStableFunc(values, s.col.CompareString)
}

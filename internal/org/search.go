package org

import (
	"cmp"
	"slices"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchHit is one person found by Search. Chain lists the hit's managers
// from the top of its tree down to its direct manager.
type SearchHit struct {
	Record   Record   `json:"record" yaml:"record"`
	Chain    []Record `json:"chain" yaml:"chain"`
	Distance int      `json:"distance" yaml:"distance"`
}

// Search fuzzy-matches query against the names of every node under roots.
// A query matches when its characters appear in order in the name, ignoring
// case and diacritics. Hits are ordered by edit distance, then by position
// in a pre-order walk. A limit of zero or less returns every hit.
func Search(roots []*Node, query string, limit int) []SearchHit {
	type entry struct {
		node  *Node
		chain []Record
	}

	var entries []entry
	var stack []Record
	var visit func(n *Node)
	visit = func(n *Node) {
		entries = append(entries, entry{node: n, chain: slices.Clone(stack)})
		stack = append(stack, n.Record)
		for _, c := range n.Children {
			visit(c)
		}
		stack = stack[:len(stack)-1]
	}
	for _, r := range roots {
		visit(r)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.node.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		return cmp.Or(cmp.Compare(a.Distance, b.Distance), cmp.Compare(a.OriginalIndex, b.OriginalIndex))
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}

	hits := make([]SearchHit, 0, len(ranks))
	for _, rk := range ranks {
		e := entries[rk.OriginalIndex]
		chain := e.chain
		if chain == nil {
			chain = []Record{}
		}
		hits = append(hits, SearchHit{Record: e.node.Record, Chain: chain, Distance: rk.Distance})
	}
	return hits
}

// PathTo returns the nodes from a root down to the first node with the
// given id, or nil if no node carries it.
func PathTo(roots []*Node, id string) []*Node {
	var path []*Node
	var find func(n *Node) bool
	find = func(n *Node) bool {
		path = append(path, n)
		if n.ID == id {
			return true
		}
		for _, c := range n.Children {
			if find(c) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	for _, r := range roots {
		if find(r) {
			return path
		}
	}
	return nil
}

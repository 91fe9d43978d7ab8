package org

import (
	"fmt"

	"golang.org/x/text/language"
)

// CyclePolicy selects how Build places records that sit on a reporting
// cycle. Such records have a resolvable manager but can never reach a root.
type CyclePolicy string

const (
	// CycleDetach cuts every edge between two members of the same cycle
	// and returns the members in Forest.Detached. Roots still equal the
	// validator's root set.
	CycleDetach CyclePolicy = "detach"

	// CyclePromote makes the first member of each cycle (by input order)
	// a root and hangs the rest of the cycle beneath it. Roots then
	// include records the validator does not count as roots.
	CyclePromote CyclePolicy = "promote"
)

// ParseCyclePolicy converts a config value into a CyclePolicy. The empty
// string selects CycleDetach.
func ParseCyclePolicy(s string) (CyclePolicy, error) {
	switch CyclePolicy(s) {
	case "", CycleDetach:
		return CycleDetach, nil
	case CyclePromote:
		return CyclePromote, nil
	default:
		return "", fmt.Errorf("unknown cycle policy %q (want %q or %q)", s, CycleDetach, CyclePromote)
	}
}

// BuildOptions tunes Build. The zero value sorts with the root collation
// and detaches cycles.
type BuildOptions struct {
	Locale      language.Tag
	CyclePolicy CyclePolicy
}

// Build turns a flat record list into a forest. It never fails and never
// modifies records: every node holds its own copy.
//
// A record is a root when its manager is empty or unresolved; otherwise it
// is attached under the record its manager id names. When ids repeat, the
// last record carrying the id receives the subordinates. Roots and every
// children list are stable-sorted by name under opts.Locale.
//
// Records on a reporting cycle are handled per opts.CyclePolicy; either
// way the result is acyclic and every record appears exactly once.
func Build(records []Record, opts BuildOptions) *Forest {
	graph := newManagerGraph(records)
	cycles := graph.findCycles()

	nodes := make([]*Node, len(records))
	index := make(map[string]*Node, len(records))
	for i, r := range records {
		nodes[i] = newNode(r)
		index[r.ID] = nodes[i]
	}

	promoted := promotedMembers(records, cycles, opts.CyclePolicy)

	forest := &Forest{Roots: []*Node{}}
	for i, r := range records {
		node := nodes[i]
		switch {
		case isRoot(r, graph):
			forest.Roots = append(forest.Roots, node)
		case promoted[i]:
			forest.Roots = append(forest.Roots, node)
		case opts.CyclePolicy != CyclePromote && cycleEdge(r, cycles):
			forest.Detached = append(forest.Detached, node)
		default:
			parent := index[r.ManagerID]
			parent.Children = append(parent.Children, node)
		}
	}

	sorter := newNameSorter(opts.Locale)
	sorter.sort(forest.Roots)
	sorter.sort(forest.Detached)
	sorter.sortTree(forest.Roots)
	sorter.sortTree(forest.Detached)
	return forest
}

// cycleEdge reports whether r and its manager belong to the same cycle.
func cycleEdge(r Record, cs cycleSet) bool {
	ci, ok := cs.member[r.ID]
	if !ok {
		return false
	}
	cm, ok := cs.member[r.ManagerID]
	return ok && ci == cm
}

// promotedMembers marks, for CyclePromote, the record index of the first
// member of each cycle in input order. Only the record that supplies the
// id's edge is promoted, so an earlier duplicate keeps its own placement.
func promotedMembers(records []Record, cs cycleSet, policy CyclePolicy) map[int]bool {
	promoted := make(map[int]bool)
	if policy != CyclePromote || len(cs.paths) == 0 {
		return promoted
	}

	lastIndex := make(map[string]int, len(records))
	for i, r := range records {
		lastIndex[r.ID] = i
	}

	done := make(map[int]bool, len(cs.paths))
	for _, r := range records {
		ci, ok := cs.member[r.ID]
		if !ok || done[ci] {
			continue
		}
		done[ci] = true
		promoted[lastIndex[r.ID]] = true
	}
	return promoted
}

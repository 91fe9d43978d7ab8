// Package org holds the hierarchy engine: the record model, the structural
// validator, the forest builder and the view filter. Everything in this
// package is pure and synchronous; callers own all I/O.
package org

// Record is one row of organizational data after column mapping. Empty
// strings mean "missing". ManagerID is a reference to another record's ID
// and may point nowhere or at the record itself; the validator reports both.
// IDs are not guaranteed unique.
type Record struct {
	ID         string `json:"id" yaml:"id" validate:"required"`
	Name       string `json:"name" yaml:"name" validate:"required"`
	Title      string `json:"title" yaml:"title" validate:"required"`
	Department string `json:"department" yaml:"department" validate:"required"`
	ManagerID  string `json:"managerId,omitempty" yaml:"managerId,omitempty"`
	Email      string `json:"email,omitempty" yaml:"email,omitempty"`
	Location   string `json:"location,omitempty" yaml:"location,omitempty"`
	PhotoURL   string `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty"`
}

// HasManager reports whether the record names a manager at all.
func (r Record) HasManager() bool {
	return r.ManagerID != ""
}

// Node is a Record placed in a forest. Children is never nil.
type Node struct {
	Record   `yaml:",inline"`
	Children []*Node `json:"children" yaml:"children"`

	// Match is set by Filter on nodes that satisfied the view predicates
	// themselves, as opposed to ancestors kept only for context.
	Match bool `json:"match,omitempty" yaml:"match,omitempty"`
}

func newNode(r Record) *Node {
	return &Node{Record: r, Children: []*Node{}}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Forest is the output of Build.
type Forest struct {
	// Roots holds records with no manager or an unresolved manager, sorted
	// by name.
	Roots []*Node `json:"roots" yaml:"roots"`

	// Detached holds cycle members that could not be placed under any root
	// when the detach policy is in effect. Each entry keeps its non-cycle
	// subordinates beneath it.
	Detached []*Node `json:"detached,omitempty" yaml:"detached,omitempty"`
}

// Count returns the number of nodes reachable from Roots and Detached.
func (f *Forest) Count() int {
	total := 0
	for _, r := range f.Roots {
		total += r.Size()
	}
	for _, d := range f.Detached {
		total += d.Size()
	}
	return total
}

// DetachedIDs returns the ids of the detached cycle members.
func (f *Forest) DetachedIDs() []string {
	ids := make([]string, 0, len(f.Detached))
	for _, d := range f.Detached {
		ids = append(ids, d.ID)
	}
	return ids
}

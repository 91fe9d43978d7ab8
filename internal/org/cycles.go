package org

// managerGraph is the id -> manager id relation over a record set. Every id
// is a single vertex; when ids repeat, the last record carrying the id
// supplies its outgoing edge.
type managerGraph struct {
	// order lists distinct ids by first appearance.
	order []string
	// next maps an id to its manager id, for managers that resolve.
	next map[string]string
	// present is the set of ids that occur in the input.
	present map[string]bool
}

func newManagerGraph(records []Record) *managerGraph {
	g := &managerGraph{
		next:    make(map[string]string, len(records)),
		present: make(map[string]bool, len(records)),
	}
	for _, r := range records {
		if !g.present[r.ID] {
			g.order = append(g.order, r.ID)
		}
		g.present[r.ID] = true
	}
	for _, r := range records {
		if r.ManagerID != "" && g.present[r.ManagerID] {
			g.next[r.ID] = r.ManagerID
		} else {
			delete(g.next, r.ID)
		}
	}
	return g
}

// resolves reports whether id names a record in the set.
func (g *managerGraph) resolves(id string) bool {
	return g.present[id]
}

// cycleSet is the outcome of findCycles.
type cycleSet struct {
	// paths holds one id path per distinct cycle, each starting at the
	// first vertex of the cycle reached by the walk.
	paths [][]string
	// member maps a cycle vertex to the index of its cycle in paths.
	member map[string]int
}

// findCycles walks the manager graph with three-color marking. Out-degree
// is at most one, so each walk is a chain; reaching a gray vertex closes
// exactly one new cycle and a black vertex ends the chain. Each vertex is
// visited once, so the walk is linear and each cycle is reported once.
func (g *managerGraph) findCycles() cycleSet {
	const (
		colorWhite = 0
		colorGray  = 1
		colorBlack = 2
	)

	color := make(map[string]int, len(g.order))
	cs := cycleSet{member: make(map[string]int)}

	for _, start := range g.order {
		if color[start] != colorWhite {
			continue
		}

		var path []string
		pos := make(map[string]int)
		id := start
		for {
			color[id] = colorGray
			pos[id] = len(path)
			path = append(path, id)

			mgr, ok := g.next[id]
			if !ok {
				break
			}
			if color[mgr] == colorGray {
				cycle := append([]string(nil), path[pos[mgr]:]...)
				for _, m := range cycle {
					cs.member[m] = len(cs.paths)
				}
				cs.paths = append(cs.paths, cycle)
				break
			}
			if color[mgr] == colorBlack {
				break
			}
			id = mgr
		}

		for _, p := range path {
			color[p] = colorBlack
		}
	}
	return cs
}

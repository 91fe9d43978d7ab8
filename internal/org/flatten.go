package org

// Row is one node of a flattened forest. ParentID is nil for roots.
type Row struct {
	ID         string  `json:"id" yaml:"id"`
	ParentID   *string `json:"parentId" yaml:"parentId"`
	Depth      int     `json:"depth" yaml:"depth"`
	Name       string  `json:"name" yaml:"name"`
	Title      string  `json:"title" yaml:"title"`
	Department string  `json:"department" yaml:"department"`
	Email      string  `json:"email,omitempty" yaml:"email,omitempty"`
	Location   string  `json:"location,omitempty" yaml:"location,omitempty"`
	PhotoURL   string  `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty"`
	Match      bool    `json:"match,omitempty" yaml:"match,omitempty"`
}

// Flatten lists every node of roots in pre-order, so a parent always
// precedes its children.
func Flatten(roots []*Node) []Row {
	rows := []Row{}
	for _, r := range roots {
		rows = appendRows(rows, r, nil, 0)
	}
	return rows
}

func appendRows(rows []Row, n *Node, parent *string, depth int) []Row {
	rows = append(rows, Row{
		ID:         n.ID,
		ParentID:   parent,
		Depth:      depth,
		Name:       n.Name,
		Title:      n.Title,
		Department: n.Department,
		Email:      n.Email,
		Location:   n.Location,
		PhotoURL:   n.PhotoURL,
		Match:      n.Match,
	})
	id := n.ID
	for _, c := range n.Children {
		rows = appendRows(rows, c, &id, depth+1)
	}
	return rows
}

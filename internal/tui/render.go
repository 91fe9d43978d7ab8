package tui

import (
	"fmt"
	"strings"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

// maxListedIDs caps the ids printed per issue in text output. The JSON and
// YAML reports always carry the full list.
const maxListedIDs = 10

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// TreeLines renders a forest as indented lines with box-drawing guides.
// When highlight is set, nodes that matched a filter are styled as matches.
func (t Theme) TreeLines(roots []*org.Node, highlight bool) []string {
	var lines []string
	var walk func(n *org.Node, prefix string, last bool, top bool)
	walk = func(n *org.Node, prefix string, last bool, top bool) {
		guide, childPrefix := "", ""
		if !top {
			if last {
				guide, childPrefix = "└── ", prefix+"    "
			} else {
				guide, childPrefix = "├── ", prefix+"│   "
			}
		}
		lines = append(lines, t.TreeGuide.Render(prefix+guide)+t.nodeLabel(n, highlight))
		for i, c := range n.Children {
			walk(c, childPrefix, i == len(n.Children)-1, false)
		}
	}
	for _, r := range roots {
		walk(r, "", true, true)
	}
	return lines
}

func (t Theme) nodeLabel(n *org.Node, highlight bool) string {
	name := n.Name
	if name == "" {
		name = "(" + n.ID + ")"
	}
	styled := t.TreeName.Render(name)
	if highlight && n.Match {
		styled = t.TreeMatch.Render(name)
	}

	var parts []string
	if n.Title != "" {
		parts = append(parts, t.TreeTitle.Render(n.Title))
	}
	if n.Department != "" {
		parts = append(parts, t.TreeDept.Render(n.Department))
	}
	if len(parts) == 0 {
		return styled
	}
	return styled + "  " + strings.Join(parts, " · ")
}

// ForestText renders a full forest, followed by a section listing detached
// cycle members when there are any.
func (t Theme) ForestText(f *org.Forest, highlight bool) string {
	var b strings.Builder
	for _, line := range t.TreeLines(f.Roots, highlight) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(f.Detached) > 0 {
		if len(f.Roots) > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(t.Detached.Render("Detached (reporting cycle):"))
		b.WriteByte('\n')
		for _, line := range t.TreeLines(f.Detached, highlight) {
			b.WriteString("  " + line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Report
// ---------------------------------------------------------------------------

// ReportText renders a validation report for the terminal.
func (t Theme) ReportText(r *org.Report) string {
	var b strings.Builder
	if r.Acceptable {
		b.WriteString(t.Acceptable.Render("✓ acceptable"))
	} else {
		b.WriteString(t.Rejected.Render("✗ not acceptable"))
	}
	fmt.Fprintf(&b, "  %s\n", r.Summary())

	for _, is := range r.Issues {
		mark := t.IssueWarn.Render("!")
		if is.Severity == org.SeverityError {
			mark = t.IssueError.Render("✗")
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", mark, t.HelpDesc.Render(string(is.Category)), is.Message)

		switch {
		case len(is.Cycles) > 0:
			for _, c := range is.Cycles {
				fmt.Fprintf(&b, "      %s → %s\n", strings.Join(c, " → "), c[0])
			}
		case len(is.IDs) > 0:
			fmt.Fprintf(&b, "      ids: %s\n", listIDs(is.IDs))
		}
	}
	return b.String()
}

func listIDs(ids []string) string {
	if len(ids) <= maxListedIDs {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s, … (%d more)", strings.Join(ids[:maxListedIDs], ", "), len(ids)-maxListedIDs)
}

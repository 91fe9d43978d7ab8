package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// MinTerminalWidth is the narrowest terminal the browser lays out in.
const MinTerminalWidth = 60

// MinTerminalHeight is the shortest terminal the browser lays out in.
const MinTerminalHeight = 12

// DefaultSidebarWidth is the outer width of the search and department
// panes, borders included.
const DefaultSidebarWidth = 32

// TitleBarHeight is the number of rows used by the title bar.
const TitleBarHeight = 1

// StatusBarHeight is the number of rows used by the status bar.
const StatusBarHeight = 1

// QueryPaneHeight is the outer height of the search pane: one input line
// plus its title and border.
const QueryPaneHeight = 4

// paneFrame is the border plus horizontal padding around pane content.
const (
	paneFrameWidth  = 4
	paneFrameHeight = 2
)

// PanelDimensions holds the outer size of one pane in terminal cells.
type PanelDimensions struct {
	Width  int
	Height int
}

// Inner returns the content area inside a bordered, padded pane.
func (d PanelDimensions) Inner() PanelDimensions {
	return PanelDimensions{
		Width:  max(d.Width-paneFrameWidth, 1),
		Height: max(d.Height-paneFrameHeight, 1),
	}
}

// Layout computes pane sizes for the browser:
//
//	+-------------------------------------------+
//	| Title Bar                                 |
//	+-------------+-----------------------------+
//	| Search      | Tree                        |
//	+-------------+                             |
//	| Departments |                             |
//	+-------------+-----------------------------+
//	| Status Bar                                |
//	+-------------------------------------------+
type Layout struct {
	termWidth  int
	termHeight int

	TitleBar    PanelDimensions
	Query       PanelDimensions
	Departments PanelDimensions
	Tree        PanelDimensions
	StatusBar   PanelDimensions
}

// Resize recalculates pane sizes. It records the terminal size and
// returns false when the terminal is below the minimum.
func (l *Layout) Resize(width, height int) bool {
	l.termWidth = width
	l.termHeight = height
	if l.IsTooSmall() {
		return false
	}

	content := height - TitleBarHeight - StatusBarHeight
	l.TitleBar = PanelDimensions{Width: width, Height: TitleBarHeight}
	l.Query = PanelDimensions{Width: DefaultSidebarWidth, Height: QueryPaneHeight}
	l.Departments = PanelDimensions{Width: DefaultSidebarWidth, Height: max(content-QueryPaneHeight, 1)}
	l.Tree = PanelDimensions{Width: max(width-DefaultSidebarWidth, 1), Height: content}
	l.StatusBar = PanelDimensions{Width: width, Height: StatusBarHeight}
	return true
}

// IsTooSmall reports whether the last recorded size is below the minimum.
func (l Layout) IsTooSmall() bool {
	return l.termWidth < MinTerminalWidth || l.termHeight < MinTerminalHeight
}

// TerminalSize returns the last recorded terminal size.
func (l Layout) TerminalSize() (int, int) {
	return l.termWidth, l.termHeight
}

// Render joins pre-rendered pane contents into a full frame. Pane styles
// supply borders; Render applies the computed sizes.
func (l Layout) Render(titleBar, query, departments, tree, statusBar string, queryStyle, deptStyle, treeStyle lipgloss.Style) string {
	size := func(s lipgloss.Style, d PanelDimensions, content string) string {
		inner := d.Inner()
		return s.Width(inner.Width + paneFrameWidth - 2).Height(inner.Height).Render(content)
	}

	titleView := lipgloss.NewStyle().Width(l.TitleBar.Width).MaxHeight(TitleBarHeight).Render(titleBar)
	statusView := lipgloss.NewStyle().Width(l.StatusBar.Width).MaxHeight(StatusBarHeight).Render(statusBar)

	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		size(queryStyle, l.Query, query),
		size(deptStyle, l.Departments, departments),
	)
	middle := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, size(treeStyle, l.Tree, tree))
	return lipgloss.JoinVertical(lipgloss.Left, titleView, middle, statusView)
}

// RenderTooSmall returns a centered message asking for a larger terminal.
func (l Layout) RenderTooSmall(theme Theme) string {
	styled := theme.ErrorText.Render("Terminal too small.\nPlease resize to at least 60×12.")
	if l.termWidth <= 0 || l.termHeight <= 0 {
		return styled
	}
	return lipgloss.Place(l.termWidth, l.termHeight, lipgloss.Center, lipgloss.Center, styled)
}

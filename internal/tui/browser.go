package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/logging"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

// BrowserConfig holds the data shown by the browser.
type BrowserConfig struct {
	// Version is shown in the title bar.
	Version string
	// Source names the loaded input, e.g. "org.csv" or "3 files".
	Source string
	// Forest is the built hierarchy. It is never modified.
	Forest *org.Forest
	// Departments feeds the toggle list, usually from org.Departments.
	Departments []org.DepartmentCount
	// Initial pre-selects departments and the query.
	Initial org.ViewFilter
}

type deptItem struct {
	name  string
	count int
	on    bool
}

// Browser is the Bubble Tea model for interactive browsing. Every change
// to the query or the department selection re-runs org.Filter on the base
// forest.
type Browser struct {
	cfg    BrowserConfig
	theme  Theme
	keys   KeyMap
	help   HelpOverlay
	layout Layout

	ready    bool
	quitting bool
	focus    Pane

	query  textinput.Model
	depts  []deptItem
	cursor int
	tree   viewport.Model

	shown    int
	filtered bool
	err      error
}

// NewBrowser builds a browser with the query pane focused and the initial
// filter applied.
func NewBrowser(cfg BrowserConfig) Browser {
	if cfg.Forest == nil {
		cfg.Forest = &org.Forest{}
	}
	theme := DefaultTheme()
	keys := DefaultKeyMap()

	q := textinput.New()
	q.Placeholder = "name, title or department"
	q.Prompt = "/ "
	q.SetValue(cfg.Initial.Query)
	q.Focus()

	selected := make(map[string]bool, len(cfg.Initial.Departments))
	for _, d := range cfg.Initial.Departments {
		selected[d] = true
	}
	depts := make([]deptItem, len(cfg.Departments))
	for i, d := range cfg.Departments {
		depts[i] = deptItem{name: d.Name, count: d.Count, on: selected[d.Name]}
	}

	b := Browser{
		cfg:   cfg,
		theme: theme,
		keys:  keys,
		help:  NewHelpOverlay(theme, keys),
		focus: PaneQuery,
		query: q,
		depts: depts,
		tree:  viewport.New(0, 0),
	}
	b.refilter()
	return b
}

// Init starts the cursor blink of the query input.
func (b Browser) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles resizes and keys.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		b.ready = true
		b.help.SetDimensions(m.Width, m.Height)
		if b.layout.Resize(m.Width, m.Height) {
			inner := b.layout.Tree.Inner()
			b.tree.Width = inner.Width
			b.tree.Height = max(inner.Height-1, 1)
			b.query.Width = b.layout.Query.Inner().Width - len(b.query.Prompt) - 1
			b.refilter()
		}
		return b, nil

	case tea.KeyMsg:
		return b.handleKey(m)
	}

	if b.focus == PaneQuery {
		var cmd tea.Cmd
		b.query, cmd = b.query.Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b Browser) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, b.keys.ForceQuit) {
		b.quitting = true
		return b, tea.Quit
	}
	if b.help.IsVisible() {
		b.help, _ = b.help.Update(m)
		return b, nil
	}

	switch {
	case key.Matches(m, b.keys.FocusNext):
		return b.setFocus(NextPane(b.focus))
	case key.Matches(m, b.keys.FocusPrev):
		return b.setFocus(PrevPane(b.focus))
	case key.Matches(m, b.keys.ClearQuery):
		if b.query.Value() != "" {
			b.query.SetValue("")
			b.refilter()
		}
		return b, nil
	}

	switch b.focus {
	case PaneQuery:
		before := b.query.Value()
		var cmd tea.Cmd
		b.query, cmd = b.query.Update(m)
		if b.query.Value() != before {
			b.refilter()
		}
		return b, cmd

	case PaneDepartments:
		return b.handleDepartmentKey(m)

	default:
		return b.handleTreeKey(m)
	}
}

func (b Browser) handleDepartmentKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, b.keys.Quit):
		b.quitting = true
		return b, tea.Quit
	case key.Matches(m, b.keys.Help):
		b.help.Toggle()
	case key.Matches(m, b.keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}
	case key.Matches(m, b.keys.Down):
		if b.cursor < len(b.depts)-1 {
			b.cursor++
		}
	case key.Matches(m, b.keys.Toggle):
		if len(b.depts) > 0 {
			b.setDepartments(func(i int, on bool) bool {
				if i == b.cursor {
					return !on
				}
				return on
			})
		}
	case key.Matches(m, b.keys.SelectAll):
		b.setDepartments(func(int, bool) bool { return true })
	case key.Matches(m, b.keys.SelectNone):
		b.setDepartments(func(int, bool) bool { return false })
	}
	return b, nil
}

func (b Browser) handleTreeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, b.keys.Quit):
		b.quitting = true
		return b, tea.Quit
	case key.Matches(m, b.keys.Help):
		b.help.Toggle()
		return b, nil
	case key.Matches(m, b.keys.Home):
		b.tree.GotoTop()
		return b, nil
	case key.Matches(m, b.keys.End):
		b.tree.GotoBottom()
		return b, nil
	}
	var cmd tea.Cmd
	b.tree, cmd = b.tree.Update(m)
	return b, cmd
}

func (b Browser) setFocus(p Pane) (tea.Model, tea.Cmd) {
	b.focus = p
	if p == PaneQuery {
		return b, b.query.Focus()
	}
	b.query.Blur()
	return b, nil
}

// setDepartments replaces the selection with a fresh slice so earlier
// model values keep their own state.
func (b *Browser) setDepartments(next func(i int, on bool) bool) {
	depts := make([]deptItem, len(b.depts))
	for i, d := range b.depts {
		d.on = next(i, d.on)
		depts[i] = d
	}
	b.depts = depts
	b.refilter()
}

// Filter returns the view filter implied by the current query and
// department selection. Selecting every department, or none, applies no
// department restriction.
func (b Browser) Filter() org.ViewFilter {
	var selected []string
	for _, d := range b.depts {
		if d.on {
			selected = append(selected, d.name)
		}
	}
	if len(selected) == len(b.depts) {
		selected = nil
	}
	return org.ViewFilter{Departments: selected, Query: b.query.Value()}
}

func (b *Browser) refilter() {
	f := b.Filter()
	b.filtered = !f.IsEmpty()

	roots, err := org.Filter(b.cfg.Forest.Roots, f)
	if err != nil {
		b.err = err
		return
	}
	detached, err := org.Filter(b.cfg.Forest.Detached, f)
	if err != nil {
		b.err = err
		return
	}
	b.err = nil

	view := &org.Forest{Roots: roots, Detached: detached}
	b.shown = view.Count()
	b.tree.SetContent(b.theme.ForestText(view, b.filtered))
	b.tree.GotoTop()
}

// Shown returns the number of people currently visible.
func (b Browser) Shown() int {
	return b.shown
}

// Focus returns the focused pane.
func (b Browser) Focus() Pane {
	return b.focus
}

// View renders the browser.
func (b Browser) View() string {
	if b.quitting {
		return ""
	}
	if !b.ready {
		return "Loading org chart..."
	}
	if b.layout.IsTooSmall() {
		return b.layout.RenderTooSmall(b.theme)
	}
	if b.help.IsVisible() {
		return b.help.View()
	}

	pane := func(p Pane) lipgloss.Style {
		if b.focus == p {
			return b.theme.PaneFocused
		}
		return b.theme.Pane
	}

	return b.layout.Render(
		b.renderTitleBar(),
		b.theme.PaneTitle.Render("Search")+"\n"+b.query.View(),
		b.renderDepartments(),
		b.theme.PaneTitle.Render("People")+"\n"+b.tree.View(),
		b.renderStatusBar(),
		pane(PaneQuery), pane(PaneDepartments), pane(PaneTree),
	)
}

func (b Browser) renderTitleBar() string {
	title := "orgtree"
	if b.cfg.Version != "" {
		title += " v" + b.cfg.Version
	}
	if b.cfg.Source != "" {
		title += "  |  " + b.cfg.Source
	}
	return b.theme.TitleBar.Width(b.layout.TitleBar.Width).
		Render(title + "  " + b.theme.TitleHint.Render("? for help"))
}

// renderDepartments shows a window of the list that keeps the cursor
// visible.
func (b Browser) renderDepartments() string {
	var sb strings.Builder
	sb.WriteString(b.theme.PaneTitle.Render("Departments"))
	if len(b.depts) == 0 {
		sb.WriteString("\n" + b.theme.DeptItem.Render("(none)"))
		return sb.String()
	}

	inner := b.layout.Departments.Inner()
	rows := max(inner.Height-1, 1)
	start := 0
	if b.cursor >= rows {
		start = b.cursor - rows + 1
	}
	end := min(start+rows, len(b.depts))

	for i := start; i < end; i++ {
		d := b.depts[i]
		box := "[ ]"
		style := b.theme.DeptItem
		if d.on {
			box = "[x]"
			style = b.theme.DeptOn
		}
		line := style.Render(box+" "+d.name) + " " + b.theme.DeptCount.Render(fmt.Sprintf("%d", d.count))
		if i == b.cursor && b.focus == PaneDepartments {
			line = b.theme.DeptCursor.Render(line)
		}
		sb.WriteString("\n" + line)
	}
	return sb.String()
}

func (b Browser) renderStatusBar() string {
	total := b.cfg.Forest.Count()
	parts := []string{
		b.theme.StatusKey.Render("showing ") + b.theme.StatusValue.Render(fmt.Sprintf("%d of %d", b.shown, total)),
	}
	if n := len(b.cfg.Forest.Detached); n > 0 {
		parts = append(parts, b.theme.Detached.Render(fmt.Sprintf("%d detached", n)))
	}
	if b.err != nil {
		parts = append(parts, b.theme.ErrorText.Render(b.err.Error()))
	}
	return b.theme.StatusBar.Width(b.layout.StatusBar.Width).Render(strings.Join(parts, "  ·  "))
}

// RunBrowser runs the browser full-screen until the user quits.
func RunBrowser(cfg BrowserConfig) error {
	b := NewBrowser(cfg)
	logger := logging.New("tui")
	logger.Debug("starting browser", "source", cfg.Source, "people", b.cfg.Forest.Count())

	p := tea.NewProgram(b, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

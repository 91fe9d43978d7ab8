package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// KeyMap
// ---------------------------------------------------------------------------

// KeyMap defines the browser keybindings. Global keys work in every pane
// except that printable keys go to the query input while it has focus.
type KeyMap struct {
	// Global keys
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	ClearQuery key.Binding

	// Department pane
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	SelectAll  key.Binding
	SelectNone key.Binding

	// Tree pane
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns the default browser keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// --- Global ---
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev pane"),
		),
		ClearQuery: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),

		// --- Departments ---
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle department"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all departments"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no departments"),
		),

		// --- Tree ---
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "go to bottom"),
		),
	}
}

// ---------------------------------------------------------------------------
// Focus cycling
// ---------------------------------------------------------------------------

// Pane identifies which pane has keyboard focus.
type Pane int

const (
	// PaneQuery is the search input.
	PaneQuery Pane = iota
	// PaneDepartments is the department toggle list.
	PaneDepartments
	// PaneTree is the scrollable tree.
	PaneTree
)

const paneCount = 3

// NextPane returns the pane after current: query, departments, tree.
func NextPane(current Pane) Pane {
	return Pane((int(current) + 1) % paneCount)
}

// PrevPane returns the pane before current.
func PrevPane(current Pane) Pane {
	return Pane((int(current) + paneCount - 1) % paneCount)
}

// ---------------------------------------------------------------------------
// HelpOverlay
// ---------------------------------------------------------------------------

// HelpOverlay displays a centered keybinding reference over the browser.
type HelpOverlay struct {
	theme   Theme
	keyMap  KeyMap
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a hidden HelpOverlay.
func NewHelpOverlay(theme Theme, keyMap KeyMap) HelpOverlay {
	return HelpOverlay{
		theme:  theme,
		keyMap: keyMap,
	}
}

// SetDimensions updates the terminal dimensions used to center the overlay.
func (h *HelpOverlay) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Toggle flips the visibility of the help overlay.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible reports whether the overlay is shown.
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// Update dismisses the overlay on '?' or Esc and swallows all other keys.
func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, h.keyMap.Help):
			h.visible = false
		case keyMsg.Type == tea.KeyEsc:
			h.visible = false
		}
	}
	return h, nil
}

// View renders the overlay centered on the terminal. It is empty when
// hidden or before the first resize.
func (h HelpOverlay) View() string {
	if !h.visible || h.width == 0 || h.height == 0 {
		return ""
	}

	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Render(h.buildContent())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, boxed)
}

func (h HelpOverlay) buildContent() string {
	var sb strings.Builder

	sb.WriteString(h.theme.PaneTitle.Render("orgtree browser: keys"))
	sb.WriteString("\n")

	section := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		MarginTop(1)

	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"General", []key.Binding{h.keyMap.FocusNext, h.keyMap.FocusPrev, h.keyMap.ClearQuery, h.keyMap.Help, h.keyMap.Quit}},
		{"Departments", []key.Binding{h.keyMap.Up, h.keyMap.Down, h.keyMap.Toggle, h.keyMap.SelectAll, h.keyMap.SelectNone}},
		{"Tree", []key.Binding{h.keyMap.Up, h.keyMap.Down, h.keyMap.PageUp, h.keyMap.PageDown, h.keyMap.Home, h.keyMap.End}},
	}
	for _, g := range groups {
		sb.WriteString(section.Render(g.title))
		sb.WriteString("\n")
		for _, b := range g.bindings {
			sb.WriteString(h.bindingLine(b))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render("Press ? or Esc to close"))
	return sb.String()
}

// bindingLine formats a binding as "  KEY  description\n".
func (h HelpOverlay) bindingLine(b key.Binding) string {
	k := h.theme.HelpKey.Render(b.Help().Key)
	d := h.theme.HelpDesc.Render(b.Help().Desc)
	return "  " + k + "  " + d + "\n"
}

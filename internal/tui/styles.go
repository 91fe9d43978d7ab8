package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Color Palette
// ---------------------------------------------------------------------------

// ColorPrimary is the accent color used for titles and focused panes.
var ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"}

// ColorAccent marks filter matches and selected departments.
var ColorAccent = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}

// ColorSuccess marks an acceptable validation report.
var ColorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

// ColorWarning marks warnings and detached cycle members.
var ColorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// ColorError marks blocking errors.
var ColorError = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// ColorMuted is a subdued foreground for titles and departments.
var ColorMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// ColorSubtle is used for tree guides and dividers.
var ColorSubtle = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

// ColorBorder is the unfocused pane border color.
var ColorBorder = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}

// ColorHighlight is the background of the department cursor.
var ColorHighlight = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

// ---------------------------------------------------------------------------
// Theme
// ---------------------------------------------------------------------------

// Theme holds every style used by the browser and by the CLI's text
// renderers. Width and Height are never set here; the layout applies them.
type Theme struct {
	// Title bar
	TitleBar  lipgloss.Style
	TitleHint lipgloss.Style

	// Panes
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style

	// Department list
	DeptItem   lipgloss.Style
	DeptCursor lipgloss.Style
	DeptOn     lipgloss.Style
	DeptCount  lipgloss.Style

	// Tree
	TreeGuide lipgloss.Style
	TreeName  lipgloss.Style
	TreeMatch lipgloss.Style
	TreeTitle lipgloss.Style
	TreeDept  lipgloss.Style
	Detached  lipgloss.Style

	// Report
	Acceptable lipgloss.Style
	Rejected   lipgloss.Style
	IssueError lipgloss.Style
	IssueWarn  lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// General
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	ErrorText lipgloss.Style
}

// DefaultTheme returns the orgtree theme with adaptive colors.
func DefaultTheme() Theme {
	return Theme{
		// --- Title bar ---
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),

		TitleHint: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C7C5FF", Dark: "#A8A5FF"}),

		// --- Panes ---
		Pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),

		PaneFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1),

		PaneTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		// --- Department list ---
		DeptItem: lipgloss.NewStyle().
			Foreground(ColorMuted),

		DeptCursor: lipgloss.NewStyle().
			Bold(true).
			Background(ColorHighlight),

		DeptOn: lipgloss.NewStyle().
			Foreground(ColorAccent),

		DeptCount: lipgloss.NewStyle().
			Foreground(ColorSubtle),

		// --- Tree ---
		TreeGuide: lipgloss.NewStyle().
			Foreground(ColorSubtle),

		TreeName: lipgloss.NewStyle().
			Bold(true),

		TreeMatch: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent),

		TreeTitle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}),

		TreeDept: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),

		Detached: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning),

		// --- Report ---
		Acceptable: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess),

		Rejected: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),

		IssueError: lipgloss.NewStyle().
			Foreground(ColorError),

		IssueWarn: lipgloss.NewStyle().
			Foreground(ColorWarning),

		// --- Status bar ---
		StatusBar: lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(ColorMuted).
			Padding(0, 1),

		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		StatusValue: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}),

		// --- General ---
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		HelpDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),

		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),
	}
}

// PlainTheme returns a theme with no styling, for pipes and --no-color.
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		TitleBar: s, TitleHint: s,
		Pane: s, PaneFocused: s, PaneTitle: s,
		DeptItem: s, DeptCursor: s, DeptOn: s, DeptCount: s,
		TreeGuide: s, TreeName: s, TreeMatch: s, TreeTitle: s, TreeDept: s, Detached: s,
		Acceptable: s, Rejected: s, IssueError: s, IssueWarn: s,
		StatusBar: s, StatusKey: s, StatusValue: s,
		HelpKey: s, HelpDesc: s, ErrorText: s,
	}
}

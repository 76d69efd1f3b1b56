package styles

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// One color per flow, in flow order
	flowColors = []lipgloss.Color{
		"#6366F1", // Indigo
		"#8B5CF6", // Violet
		"#EC4899", // Pink
		"#F97316", // Orange
		"#EAB308", // Yellow
		"#22C55E", // Green
		"#14B8A6", // Teal
		"#0EA5E9", // Sky
		"#F43F5E", // Rose
		"#A3A3A3", // Neutral
	}

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Pane frames
	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	PaneFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Canvas node styles
	NodeConnector = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	NodeOther = lipgloss.NewStyle()

	NodeHidden = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	NodeCursor = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Node markers
	MarkSelected   = "● "
	MarkUnselected = "○ "
	MarkLocked     = "🔒"

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	// Section headings and the focused field marker
	SectionLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	FieldMarker = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Alert = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// FlowColor returns the color for a flow tag ("1".."10").
// Anything else gets the primary color.
func FlowColor(tag string) lipgloss.Color {
	for i := range flowColors {
		if tag == strconv.Itoa(i+1) {
			return flowColors[i]
		}
	}
	return Primary
}

// FlowBadge renders a tag as a colored badge
func FlowBadge(tag string) string {
	if tag == "" {
		return MutedText.Render("--")
	}
	return lipgloss.NewStyle().
		Foreground(Black).
		Background(FlowColor(tag)).
		Padding(0, 1).
		Render(tag)
}

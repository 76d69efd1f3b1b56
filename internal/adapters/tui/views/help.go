package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flowshow/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg {
			return SwitchToMainMsg{}
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("Flow Show Help").
		Subtitle("Tag connectors with flows, then show or hide them by flow")

	v.Section("Canvas")
	for _, b := range []key.Binding{
		CanvasKeys.Up, CanvasKeys.Down, CanvasKeys.Select, CanvasKeys.SelectAll,
		CanvasKeys.Deselect, CanvasKeys.NewConnector, CanvasKeys.NewShape,
		CanvasKeys.Remove, CanvasKeys.Lock, CanvasKeys.Copy,
	} {
		v.Raw(helpLine(b))
	}
	v.Blank()

	v.Section("Flow panel")
	for _, b := range []key.Binding{
		FlowPanelKeys.Up, FlowPanelKeys.Down, FlowPanelKeys.Toggle, FlowPanelKeys.Untag,
		FlowPanelKeys.ShowAll, FlowPanelKeys.HideAll, FlowPanelKeys.IncludeLocked,
		FlowPanelKeys.Expand, FlowPanelKeys.Rename, FlowPanelKeys.Copy,
	} {
		v.Raw(helpLine(b))
	}
	v.Muted("  space tags the selection while connectors are selected")
	v.Blank()

	v.Section("General")
	v.Raw(helpLine(key.NewBinding(key.WithHelp("tab", "Switch pane"))))
	v.Raw(helpLine(key.NewBinding(key.WithHelp("?", "Toggle help"))))
	v.Raw(helpLine(key.NewBinding(key.WithHelp("q / Ctrl+C", "Quit"))))
	v.Blank()

	v.Raw(styles.HelpDesc.Render("Press ")).
		Raw(styles.HelpKey.Render("esc")).
		Raw(styles.HelpDesc.Render(" or ")).
		Raw(styles.HelpKey.Render("?")).
		Raw(styles.HelpDesc.Render(" to close"))

	return v.String()
}

func helpLine(b key.Binding) string {
	h := b.Help()
	return "  " + styles.HelpKey.Render(padRight(h.Key, 14)) + styles.HelpDesc.Render(h.Desc) + "\n"
}

func padRight(s string, length int) string {
	w := lipgloss.Width(s)
	if w >= length {
		return s
	}
	return s + strings.Repeat(" ", length-w)
}

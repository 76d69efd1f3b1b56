package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flowshow/internal/adapters/tui/styles"
	"flowshow/internal/domain"
)

// Panel sizes are given in pixels; one terminal cell is CellWidth x CellHeight.
const (
	CellWidth  = 6
	CellHeight = 16
)

// PanelMode is the set of controls the panel currently shows
type PanelMode int

const (
	ModeVisibility PanelMode = iota // show/hide per flow
	ModeSelectTags                  // tag the selected connectors
)

func (m PanelMode) String() string {
	if m == ModeSelectTags {
		return "tag selection"
	}
	return "visibility"
}

// FlowPanelKeyMap defines key bindings for the flow panel
type FlowPanelKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Toggle        key.Binding
	Untag         key.Binding
	ShowAll       key.Binding
	HideAll       key.Binding
	IncludeLocked key.Binding
	Expand        key.Binding
	Rename        key.Binding
	Copy          key.Binding
}

var FlowPanelKeys = FlowPanelKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "show/hide flow"),
	),
	Untag: key.NewBinding(
		key.WithKeys("0", "backspace"),
		key.WithHelp("0", "clear tag"),
	),
	ShowAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "show all"),
	),
	HideAll: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hide all"),
	),
	IncludeLocked: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "include locked"),
	),
	Expand: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "expand"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename flows"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy name"),
	),
}

// ShortHelp implements help.KeyMap
func (k FlowPanelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Untag, k.Expand}
}

// FullHelp implements help.KeyMap
func (k FlowPanelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Untag, k.ShowAll, k.HideAll},
		{k.IncludeLocked, k.Expand, k.Rename, k.Copy},
	}
}

// FlowPanelModel renders the flow panel. It only changes through Apply and
// Resize, which carry controller updates, and through its own key handling,
// which emits intents.
type FlowPanelModel struct {
	ViewState
	names         []string
	mode          PanelMode
	current       domain.FlowState
	alert         bool
	includeLocked bool
	expanded      bool
	hidden        [domain.FlowCount]bool
	cursor        int
	size          domain.PanelSize
	keys          FlowPanelKeyMap
	help          help.Model
	Focused       bool
}

// NewFlowPanelModel creates a collapsed panel with default names
func NewFlowPanelModel(size domain.PanelSize) *FlowPanelModel {
	m := &FlowPanelModel{
		names:   domain.DefaultFlowNames(),
		current: domain.FlowNone,
		size:    size,
		keys:    FlowPanelKeys,
		help:    newHelp(),
	}
	m.syncKeys()
	return m
}

// Apply renders one controller update
func (m *FlowPanelModel) Apply(u domain.Update) {
	switch u.Text {
	case domain.UpdateInitializeFlowNames:
		m.SetNames(u.FlowArray)
	case domain.UpdateShowNoConnectorAlert:
		m.alert = true
		m.current = u.CurrentlySelectedFlow
	case domain.UpdateShowVisibilityButtons:
		m.mode = ModeVisibility
		m.current = u.CurrentlySelectedFlow
	case domain.UpdateShowSelectTags:
		m.mode = ModeSelectTags
		m.alert = false
		m.current = u.CurrentlySelectedFlow
		if i, err := strconv.Atoi(string(u.CurrentlySelectedFlow)); err == nil && i >= 1 && i <= domain.FlowCount {
			m.cursor = i - 1
		}
	}
	m.syncKeys()
}

// Resize applies a panel size from the controller
func (m *FlowPanelModel) Resize(size domain.PanelSize) {
	m.size = size
}

// SetNames replaces the flow names, keeping exactly domain.FlowCount entries
func (m *FlowPanelModel) SetNames(names []string) {
	m.names = domain.ResolveFlowNames(domain.JoinFlowNames(names), len(names) > 0)
}

// Names returns a copy of the flow names
func (m *FlowPanelModel) Names() []string {
	return append([]string(nil), m.names...)
}

// Mode returns the controls currently shown
func (m *FlowPanelModel) Mode() PanelMode { return m.mode }

// CurrentFlow returns the flow of the selection as last reported
func (m *FlowPanelModel) CurrentFlow() domain.FlowState { return m.current }

// Alert reports whether the no-connector alert is showing
func (m *FlowPanelModel) Alert() bool { return m.alert }

// Size returns the last size the controller asked for
func (m *FlowPanelModel) Size() domain.PanelSize { return m.size }

// Cursor returns the highlighted flow index (0-based)
func (m *FlowPanelModel) Cursor() int { return m.cursor }

func (m *FlowPanelModel) syncKeys() {
	m.keys.Untag.SetEnabled(m.mode == ModeSelectTags)
	if m.mode == ModeSelectTags {
		m.keys.Toggle.SetHelp("space", "tag selection")
	} else {
		m.keys.Toggle.SetHelp("space", "show/hide flow")
	}
	if m.expanded {
		m.keys.Expand.SetHelp("e", "collapse")
	} else {
		m.keys.Expand.SetHelp("e", "expand")
	}
	m.help.ShowAll = m.expanded
}

func intent(i domain.Intent) tea.Cmd {
	return func() tea.Msg { return IntentMsg{Intent: i} }
}

// Update handles key presses on the panel
func (m *FlowPanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.ClearMessage()
	tag := strconv.Itoa(m.cursor + 1)

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < domain.FlowCount-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if m.mode == ModeSelectTags {
			return m, intent(domain.Intent{Type: domain.IntentTagArrows, Tag: tag})
		}
		m.hidden[m.cursor] = !m.hidden[m.cursor]
		return m, intent(domain.Intent{Type: domain.IntentShowFlow, Show: !m.hidden[m.cursor], Tag: tag})

	case key.Matches(keyMsg, m.keys.Untag):
		return m, intent(domain.Intent{Type: domain.IntentTagArrowsNull})

	case key.Matches(keyMsg, m.keys.ShowAll):
		m.hidden = [domain.FlowCount]bool{}
		return m, intent(domain.Intent{Type: domain.IntentShowAll})

	case key.Matches(keyMsg, m.keys.HideAll):
		for i := range m.hidden {
			m.hidden[i] = true
		}
		return m, intent(domain.Intent{Type: domain.IntentHideAll})

	case key.Matches(keyMsg, m.keys.IncludeLocked):
		m.includeLocked = !m.includeLocked
		if m.includeLocked {
			return m, intent(domain.Intent{Type: domain.IntentIncludeLockedTrue})
		}
		return m, intent(domain.Intent{Type: domain.IntentIncludeLockedFalse})

	case key.Matches(keyMsg, m.keys.Expand):
		m.expanded = !m.expanded
		m.syncKeys()
		if m.expanded {
			return m, intent(domain.Intent{Type: domain.IntentResizeExpand})
		}
		return m, intent(domain.Intent{Type: domain.IntentResizeCollapse})

	case key.Matches(keyMsg, m.keys.Rename):
		names := m.Names()
		return m, func() tea.Msg { return SwitchToRenameMsg{Names: names} }

	case key.Matches(keyMsg, m.keys.Copy):
		if err := clipboard.WriteAll(m.names[m.cursor]); err != nil {
			m.SetMessage("Clipboard unavailable", true)
		} else {
			m.SetMessage("Copied "+m.names[m.cursor], false)
		}
	}

	return m, nil
}

// View renders the panel inside a frame of the controller-chosen size
func (m *FlowPanelModel) View() string {
	cols := max(m.size.Width/CellWidth, 20)
	rows := max(m.size.Height/CellHeight, 8)

	v := NewViewBuilder().Title("Flow Show")
	if m.alert {
		v.Line(styles.Alert.Render("No connectors on this page"))
	}
	v.Muted(fmt.Sprintf("mode: %s  flow: %s", m.mode, m.current))

	for i, name := range m.names {
		v.Line(m.renderFlow(i, name, cols-4))
	}

	if m.expanded {
		check := "[ ]"
		if m.includeLocked {
			check = "[x]"
		}
		v.Blank().Line(check + " include locked connectors")
	}

	v.Message(m.Message, m.MessageErr)
	m.help.Width = cols - 4
	v.Raw(m.help.View(m.keys))

	frame := styles.Pane
	if m.Focused {
		frame = styles.PaneFocused
	}
	return frame.
		Width(cols).
		Height(rows).
		MaxHeight(rows + 2).
		Render(v.Plain())
}

func (m *FlowPanelModel) renderFlow(i int, name string, width int) string {
	tag := strconv.Itoa(i + 1)

	state := ""
	switch {
	case m.mode == ModeSelectTags && domain.FlowState(tag) == m.current:
		state = " ●"
	case m.mode == ModeVisibility && m.hidden[i]:
		state = " (hidden)"
	}

	text := lipgloss.NewStyle().MaxWidth(max(width-6, 1)).Render(name) + state
	if i == m.cursor && m.Focused {
		text = styles.NodeCursor.Render(text)
	}
	return styles.FlowBadge(tag) + " " + strings.TrimRight(text, " ")
}

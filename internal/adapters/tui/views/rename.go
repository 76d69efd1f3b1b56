package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"flowshow/internal/adapters/tui/styles"
	"flowshow/internal/domain"
)

// RenameKeyMap defines key bindings for the rename form
type RenameKeyMap struct {
	Save   key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

var RenameKeys = RenameKeyMap{
	Save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab/↓", "next flow"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "previous flow"),
	),
}

const nameCharLimit = 40

// RenameModel edits the names of all flows at once, one input per flow
type RenameModel struct {
	ViewState
	inputs  []textinput.Model
	focused int
}

// NewRenameModel creates a rename form prefilled with names
func NewRenameModel(names []string) *RenameModel {
	m := &RenameModel{inputs: make([]textinput.Model, domain.FlowCount)}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = domain.DefaultFlowName(i)
		in.CharLimit = nameCharLimit
		if i < len(names) {
			in.SetValue(names[i])
		}
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
	return m
}

// Init starts the cursor blink
func (m *RenameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Focused returns the index of the flow being edited
func (m *RenameModel) Focused() int {
	return m.focused
}

func (m *RenameModel) focus(i int) {
	m.inputs[m.focused].Blur()
	m.focused = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focused].Focus()
}

// Values returns the names as they will be saved. Blank fields fall back to
// the default name and commas are replaced, as they separate stored names.
func (m *RenameModel) Values() []string {
	names := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		v := strings.TrimSpace(strings.ReplaceAll(in.Value(), ",", " "))
		if v == "" {
			v = domain.DefaultFlowName(i)
		}
		names[i] = v
	}
	return names
}

// Update handles messages for the rename form
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, RenameKeys.Cancel):
			return m, func() tea.Msg { return SwitchToMainMsg{} }

		case key.Matches(msg, RenameKeys.Save):
			return m, tea.Batch(
				intent(domain.Intent{Type: domain.IntentSaveFlowNames, NameArray: m.Values()}),
				func() tea.Msg { return SwitchToMainMsg{} },
			)

		case key.Matches(msg, RenameKeys.Next):
			m.focus(m.focused + 1)
			return m, nil

		case key.Matches(msg, RenameKeys.Prev):
			m.focus(m.focused - 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// View renders the rename form
func (m *RenameModel) View() string {
	v := NewViewBuilder().
		Title("Rename flows").
		Subtitle("Names are stored in the document")

	for i, in := range m.inputs {
		badge := styles.FlowBadge(strconv.Itoa(i + 1)) + " "
		if i == m.focused {
			v.Line(styles.FieldMarker.Render("› ") + badge + in.View())
		} else {
			v.Line("  " + badge + styles.MutedText.Render(in.Value()))
		}
	}

	return v.Blank().
		Message(m.Message, m.MessageErr).
		Raw(HelpLine(RenameKeys.Prev, RenameKeys.Next, RenameKeys.Save, RenameKeys.Cancel)).
		String()
}

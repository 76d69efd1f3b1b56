package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"

	"flowshow/internal/adapters/tui/styles"
	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// CanvasSource is what the canvas pane reads and edits directly, standing in
// for the user working on the design canvas
type CanvasSource interface {
	ports.Host
	ports.DocumentQuery
}

// CanvasKeyMap defines key bindings for the canvas pane
type CanvasKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Select       key.Binding
	SelectAll    key.Binding
	Deselect     key.Binding
	NewConnector key.Binding
	NewShape     key.Binding
	Remove       key.Binding
	Lock         key.Binding
	Copy         key.Binding
}

var CanvasKeys = CanvasKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "select all connectors"),
	),
	Deselect: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear selection"),
	),
	NewConnector: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new connector"),
	),
	NewShape: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "new shape"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove"),
	),
	Lock: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "lock/unlock"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
}

// CanvasRow is one node as the canvas pane shows it
type CanvasRow struct {
	Node     domain.Node
	Tag      string
	Selected bool
}

type canvasLoadedMsg struct {
	rows []CanvasRow
}

// CanvasModel lists the nodes of the document and edits them the way a
// user would on the canvas: selecting, locking, drawing and deleting
type CanvasModel struct {
	ViewState
	src     CanvasSource
	rows    []CanvasRow
	cursor  int
	pager   paginator.Model
	loaded  bool
	Focused bool
}

// NewCanvasModel creates a new canvas model
func NewCanvasModel(src CanvasSource) *CanvasModel {
	pager := paginator.New()
	pager.PerPage = 10
	pager.ArabicFormat = "page %d/%d"
	return &CanvasModel{src: src, pager: pager}
}

// Init loads the nodes
func (m *CanvasModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload re-reads nodes, tags and the selection
func (m *CanvasModel) Reload() tea.Cmd {
	return func() tea.Msg {
		rows, err := LoadCanvasRows(m.src)
		if err != nil {
			return ErrMsg{err}
		}
		return canvasLoadedMsg{rows}
	}
}

// LoadCanvasRows reads every node with its flow tag and selection state
func LoadCanvasRows(src CanvasSource) ([]CanvasRow, error) {
	nodes, err := src.ListNodes()
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	selection, err := src.Selection()
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	selected := make(map[string]bool, len(selection))
	for _, n := range selection {
		selected[n.ID] = true
	}

	rows := make([]CanvasRow, 0, len(nodes))
	for _, n := range nodes {
		row := CanvasRow{Node: n, Selected: selected[n.ID]}
		if n.Kind == domain.NodeKindConnector {
			if row.Tag, err = src.NodeData(n.ID, domain.FlowTagKey); err != nil {
				return nil, fmt.Errorf("failed to read tag of %s: %w", n.ID, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Rows returns the loaded rows
func (m *CanvasModel) Rows() []CanvasRow {
	return m.rows
}

// Cursor returns the index of the highlighted row
func (m *CanvasModel) Cursor() int {
	return m.cursor
}

// Page returns the 0-based page holding the cursor
func (m *CanvasModel) Page() int {
	return m.pager.Page
}

// moveCursor clamps the cursor to the rows and turns to its page
func (m *CanvasModel) moveCursor(pos int) {
	m.cursor = max(min(pos, len(m.rows)-1), 0)
	m.pager.SetTotalPages(len(m.rows))
	m.pager.Page = m.cursor / m.pager.PerPage
}

// Update handles messages for the canvas
func (m *CanvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case canvasLoadedMsg:
		m.rows = msg.rows
		m.loaded = true
		m.moveCursor(m.cursor)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, CanvasKeys.Up):
			m.moveCursor(m.cursor - 1)

		case key.Matches(msg, CanvasKeys.Down):
			m.moveCursor(m.cursor + 1)

		case key.Matches(msg, CanvasKeys.Select):
			if row := m.current(); row != nil {
				return m, m.toggleSelected(row.Node.ID)
			}

		case key.Matches(msg, CanvasKeys.SelectAll):
			var ids []string
			for _, r := range m.rows {
				if r.Node.Kind == domain.NodeKindConnector {
					ids = append(ids, r.Node.ID)
				}
			}
			return m, m.selectIDs(ids)

		case key.Matches(msg, CanvasKeys.Deselect):
			return m, m.selectIDs(nil)

		case key.Matches(msg, CanvasKeys.NewConnector):
			return m, m.addNode(domain.NodeKindConnector)

		case key.Matches(msg, CanvasKeys.NewShape):
			return m, m.addNode(domain.NodeKindShape)

		case key.Matches(msg, CanvasKeys.Remove):
			if row := m.current(); row != nil {
				return m, m.removeNode(row.Node)
			}

		case key.Matches(msg, CanvasKeys.Lock):
			if row := m.current(); row != nil {
				return m, m.toggleLocked(row.Node)
			}

		case key.Matches(msg, CanvasKeys.Copy):
			if row := m.current(); row != nil {
				if err := clipboard.WriteAll(row.Node.ID); err != nil {
					m.SetMessage("Clipboard unavailable", true)
				} else {
					m.SetMessage("Copied "+row.Node.ID, false)
				}
			}
		}
	}

	return m, nil
}

func (m *CanvasModel) current() *CanvasRow {
	if m.cursor < len(m.rows) {
		return &m.rows[m.cursor]
	}
	return nil
}

func (m *CanvasModel) selectedIDs() []string {
	var ids []string
	for _, r := range m.rows {
		if r.Selected {
			ids = append(ids, r.Node.ID)
		}
	}
	return ids
}

func (m *CanvasModel) toggleSelected(id string) tea.Cmd {
	ids := m.selectedIDs()
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	} else {
		ids = append(ids, id)
	}
	return m.selectIDs(ids)
}

func (m *CanvasModel) selectIDs(ids []string) tea.Cmd {
	return func() tea.Msg {
		if err := m.src.SetSelection(ids); err != nil {
			return ErrMsg{err}
		}
		return SelectionChangedMsg{}
	}
}

func (m *CanvasModel) addNode(kind domain.NodeKind) tea.Cmd {
	name := fmt.Sprintf("%s %d", kind, len(m.rows)+1)
	return func() tea.Msg {
		n, err := m.src.AddNode(kind, name)
		if err != nil {
			return ErrMsg{err}
		}
		return DocumentChangedMsg{Message: "Added " + n.Name}
	}
}

// removeNode also reports a selection change: a removed node leaves the selection
func (m *CanvasModel) removeNode(n domain.Node) tea.Cmd {
	return func() tea.Msg {
		if err := m.src.RemoveNode(n.ID); err != nil {
			return ErrMsg{err}
		}
		return SelectionChangedMsg{}
	}
}

func (m *CanvasModel) toggleLocked(n domain.Node) tea.Cmd {
	return func() tea.Msg {
		if err := m.src.SetLocked(n.ID, !n.Locked); err != nil {
			return ErrMsg{err}
		}
		verb := "Locked"
		if n.Locked {
			verb = "Unlocked"
		}
		return DocumentChangedMsg{Message: verb + " " + n.Name}
	}
}

// View renders the canvas pane
func (m *CanvasModel) View() string {
	v := NewViewBuilder().Title("Canvas")
	if !m.loaded {
		return v.Muted("Loading...").Plain()
	}
	if len(m.rows) == 0 {
		v.Muted("Empty page. Press n to draw a connector.")
	}

	start, end := m.pager.GetSliceBounds(len(m.rows))
	for i := start; i < end; i++ {
		v.Line(m.renderRow(m.rows[i], i == m.cursor))
	}
	if m.pager.TotalPages > 1 {
		v.Muted(m.pager.View())
	}

	v.Message(m.Message, m.MessageErr)
	return v.Plain()
}

func (m *CanvasModel) renderRow(r CanvasRow, cursor bool) string {
	mark := styles.MarkUnselected
	if r.Selected {
		mark = styles.MarkSelected
	}

	var b strings.Builder
	b.WriteString(r.Node.Name)
	if r.Node.Locked {
		b.WriteString(" " + styles.MarkLocked)
	}

	text := b.String()
	switch {
	case cursor && m.Focused:
		text = styles.NodeCursor.Render(text)
	case !r.Node.Visible:
		text = styles.NodeHidden.Render(text + " (hidden)")
	case r.Node.Kind == domain.NodeKindConnector:
		text = styles.NodeConnector.Render(text)
	default:
		text = styles.NodeOther.Render(text)
	}

	badge := ""
	if r.Node.Kind == domain.NodeKindConnector {
		badge = styles.FlowBadge(r.Tag) + " "
	}
	return mark + badge + text
}

// SetSize updates the view dimensions and the number of visible rows
func (m *CanvasModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// title, page line, message, frame
	m.pager.PerPage = max(height-7, 1)
	m.moveCursor(m.cursor)
}

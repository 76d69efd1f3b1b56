package tui

import (
	"context"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"flowshow/internal/adapters/tui/views"
	"flowshow/internal/domain"
	"flowshow/internal/testutil"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// collect runs cmd and returns the messages it produced. Commands that do not
// return quickly (cursor blink ticks) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func drive(a *App, msgs ...tea.Msg) {
	for depth := 0; len(msgs) > 0 && depth < 8; depth++ {
		var next []tea.Msg
		for _, m := range msgs {
			_, cmd := a.Update(m)
			next = append(next, collect(cmd)...)
		}
		msgs = next
	}
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		drive(a, keyMsg(k))
	}
}

func startApp(t *testing.T, doc *testutil.Document) *App {
	t.Helper()
	a := NewApp(context.Background(), doc, Options{Logger: zerolog.Nop()})
	drive(a, tea.WindowSizeMsg{Width: 120, Height: 40})
	drive(a, collect(a.Init())...)
	return a
}

func TestApp_LaunchEmptyDocument(t *testing.T) {
	a := startApp(t, testutil.NewDocument())

	p := a.Panel()
	if !p.Alert() {
		t.Error("expected no-connector alert")
	}
	if p.Mode() != views.ModeVisibility {
		t.Errorf("expected visibility mode, got %s", p.Mode())
	}
	if !slices.Equal(p.Names(), domain.DefaultFlowNames()) {
		t.Errorf("expected default names, got %q", p.Names())
	}
	if a.View() == "" {
		t.Error("expected a rendered view")
	}
}

func TestApp_SelectAndTagConnector(t *testing.T) {
	doc := testutil.NewDocument()
	doc.AddConnector("c1", "", false)
	doc.Add("box", domain.NodeKindShape, false, true)
	a := startApp(t, doc)

	if len(a.Canvas().Rows()) != 2 {
		t.Fatalf("expected 2 canvas rows, got %d", len(a.Canvas().Rows()))
	}

	// select c1 on the canvas
	press(a, " ")
	if a.Panel().Mode() != views.ModeSelectTags {
		t.Fatalf("expected tag mode after selecting a connector, got %s", a.Panel().Mode())
	}

	// tag it with flow 3 from the panel
	press(a, "tab", "j", "j", " ")
	if a.Focus() != FocusPanel {
		t.Fatal("expected panel focus")
	}
	if doc.Tag("c1") != "3" {
		t.Errorf("expected c1 tagged 3, got %q", doc.Tag("c1"))
	}

	// clear the tag
	press(a, "0")
	if doc.Tag("c1") != "" {
		t.Errorf("expected tag cleared, got %q", doc.Tag("c1"))
	}
}

func TestApp_SelectionReflectsFlow(t *testing.T) {
	doc := testutil.NewDocument()
	doc.AddConnector("c1", "4", false)
	doc.AddConnector("c2", "4", false)
	a := startApp(t, doc)

	press(a, "A")
	if got := a.Panel().CurrentFlow(); got != "4" {
		t.Errorf("expected flow 4, got %q", got)
	}
	if a.Panel().Cursor() != 3 {
		t.Errorf("expected cursor on flow 4, got index %d", a.Panel().Cursor())
	}

	press(a, "esc")
	if a.Panel().Mode() != views.ModeVisibility {
		t.Errorf("expected visibility mode after clearing selection, got %s", a.Panel().Mode())
	}
}

func TestApp_ToggleFlowVisibility(t *testing.T) {
	doc := testutil.NewDocument()
	doc.AddConnector("one", "1", false)
	doc.AddConnector("two", "2", false)
	a := startApp(t, doc)

	press(a, "tab", " ")
	if doc.Node("one").Visible || !doc.Node("two").Visible {
		t.Error("expected only flow 1 hidden")
	}

	press(a, " ")
	if !doc.Node("one").Visible {
		t.Error("expected flow 1 shown again")
	}

	press(a, "h")
	if doc.Node("one").Visible || doc.Node("two").Visible {
		t.Error("expected every connector hidden")
	}
	press(a, "a")
	if !doc.Node("one").Visible || !doc.Node("two").Visible {
		t.Error("expected every connector shown")
	}
}

func TestApp_IncludeLocked(t *testing.T) {
	doc := testutil.NewDocument()
	doc.AddConnector("locked", "", true)
	a := startApp(t, doc)

	press(a, "tab", "h")
	if !doc.Node("locked").Visible {
		t.Fatal("locked connector should be skipped by default")
	}

	press(a, "l", "h")
	if doc.Node("locked").Visible {
		t.Error("locked connector should be hidden once included")
	}
}

func TestApp_ExpandCollapse(t *testing.T) {
	a := startApp(t, testutil.NewDocument())

	press(a, "tab", "e")
	if got := a.Panel().Size(); got != (domain.PanelSize{Width: 240, Height: 416}) {
		t.Errorf("expected expanded size, got %v", got)
	}
	press(a, "e")
	if got := a.Panel().Size(); got != (domain.PanelSize{Width: 240, Height: 256}) {
		t.Errorf("expected collapsed size, got %v", got)
	}
}

func TestApp_RenameFlows(t *testing.T) {
	doc := testutil.NewDocument()
	a := startApp(t, doc)

	press(a, "tab", "r")
	if a.State() != ViewRename {
		t.Fatalf("expected rename view, got %d", a.State())
	}

	press(a, "X", "enter")
	if a.State() != ViewMain {
		t.Errorf("expected main view after save, got %d", a.State())
	}

	stored, ok, _ := doc.DocumentData(domain.FlowNamesKey)
	if !ok {
		t.Fatal("expected names to be stored")
	}
	names := domain.ResolveFlowNames(stored, ok)
	if names[0] != "Flow 1X" || names[1] != "Flow 2" {
		t.Errorf("unexpected stored names %q", stored)
	}
	if a.Panel().Names()[0] != "Flow 1X" {
		t.Errorf("panel should show the new name, got %q", a.Panel().Names()[0])
	}
}

func TestApp_HelpView(t *testing.T) {
	a := startApp(t, testutil.NewDocument())

	press(a, "?")
	if a.State() != ViewHelp {
		t.Fatalf("expected help view, got %d", a.State())
	}
	press(a, "esc")
	if a.State() != ViewMain {
		t.Errorf("expected main view, got %d", a.State())
	}
}

func TestApp_CanvasEdits(t *testing.T) {
	doc := testutil.NewDocument()
	doc.AddConnector("c1", "", false)
	a := startApp(t, doc)

	press(a, "L")
	if !doc.Node("c1").Locked {
		t.Error("expected c1 locked")
	}

	press(a, "n")
	nodes, _ := doc.ListNodes()
	if len(nodes) != 2 || nodes[1].Kind != domain.NodeKindConnector {
		t.Fatalf("expected a new connector, got %+v", nodes)
	}
	if len(a.Canvas().Rows()) != 2 {
		t.Errorf("canvas should reload after adding, got %d rows", len(a.Canvas().Rows()))
	}

	press(a, "x")
	if doc.Node("c1") != nil {
		t.Error("expected c1 removed")
	}
}

func TestQueuePanel_Drain(t *testing.T) {
	p := &queuePanel{}
	_ = p.PostMessage(domain.Update{Text: domain.UpdateShowSelectTags})
	_ = p.Resize(1, 2)

	updates, sizes := p.drain()
	if len(updates) != 1 || len(sizes) != 1 {
		t.Fatalf("expected one update and one size, got %d and %d", len(updates), len(sizes))
	}
	if updates, sizes = p.drain(); updates != nil || sizes != nil {
		t.Error("drain should empty the queue")
	}
}

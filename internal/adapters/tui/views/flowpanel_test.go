package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"flowshow/internal/domain"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func emitted(t *testing.T, cmd tea.Cmd) domain.Intent {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(IntentMsg)
	if !ok {
		t.Fatalf("expected IntentMsg, got %T", cmd())
	}
	return msg.Intent
}

func TestFlowPanel_Apply(t *testing.T) {
	m := NewFlowPanelModel(domain.PanelSize{Width: 240, Height: 256})

	m.Apply(domain.Update{Text: domain.UpdateInitializeFlowNames, FlowArray: []string{"Login", "Signup"}})
	names := m.Names()
	if len(names) != domain.FlowCount || names[0] != "Login" || names[2] != "Flow 3" {
		t.Errorf("unexpected names %q", names)
	}

	m.Apply(domain.Update{Text: domain.UpdateShowNoConnectorAlert, CurrentlySelectedFlow: domain.FlowNone})
	if !m.Alert() {
		t.Error("expected alert")
	}

	m.Apply(domain.Update{Text: domain.UpdateShowSelectTags, CurrentlySelectedFlow: "7"})
	if m.Mode() != ModeSelectTags || m.Cursor() != 6 || m.Alert() {
		t.Errorf("unexpected state: mode=%s cursor=%d alert=%v", m.Mode(), m.Cursor(), m.Alert())
	}

	m.Apply(domain.Update{Text: domain.UpdateShowSelectTags, CurrentlySelectedFlow: domain.FlowMixed})
	if m.Cursor() != 6 {
		t.Errorf("MIXED should keep the cursor, got %d", m.Cursor())
	}
	if m.CurrentFlow() != domain.FlowMixed {
		t.Errorf("expected MIXED, got %q", m.CurrentFlow())
	}
}

func TestFlowPanel_Keys(t *testing.T) {
	m := NewFlowPanelModel(domain.PanelSize{Width: 240, Height: 256})

	_, cmd := m.Update(runeKey("j"))
	if cmd != nil || m.Cursor() != 1 {
		t.Fatalf("expected cursor move only, cursor=%d", m.Cursor())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	got := emitted(t, cmd)
	if got.Type != domain.IntentShowFlow || got.Tag != "2" || got.Show {
		t.Errorf("expected hide flow 2, got %+v", got)
	}

	// untag is only available while tagging
	if _, cmd = m.Update(runeKey("0")); cmd != nil {
		t.Error("untag should be disabled in visibility mode")
	}

	m.Apply(domain.Update{Text: domain.UpdateShowSelectTags, CurrentlySelectedFlow: domain.FlowNone})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := emitted(t, cmd); got.Type != domain.IntentTagArrows || got.Tag != "2" {
		t.Errorf("expected tag-arrows 2, got %+v", got)
	}
	_, cmd = m.Update(runeKey("0"))
	if got := emitted(t, cmd); got.Type != domain.IntentTagArrowsNull {
		t.Errorf("expected tag-arrows-null, got %+v", got)
	}

	_, cmd = m.Update(runeKey("l"))
	if got := emitted(t, cmd); got.Type != domain.IntentIncludeLockedTrue {
		t.Errorf("expected include-locked-true, got %+v", got)
	}
	_, cmd = m.Update(runeKey("l"))
	if got := emitted(t, cmd); got.Type != domain.IntentIncludeLockedFalse {
		t.Errorf("expected include-locked-false, got %+v", got)
	}

	_, cmd = m.Update(runeKey("e"))
	if got := emitted(t, cmd); got.Type != domain.IntentResizeExpand {
		t.Errorf("expected resize-expand, got %+v", got)
	}
}

func TestFlowPanel_ViewFollowsSize(t *testing.T) {
	m := NewFlowPanelModel(domain.PanelSize{Width: 240, Height: 256})
	collapsed := strings.Count(m.View(), "\n")

	m.Resize(domain.PanelSize{Width: 240, Height: 416})
	expanded := strings.Count(m.View(), "\n")

	if expanded <= collapsed {
		t.Errorf("expanded panel should be taller: %d <= %d", expanded, collapsed)
	}
}

func TestRenameModel_Values(t *testing.T) {
	m := NewRenameModel([]string{"Login", "", "A,B"})
	names := m.Values()

	if len(names) != domain.FlowCount {
		t.Fatalf("expected %d names, got %d", domain.FlowCount, len(names))
	}
	if names[0] != "Login" || names[1] != "Flow 2" || names[2] != "A B" || names[9] != "Flow 10" {
		t.Errorf("unexpected names %q", names)
	}
}

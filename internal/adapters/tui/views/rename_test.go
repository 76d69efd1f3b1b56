package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"flowshow/internal/domain"
)

func TestRename_FocusWraps(t *testing.T) {
	m := NewRenameModel(domain.DefaultFlowNames())

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Focused() != domain.FlowCount-1 {
		t.Errorf("expected focus on the last flow, got %d", m.Focused())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Focused() != 0 {
		t.Errorf("expected focus back on the first flow, got %d", m.Focused())
	}
}

func TestRename_Values(t *testing.T) {
	names := domain.DefaultFlowNames()
	names[1] = "Checkout, guest"
	names[2] = "   "
	m := NewRenameModel(names)

	m.Update(runeKey("!"))

	got := m.Values()
	if got[0] != "Flow 1!" {
		t.Errorf("typed text should land in the focused field, got %q", got[0])
	}
	if got[1] != "Checkout  guest" {
		t.Errorf("commas should be replaced, got %q", got[1])
	}
	if got[2] != domain.DefaultFlowName(2) {
		t.Errorf("blank name should fall back to the default, got %q", got[2])
	}
}

func TestRename_SaveEmitsIntent(t *testing.T) {
	m := NewRenameModel(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch, got %T", cmd())
	}

	var saved, switched bool
	for _, c := range batch {
		switch msg := c().(type) {
		case IntentMsg:
			saved = msg.Intent.Type == domain.IntentSaveFlowNames &&
				len(msg.Intent.NameArray) == domain.FlowCount
		case SwitchToMainMsg:
			switched = true
		}
	}
	if !saved || !switched {
		t.Errorf("expected save intent and switch to main, got saved=%v switched=%v", saved, switched)
	}
}

func TestRename_Cancel(t *testing.T) {
	m := NewRenameModel(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(SwitchToMainMsg); !ok {
		t.Error("esc should return to the main view")
	}
}

package commands

import (
	"context"
	"errors"
	"testing"

	"flowshow/internal/application"
	"flowshow/internal/domain"
	"flowshow/internal/testutil"
)

func newFlowDocument() *testutil.Document {
	doc := testutil.NewDocument()
	doc.AddConnector("c1", "1", false)
	doc.AddConnector("c2", "1", true)
	doc.AddConnector("c3", "2", false)
	doc.AddConnector("c4", "", false)
	doc.Add("s1", domain.NodeKindShape, false, true)
	return doc
}

func TestToggleVisibility_AllSkipsLocked(t *testing.T) {
	doc := newFlowDocument()

	result, err := NewToggleVisibilityCommand(doc, false, domain.TagAll, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Changed != 3 {
		t.Errorf("expected 3 changed connectors, got %d", result.Changed)
	}
	for _, id := range []string{"c1", "c3", "c4"} {
		if doc.Node(id).Visible {
			t.Errorf("expected %s hidden", id)
		}
	}
	if !doc.Node("c2").Visible {
		t.Error("locked connector c2 should keep its visibility")
	}
	if !doc.Node("s1").Visible {
		t.Error("shape should never be touched")
	}
}

func TestToggleVisibility_AllIncludesLocked(t *testing.T) {
	doc := newFlowDocument()

	result, err := NewToggleVisibilityCommand(doc, false, domain.TagAll, true).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Changed != 4 {
		t.Errorf("expected 4 changed connectors, got %d", result.Changed)
	}
	if doc.Node("c2").Visible {
		t.Error("locked connector should be hidden when locked ones are included")
	}
}

func TestToggleVisibility_ByTag(t *testing.T) {
	tests := []struct {
		name          string
		tag           string
		includeLocked bool
		wantHidden    []string
	}{
		{name: "flow 1 unlocked only", tag: "1", includeLocked: false, wantHidden: []string{"c1"}},
		{name: "flow 1 with locked", tag: "1", includeLocked: true, wantHidden: []string{"c1", "c2"}},
		{name: "flow 2", tag: "2", includeLocked: false, wantHidden: []string{"c3"}},
		{name: "unused flow", tag: "3", includeLocked: false, wantHidden: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newFlowDocument()

			result, err := NewToggleVisibilityCommand(doc, false, tt.tag, tt.includeLocked).Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if result.Changed != len(tt.wantHidden) {
				t.Errorf("expected %d changed, got %d", len(tt.wantHidden), result.Changed)
			}
			for _, id := range tt.wantHidden {
				if doc.Node(id).Visible {
					t.Errorf("expected %s hidden", id)
				}
			}
		})
	}
}

func TestToggleVisibility_InvalidTagMutatesNothing(t *testing.T) {
	for _, tag := range []string{"9", "-1", "checkout", ""} {
		t.Run(tag, func(t *testing.T) {
			doc := newFlowDocument()

			_, err := NewToggleVisibilityCommand(doc, false, tag, true).Execute(context.Background())
			if !errors.Is(err, application.ErrInvalidTag) {
				t.Fatalf("expected ErrInvalidTag, got %v", err)
			}
			if doc.VisibilityWrites != 0 {
				t.Errorf("expected no visibility writes, got %d", doc.VisibilityWrites)
			}
		})
	}
}

func TestToggleVisibility_ComparesTagLiterally(t *testing.T) {
	doc := testutil.NewDocument()
	doc.AddConnector("c1", "01", false)
	doc.AddConnector("c2", "1", false)

	result, err := NewToggleVisibilityCommand(doc, false, "1", false).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Changed != 1 || doc.Node("c1").Visible == false {
		t.Errorf("only the literal match should change, got %d changed", result.Changed)
	}
}

func TestToggleVisibility_LeadingNumberTag(t *testing.T) {
	doc := newFlowDocument()
	doc.AddConnector("c5", "2abc", false)

	result, err := NewToggleVisibilityCommand(doc, false, "2abc", false).Execute(context.Background())
	if err != nil {
		t.Fatalf("tag with a leading number should be accepted, got %v", err)
	}
	if result.Changed != 1 || doc.Node("c5").Visible || !doc.Node("c3").Visible {
		t.Errorf("only the connector tagged %q should hide, got %d changed", "2abc", result.Changed)
	}
}

func TestToggleVisibility_DocumentError(t *testing.T) {
	doc := newFlowDocument()
	doc.Err = errors.New("boom")

	if _, err := NewToggleVisibilityCommand(doc, true, domain.TagAll, false).Execute(context.Background()); err == nil {
		t.Fatal("expected error from document")
	}
}

package domain

import "testing"

func TestAsConnector(t *testing.T) {
	tests := []struct {
		name string
		kind NodeKind
		ok   bool
	}{
		{"connector narrows", NodeKindConnector, true},
		{"shape fails", NodeKindShape, false},
		{"text fails", NodeKindText, false},
		{"unknown fails", NodeKindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Node{ID: "n1", Kind: tt.kind}
			c, ok := n.AsConnector()
			if ok != tt.ok {
				t.Fatalf("AsConnector() ok = %v, want %v", ok, tt.ok)
			}
			if ok && c.ID != "n1" {
				t.Errorf("expected connector n1, got %q", c.ID)
			}
		})
	}
}

func TestConnectors_FiltersAndKeepsOrder(t *testing.T) {
	nodes := []Node{
		{ID: "a", Kind: NodeKindConnector},
		{ID: "b", Kind: NodeKindShape},
		{ID: "c", Kind: NodeKindConnector},
	}

	got := Connectors(nodes)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("unexpected connectors: %+v", got)
	}
}

func TestConnector_IncludedBy(t *testing.T) {
	locked := Connector{Node{Kind: NodeKindConnector, Locked: true}}
	unlocked := Connector{Node{Kind: NodeKindConnector}}

	if locked.IncludedBy(false) {
		t.Error("locked connector should be excluded without includeLocked")
	}
	if !locked.IncludedBy(true) {
		t.Error("locked connector should be included with includeLocked")
	}
	if !unlocked.IncludedBy(false) {
		t.Error("unlocked connector should always be included")
	}
}

func TestParseNodeKind(t *testing.T) {
	for _, k := range []NodeKind{NodeKindConnector, NodeKindShape, NodeKindText, NodeKindFrame} {
		if got := ParseNodeKind(k.String()); got != k {
			t.Errorf("ParseNodeKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if got := ParseNodeKind("Arrow"); got != NodeKindConnector {
		t.Errorf("expected arrow alias to parse as connector, got %v", got)
	}
	if got := ParseNodeKind("blob"); got != NodeKindUnknown {
		t.Errorf("expected unknown, got %v", got)
	}
}

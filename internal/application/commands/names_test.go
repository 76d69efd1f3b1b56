package commands

import (
	"context"
	"slices"
	"testing"

	"flowshow/internal/domain"
	"flowshow/internal/testutil"
)

func TestResolveFlowNamesCommand_Defaults(t *testing.T) {
	doc := testutil.NewDocument()

	names, err := NewResolveFlowNamesCommand(doc).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !slices.Equal(names, domain.DefaultFlowNames()) {
		t.Errorf("expected defaults, got %q", names)
	}
}

func TestSaveFlowNamesCommand_RoundTrip(t *testing.T) {
	doc := testutil.NewDocument()
	names := []string{"Signup", "Login", "Flow 3", "", "Billing", "Flow 6", "Flow 7", "Flow 8", "Flow 9", "Support"}

	result, err := NewSaveFlowNamesCommand(doc, names).Execute(context.Background())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if result.Stored != "Signup,Login,Flow 3,,Billing,Flow 6,Flow 7,Flow 8,Flow 9,Support" {
		t.Errorf("unexpected stored value %q", result.Stored)
	}

	got, err := NewResolveFlowNamesCommand(doc).Execute(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !slices.Equal(got, names) {
		t.Errorf("round trip = %q, want %q", got, names)
	}
}

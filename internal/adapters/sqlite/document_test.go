package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"flowshow/internal/application"
	"flowshow/internal/domain"
)

func openTestDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := OpenMemory()
	if err != nil {
		t.Fatalf("failed to open document: %v", err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

func mustAdd(t *testing.T, doc *Document, kind domain.NodeKind, name string) *domain.Node {
	t.Helper()
	n, err := doc.AddNode(kind, name)
	if err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}
	return n
}

func TestAddNodeAndList(t *testing.T) {
	doc := openTestDocument(t)

	a := mustAdd(t, doc, domain.NodeKindConnector, "login arrow")
	s := mustAdd(t, doc, domain.NodeKindShape, "")
	b := mustAdd(t, doc, domain.NodeKindConnector, "checkout arrow")

	if s.Name != "shape" {
		t.Errorf("expected default name 'shape', got %q", s.Name)
	}
	if !a.Visible || a.Locked {
		t.Errorf("new node should be visible and unlocked: %+v", a)
	}

	nodes, err := doc.ListNodes()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 3 || nodes[0].ID != a.ID || nodes[1].ID != s.ID || nodes[2].ID != b.ID {
		t.Fatalf("unexpected node order: %+v", nodes)
	}
	if nodes[1].Kind != domain.NodeKindShape {
		t.Errorf("expected shape kind, got %s", nodes[1].Kind)
	}

	connectors, err := doc.FindConnectors()
	if err != nil {
		t.Fatal(err)
	}
	if len(connectors) != 2 || connectors[0].ID != a.ID || connectors[1].ID != b.ID {
		t.Errorf("unexpected connectors: %+v", connectors)
	}
}

func TestAddNodeUnknownKind(t *testing.T) {
	doc := openTestDocument(t)

	_, err := doc.AddNode(domain.NodeKindUnknown, "x")
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNodeData(t *testing.T) {
	doc := openTestDocument(t)
	c := mustAdd(t, doc, domain.NodeKindConnector, "")

	got, err := doc.NodeData(c.ID, domain.FlowTagKey)
	if err != nil || got != "" {
		t.Fatalf("missing entry should read as empty, got %q err=%v", got, err)
	}

	if err := doc.SetNodeData(c.ID, domain.FlowTagKey, "3"); err != nil {
		t.Fatal(err)
	}
	if got, _ := doc.NodeData(c.ID, domain.FlowTagKey); got != "3" {
		t.Errorf("expected 3, got %q", got)
	}

	if err := doc.SetNodeData(c.ID, domain.FlowTagKey, ""); err != nil {
		t.Fatal(err)
	}
	if got, _ := doc.NodeData(c.ID, domain.FlowTagKey); got != "" {
		t.Errorf("expected cleared tag, got %q", got)
	}

	err = doc.SetNodeData("missing", domain.FlowTagKey, "1")
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	var valErr *application.ValidationError
	if err := doc.SetNodeData(c.ID, " ", "1"); !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError for blank key, got %v", err)
	}
}

func TestDocumentData(t *testing.T) {
	doc := openTestDocument(t)

	if _, ok, err := doc.DocumentData(domain.FlowNamesKey); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	if err := doc.SetDocumentData(domain.FlowNamesKey, ""); err != nil {
		t.Fatal(err)
	}
	v, ok, err := doc.DocumentData(domain.FlowNamesKey)
	if err != nil || !ok || v != "" {
		t.Errorf("expected present empty value, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestVisibilityAndLocking(t *testing.T) {
	doc := openTestDocument(t)
	c := mustAdd(t, doc, domain.NodeKindConnector, "")

	if err := doc.SetVisible(c.ID, false); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetLocked(c.ID, true); err != nil {
		t.Fatal(err)
	}
	// idempotent writes still find the row
	if err := doc.SetLocked(c.ID, true); err != nil {
		t.Fatalf("repeated SetLocked failed: %v", err)
	}

	connectors, _ := doc.FindConnectors()
	if connectors[0].Visible || !connectors[0].Locked {
		t.Errorf("unexpected state: %+v", connectors[0])
	}

	if err := doc.SetVisible("missing", true); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := doc.SetLocked("missing", true); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSelection(t *testing.T) {
	doc := openTestDocument(t)
	a := mustAdd(t, doc, domain.NodeKindConnector, "")
	b := mustAdd(t, doc, domain.NodeKindShape, "")
	c := mustAdd(t, doc, domain.NodeKindConnector, "")

	if err := doc.SetSelection([]string{c.ID, a.ID, b.ID, c.ID}); err != nil {
		t.Fatal(err)
	}
	sel, err := doc.Selection()
	if err != nil {
		t.Fatal(err)
	}
	if len(sel) != 3 || sel[0].ID != c.ID || sel[1].ID != a.ID || sel[2].ID != b.ID {
		t.Fatalf("unexpected selection order: %+v", sel)
	}

	err = doc.SetSelection([]string{a.ID, "missing"})
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// failed replacement keeps the previous selection
	sel, _ = doc.Selection()
	if len(sel) != 3 {
		t.Errorf("expected previous selection to survive, got %d nodes", len(sel))
	}

	if err := doc.SetSelection(nil); err != nil {
		t.Fatal(err)
	}
	if sel, _ := doc.Selection(); len(sel) != 0 {
		t.Errorf("expected empty selection, got %+v", sel)
	}
}

func TestRemoveNode(t *testing.T) {
	doc := openTestDocument(t)
	a := mustAdd(t, doc, domain.NodeKindConnector, "")
	b := mustAdd(t, doc, domain.NodeKindConnector, "")
	if err := doc.SetNodeData(a.ID, domain.FlowTagKey, "1"); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetSelection([]string{a.ID, b.ID}); err != nil {
		t.Fatal(err)
	}

	if err := doc.RemoveNode(a.ID); err != nil {
		t.Fatal(err)
	}

	sel, _ := doc.Selection()
	if len(sel) != 1 || sel[0].ID != b.ID {
		t.Errorf("removed node should leave the selection, got %+v", sel)
	}
	if got, _ := doc.NodeData(a.ID, domain.FlowTagKey); got != "" {
		t.Errorf("node data should be removed, got %q", got)
	}
	if err := doc.RemoveNode(a.ID); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.db")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c, err := doc.AddNode(domain.NodeKindConnector, "arrow")
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.SetDocumentData(domain.FlowNamesKey, "A,B"); err != nil {
		t.Fatal(err)
	}
	if err := doc.Close(); err != nil {
		t.Fatal(err)
	}

	doc, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer doc.Close()

	if doc.Path() != path {
		t.Errorf("Path() = %q, want %q", doc.Path(), path)
	}
	connectors, _ := doc.FindConnectors()
	if len(connectors) != 1 || connectors[0].ID != c.ID {
		t.Errorf("expected persisted connector, got %+v", connectors)
	}
	if v, ok, _ := doc.DocumentData(domain.FlowNamesKey); !ok || v != "A,B" {
		t.Errorf("expected persisted names, got %q ok=%v", v, ok)
	}
}

func TestOpenFilePragmas(t *testing.T) {
	doc, err := Open(filepath.Join(t.TempDir(), "doc.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	var mode string
	if err := doc.db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	// hold two connections so the pool has to open a second one
	ctx := context.Background()
	first, err := doc.db.Conn(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()
	second, err := doc.db.Conn(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	for i, conn := range []*sql.Conn{first, second} {
		var timeout int
		if err := conn.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout); err != nil {
			t.Fatal(err)
		}
		if timeout != 5000 {
			t.Errorf("connection %d: busy_timeout = %d, want 5000", i, timeout)
		}
	}
}

func TestOpenMemoryPath(t *testing.T) {
	doc, err := Open(MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()
	if doc.Path() != MemoryPath {
		t.Errorf("expected memory path, got %q", doc.Path())
	}
}

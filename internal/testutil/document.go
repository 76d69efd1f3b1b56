// Package testutil provides in-memory stand-ins for the host document and
// panel so controller and command tests can run without SQLite or a TUI.
package testutil

import (
	"fmt"
	"slices"

	"flowshow/internal/application"
	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// Document is an in-memory ports.Document and ports.Host.
// Nodes keep insertion order.
type Document struct {
	nodes     []*domain.Node
	nodeData  map[string]map[string]string
	docData   map[string]string
	selection []string

	// VisibilityWrites counts SetVisible calls
	VisibilityWrites int
	// Err, when set, is returned by every call
	Err error
}

var (
	_ ports.Document = (*Document)(nil)
	_ ports.Host     = (*Document)(nil)
)

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		nodeData: make(map[string]map[string]string),
		docData:  make(map[string]string),
	}
}

// Add appends a node with a fixed ID and returns it
func (d *Document) Add(id string, kind domain.NodeKind, locked, visible bool) *domain.Node {
	n := &domain.Node{ID: id, Kind: kind, Name: id, Locked: locked, Visible: visible}
	d.nodes = append(d.nodes, n)
	return n
}

// AddConnector appends a visible connector with an optional tag
func (d *Document) AddConnector(id, tag string, locked bool) *domain.Node {
	n := d.Add(id, domain.NodeKindConnector, locked, true)
	if tag != "" {
		d.nodeData[id] = map[string]string{domain.FlowTagKey: tag}
	}
	return n
}

// Select replaces the selection, skipping the existence check of SetSelection
func (d *Document) Select(ids ...string) {
	d.selection = append([]string(nil), ids...)
}

// Node returns the node with id, or nil
func (d *Document) Node(id string) *domain.Node {
	for _, n := range d.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Tag returns the flow tag stored on a node
func (d *Document) Tag(id string) string {
	return d.nodeData[id][domain.FlowTagKey]
}

func (d *Document) FindConnectors() ([]domain.Connector, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	var out []domain.Connector
	for _, n := range d.nodes {
		if c, ok := n.AsConnector(); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (d *Document) Selection() ([]domain.Node, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	var out []domain.Node
	for _, id := range d.selection {
		if n := d.Node(id); n != nil {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (d *Document) NodeData(nodeID, key string) (string, error) {
	if d.Err != nil {
		return "", d.Err
	}
	return d.nodeData[nodeID][key], nil
}

func (d *Document) DocumentData(key string) (string, bool, error) {
	if d.Err != nil {
		return "", false, d.Err
	}
	v, ok := d.docData[key]
	return v, ok, nil
}

func (d *Document) SetNodeData(nodeID, key, value string) error {
	if d.Err != nil {
		return d.Err
	}
	if d.nodeData[nodeID] == nil {
		d.nodeData[nodeID] = make(map[string]string)
	}
	d.nodeData[nodeID][key] = value
	return nil
}

func (d *Document) SetVisible(nodeID string, visible bool) error {
	if d.Err != nil {
		return d.Err
	}
	n := d.Node(nodeID)
	if n == nil {
		return fmt.Errorf("node %s: %w", nodeID, application.ErrNotFound)
	}
	n.Visible = visible
	d.VisibilityWrites++
	return nil
}

func (d *Document) SetDocumentData(key, value string) error {
	if d.Err != nil {
		return d.Err
	}
	d.docData[key] = value
	return nil
}

func (d *Document) ListNodes() ([]domain.Node, error) {
	out := make([]domain.Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		out = append(out, *n)
	}
	return out, nil
}

func (d *Document) AddNode(kind domain.NodeKind, name string) (*domain.Node, error) {
	id := fmt.Sprintf("node-%d", len(d.nodes)+1)
	n := d.Add(id, kind, false, true)
	n.Name = name
	return n, nil
}

func (d *Document) RemoveNode(nodeID string) error {
	i := slices.IndexFunc(d.nodes, func(n *domain.Node) bool { return n.ID == nodeID })
	if i < 0 {
		return fmt.Errorf("node %s: %w", nodeID, application.ErrNotFound)
	}
	d.nodes = slices.Delete(d.nodes, i, i+1)
	delete(d.nodeData, nodeID)
	return nil
}

func (d *Document) SetLocked(nodeID string, locked bool) error {
	n := d.Node(nodeID)
	if n == nil {
		return fmt.Errorf("node %s: %w", nodeID, application.ErrNotFound)
	}
	n.Locked = locked
	return nil
}

func (d *Document) SetSelection(nodeIDs []string) error {
	for _, id := range nodeIDs {
		if d.Node(id) == nil {
			return fmt.Errorf("node %s: %w", id, application.ErrNotFound)
		}
	}
	d.Select(nodeIDs...)
	return nil
}

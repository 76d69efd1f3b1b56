package domain

import "strings"

// NodeKind represents the kind of element a document node is
type NodeKind int

const (
	NodeKindUnknown   NodeKind = iota
	NodeKindConnector          // arrow between two elements
	NodeKindShape              // rectangle, ellipse, ...
	NodeKindText
	NodeKindFrame
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindConnector:
		return "connector"
	case NodeKindShape:
		return "shape"
	case NodeKindText:
		return "text"
	case NodeKindFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// ParseNodeKind maps a kind name back to its NodeKind. Matching is case-insensitive.
func ParseNodeKind(s string) NodeKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "connector", "arrow":
		return NodeKindConnector
	case "shape":
		return NodeKindShape
	case "text":
		return NodeKindText
	case "frame":
		return NodeKindFrame
	default:
		return NodeKindUnknown
	}
}

// Node is an element of the host document
type Node struct {
	ID      string
	Kind    NodeKind
	Name    string
	Locked  bool
	Visible bool
}

// Connector is a Node known to be of kind NodeKindConnector.
// Obtain one through Node.AsConnector.
type Connector struct {
	Node
}

// AsConnector narrows n to a Connector. ok is false for every other kind.
func (n Node) AsConnector() (Connector, bool) {
	if n.Kind != NodeKindConnector {
		return Connector{}, false
	}
	return Connector{Node: n}, true
}

// Connectors keeps the connector nodes of nodes, preserving order
func Connectors(nodes []Node) []Connector {
	var out []Connector
	for _, n := range nodes {
		if c, ok := n.AsConnector(); ok {
			out = append(out, c)
		}
	}
	return out
}

// IncludedBy reports whether a visibility change may touch c.
// Locked connectors are only touched when includeLocked is set.
func (c Connector) IncludedBy(includeLocked bool) bool {
	return includeLocked || !c.Locked
}

package application

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"flowshow/internal/domain"
)

// NodeFilter narrows a node listing. The zero value keeps every node.
type NodeFilter struct {
	Kind  domain.NodeKind // NodeKindUnknown keeps every kind
	Match string          // fuzzy, case-insensitive match on the name
}

// NewNodeFilter parses a kind name ("" for any) and a name query
func NewNodeFilter(kind, match string) (NodeFilter, error) {
	f := NodeFilter{Match: strings.TrimSpace(match)}
	if strings.TrimSpace(kind) == "" {
		return f, nil
	}
	if f.Kind = domain.ParseNodeKind(kind); f.Kind == domain.NodeKindUnknown {
		return f, &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown node kind: %s", kind)}
	}
	return f, nil
}

// Keep reports whether n passes the filter
func (f NodeFilter) Keep(n domain.Node) bool {
	if f.Kind != domain.NodeKindUnknown && n.Kind != f.Kind {
		return false
	}
	return f.Match == "" || fuzzy.MatchNormalizedFold(f.Match, n.Name)
}

// Apply returns the nodes that pass, preserving order
func (f NodeFilter) Apply(nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, 0, len(nodes))
	for _, n := range nodes {
		if f.Keep(n) {
			out = append(out, n)
		}
	}
	return out
}

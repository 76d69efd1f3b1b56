package ports

import "flowshow/internal/domain"

// Host covers the document operations a user performs directly on the
// canvas (drawing, locking, selecting). The controller never calls these;
// the surfaces that stand in for the design tool do.
type Host interface {
	ListNodes() ([]domain.Node, error)
	AddNode(kind domain.NodeKind, name string) (*domain.Node, error)
	RemoveNode(nodeID string) error
	SetLocked(nodeID string, locked bool) error

	// SetSelection replaces the current selection. Unknown IDs are an error.
	SetSelection(nodeIDs []string) error
}

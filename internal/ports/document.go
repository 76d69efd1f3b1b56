package ports

import "flowshow/internal/domain"

// DocumentQuery reads from the host document
type DocumentQuery interface {
	// FindConnectors returns every connector on the current page
	FindConnectors() ([]domain.Connector, error)

	// Selection returns the currently selected nodes, any kind
	Selection() ([]domain.Node, error)

	// NodeData reads a node-scoped key/value entry. Missing entries read as "".
	NodeData(nodeID, key string) (string, error)

	// DocumentData reads a document-scoped key/value entry.
	// ok is false when the key was never written.
	DocumentData(key string) (value string, ok bool, err error)
}

// DocumentMutator writes to the host document
type DocumentMutator interface {
	SetNodeData(nodeID, key, value string) error
	SetVisible(nodeID string, visible bool) error
	SetDocumentData(key, value string) error
}

// Document is the full host document surface used by the controller
type Document interface {
	DocumentQuery
	DocumentMutator
}

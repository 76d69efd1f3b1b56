package commands

import (
	"context"
	"fmt"

	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// SelectionSnapshot is the connector part of the current selection and its
// flow classification
type SelectionSnapshot struct {
	Arrows []domain.Connector
	Flow   domain.FlowState
}

// ClassifySelectionCommand inspects the current selection
type ClassifySelectionCommand struct {
	doc      ports.Document
	Previous domain.FlowState
}

// NewClassifySelectionCommand creates a new ClassifySelectionCommand.
// previous is kept when every selected connector is untagged.
func NewClassifySelectionCommand(doc ports.Document, previous domain.FlowState) *ClassifySelectionCommand {
	return &ClassifySelectionCommand{
		doc:      doc,
		Previous: previous,
	}
}

// Execute queries the selection and classifies it
func (c *ClassifySelectionCommand) Execute(ctx context.Context) (*SelectionSnapshot, error) {
	nodes, err := c.doc.Selection()
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}

	arrows := domain.Connectors(nodes)
	if len(arrows) == 0 {
		return &SelectionSnapshot{Flow: domain.FlowNone}, nil
	}

	var tags []string
	for _, a := range arrows {
		tag, err := c.doc.NodeData(a.ID, domain.FlowTagKey)
		if err != nil {
			return nil, fmt.Errorf("failed to read tag of %s: %w", a.ID, err)
		}
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return &SelectionSnapshot{
		Arrows: arrows,
		Flow:   domain.ClassifyFlow(tags, c.Previous),
	}, nil
}

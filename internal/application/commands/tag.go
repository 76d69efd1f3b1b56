package commands

import (
	"context"
	"fmt"

	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// TagResult contains the result of tagging connectors
type TagResult struct {
	Tag     string
	Tagged  int
	Message string
}

// TagConnectorsCommand stores a flow tag on a set of connectors.
// An empty Tag clears the tag.
type TagConnectorsCommand struct {
	doc        ports.Document
	Connectors []domain.Connector
	Tag        string
}

// NewTagConnectorsCommand creates a new TagConnectorsCommand
func NewTagConnectorsCommand(doc ports.Document, connectors []domain.Connector, tag string) *TagConnectorsCommand {
	return &TagConnectorsCommand{
		doc:        doc,
		Connectors: connectors,
		Tag:        tag,
	}
}

// Execute writes the tag to every connector
func (c *TagConnectorsCommand) Execute(ctx context.Context) (*TagResult, error) {
	for _, conn := range c.Connectors {
		if err := c.doc.SetNodeData(conn.ID, domain.FlowTagKey, c.Tag); err != nil {
			return nil, fmt.Errorf("failed to tag %s: %w", conn.ID, err)
		}
	}

	msg := fmt.Sprintf("Tagged %d connectors with %q", len(c.Connectors), c.Tag)
	if c.Tag == "" {
		msg = fmt.Sprintf("Cleared tag on %d connectors", len(c.Connectors))
	}
	return &TagResult{
		Tag:     c.Tag,
		Tagged:  len(c.Connectors),
		Message: msg,
	}, nil
}

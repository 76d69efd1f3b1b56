package commands

import (
	"context"
	"fmt"

	"flowshow/internal/application"
	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// ToggleVisibilityResult contains the result of a visibility change
type ToggleVisibilityResult struct {
	Tag     string
	Visible bool
	Changed int
	Message string
}

// ToggleVisibilityCommand shows or hides connectors, either all of them or
// the ones tagged with a given flow
type ToggleVisibilityCommand struct {
	doc           ports.Document
	Visible       bool
	Tag           string
	IncludeLocked bool
}

// NewToggleVisibilityCommand creates a new ToggleVisibilityCommand
func NewToggleVisibilityCommand(doc ports.Document, visible bool, tag string, includeLocked bool) *ToggleVisibilityCommand {
	return &ToggleVisibilityCommand{
		doc:           doc,
		Visible:       visible,
		Tag:           tag,
		IncludeLocked: includeLocked,
	}
}

// Execute runs the visibility command. An unusable tag returns an error
// matching application.ErrInvalidTag and leaves the document untouched.
func (c *ToggleVisibilityCommand) Execute(ctx context.Context) (*ToggleVisibilityResult, error) {
	connectors, err := c.doc.FindConnectors()
	if err != nil {
		return nil, fmt.Errorf("failed to find connectors: %w", err)
	}

	matchAll := c.Tag == domain.TagAll
	if !matchAll {
		if err := application.ValidateTagIndex(c.Tag, len(connectors)); err != nil {
			return nil, err
		}
	}

	changed := 0
	for _, conn := range connectors {
		if !conn.IncludedBy(c.IncludeLocked) {
			continue
		}
		if !matchAll {
			tag, err := c.doc.NodeData(conn.ID, domain.FlowTagKey)
			if err != nil {
				return nil, fmt.Errorf("failed to read tag of %s: %w", conn.ID, err)
			}
			if tag != c.Tag {
				continue
			}
		}
		if err := c.doc.SetVisible(conn.ID, c.Visible); err != nil {
			return nil, fmt.Errorf("failed to set visibility of %s: %w", conn.ID, err)
		}
		changed++
	}

	return &ToggleVisibilityResult{
		Tag:     c.Tag,
		Visible: c.Visible,
		Changed: changed,
		Message: fmt.Sprintf("%s %d connectors (%s)", visibilityVerb(c.Visible), changed, c.Tag),
	}, nil
}

func visibilityVerb(visible bool) string {
	if visible {
		return "Showed"
	}
	return "Hid"
}

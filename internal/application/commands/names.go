package commands

import (
	"context"
	"fmt"

	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// ResolveFlowNamesCommand loads the flow names of a document
type ResolveFlowNamesCommand struct {
	doc ports.Document
}

// NewResolveFlowNamesCommand creates a new ResolveFlowNamesCommand
func NewResolveFlowNamesCommand(doc ports.Document) *ResolveFlowNamesCommand {
	return &ResolveFlowNamesCommand{doc: doc}
}

// Execute returns exactly domain.FlowCount names
func (c *ResolveFlowNamesCommand) Execute(ctx context.Context) ([]string, error) {
	saved, ok, err := c.doc.DocumentData(domain.FlowNamesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow names: %w", err)
	}
	return domain.ResolveFlowNames(saved, ok), nil
}

// SaveFlowNamesResult contains the result of saving flow names
type SaveFlowNamesResult struct {
	Stored  string
	Message string
}

// SaveFlowNamesCommand persists the flow names of a document
type SaveFlowNamesCommand struct {
	doc   ports.Document
	Names []string
}

// NewSaveFlowNamesCommand creates a new SaveFlowNamesCommand
func NewSaveFlowNamesCommand(doc ports.Document, names []string) *SaveFlowNamesCommand {
	return &SaveFlowNamesCommand{doc: doc, Names: names}
}

// Execute joins the names and stores them under domain.FlowNamesKey
func (c *SaveFlowNamesCommand) Execute(ctx context.Context) (*SaveFlowNamesResult, error) {
	stored := domain.JoinFlowNames(c.Names)
	if err := c.doc.SetDocumentData(domain.FlowNamesKey, stored); err != nil {
		return nil, fmt.Errorf("failed to save flow names: %w", err)
	}
	return &SaveFlowNamesResult{
		Stored:  stored,
		Message: fmt.Sprintf("Saved %d flow names", len(c.Names)),
	}, nil
}

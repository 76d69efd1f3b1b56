package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"flowshow/internal/application/controller"
	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// TranscriptPanel is the controller's panel when an agent drives it: it keeps
// what the controller posts during one tool call so the call can report it.
// It is only touched on the controller loop.
type TranscriptPanel struct {
	updates []domain.Update
	sizes   []domain.PanelSize
	last    domain.Update
	size    domain.PanelSize
}

var _ ports.Panel = (*TranscriptPanel)(nil)

// NewTranscriptPanel creates an empty panel with the default collapsed size
func NewTranscriptPanel() *TranscriptPanel {
	return &TranscriptPanel{
		size: domain.PanelSize{Width: domain.DefaultPanelWidth, Height: domain.DefaultCollapsedHeight},
	}
}

func (p *TranscriptPanel) PostMessage(msg domain.Update) error {
	p.updates = append(p.updates, msg)
	if msg.Text != domain.UpdateInitializeFlowNames {
		p.last = msg
	}
	return nil
}

func (p *TranscriptPanel) Resize(width, height int) error {
	size := domain.PanelSize{Width: width, Height: height}
	p.sizes = append(p.sizes, size)
	p.size = size
	return nil
}

func (p *TranscriptPanel) take() ([]domain.Update, []domain.PanelSize) {
	updates, sizes := p.updates, p.sizes
	p.updates, p.sizes = nil, nil
	return updates, sizes
}

// Document is what the tools read and edit besides the controller
type Document interface {
	ports.DocumentQuery
	ports.Host
}

// Session binds the MCP tools to one document and its controller loop
type Session struct {
	loop  *controller.Loop
	doc   Document
	panel *TranscriptPanel
}

// NewSession creates a session. panel must be the panel the loop's
// controller posts to.
func NewSession(loop *controller.Loop, doc Document, panel *TranscriptPanel) *Session {
	return &Session{loop: loop, doc: doc, panel: panel}
}

// run executes fn on the controller loop and returns what the controller
// posted to the panel meanwhile, rendered for a tool result
func (s *Session) run(ctx context.Context, fn controller.Event) (string, error) {
	var updates []domain.Update
	var sizes []domain.PanelSize
	err := s.loop.Do(ctx, func(ctx context.Context, c *controller.Controller) error {
		s.panel.take()
		err := fn(ctx, c)
		updates, sizes = s.panel.take()
		return err
	})
	if err != nil {
		return "", err
	}
	return renderTranscript(updates, sizes), nil
}

func renderTranscript(updates []domain.Update, sizes []domain.PanelSize) string {
	var sb strings.Builder
	for _, u := range updates {
		data, err := json.Marshal(u)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "panel <- %s\n", data)
	}
	for _, size := range sizes {
		fmt.Fprintf(&sb, "panel resized to %dx%d\n", size.Width, size.Height)
	}
	return sb.String()
}

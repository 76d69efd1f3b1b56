// Package controller holds the document controller: the headless side of the
// panel channel. It owns the selection snapshot and the locked-inclusion
// flag and turns panel intents and host events into document mutations and
// panel updates.
//
// A Controller is not safe for concurrent use. Surfaces that deliver events
// from several goroutines go through a Loop.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"flowshow/internal/application"
	"flowshow/internal/application/commands"
	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// State is a read-only copy of the controller's in-memory state
type State struct {
	SelectedArrows []domain.Connector
	SelectedFlow   domain.FlowState
	IncludeLocked  bool
}

// Controller reacts to host events and panel intents
type Controller struct {
	doc   ports.Document
	panel ports.Panel
	log   zerolog.Logger

	collapsed domain.PanelSize
	expanded  domain.PanelSize

	selectedArrows []domain.Connector
	selectedFlow   domain.FlowState
	includeLocked  bool
}

// Option configures the Controller
type Option func(*Controller)

// WithLogger sets the logger used for warnings and event traces
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log.With().Str("component", "controller").Logger()
	}
}

// WithPanelSizes overrides the collapsed and expanded panel dimensions
func WithPanelSizes(collapsed, expanded domain.PanelSize) Option {
	return func(c *Controller) {
		c.collapsed = collapsed
		c.expanded = expanded
	}
}

// New creates a controller for one document and one panel
func New(doc ports.Document, panel ports.Panel, opts ...Option) *Controller {
	c := &Controller{
		doc:          doc,
		panel:        panel,
		log:          zerolog.Nop(),
		collapsed:    domain.PanelSize{Width: domain.DefaultPanelWidth, Height: domain.DefaultCollapsedHeight},
		expanded:     domain.PanelSize{Width: domain.DefaultPanelWidth, Height: domain.DefaultExpandedHeight},
		selectedFlow: domain.FlowNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the selection snapshot and the locked-inclusion flag
func (c *Controller) State() State {
	return State{
		SelectedArrows: append([]domain.Connector(nil), c.selectedArrows...),
		SelectedFlow:   c.selectedFlow,
		IncludeLocked:  c.includeLocked,
	}
}

// SelectedFlow returns the flow classification of the last inspected selection
func (c *Controller) SelectedFlow() domain.FlowState {
	return c.selectedFlow
}

// IncludeLocked reports whether visibility changes touch locked connectors
func (c *Controller) IncludeLocked() bool {
	return c.includeLocked
}

// Launch runs the start-up sequence: send the flow names, warn when the page
// has no connectors, and classify the initial selection.
func (c *Controller) Launch(ctx context.Context) error {
	c.log.Debug().Msg("launch")

	names, err := commands.NewResolveFlowNamesCommand(c.doc).Execute(ctx)
	if err != nil {
		return c.fail("resolve flow names", err)
	}
	if err := c.post(domain.Update{Text: domain.UpdateInitializeFlowNames, FlowArray: names}); err != nil {
		return err
	}

	connectors, err := c.doc.FindConnectors()
	if err != nil {
		return c.fail("find connectors", err)
	}
	if len(connectors) == 0 {
		if err := c.post(domain.Update{Text: domain.UpdateShowNoConnectorAlert, CurrentlySelectedFlow: c.selectedFlow}); err != nil {
			return err
		}
	}

	return c.SelectionChanged(ctx)
}

// SelectionChanged re-reads the selection, updates the snapshot and tells the
// panel which controls to show.
func (c *Controller) SelectionChanged(ctx context.Context) error {
	snap, err := commands.NewClassifySelectionCommand(c.doc, c.selectedFlow).Execute(ctx)
	if err != nil {
		return c.fail("classify selection", err)
	}

	c.selectedArrows = snap.Arrows
	c.selectedFlow = snap.Flow

	c.log.Debug().
		Int("arrows", len(snap.Arrows)).
		Str("flow", string(snap.Flow)).
		Msg("selection changed")

	text := domain.UpdateShowSelectTags
	if len(snap.Arrows) == 0 {
		text = domain.UpdateShowVisibilityButtons
	}
	return c.post(domain.Update{Text: text, CurrentlySelectedFlow: c.selectedFlow})
}

// HandleIntent applies one panel message. Unknown intent types are ignored.
// An invalid flow tag is logged as a warning and is not an error.
func (c *Controller) HandleIntent(ctx context.Context, intent domain.Intent) error {
	c.log.Debug().Str("type", string(intent.Type)).Msg("intent")

	switch intent.Type {
	case domain.IntentShowAll:
		return c.toggleVisibility(ctx, true, domain.TagAll)

	case domain.IntentHideAll:
		return c.toggleVisibility(ctx, false, domain.TagAll)

	case domain.IntentShowFlow:
		return c.toggleVisibility(ctx, intent.Show, intent.Tag)

	case domain.IntentTagArrows:
		return c.tagSelection(ctx, intent.Tag)

	case domain.IntentTagArrowsNull:
		return c.tagSelection(ctx, "")

	case domain.IntentIncludeLockedTrue:
		c.includeLocked = true

	case domain.IntentIncludeLockedFalse:
		c.includeLocked = false

	case domain.IntentResizeExpand:
		return c.resize(c.expanded)

	case domain.IntentResizeCollapse:
		return c.resize(c.collapsed)

	case domain.IntentSaveFlowNames:
		if _, err := commands.NewSaveFlowNamesCommand(c.doc, intent.NameArray).Execute(ctx); err != nil {
			return c.fail("save flow names", err)
		}

	default:
		c.log.Debug().Str("type", string(intent.Type)).Msg("ignoring unknown intent")
	}
	return nil
}

func (c *Controller) toggleVisibility(ctx context.Context, visible bool, tag string) error {
	result, err := commands.NewToggleVisibilityCommand(c.doc, visible, tag, c.includeLocked).Execute(ctx)
	if errors.Is(err, application.ErrInvalidTag) {
		c.log.Warn().Str("tag", tag).Err(err).Msg("Invalid tag string provided")
		return nil
	}
	if err != nil {
		return c.fail("toggle visibility", err)
	}

	c.log.Debug().
		Str("tag", tag).
		Bool("visible", visible).
		Int("changed", result.Changed).
		Msg("visibility toggled")
	return nil
}

// tagSelection writes to the connectors of the last selection snapshot;
// the selection is not re-read.
func (c *Controller) tagSelection(ctx context.Context, tag string) error {
	if _, err := commands.NewTagConnectorsCommand(c.doc, c.selectedArrows, tag).Execute(ctx); err != nil {
		return c.fail("tag connectors", err)
	}
	return nil
}

func (c *Controller) resize(size domain.PanelSize) error {
	if err := c.panel.Resize(size.Width, size.Height); err != nil {
		return c.fail("resize panel", err)
	}
	return nil
}

func (c *Controller) post(msg domain.Update) error {
	if err := c.panel.PostMessage(msg); err != nil {
		return c.fail("post "+string(msg.Text), err)
	}
	return nil
}

func (c *Controller) fail(op string, err error) error {
	c.log.Error().Err(err).Str("op", op).Msg("controller operation failed")
	return fmt.Errorf("%s: %w", op, err)
}

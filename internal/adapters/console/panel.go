// Package console prints panel updates for command-line use.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// Panel writes every update and resize to w, one line each.
// In JSON mode lines follow the panel message contract.
type Panel struct {
	w    io.Writer
	json bool

	// Last is the most recent update other than the flow names
	Last domain.Update
	// Names are the flow names from the last initialize-flow-names update
	Names []string
}

var _ ports.Panel = (*Panel)(nil)

// NewPanel creates a panel writing to w
func NewPanel(w io.Writer, asJSON bool) *Panel {
	return &Panel{w: w, json: asJSON}
}

func (p *Panel) PostMessage(msg domain.Update) error {
	if msg.Text == domain.UpdateInitializeFlowNames {
		p.Names = append([]string(nil), msg.FlowArray...)
	} else {
		p.Last = msg
	}

	if p.json {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "%s\n", data)
		return err
	}

	switch msg.Text {
	case domain.UpdateInitializeFlowNames:
		_, err := fmt.Fprintf(p.w, "flows: %s\n", strings.Join(msg.FlowArray, ", "))
		return err
	case domain.UpdateShowNoConnectorAlert:
		_, err := fmt.Fprintln(p.w, "warning: no connectors on this page")
		return err
	default:
		_, err := fmt.Fprintf(p.w, "panel: %s (flow %s)\n", msg.Text, msg.CurrentlySelectedFlow)
		return err
	}
}

func (p *Panel) Resize(width, height int) error {
	if p.json {
		data, err := json.Marshal(domain.NewResizeNotice(width, height))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "%s\n", data)
		return err
	}
	_, err := fmt.Fprintf(p.w, "panel: resized to %dx%d\n", width, height)
	return err
}

package tui

import (
	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// queuePanel is the controller's ports.Panel inside the TUI. The controller
// runs inside App.Update, where sending to the program would block, so
// updates are queued and the App applies them once the controller returns.
type queuePanel struct {
	updates []domain.Update
	sizes   []domain.PanelSize
}

var _ ports.Panel = (*queuePanel)(nil)

func (p *queuePanel) PostMessage(msg domain.Update) error {
	p.updates = append(p.updates, msg)
	return nil
}

func (p *queuePanel) Resize(width, height int) error {
	p.sizes = append(p.sizes, domain.PanelSize{Width: width, Height: height})
	return nil
}

// drain returns and forgets everything queued so far
func (p *queuePanel) drain() ([]domain.Update, []domain.PanelSize) {
	updates, sizes := p.updates, p.sizes
	p.updates, p.sizes = nil, nil
	return updates, sizes
}

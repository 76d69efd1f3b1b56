package testutil

import (
	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// Panel records everything the controller posts to it
type Panel struct {
	Messages []domain.Update
	Sizes    []domain.PanelSize
}

var _ ports.Panel = (*Panel)(nil)

func (p *Panel) PostMessage(msg domain.Update) error {
	p.Messages = append(p.Messages, msg)
	return nil
}

func (p *Panel) Resize(width, height int) error {
	p.Sizes = append(p.Sizes, domain.PanelSize{Width: width, Height: height})
	return nil
}

// Last returns the most recent message, or the zero Update
func (p *Panel) Last() domain.Update {
	if len(p.Messages) == 0 {
		return domain.Update{}
	}
	return p.Messages[len(p.Messages)-1]
}

// Texts lists the text of every posted message in order
func (p *Panel) Texts() []domain.UpdateText {
	out := make([]domain.UpdateText, len(p.Messages))
	for i, m := range p.Messages {
		out[i] = m.Text
	}
	return out
}

// Reset forgets recorded messages and sizes
func (p *Panel) Reset() {
	p.Messages = nil
	p.Sizes = nil
}

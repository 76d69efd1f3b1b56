package ports

import "flowshow/internal/domain"

// Panel is the presentational side of the message channel.
// PostMessage is fire-and-forget: implementations must not block on the
// panel re-rendering.
type Panel interface {
	PostMessage(msg domain.Update) error
	Resize(width, height int) error
}

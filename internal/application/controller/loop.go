package controller

import (
	"context"
	"errors"

	"flowshow/internal/domain"
)

// ErrLoopStopped is returned when an event is submitted after Run returned
var ErrLoopStopped = errors.New("controller loop stopped")

// Event is a unit of work executed on the loop goroutine
type Event func(ctx context.Context, c *Controller) error

type request struct {
	fn   Event
	done chan error // nil for fire-and-forget
}

// Loop serialises events for a Controller. Events run one at a time, to
// completion, in submission order.
type Loop struct {
	c        *Controller
	requests chan request
	stopped  chan struct{}
}

// NewLoop creates a loop with room for buffer pending events
func NewLoop(c *Controller, buffer int) *Loop {
	return &Loop{
		c:        c,
		requests: make(chan request, buffer),
		stopped:  make(chan struct{}),
	}
}

// Run executes events until ctx is cancelled
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-l.requests:
			err := req.fn(ctx, l.c)
			if err != nil && req.done == nil {
				l.c.log.Error().Err(err).Msg("event failed")
			}
			if req.done != nil {
				req.done <- err
			}
		}
	}
}

// Do submits fn and waits for it to finish. ctx bounds the wait for a free
// slot and for the result; a started event always runs to completion.
func (l *Loop) Do(ctx context.Context, fn Event) error {
	req := request{fn: fn, done: make(chan error, 1)}
	if err := l.enqueue(ctx, req); err != nil {
		return err
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrLoopStopped
	}
}

// Post submits fn without waiting for it to run
func (l *Loop) Post(ctx context.Context, fn Event) error {
	return l.enqueue(ctx, request{fn: fn})
}

func (l *Loop) enqueue(ctx context.Context, req request) error {
	select {
	case <-l.stopped:
		return ErrLoopStopped
	default:
	}
	select {
	case l.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrLoopStopped
	}
}

// Launch queues the start-up sequence
func (l *Loop) Launch(ctx context.Context) error {
	return l.Do(ctx, func(ctx context.Context, c *Controller) error {
		return c.Launch(ctx)
	})
}

// SelectionChanged queues a selection inspection
func (l *Loop) SelectionChanged(ctx context.Context) error {
	return l.Post(ctx, func(ctx context.Context, c *Controller) error {
		return c.SelectionChanged(ctx)
	})
}

// Intent queues a panel message without waiting for it
func (l *Loop) Intent(ctx context.Context, intent domain.Intent) error {
	return l.Post(ctx, func(ctx context.Context, c *Controller) error {
		return c.HandleIntent(ctx, intent)
	})
}

// State reads the controller state on the loop goroutine
func (l *Loop) State(ctx context.Context) (State, error) {
	var st State
	err := l.Do(ctx, func(_ context.Context, c *Controller) error {
		st = c.State()
		return nil
	})
	return st, err
}

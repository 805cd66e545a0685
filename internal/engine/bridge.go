package engine

import (
	"context"
	"errors"
	"sync"
)

// ErrBridgeClosed is returned by a Bridge's Input methods after Close.
var ErrBridgeClosed = errors.New("engine: bridge closed")

// Bridge is an Input and Display built on channels. It lets an event loop
// that must never block, such as a Bubble Tea program, play a match that a
// Controller runs in another goroutine: events and prompts arrive on
// Events, answers go back through SubmitPlacement and SubmitTarget.
type Bridge struct {
	events     chan Event
	placements chan PlacementRequest
	targets    chan string
	done       chan struct{}
	doneOnce   sync.Once
}

// NewBridge creates a bridge. eventBufferSize controls how many events can
// be buffered before the oldest are dropped.
func NewBridge(eventBufferSize int) *Bridge {
	if eventBufferSize < 1 {
		eventBufferSize = 64
	}
	return &Bridge{
		events:     make(chan Event, eventBufferSize),
		placements: make(chan PlacementRequest, 1),
		targets:    make(chan string, 1),
		done:       make(chan struct{}),
	}
}

// Show queues an event. If the buffer is full the oldest event is dropped.
func (b *Bridge) Show(evt Event) {
	select {
	case <-b.done:
		return
	default:
	}

	select {
	case b.events <- evt:
	default:
		select {
		case <-b.events:
		default:
		}
		select {
		case b.events <- evt:
		default:
		}
	}
}

// Events returns the channel the UI reads events and prompts from.
func (b *Bridge) Events() <-chan Event {
	return b.events
}

// Placement publishes the prompt and waits for SubmitPlacement.
func (b *Bridge) Placement(ctx context.Context, p PlacementPrompt) (PlacementRequest, error) {
	b.Show(PlacementRequested{Prompt: p})
	select {
	case req := <-b.placements:
		return req, nil
	case <-ctx.Done():
		return PlacementRequest{}, ctx.Err()
	case <-b.done:
		return PlacementRequest{}, ErrBridgeClosed
	}
}

// Target publishes the prompt and waits for SubmitTarget.
func (b *Bridge) Target(ctx context.Context, p TargetPrompt) (string, error) {
	b.Show(TargetRequested{Prompt: p})
	select {
	case label := <-b.targets:
		return label, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-b.done:
		return "", ErrBridgeClosed
	}
}

// SubmitPlacement answers the pending placement prompt. It never blocks and
// reports false if an answer is already waiting.
func (b *Bridge) SubmitPlacement(req PlacementRequest) bool {
	select {
	case b.placements <- req:
		return true
	default:
		return false
	}
}

// SubmitTarget answers the pending target prompt. It never blocks and
// reports false if an answer is already waiting.
func (b *Bridge) SubmitTarget(label string) bool {
	select {
	case b.targets <- label:
		return true
	default:
		return false
	}
}

// Done returns a channel that closes when the bridge is closed.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Close releases any controller waiting for input.
// Safe to call multiple times.
func (b *Bridge) Close() {
	b.doneOnce.Do(func() {
		close(b.done)
	})
}

var (
	_ Input   = (*Bridge)(nil)
	_ Display = (*Bridge)(nil)
)

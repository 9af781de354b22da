package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrInboxFull reports a dropped event. Emission is best-effort; callers log
// and move on.
var ErrInboxFull = errors.New("event inbox full")

// Publisher accepts domain events. Implementations must be safe for
// concurrent use; domain services emit on the request path and must not
// block on downstream transports.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Sink is where a worker ultimately delivers events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Inbox is a channel-backed Publisher. Emit enqueues and returns; a Worker
// drains the channel into a Sink off the request path.
type Inbox struct {
	ch chan Event
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = 256
	}
	return &Inbox{ch: make(chan Event, size)}
}

// Emit never blocks the request path: when the buffer is full the event is
// dropped and ErrInboxFull returned.
func (i *Inbox) Emit(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case i.ch <- event:
		return nil
	default:
		return ErrInboxFull
	}
}

// Chan exposes the receive side for the Worker.
func (i *Inbox) Chan() <-chan Event {
	return i.ch
}

// Worker consumes events from an inbox and delivers them to a sink.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context ends. A failed Append is logged and
// the event dropped; sink outages must not kill the worker, or the inbox
// backs up and every Emit after it drops.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.Warn("event delivery failed",
					"type", string(event.Type),
					"property_id", event.PropertyID.String(),
					"error", err,
				)
			}
		}
	}
}

// Memory is a Sink that keeps events in process memory for tests and
// standalone runs.
type Memory struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemory() *Memory {
	return &Memory{}
}

// Emit lets Memory stand in as a synchronous Publisher in tests.
func (m *Memory) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return m.Append(ctx, event)
}

func (m *Memory) Append(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *Memory) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Event{}, m.events...)
}

// Nop discards every event. Used where callers do not care about emission.
type Nop struct{}

func (Nop) Emit(context.Context, Event) error { return nil }

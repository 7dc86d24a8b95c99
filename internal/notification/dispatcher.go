package notification

import (
	"context"
	"sync"
	"time"

	"brightline/internal/pkg/logger"
)

const (
	DefaultQueueSize = 256
	sendTimeout      = 10 * time.Second
)

// Dispatcher queues messages in memory and delivers them from one worker.
// Notify never blocks and never reports delivery errors to the caller.
type Dispatcher struct {
	sink  Sink
	queue chan Message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Message, queueSize),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Notify(ctx context.Context, msg Message) {
	if msg.To == "" {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logger.WarnContext(ctx, "notification dropped after shutdown", "template", msg.Template)
		return
	}

	select {
	case d.queue <- msg:
	default:
		logger.WarnContext(ctx, "notification queue full, message dropped",
			"template", msg.Template, "to", msg.To)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sink.Send(ctx, msg); err != nil {
			logger.Error("notification delivery failed",
				"template", msg.Template, "to", msg.To, "error", err)
		}
		cancel()
	}
}

// Close stops accepting messages and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

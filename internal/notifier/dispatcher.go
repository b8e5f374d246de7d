package notifier

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"CurbClicker/internal/model"
)

// Sink receives events from the dispatcher.
type Sink interface {
	Deliver(ctx context.Context, evt model.Event) error
}

// LogSink writes every event to the standard logger.
type LogSink struct{}

func (LogSink) Deliver(_ context.Context, evt model.Event) error {
	log.Printf("[INFO] event %s %v", evt.Kind, evt.Payload)
	return nil
}

// Dispatcher queues events and fans them out to sinks on a worker goroutine.
// Publish never blocks: when the queue is full the event is dropped.
type Dispatcher struct {
	events  chan model.Event
	sinks   []Sink
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	started bool
	done    chan struct{}
	dropped atomic.Int64
}

func NewDispatcher(buffer int, sinks ...Sink) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	return &Dispatcher{
		events:  make(chan model.Event, buffer),
		sinks:   sinks,
		timeout: time.Minute,
		done:    make(chan struct{}),
	}
}

// Publish enqueues evt for delivery.
func (d *Dispatcher) Publish(evt model.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.events <- evt:
	default:
		d.dropped.Add(1)
		log.Printf("[WARN] event queue full, dropping %s", evt.Kind)
	}
}

// Dropped reports how many events were discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Start launches the delivery worker.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true
	go d.run(ctx)
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)
	for evt := range d.events {
		for _, s := range d.sinks {
			sctx, cancel := context.WithTimeout(ctx, d.timeout)
			if err := s.Deliver(sctx, evt); err != nil {
				log.Printf("[ERROR] deliver %s: %v", evt.Kind, err)
			}
			cancel()
		}
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	started := d.started
	d.mu.Unlock()

	if started {
		<-d.done
	}
}

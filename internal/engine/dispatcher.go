package engine

import (
	"log/slog"
	"sync"

	"github.com/wrqqqr/todoList/models"
	"github.com/wrqqqr/todoList/store"
)

// dispatcher writes committed snapshots to the adapter on a background
// goroutine. Dispatch never blocks the caller. Pending snapshots coalesce:
// only the latest is written, so an older state can never land after a newer one.
type dispatcher struct {
	adapter store.Adapter
	logger  *slog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending *models.Pair
	queued  uint64 // sequence of the latest dispatched snapshot
	written uint64 // sequence of the latest snapshot handed to the adapter
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func newDispatcher(adapter store.Adapter, logger *slog.Logger) *dispatcher {
	d := &dispatcher{
		adapter: adapter,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.run()
	return d
}

// Dispatch queues a snapshot. The caller must not retain it.
func (d *dispatcher) Dispatch(p models.Pair) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("persistence closed, dropping snapshot")
		return
	}
	d.pending = &p
	d.queued++
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Flush waits until every snapshot dispatched so far has been written (or
// has failed and been logged).
func (d *dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	target := d.queued
	for d.written < target {
		d.cond.Wait()
	}
}

// Close drains pending work and stops the goroutine. Safe to call twice.
func (d *dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.stop)
	<-d.done
}

func (d *dispatcher) run() {
	defer close(d.done)
	for {
		select {
		case <-d.wake:
			d.drain()
		case <-d.stop:
			d.drain()
			return
		}
	}
}

func (d *dispatcher) drain() {
	for {
		d.mu.Lock()
		p, seq := d.pending, d.queued
		d.pending = nil
		d.mu.Unlock()

		if p == nil {
			return
		}

		if err := d.adapter.Save(p.Active, p.Completed); err != nil {
			d.logger.Error("persist state failed", "error", err, "active", len(p.Active), "completed", len(p.Completed))
		} else {
			d.logger.Debug("state persisted", "active", len(p.Active), "completed", len(p.Completed))
		}

		d.mu.Lock()
		d.written = seq
		d.cond.Broadcast()
		d.mu.Unlock()
	}
}

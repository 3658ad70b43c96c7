// scheduler_inject.go - thread-safe entry points for external event injection
//
// External threads (a GUI, an audio callback, a host keyboard reader) need
// to inject work onto the core thread's queue via thread-safe entry points,
// while all state mutation stays single-writer on the core goroutine.
// InjectionQueue is that mailbox: Submit is safe to call from any goroutine;
// Drain runs queued thunks on the core goroutine between scheduler advances,
// a deliberate suspension point rather than a preemption hazard. Lifecycle
// is managed with an errgroup.Group so a caller can Stop and know the drain
// goroutine has actually exited. State stays mutex-guarded rather than
// lock-free, consistent with the rest of this codebase.
package main

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// InjectedFunc is work submitted from outside the core goroutine. It must
// not block; it runs synchronously during Drain.
type InjectedFunc func(m *Machine)

// InjectionQueue is a bounded, thread-safe mailbox of work to run on the
// core goroutine.
type InjectionQueue struct {
	mu      sync.Mutex
	pending []InjectedFunc
}

// NewInjectionQueue creates an empty queue.
func NewInjectionQueue() *InjectionQueue {
	return &InjectionQueue{}
}

// Submit enqueues fn for later execution on the core goroutine. Safe to
// call concurrently from any number of goroutines.
func (q *InjectionQueue) Submit(fn InjectedFunc) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs every pending thunk, in submission order, against m. Must only
// be called from the core goroutine.
func (q *InjectionQueue) Drain(m *Machine) {
	q.mu.Lock()
	work := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range work {
		fn(m)
	}
}

// CorePump repeatedly drains the injection queue and advances the scheduler
// by a fixed quantum until stopped, giving external goroutines (a terminal
// host reading stdin, an injection pump keying in a BASIC program) a place
// to land work without touching CPU/bus state directly.
type CorePump struct {
	machine *Machine
	queue   *InjectionQueue
	quantum Cycle

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewCorePump creates a pump that advances the machine's scheduler by
// quantum cycles per iteration, draining the injection queue first each
// time.
func NewCorePump(m *Machine, q *InjectionQueue, quantum Cycle) *CorePump {
	return &CorePump{machine: m, queue: q, quantum: quantum}
}

// Start launches the pump's goroutine. Stop must be called to release it.
func (p *CorePump) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	g, ctx := errgroup.WithContext(ctx)
	p.group = g
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			p.queue.Drain(p.machine)
			before := p.machine.Scheduler.Now()
			p.machine.RunQuantum(p.quantum)
			if p.machine.Scheduler.Now() == before {
				// CPU halted with nothing scheduled: emulated time still
				// passes, so delayed injections (keyboard pump retries)
				// get their turn instead of starving.
				p.machine.Scheduler.Advance(p.quantum)
			}
		}
	})
}

// Stop cancels the pump and waits for its goroutine to exit.
func (p *CorePump) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	_ = p.group.Wait()
}

// scheduler.go - Deterministic cycle scheduler for the Apple II machine core
//
// The scheduler owns time. Every device that needs to do something in the
// future (VBL start/end, a keyboard injection pump, a language-card timeout)
// asks the scheduler for an event instead of spinning its own goroutine or
// timer. Events are tagged enum values plus a small callback, not heap
// closures wrapping arbitrary state, so the hot dispatch path stays
// allocation-free.

package main

import (
	"container/heap"
	"sync"
)

// Cycle is a monotonically increasing count of 6502 clock cycles since the
// last scheduler reset. It never decreases and saturates at math.MaxUint64
// rather than wrapping.
type Cycle uint64

const maxCycle Cycle = 1<<64 - 1

// addCycle adds delta to c, saturating instead of wrapping.
func addCycle(c Cycle, delta Cycle) Cycle {
	if delta > maxCycle-c {
		return maxCycle
	}
	return c + delta
}

// EventKind tags what an event represents, for observability and ordering
// debug output. It carries no behavior of its own.
type EventKind int

const (
	EventGeneric EventKind = iota
	EventVBLStart
	EventVBLEnd
	EventKeyboardPump
	EventCharROMSwap
	EventLanguageCardSettle
)

// EventContext is handed to every fired callback. It exposes just enough of
// the machine for a device to reschedule itself or touch the bus/signals;
// devices never reach into scheduler internals directly.
type EventContext struct {
	Scheduler *Scheduler
	Bus       *MemoryBus
	Signals   *SignalBus
	Now       Cycle
}

// EventCallback runs when a scheduled event fires.
type EventCallback func(ctx *EventContext)

// EventHandle lets a caller cancel a previously scheduled event.
type EventHandle uint64

type schedulerEntry struct {
	cycle     Cycle
	priority  int
	seq       uint64
	kind      EventKind
	tag       string
	callback  EventCallback
	cancelled bool
	handle    EventHandle
}

// entryHeap is a min-heap ordered by (cycle, priority, seq): lower cycle
// first, ties broken by lower priority, ties broken by insertion order.
type entryHeap []*schedulerEntry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].cycle != h[j].cycle {
		return h[i].cycle < h[j].cycle
	}
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)   { *h = append(*h, x.(*schedulerEntry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Scheduler is a single-threaded, reentrant-safe min-heap of future events.
// "Reentrant-safe" means a callback may schedule new events — including at
// the current cycle — and those run only after the in-progress dispatch
// returns, in FIFO order among same-cycle/same-priority entries.
type Scheduler struct {
	mu      sync.Mutex
	now     Cycle
	queue   entryHeap
	nextSeq uint64
	byHand  map[EventHandle]*schedulerEntry
	nextH   EventHandle

	bus     *MemoryBus
	signals *SignalBus
}

// NewScheduler creates a scheduler bound to a bus and signal line set; both
// are threaded through to every fired event via EventContext.
func NewScheduler(bus *MemoryBus, signals *SignalBus) *Scheduler {
	s := &Scheduler{
		byHand:  make(map[EventHandle]*schedulerEntry),
		bus:     bus,
		signals: signals,
	}
	heap.Init(&s.queue)
	return s
}

// Now returns the current cycle count.
func (s *Scheduler) Now() Cycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// ScheduleAt schedules callback to fire at (or after a subsequent Advance
// reaches) the given absolute cycle.
func (s *Scheduler) ScheduleAt(cycle Cycle, kind EventKind, priority int, tag string, callback EventCallback) EventHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cycle < s.now {
		cycle = s.now
	}
	s.nextH++
	h := s.nextH
	s.nextSeq++
	entry := &schedulerEntry{
		cycle:    cycle,
		priority: priority,
		seq:      s.nextSeq,
		kind:     kind,
		tag:      tag,
		callback: callback,
		handle:   h,
	}
	heap.Push(&s.queue, entry)
	s.byHand[h] = entry
	return h
}

// ScheduleAfter schedules callback to fire delta cycles from now.
func (s *Scheduler) ScheduleAfter(delta Cycle, kind EventKind, priority int, tag string, callback EventCallback) EventHandle {
	return s.ScheduleAt(addCycle(s.Now(), delta), kind, priority, tag, callback)
}

// Cancel marks a scheduled event so dispatch skips it. The entry is not
// removed from the heap eagerly — it is dropped lazily when its turn comes.
func (s *Scheduler) Cancel(h EventHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.byHand[h]; ok {
		e.cancelled = true
		delete(s.byHand, h)
	}
}

// Advance moves now forward by delta and fires every event whose scheduled
// cycle falls at or before the new now, in (cycle, priority, insertion)
// order. Callbacks that schedule further events see them run only after
// Advance's current dispatch loop drains what was due at call time plus
// anything those callbacks add at or before now.
func (s *Scheduler) Advance(delta Cycle) {
	s.mu.Lock()
	s.now = addCycle(s.now, delta)
	target := s.now
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if s.queue.Len() == 0 || s.queue[0].cycle > target {
			s.mu.Unlock()
			return
		}
		entry := heap.Pop(&s.queue).(*schedulerEntry)
		if entry.cancelled {
			s.mu.Unlock()
			continue
		}
		delete(s.byHand, entry.handle)
		now := s.now
		s.mu.Unlock()

		entry.callback(&EventContext{
			Scheduler: s,
			Bus:       s.bus,
			Signals:   s.signals,
			Now:       now,
		})
	}
}

// NextEventCycle reports the cycle of the earliest live (non-cancelled)
// event, or false if the queue is empty. Devices in Wai/Stp use this to
// fast-forward instead of single-stepping idle cycles.
func (s *Scheduler) NextEventCycle() (Cycle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.queue.Len() > 0 {
		top := s.queue[0]
		if top.cancelled {
			heap.Pop(&s.queue)
			delete(s.byHand, top.handle)
			continue
		}
		return top.cycle, true
	}
	return 0, false
}

// Reset empties the queue and resets now to 0.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = 0
	s.queue = s.queue[:0]
	s.byHand = make(map[EventHandle]*schedulerEntry)
}

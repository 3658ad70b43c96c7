package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresInCycleOrder(t *testing.T) {
	sched := NewScheduler(nil, nil)
	var order []string

	sched.ScheduleAt(10, EventGeneric, 0, "b", func(ctx *EventContext) { order = append(order, "b") })
	sched.ScheduleAt(5, EventGeneric, 0, "a", func(ctx *EventContext) { order = append(order, "a") })
	sched.ScheduleAt(10, EventGeneric, 5, "d", func(ctx *EventContext) { order = append(order, "d") })
	sched.ScheduleAt(10, EventGeneric, 1, "c", func(ctx *EventContext) { order = append(order, "c") })

	sched.Advance(20)
	require.Equal(t, []string{"a", "b", "c", "d"}, order)
	require.Equal(t, Cycle(20), sched.Now())
}

func TestSchedulerAdvancePartialLeavesLaterEventsPending(t *testing.T) {
	sched := NewScheduler(nil, nil)
	fired := 0
	sched.ScheduleAt(100, EventGeneric, 0, "late", func(ctx *EventContext) { fired++ })

	sched.Advance(50)
	require.Equal(t, 0, fired)

	sched.Advance(50)
	require.Equal(t, 1, fired)
}

func TestSchedulerCancel(t *testing.T) {
	sched := NewScheduler(nil, nil)
	fired := false
	h := sched.ScheduleAt(5, EventGeneric, 0, "x", func(ctx *EventContext) { fired = true })
	sched.Cancel(h)
	sched.Advance(10)
	require.False(t, fired)
}

func TestSchedulerReentrantSchedulingRunsAfterCurrentDispatch(t *testing.T) {
	sched := NewScheduler(nil, nil)
	var order []string
	sched.ScheduleAt(5, EventGeneric, 0, "first", func(ctx *EventContext) {
		order = append(order, "first")
		ctx.Scheduler.ScheduleAt(5, EventGeneric, 0, "reentrant", func(ctx2 *EventContext) {
			order = append(order, "reentrant")
		})
	})
	sched.Advance(5)
	require.Equal(t, []string{"first", "reentrant"}, order)
}

func TestSchedulerNextEventCycleSkipsCancelled(t *testing.T) {
	sched := NewScheduler(nil, nil)
	h := sched.ScheduleAt(10, EventGeneric, 0, "soon", func(ctx *EventContext) {})
	sched.ScheduleAt(20, EventGeneric, 0, "later", func(ctx *EventContext) {})
	sched.Cancel(h)

	next, ok := sched.NextEventCycle()
	require.True(t, ok)
	require.Equal(t, Cycle(20), next)
}

func TestSchedulerResetClearsQueueAndNow(t *testing.T) {
	sched := NewScheduler(nil, nil)
	sched.ScheduleAt(10, EventGeneric, 0, "x", func(ctx *EventContext) {})
	sched.Advance(1)
	sched.Reset()

	require.Equal(t, Cycle(0), sched.Now())
	_, ok := sched.NextEventCycle()
	require.False(t, ok)
}

func TestInjectionQueueDrainsInSubmissionOrder(t *testing.T) {
	q := NewInjectionQueue()
	var order []int
	q.Submit(func(m *Machine) { order = append(order, 1) })
	q.Submit(func(m *Machine) { order = append(order, 2) })
	q.Drain(nil)
	require.Equal(t, []int{1, 2}, order)
	q.Drain(nil)
	require.Len(t, order, 2, "drain consumes the queue")
}

func TestCorePumpRunsInjectedWorkOnCoreGoroutine(t *testing.T) {
	m := NewMachine(ProfileIIe, nil)
	m.Reset()

	q := NewInjectionQueue()
	done := make(chan struct{})
	q.Submit(func(inner *Machine) {
		inner.Keyboard.KeyDown('Q')
		close(done)
	})

	pump := NewCorePump(m, q, 1000)
	pump.Start()
	<-done
	pump.Stop()

	require.Equal(t, byte('Q')|0x80, debugRead(m, AddrKBD))
	require.Greater(t, uint64(m.Scheduler.Now()), uint64(0), "pump advanced emulated time")
}

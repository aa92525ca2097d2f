// File: loop/dispatch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The dispatch iteration: clock advancement, due-timer promotion, readiness
// polling, and callback execution.

package loop

import (
	"container/heap"

	"github.com/momentics/timeloop/api"
	"github.com/momentics/timeloop/poller"
)

// RunOnce executes a single loop iteration. When nothing is immediately
// runnable and a wake is pending, the clock jumps straight to the closest
// deadline; no real time passes. Then every timer due at the new clock value is
// promoted to the ready queue, the multiplexer is polled, matching readiness
// callbacks are enqueued, and the ready queue is drained in FIFO order.
// Callbacks enqueued during the drain run on the next iteration.
func (l *Loop) RunOnce() {
	if l.closed {
		return
	}
	if l.ready.Length() == 0 && !l.timers.IsEmpty() {
		when, err := l.timers.PopClosest()
		// The clock never moves backward here; a wake already in the past
		// fires at the current clock value.
		if err == nil && when > l.now {
			l.now = when
		}
	}
	l.runIteration()
}

func (l *Loop) runIteration() {
	l.promoteDueTimers()
	l.processEvents(l.selector.Poll())

	// Only callbacks runnable at the start of the drain execute now, so a
	// callback rescheduling itself cannot starve the iteration.
	ntodo := l.ready.Length()
	for i := 0; i < ntodo; i++ {
		h := l.ready.Remove().(*api.Handle)
		if h.Cancelled() {
			continue
		}
		h.Run()
	}
}

// promoteDueTimers moves every scheduled handle with a deadline at or before
// the current clock onto the ready queue, in deadline order. Cancelled handles
// are discarded here rather than dispatched.
func (l *Loop) promoteDueTimers() {
	for l.scheduled.Len() > 0 {
		next := l.scheduled[0]
		if next.When() > l.now {
			break
		}
		heap.Pop(&l.scheduled)
		if next.Cancelled() {
			continue
		}
		l.ready.Add(&next.Handle)
	}
}

// processEvents enqueues the readiness callbacks for one poll cycle. A handle
// found cancelled is not fired; its role is removed from the registration
// instead, cleaning up stale cancellations lazily.
func (l *Loop) processEvents(events []poller.Event) {
	for _, ev := range events {
		reg := ev.Registration
		if ev.Mask.Has(api.ReadyRead) && reg.Reader != nil {
			if reg.Reader.Cancelled() {
				l.RemoveReader(reg.Endpoint)
			} else {
				l.ready.Add(reg.Reader)
			}
		}
		if ev.Mask.Has(api.ReadyWrite) && reg.Writer != nil {
			if reg.Writer.Cancelled() {
				l.RemoveWriter(reg.Endpoint)
			} else {
				l.ready.Add(reg.Writer)
			}
		}
	}
}

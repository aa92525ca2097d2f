// File: loop/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Loop state, construction, virtual clock control, and lifecycle.

package loop

import (
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/timeloop/api"
	"github.com/momentics/timeloop/control"
	"github.com/momentics/timeloop/poller"
	"github.com/momentics/timeloop/timeq"
)

// Loop is the deterministic simulated reactor. All state is owned by the single
// logical thread driving the loop; no internal locking is needed or done.
type Loop struct {
	now    time.Duration
	closed bool

	timers    *timeq.Queue
	selector  *poller.Selector
	scheduled timerHeap
	ready     *queue.Queue

	counters *control.Counters
	probes   *control.Probes
}

var _ api.EventLoop = (*Loop)(nil)

// Option customizes loop construction.
type Option func(*Loop)

// WithStartTime sets the initial virtual clock value.
func WithStartTime(t time.Duration) Option {
	return func(l *Loop) {
		l.now = t
	}
}

// WithCounters injects a shared removal-counter registry, letting several loops
// in one test report into the same place.
func WithCounters(c *control.Counters) Option {
	return func(l *Loop) {
		l.counters = c
	}
}

// New constructs an open loop with the clock at zero unless overridden.
func New(opts ...Option) *Loop {
	l := &Loop{
		timers:   timeq.New(),
		selector: poller.NewSelector(),
		ready:    queue.New(),
		probes:   control.NewProbes(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.counters == nil {
		l.counters = control.NewCounters()
	}
	l.registerProbes()
	return l
}

func (l *Loop) registerProbes() {
	l.probes.RegisterProbe("clock", func() any { return l.now })
	l.probes.RegisterProbe("pending_timers", func() any { return l.timers.Len() })
	l.probes.RegisterProbe("registered_endpoints", func() any { return l.selector.Len() })
	l.probes.RegisterProbe("ready_callbacks", func() any { return l.ready.Length() })
	l.probes.RegisterProbe("scheduled_handles", func() any { return l.scheduled.Len() })
}

// Time returns the current virtual clock value.
func (l *Loop) Time() time.Duration {
	return l.now
}

// SetTime overrides the virtual clock directly. Test-only: this is the one way
// the clock may move backward.
func (l *Loop) SetTime(t time.Duration) {
	l.now = t
}

// AdvanceTime moves the virtual clock forward by delta. A zero or negative
// delta is a no-op.
func (l *Loop) AdvanceTime(delta time.Duration) {
	if delta > 0 {
		l.now += delta
	}
}

// Close shuts the loop down and discards all pending work and registrations.
// Mutating schedule calls fail afterwards; removals degrade to false.
func (l *Loop) Close() {
	if l.closed {
		return
	}
	l.closed = true
	for l.ready.Length() > 0 {
		l.ready.Remove()
	}
	l.scheduled = nil
	for !l.timers.IsEmpty() {
		l.timers.PopClosest()
	}
	for ep := range l.selector.Snapshot() {
		l.selector.Unregister(ep)
	}
}

// IsClosed reports whether Close has been called.
func (l *Loop) IsClosed() bool {
	return l.closed
}

// Counters exposes the removal-counter registry.
func (l *Loop) Counters() *control.Counters {
	return l.counters
}

// Probes exposes the debug probe registry; DumpState gives a live snapshot of
// clock, pending timers, registrations, and queued callbacks.
func (l *Loop) Probes() *control.Probes {
	return l.probes
}

// Snapshot returns a copy of the full readiness registration table.
func (l *Loop) Snapshot() map[api.Endpoint]poller.Registration {
	return l.selector.Snapshot()
}

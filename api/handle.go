// File: api/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cancellable callback handles dispatched by the event loop.

package api

import "time"

// Handle is a cancellable unit of deferred callback execution. The callback is a
// bound closure: call sites capture their arguments at registration time. A Handle
// stays owned by the registration that created it until it fires or is replaced;
// cancelling never removes it from a queue it already sits in, the dispatcher
// checks Cancelled immediately before invocation instead.
type Handle struct {
	fn        func()
	cancelled bool
}

// NewHandle wraps fn in a fresh, un-cancelled handle.
func NewHandle(fn func()) *Handle {
	return &Handle{fn: fn}
}

// Cancel marks the handle so the dispatcher will skip it.
func (h *Handle) Cancel() {
	h.cancelled = true
}

// Cancelled reports whether Cancel has been called.
func (h *Handle) Cancelled() bool {
	return h.cancelled
}

// Run invokes the bound callback. Cancellation checks are the dispatcher's
// responsibility, so Run does not re-check the flag.
func (h *Handle) Run() {
	if h.fn != nil {
		h.fn()
	}
}

// TimerHandle is a Handle scheduled for a virtual deadline.
type TimerHandle struct {
	Handle
	when time.Duration
}

// NewTimerHandle wraps fn in a handle due at the virtual deadline when.
func NewTimerHandle(when time.Duration, fn func()) *TimerHandle {
	return &TimerHandle{Handle: Handle{fn: fn}, when: when}
}

// When returns the virtual deadline the handle is scheduled for.
func (t *TimerHandle) When() time.Duration {
	return t.when
}

// File: loop/watchers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Readiness watcher registration. Adds fail loudly on a closed loop, removals
// degrade to false so teardown sequences stay idempotent.

package loop

import (
	"github.com/momentics/timeloop/api"
)

// AddReader installs fn as the read callback for ep. A prior reader is
// cancelled before the new handle becomes active.
func (l *Loop) AddReader(ep api.Endpoint, fn func()) error {
	if l.closed {
		return api.NewError(api.ErrCodeLoopClosed, "add_reader on closed loop").
			WithContext("endpoint", ep.ID())
	}
	h := api.NewHandle(fn)
	reg, ok := l.selector.Get(ep)
	if !ok {
		return l.selector.Register(ep, api.ReadyRead, h, nil)
	}
	prior := reg.Reader
	if err := l.selector.Modify(ep, reg.Mask|api.ReadyRead, h, reg.Writer); err != nil {
		return err
	}
	if prior != nil {
		prior.Cancel()
	}
	return nil
}

// AddWriter installs fn as the write callback for ep. A prior writer is
// cancelled before the new handle becomes active.
func (l *Loop) AddWriter(ep api.Endpoint, fn func()) error {
	if l.closed {
		return api.NewError(api.ErrCodeLoopClosed, "add_writer on closed loop").
			WithContext("endpoint", ep.ID())
	}
	h := api.NewHandle(fn)
	reg, ok := l.selector.Get(ep)
	if !ok {
		return l.selector.Register(ep, api.ReadyWrite, nil, h)
	}
	prior := reg.Writer
	if err := l.selector.Modify(ep, reg.Mask|api.ReadyWrite, reg.Reader, h); err != nil {
		return err
	}
	if prior != nil {
		prior.Cancel()
	}
	return nil
}

// RemoveReader clears the read callback for ep. Returns false, never an error,
// when the loop is closed or no reader is registered; cancels the handle and
// bumps the removal counter otherwise.
func (l *Loop) RemoveReader(ep api.Endpoint) bool {
	if l.closed {
		return false
	}
	reg, ok := l.selector.Get(ep)
	if !ok {
		return false
	}
	prior := reg.Reader
	mask := reg.Mask &^ api.ReadyRead
	if mask == 0 {
		l.selector.Unregister(ep)
	} else {
		l.selector.Modify(ep, mask, nil, reg.Writer)
	}
	if prior == nil {
		return false
	}
	prior.Cancel()
	l.counters.IncRemoveReader(ep.ID())
	return true
}

// RemoveWriter clears the write callback for ep. Same degrade semantics as
// RemoveReader.
func (l *Loop) RemoveWriter(ep api.Endpoint) bool {
	if l.closed {
		return false
	}
	reg, ok := l.selector.Get(ep)
	if !ok {
		return false
	}
	prior := reg.Writer
	mask := reg.Mask &^ api.ReadyWrite
	if mask == 0 {
		l.selector.Unregister(ep)
	} else {
		l.selector.Modify(ep, mask, reg.Reader, nil)
	}
	if prior == nil {
		return false
	}
	prior.Cancel()
	l.counters.IncRemoveWriter(ep.ID())
	return true
}

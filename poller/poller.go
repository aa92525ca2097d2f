// File: poller/poller.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// In-memory readiness multiplexer: the simulated counterpart of a kernel poll.
// Readiness comes from endpoint predicates, never from the OS, so Poll is purely
// synchronous; advancing virtual time is the loop's job, not the multiplexer's.

package poller

import (
	"github.com/momentics/timeloop/api"
)

// Registration is the multiplexer's record for one endpoint: its interest mask
// and at most one reader and one writer handle. The mask bits always mirror the
// non-nil handle slots; a registration whose mask would drop to zero is removed
// from the table instead.
type Registration struct {
	Endpoint api.Endpoint
	Mask     api.Ready
	Reader   *api.Handle
	Writer   *api.Handle
}

// Event reports one registration whose predicates currently intersect its
// interest mask.
type Event struct {
	Registration *Registration
	Mask         api.Ready
}

// Selector is the registration table. Endpoints are kept in registration order
// so Poll output, and therefore dispatch order, is reproducible run to run.
type Selector struct {
	regs  map[api.Endpoint]*Registration
	order []api.Endpoint
}

// NewSelector returns an empty registration table.
func NewSelector() *Selector {
	return &Selector{
		regs: make(map[api.Endpoint]*Registration),
	}
}

// Register creates a registration for ep. Callers must use Modify to change an
// existing one; re-registering fails with ErrAlreadyRegistered.
func (s *Selector) Register(ep api.Endpoint, mask api.Ready, reader, writer *api.Handle) error {
	if _, ok := s.regs[ep]; ok {
		return api.NewError(api.ErrCodeAlreadyRegistered, "endpoint is already registered").
			WithContext("endpoint", ep.ID())
	}
	s.regs[ep] = &Registration{
		Endpoint: ep,
		Mask:     mask,
		Reader:   reader,
		Writer:   writer,
	}
	s.order = append(s.order, ep)
	return nil
}

// Modify replaces the mask and handles of an existing registration in place,
// preserving the endpoint's position in the poll order. Fails with
// ErrNotRegistered when ep is absent.
func (s *Selector) Modify(ep api.Endpoint, mask api.Ready, reader, writer *api.Handle) error {
	reg, ok := s.regs[ep]
	if !ok {
		return api.NewError(api.ErrCodeNotRegistered, "endpoint is not registered").
			WithContext("endpoint", ep.ID())
	}
	reg.Mask = mask
	reg.Reader = reader
	reg.Writer = writer
	return nil
}

// Unregister removes and returns the registration for ep. Fails with
// ErrNotRegistered when ep is absent.
func (s *Selector) Unregister(ep api.Endpoint) (*Registration, error) {
	reg, ok := s.regs[ep]
	if !ok {
		return nil, api.NewError(api.ErrCodeNotRegistered, "endpoint is not registered").
			WithContext("endpoint", ep.ID())
	}
	delete(s.regs, ep)
	for i, cur := range s.order {
		if cur == ep {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return reg, nil
}

// Get returns the live registration for ep, if any.
func (s *Selector) Get(ep api.Endpoint) (*Registration, bool) {
	reg, ok := s.regs[ep]
	return reg, ok
}

// Len returns the number of registered endpoints.
func (s *Selector) Len() int {
	return len(s.regs)
}

// Poll evaluates every registered endpoint's readiness predicates and reports,
// in registration order, each registration whose observed readiness intersects
// its interest mask.
func (s *Selector) Poll() []Event {
	var events []Event
	for _, ep := range s.order {
		reg := s.regs[ep]
		var observed api.Ready
		if reg.Mask.Has(api.ReadyRead) && ep.ReadReady() {
			observed |= api.ReadyRead
		}
		if reg.Mask.Has(api.ReadyWrite) && ep.WriteReady() {
			observed |= api.ReadyWrite
		}
		if observed != 0 {
			events = append(events, Event{Registration: reg, Mask: observed})
		}
	}
	return events
}

// Snapshot returns a copy of the full registration table for introspection.
func (s *Selector) Snapshot() map[api.Endpoint]Registration {
	out := make(map[api.Endpoint]Registration, len(s.regs))
	for ep, reg := range s.regs {
		out[ep] = *reg
	}
	return out
}

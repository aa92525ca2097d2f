// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the loop's core contracts.

package fake

import (
	"github.com/google/uuid"

	"github.com/momentics/timeloop/api"
)

// Endpoint is a controllable stand-in for a real I/O handle. It carries only an
// identity and two readiness predicates owned by the test; the loop never reads
// anything else from it. Both predicates default to not-ready.
type Endpoint struct {
	id         string
	localAddr  string
	remoteAddr string

	// ReadReadyFunc overrides the read-readiness predicate.
	ReadReadyFunc func() bool
	// WriteReadyFunc overrides the write-readiness predicate.
	WriteReadyFunc func() bool
}

// NewEndpoint creates an endpoint with a fresh identity and empty addresses.
func NewEndpoint() *Endpoint {
	return &Endpoint{id: uuid.NewString()}
}

// ID implements api.Endpoint.ID.
func (e *Endpoint) ID() string {
	return e.id
}

// LocalAddr implements api.Endpoint.LocalAddr.
func (e *Endpoint) LocalAddr() string {
	return e.localAddr
}

// RemoteAddr implements api.Endpoint.RemoteAddr.
func (e *Endpoint) RemoteAddr() string {
	return e.remoteAddr
}

// SetLocalAddr configures the simulated local address.
func (e *Endpoint) SetLocalAddr(addr string) {
	e.localAddr = addr
}

// SetRemoteAddr configures the simulated peer address.
func (e *Endpoint) SetRemoteAddr(addr string) {
	e.remoteAddr = addr
}

// ReadReady implements api.Endpoint.ReadReady.
func (e *Endpoint) ReadReady() bool {
	if e.ReadReadyFunc != nil {
		return e.ReadReadyFunc()
	}
	return false
}

// WriteReady implements api.Endpoint.WriteReady.
func (e *Endpoint) WriteReady() bool {
	if e.WriteReadyFunc != nil {
		return e.WriteReadyFunc()
	}
	return false
}

// Close implements api.Endpoint.Close. Fake endpoints hold no resources.
func (e *Endpoint) Close() error {
	return nil
}

var _ api.Endpoint = (*Endpoint)(nil)

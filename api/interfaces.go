// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package api

import "time"

// EventLoop is the reactor surface consumed by code under test. It matches the
// operation set of a production event loop so a simulated loop can stand in for
// the real one without call-site changes.
type EventLoop interface {
	// Time returns the current virtual clock value.
	Time() time.Duration

	// CallSoon enqueues fn for the next iteration of the loop.
	CallSoon(fn func()) (*Handle, error)

	// CallAt schedules fn for the virtual deadline when.
	CallAt(when time.Duration, fn func()) (*TimerHandle, error)

	// CallLater schedules fn for delay past the current clock value.
	CallLater(delay time.Duration, fn func()) (*TimerHandle, error)

	// AddReader installs fn as the read-readiness callback for ep, replacing
	// (and cancelling) any prior reader.
	AddReader(ep Endpoint, fn func()) error

	// AddWriter installs fn as the write-readiness callback for ep, replacing
	// (and cancelling) any prior writer.
	AddWriter(ep Endpoint, fn func()) error

	// RemoveReader clears the read-readiness callback for ep. It reports false,
	// never an error, when the role is absent or the loop is closed.
	RemoveReader(ep Endpoint) bool

	// RemoveWriter clears the write-readiness callback for ep. Same degrade
	// semantics as RemoveReader.
	RemoveWriter(ep Endpoint) bool

	// CreateConnection synchronously returns a simulated transport/protocol
	// pair; no resolution or handshake takes place.
	CreateConnection(factory func() Protocol) (Transport, Protocol, error)

	// RunOnce executes a single loop iteration, advancing the virtual clock to
	// the closest pending deadline when nothing is immediately runnable.
	RunOnce()

	// Close shuts the loop down; further mutating schedule calls fail with
	// ErrLoopClosed while removals degrade to false.
	Close()

	// IsClosed reports whether Close has been called.
	IsClosed() bool
}

// Endpoint abstracts an I/O handle under test: a stable identity plus two
// readiness predicates the test controls directly.
type Endpoint interface {
	// ID returns a stable opaque identity token.
	ID() string

	// LocalAddr returns the simulated local address, usually empty.
	LocalAddr() string

	// RemoteAddr returns the simulated peer address, usually empty.
	RemoteAddr() string

	// ReadReady reports whether the endpoint currently has data to read.
	ReadReady() bool

	// WriteReady reports whether the endpoint currently accepts writes.
	WriteReady() bool

	// Close releases the endpoint. Simulated endpoints hold no resources.
	Close() error
}

// Protocol receives connection lifecycle and inbound data callbacks, mirroring
// the protocol contract of the reactor being substituted.
type Protocol interface {
	ConnectionMade(t Transport)
	DataReceived(data []byte)
	ConnectionLost(err error)
}

// Transport is the outbound half handed to a Protocol.
type Transport interface {
	// Write queues data for the simulated peer.
	Write(data []byte) error

	// Close tears the connection down and notifies the protocol.
	Close() error

	// Endpoint exposes the underlying simulated endpoint.
	Endpoint() Endpoint
}

// Package fake
// Author: momentics <momentics@gmail.com>
//
// Simulated transport bound to a fake endpoint. Writes are recorded, inbound
// data is injected by the test and delivered through the loop's read-readiness
// path, so protocol code under test sees the same causal order a real socket
// transport would produce.

package fake

import (
	"github.com/momentics/timeloop/api"
)

// Transport is a fake implementation of api.Transport. It registers itself as
// the endpoint's reader on construction, mirroring how a selector-based socket
// transport hooks into its loop.
type Transport struct {
	loop     api.EventLoop
	endpoint *Endpoint
	proto    api.Protocol

	recvBuffer [][]byte
	sendBuffer [][]byte
	closed     bool
	sendError  error
}

// NewTransport binds a transport to loop and ep, wires the endpoint's read
// predicate to the pending inbound buffer, registers the read callback, and
// delivers ConnectionMade to proto.
func NewTransport(loop api.EventLoop, ep *Endpoint, proto api.Protocol) (*Transport, error) {
	t := &Transport{
		loop:     loop,
		endpoint: ep,
		proto:    proto,
	}
	if ep.ReadReadyFunc == nil {
		ep.ReadReadyFunc = func() bool {
			return !t.closed && len(t.recvBuffer) > 0
		}
	}
	if err := loop.AddReader(ep, t.readReady); err != nil {
		return nil, err
	}
	if proto != nil {
		proto.ConnectionMade(t)
	}
	return t, nil
}

// readReady drains pending inbound data into the protocol. Runs on the loop's
// dispatch path when the endpoint polls read-ready.
func (t *Transport) readReady() {
	pending := t.recvBuffer
	t.recvBuffer = nil
	for _, data := range pending {
		if t.proto != nil {
			t.proto.DataReceived(data)
		}
	}
}

// Write implements api.Transport.Write, recording the payload.
func (t *Transport) Write(data []byte) error {
	if t.closed {
		return api.NewError(api.ErrCodeTransportClosed, "write on closed transport").
			WithContext("endpoint", t.endpoint.ID())
	}
	if t.sendError != nil {
		return t.sendError
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	t.sendBuffer = append(t.sendBuffer, dataCopy)
	return nil
}

// Close implements api.Transport.Close: unregisters the reader and notifies the
// protocol. Closing twice is a no-op.
func (t *Transport) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.loop.RemoveReader(t.endpoint)
	if t.proto != nil {
		t.proto.ConnectionLost(nil)
	}
	return nil
}

// Endpoint implements api.Transport.Endpoint.
func (t *Transport) Endpoint() api.Endpoint {
	return t.endpoint
}

// SetSendError configures the transport to return an error on Write.
func (t *Transport) SetSendError(err error) {
	t.sendError = err
}

// FeedData queues inbound data for delivery on the next poll cycle that sees
// the endpoint read-ready.
func (t *Transport) FeedData(data []byte) {
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	t.recvBuffer = append(t.recvBuffer, dataCopy)
}

// SentData returns all payloads recorded by Write.
func (t *Transport) SentData() [][]byte {
	sent := make([][]byte, len(t.sendBuffer))
	copy(sent, t.sendBuffer)
	return sent
}

// ClearSentData clears the recorded write buffer.
func (t *Transport) ClearSentData() {
	t.sendBuffer = t.sendBuffer[:0]
}

var _ api.Transport = (*Transport)(nil)

// Package fake
// Author: momentics <momentics@gmail.com>
//
// Recording protocol for assertions on connection lifecycle and inbound data.

package fake

import (
	"github.com/momentics/timeloop/api"
)

// Protocol is a fake implementation of api.Protocol that records every
// callback it receives.
type Protocol struct {
	Transport api.Transport
	Received  [][]byte
	Made      bool
	Lost      bool
	LostErr   error
}

// NewProtocol creates an empty recording protocol.
func NewProtocol() *Protocol {
	return &Protocol{}
}

// ConnectionMade implements api.Protocol.ConnectionMade.
func (p *Protocol) ConnectionMade(t api.Transport) {
	p.Transport = t
	p.Made = true
}

// DataReceived implements api.Protocol.DataReceived.
func (p *Protocol) DataReceived(data []byte) {
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	p.Received = append(p.Received, dataCopy)
}

// ConnectionLost implements api.Protocol.ConnectionLost.
func (p *Protocol) ConnectionLost(err error) {
	p.Lost = true
	p.LostErr = err
}

var _ api.Protocol = (*Protocol)(nil)

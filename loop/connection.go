// File: loop/connection.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Connection establishment stub.

package loop

import (
	"github.com/momentics/timeloop/api"
	"github.com/momentics/timeloop/fake"
)

// CreateConnection synchronously hands back a simulated transport/protocol
// pair. No addresses are resolved and no handshake runs: the transport is bound
// to a fresh fake endpoint, registered as its reader, and the factory-built
// protocol has already received ConnectionMade when this returns. Code under
// test that calls the standard establish-a-connection entry point gets an
// immediately usable pair.
func (l *Loop) CreateConnection(factory func() api.Protocol) (api.Transport, api.Protocol, error) {
	if l.closed {
		return nil, nil, api.NewError(api.ErrCodeLoopClosed, "create_connection on closed loop")
	}
	proto := factory()
	tr, err := fake.NewTransport(l, fake.NewEndpoint(), proto)
	if err != nil {
		return nil, nil, err
	}
	return tr, proto, nil
}

// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// Ready is a bitmask of readiness interests for an endpoint registration.
type Ready uint8

const (
	// ReadyRead marks interest in (or observation of) read readiness.
	ReadyRead Ready = 1 << iota
	// ReadyWrite marks interest in (or observation of) write readiness.
	ReadyWrite
)

// Has reports whether all bits of want are set in r.
func (r Ready) Has(want Ready) bool {
	return r&want == want
}

func (r Ready) String() string {
	switch r {
	case ReadyRead:
		return "read"
	case ReadyWrite:
		return "write"
	case ReadyRead | ReadyWrite:
		return "read|write"
	case 0:
		return "none"
	default:
		return "invalid"
	}
}

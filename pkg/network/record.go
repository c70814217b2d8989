// Package network holds the crawler's concurrently mutated view of the
// Zcash network: known peer records and the directed edges observed
// between them.
package network

import "time"

// ConnState is the last known transport state of a PeerRecord. It is a
// weak shadow of the transport layer's truth, updated lazily by the
// protocol engine and scheduler.
type ConnState int

const (
	Disconnected ConnState = iota
	Connected
)

func (s ConnState) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Record is everything known about one remote address. Optional fields
// are nil until the crawler has observed them — a zero value is never
// used to mean "unknown", matching the spec's explicit optional-field
// semantics.
type Record struct {
	Addr string

	LastConnected *time.Time
	HandshakeTime *time.Duration

	ProtocolVersion *uint32
	UserAgent       *string
	StartHeight     *int32
	Services        *uint64

	ConnectionFailures uint8
	State              ConnState
}

// clone returns a deep-enough copy of r suitable for handing to a reader
// outside the store's lock: the optional pointer fields point at shared,
// never-mutated-in-place values (every setter replaces the pointer,
// never writes through it), so a shallow struct copy is sufficient.
func (r Record) clone() Record {
	return r
}

// Good reports whether the record has ever completed a handshake.
func (r Record) Good() bool {
	return r.LastConnected != nil
}

// HasUserAgent reports whether a Version message has ever been recorded
// for this peer — the store's "need_info" vs "have_info" split.
func (r Record) HasUserAgent() bool {
	return r.UserAgent != nil
}

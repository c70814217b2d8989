package network

import (
	"sync"
	"time"
)

// Store is the crawler's known-network state: a concurrent map of peer
// records and a set of directed "A saw B" edges. The two collections are
// protected by independent reader/writer locks — no invariant spans
// both, so a caller cloning nodes and edges for a snapshot may see
// temporally disjoint views. That is intentional; see invariant 4.
type Store struct {
	recMu   sync.RWMutex
	records map[string]Record

	edgeMu sync.RWMutex
	edges  map[edgeKey]Edge
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		records: make(map[string]Record, 256),
		edges:   make(map[edgeKey]Edge, 256),
	}
}

// EnsureRecord creates a record for addr if one does not already exist,
// leaving any existing record untouched. It is how an address is first
// mentioned, whether as a seed, an ADDR entry, or the source of one.
func (s *Store) EnsureRecord(addr string) {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	s.ensureLocked(addr)
}

func (s *Store) ensureLocked(addr string) {
	if _, ok := s.records[addr]; !ok {
		s.records[addr] = Record{Addr: addr, State: Disconnected}
	}
}

// Get returns a copy of the record for addr, if known.
func (s *Store) Get(addr string) (Record, bool) {
	s.recMu.RLock()
	defer s.recMu.RUnlock()
	r, ok := s.records[addr]
	return r.clone(), ok
}

// Records returns a point-in-time copy of every known record. Safe for
// the caller to range over without holding any lock.
func (s *Store) Records() []Record {
	s.recMu.RLock()
	defer s.recMu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.clone())
	}
	return out
}

// Len reports the number of known records.
func (s *Store) Len() int {
	s.recMu.RLock()
	defer s.recMu.RUnlock()
	return len(s.records)
}

// AddAddrs records src having advertised addrs as its neighbors: it
// ensures a record exists for src and for every address in addrs, and
// refreshes (or creates) a directed edge (src, a) with last_seen=now for
// each one. Calling this twice with identical arguments leaves the
// record map identical — only edge.LastSeen advances.
func (s *Store) AddAddrs(src string, addrs []string, now time.Time) {
	s.recMu.Lock()
	s.ensureLocked(src)
	for _, a := range addrs {
		s.ensureLocked(a)
	}
	s.recMu.Unlock()

	s.edgeMu.Lock()
	defer s.edgeMu.Unlock()
	for _, a := range addrs {
		k := edgeKey{Src: src, Dst: a}
		e := s.edges[k]
		e.Src, e.Dst = src, a
		e.LastSeen = now
		s.edges[k] = e
	}
}

// RecordVersion applies the fields carried by a peer's Version message.
func (s *Store) RecordVersion(addr string, protocolVersion uint32, userAgent string, services uint64, startHeight int32) {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	s.ensureLocked(addr)
	r := s.records[addr]
	r.ProtocolVersion = &protocolVersion
	r.UserAgent = &userAgent
	r.Services = &services
	r.StartHeight = &startHeight
	s.records[addr] = r
}

// RecordHandshakeSuccess marks addr as having just completed a
// handshake: last_connected and handshake_time are set, state becomes
// Connected, and connection_failures resets to zero.
func (s *Store) RecordHandshakeSuccess(addr string, now time.Time, elapsed time.Duration) {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	s.ensureLocked(addr)
	r := s.records[addr]
	r.LastConnected = &now
	r.HandshakeTime = &elapsed
	r.State = Connected
	r.ConnectionFailures = 0
	s.records[addr] = r
}

// RecordDialFailure increments addr's connection_failures, saturating at
// the field's max value. No other field is mutated.
func (s *Store) RecordDialFailure(addr string) {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	s.ensureLocked(addr)
	r := s.records[addr]
	if r.ConnectionFailures < 255 {
		r.ConnectionFailures++
	}
	s.records[addr] = r
}

// SetState sets addr's transport state directly, used by the stale-open
// reaper and on ADDR-triggered disconnect.
func (s *Store) SetState(addr string, state ConnState) {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	s.ensureLocked(addr)
	r := s.records[addr]
	r.State = state
	s.records[addr] = r
}

// Edges returns a point-in-time copy of every known edge.
func (s *Store) Edges() []Edge {
	s.edgeMu.RLock()
	defer s.edgeMu.RUnlock()
	out := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, e)
	}
	return out
}

// DropStaleEdges removes every edge whose LastSeen is older than cutoff,
// relative to now. Used by the snapshot builder before recomputing
// adjacency.
func (s *Store) DropStaleEdges(now time.Time, cutoff time.Duration) {
	s.edgeMu.Lock()
	defer s.edgeMu.Unlock()
	for k, e := range s.edges {
		if now.Sub(e.LastSeen) > cutoff {
			delete(s.edges, k)
		}
	}
}

package crawl

import (
	"net"
	"sync"

	"go.uber.org/atomic"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/metrics"
)

// MaxConcurrentConnections is the hard cap on simultaneously open or
// opening connections.
const MaxConcurrentConnections = 3500

// connEntry tracks a single open connection so it can be closed by the
// scheduler's stale-open reaper.
type connEntry struct {
	conn   net.Conn
	cancel func()
}

// connManager admits dial attempts under the connection cap and tracks
// which addresses are currently connected or mid-dial, so the scheduler
// never issues two concurrent dials to the same address. Active and
// in-flight counts are atomic so the hot admission check never takes a
// lock on the common "reject" path.
type connManager struct {
	mu   sync.Mutex
	open map[string]*connEntry // present once a dial is reserved; populated with a conn once connected

	active   atomic.Int64
	inFlight atomic.Int64
}

func newConnManager() *connManager {
	return &connManager{open: make(map[string]*connEntry)}
}

// TryReserve admits addr for a new dial if it is not already open or
// being dialed, and the combined active+in-flight count is under the
// cap. It returns false (B4) otherwise.
func (m *connManager) TryReserve(addr string) bool {
	if m.active.Load()+m.inFlight.Load() >= MaxConcurrentConnections {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.open[addr]; ok {
		return false
	}
	if m.active.Load()+m.inFlight.Load() >= MaxConcurrentConnections {
		return false
	}
	m.open[addr] = nil
	m.inFlight.Inc()
	return true
}

// MarkConnected transitions a reserved address from in-flight to active,
// recording its connection and a cancel function the reaper can call to
// tear it down.
func (m *connManager) MarkConnected(addr string, conn net.Conn, cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open[addr] = &connEntry{conn: conn, cancel: cancel}
	m.inFlight.Dec()
	m.active.Inc()
	metrics.ActiveConnections.Set(float64(m.active.Load()))
}

// Release closes addr's connection (if any) and frees its slot. Safe to
// call whether addr was only in-flight or fully connected, and safe to
// call more than once.
func (m *connManager) Release(addr string) {
	m.mu.Lock()
	entry, ok := m.open[addr]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.open, addr)
	m.mu.Unlock()

	if entry != nil {
		if entry.cancel != nil {
			entry.cancel()
		}
		entry.conn.Close()
		m.active.Dec()
		metrics.ActiveConnections.Set(float64(m.active.Load()))
	} else {
		m.inFlight.Dec()
	}
}

// CanDial reports whether addr is currently eligible for a new dial,
// without reserving it. TryReserve is the authoritative, race-free check
// used on the actual dial path; this is exposed for callers (and tests)
// that only need the predicate.
func (m *connManager) CanDial(addr string) bool {
	if m.active.Load()+m.inFlight.Load() >= MaxConcurrentConnections {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.open[addr]; ok {
		return false
	}
	return m.active.Load()+m.inFlight.Load() < MaxConcurrentConnections
}

func (m *connManager) ActiveCount() int64 {
	return m.active.Load()
}

func (m *connManager) InFlightCount() int64 {
	return m.inFlight.Load()
}

// ActiveAddrs returns the addresses currently past the dial stage
// (connected), for the scheduler's stale-open reaper to consult.
func (m *connManager) ActiveAddrs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.open))
	for addr, entry := range m.open {
		if entry != nil {
			out = append(out, addr)
		}
	}
	return out
}

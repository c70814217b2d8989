package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddAddrsCreatesRecordsAndEdges(t *testing.T) {
	s := New()
	now := time.Now()

	s.AddAddrs("P", []string{"A", "B", "C"}, now)

	require.Equal(t, 4, s.Len()) // P, A, B, C

	edges := s.Edges()
	require.Len(t, edges, 3)
	for _, e := range edges {
		require.Equal(t, "P", e.Src)
		require.Contains(t, []string{"A", "B", "C"}, e.Dst)
	}
}

// R1: invoking AddAddrs twice with the same arguments leaves the record
// map identical, but edge.LastSeen advances.
func TestAddAddrsIsIdempotentOnRecords(t *testing.T) {
	s := New()
	t1 := time.Now()
	s.AddAddrs("P", []string{"A"}, t1)

	before := s.Records()

	t2 := t1.Add(time.Minute)
	s.AddAddrs("P", []string{"A"}, t2)

	after := s.Records()
	require.ElementsMatch(t, before, after)

	edges := s.Edges()
	require.Len(t, edges, 1)
	require.True(t, edges[0].LastSeen.Equal(t2))
}

// I3: connection_failures strictly increases across consecutive failed
// dials and is exactly zero immediately after a successful dial.
func TestConnectionFailuresLifecycle(t *testing.T) {
	s := New()
	s.EnsureRecord("A")

	s.RecordDialFailure("A")
	r, _ := s.Get("A")
	require.Equal(t, uint8(1), r.ConnectionFailures)

	s.RecordDialFailure("A")
	r, _ = s.Get("A")
	require.Equal(t, uint8(2), r.ConnectionFailures)

	s.RecordHandshakeSuccess("A", time.Now(), time.Millisecond)
	r, _ = s.Get("A")
	require.Equal(t, uint8(0), r.ConnectionFailures)
	require.Equal(t, Connected, r.State)
	require.NotNil(t, r.LastConnected)
}

// I2: last_connected is monotonically non-decreasing.
func TestLastConnectedMonotonic(t *testing.T) {
	s := New()
	t1 := time.Now()
	s.RecordHandshakeSuccess("A", t1, time.Millisecond)
	r1, _ := s.Get("A")

	t2 := t1.Add(time.Second)
	s.RecordHandshakeSuccess("A", t2, time.Millisecond)
	r2, _ := s.Get("A")

	require.True(t, !r2.LastConnected.Before(*r1.LastConnected))
}

func TestConnectionFailuresSaturate(t *testing.T) {
	s := New()
	s.EnsureRecord("A")
	for i := 0; i < 300; i++ {
		s.RecordDialFailure("A")
	}
	r, _ := s.Get("A")
	require.Equal(t, uint8(255), r.ConnectionFailures)
}

func TestDropStaleEdges(t *testing.T) {
	s := New()
	now := time.Now()
	s.AddAddrs("P", []string{"A"}, now.Add(-700*time.Second))
	s.AddAddrs("P", []string{"B"}, now)

	s.DropStaleEdges(now, 600*time.Second)

	edges := s.Edges()
	require.Len(t, edges, 1)
	require.Equal(t, "B", edges[0].Dst)
}

// I1: for every edge (s,d), both s and d exist as record keys
// immediately after the mutation that introduced the edge.
func TestEveryEdgeEndpointHasRecord(t *testing.T) {
	s := New()
	s.AddAddrs("P", []string{"A", "B"}, time.Now())

	for _, e := range s.Edges() {
		_, ok := s.Get(e.Src)
		require.True(t, ok)
		_, ok = s.Get(e.Dst)
		require.True(t, ok)
	}
}

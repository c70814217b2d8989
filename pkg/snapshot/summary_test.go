package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
)

func ptrU32(v uint32) *uint32 { return &v }
func ptrI32(v int32) *int32   { return &v }
func ptrStr(v string) *string { return &v }

// I5: num_good_nodes <= num_known_nodes and len(node_network_types) ==
// len(node_addrs).
func TestBuildInvariantI5(t *testing.T) {
	now := time.Now()
	records := []network.Record{
		{Addr: "a:8233"},
		{Addr: "b:8233", LastConnected: &now, UserAgent: ptrStr("/MagicBean:5.4.2/"), ProtocolVersion: ptrU32(170100), StartHeight: ptrI32(2700000)},
	}

	s := Build(records, nil, now)
	require.LessOrEqual(t, s.NumGoodNodes, s.NumKnownNodes)
	require.Len(t, s.NodeNetworkTypes, len(s.NodeAddrs))
	require.Equal(t, 1, s.NumGoodNodes)
	require.Equal(t, 2, s.NumKnownNodes)
}

func TestBuildCountsProtocolVersionsAndUserAgents(t *testing.T) {
	now := time.Now()
	records := []network.Record{
		{Addr: "a:8233", LastConnected: &now, ProtocolVersion: ptrU32(170100), UserAgent: ptrStr("/MagicBean:5.4.2/")},
		{Addr: "b:8233", LastConnected: &now, ProtocolVersion: ptrU32(170100), UserAgent: ptrStr("/MagicBean:5.4.2/")},
		{Addr: "c:8233"},
	}

	s := Build(records, nil, now)
	require.Equal(t, 2, s.ProtocolVersions[170100])
	require.Equal(t, 2, s.UserAgents["/MagicBean:5.4.2/"])
}

func TestBuildAdjacencyOnlyOverGoodNodes(t *testing.T) {
	now := time.Now()
	records := []network.Record{
		{Addr: "a:8233", LastConnected: &now},
		{Addr: "b:8233", LastConnected: &now},
		{Addr: "c:8233"}, // not good: excluded from node_addrs/adjacency
	}
	edges := []network.Edge{
		{Src: "a:8233", Dst: "b:8233", LastSeen: now},
		{Src: "a:8233", Dst: "c:8233", LastSeen: now},
	}

	s := Build(records, edges, now)
	require.Equal(t, 2, s.NumKnownConnections) // raw live edge count, not adjacency-filtered
	require.Len(t, s.NodeAddrs, 2)
	require.Equal(t, [][]int{{1}, {0}}, s.NodesIndices) // a<->b only; the edge to c is dropped
}

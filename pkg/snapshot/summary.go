// Package snapshot periodically derives a read-only view of the known
// network — heights, client taxonomy, adjacency — and publishes it for
// the RPC surface to serve without ever blocking the crawl scheduler.
package snapshot

import (
	"time"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/classify"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
)

// Summary is the derived view published each cycle. Every field is
// computed from the store at build time; nothing here is denormalized
// back into it.
type Summary struct {
	NumKnownNodes       int `json:"num_known_nodes"`
	NumGoodNodes        int `json:"num_good_nodes"`
	NumKnownConnections int `json:"num_known_connections"`

	ProtocolVersions map[uint32]int `json:"protocol_versions"`
	UserAgents       map[string]int `json:"user_agents"`

	CrawlerRuntime time.Duration `json:"crawler_runtime"`

	NodeAddrs        []string               `json:"node_addrs"`
	NodeNetworkTypes []classify.NetworkType `json:"node_network_types"`

	// NodesIndices is an undirected "seen together" adjacency list in
	// index space, parallel to NodeAddrs: NodesIndices[i] holds the
	// indices of other good nodes connected to NodeAddrs[i] by any
	// directed edge in the live graph.
	NodesIndices [][]int `json:"nodes_indices"`
}

// Build computes a Summary from the current state of store and graph,
// using startedAt to derive CrawlerRuntime.
func Build(records []network.Record, edges []network.Edge, startedAt time.Time) Summary {
	s := Summary{
		ProtocolVersions: make(map[uint32]int),
		UserAgents:       make(map[string]int),
		CrawlerRuntime:   time.Since(startedAt),
	}

	goodIndex := make(map[string]int)
	for _, r := range records {
		s.NumKnownNodes++
		if r.Good() {
			s.NumGoodNodes++
		}

		if r.ProtocolVersion != nil {
			s.ProtocolVersions[*r.ProtocolVersion]++
			if r.UserAgent != nil {
				s.UserAgents[*r.UserAgent]++
			}
		}

		if r.Good() {
			goodIndex[r.Addr] = len(s.NodeAddrs)
			s.NodeAddrs = append(s.NodeAddrs, r.Addr)
			s.NodeNetworkTypes = append(s.NodeNetworkTypes, networkTypeOf(r))
		}
	}

	s.NumKnownConnections = len(edges)

	adjacency := make([]map[int]struct{}, len(s.NodeAddrs))
	for i := range adjacency {
		adjacency[i] = make(map[int]struct{})
	}

	for _, e := range edges {
		si, sok := goodIndex[e.Src]
		di, dok := goodIndex[e.Dst]
		if !sok || !dok || si == di {
			continue
		}
		adjacency[si][di] = struct{}{}
		adjacency[di][si] = struct{}{}
	}

	s.NodesIndices = make([][]int, len(adjacency))
	for i, set := range adjacency {
		idxs := make([]int, 0, len(set))
		for j := range set {
			idxs = append(idxs, j)
		}
		s.NodesIndices[i] = idxs
	}

	return s
}

func networkTypeOf(r network.Record) classify.NetworkType {
	port := portOf(r.Addr)
	return classify.NetworkTypeOf(r.UserAgent, r.StartHeight, port)
}

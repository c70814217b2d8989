package rpcserver

import (
	"encoding/json"
	"net"
	"sort"
	"strconv"
	"time"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/classify"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
)

func (s *Server) handleGetMetrics(_ json.RawMessage) (interface{}, *rpcError) {
	summary, _ := s.builder.Latest()
	return summary, nil
}

func (s *Server) handleGetStats(_ json.RawMessage) (interface{}, *rpcError) {
	summary, records := s.builder.Latest()
	return buildStats(records, summary.CrawlerRuntime), nil
}

type getNodesParams struct {
	IncludeFlux bool `json:"include_flux"`
}

func (s *Server) handleGetNodes(params json.RawMessage) (interface{}, *rpcError) {
	p, err := parseGetNodesParams(params)
	if err != nil {
		return nil, &rpcError{Code: errInvalidParams, Message: err.Error()}
	}

	summary, records := s.builder.Latest()
	stats := buildStats(records, summary.CrawlerRuntime)

	now := time.Now()
	nodes := make([]NodeInfo, 0, len(records))
	for _, r := range records {
		tip := stats.TipHeight
		relevant := classify.IsRelevant(r.UserAgent, r.StartHeight, tip)
		var clientType classify.ClientType
		if r.UserAgent != nil {
			clientType = classify.ClientOf(*r.UserAgent)
		} else {
			clientType = classify.Other
		}
		isFlux := clientType == classify.Flux

		if !p.IncludeFlux {
			if isFlux {
				continue
			}
			if !relevant || (clientType != classify.Zcashd && clientType != classify.Zebra) {
				continue
			}
		}

		ip, portStr, _ := net.SplitHostPort(r.Addr)
		port, _ := strconv.Atoi(portStr)

		var secondsSince *int64
		if r.LastConnected != nil {
			d := int64(now.Sub(*r.LastConnected).Seconds())
			secondsSince = &d
		}

		nodes = append(nodes, NodeInfo{
			IP:               ip,
			Port:             port,
			ProtocolVersion:  r.ProtocolVersion,
			UserAgent:        r.UserAgent,
			StartHeight:      r.StartHeight,
			Services:         r.Services,
			SecondsSinceSeen: secondsSince,
			IsRelevant:       relevant,
			IsFlux:           isFlux,
			ClientType:       clientType,
		})
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsRelevant != nodes[j].IsRelevant {
			return nodes[i].IsRelevant // relevant first
		}
		si, sj := secondsOf(nodes[i]), secondsOf(nodes[j])
		return si < sj // ascending last-seen-seconds
	})

	return NodesResponse{Stats: stats, Nodes: nodes}, nil
}

func secondsOf(n NodeInfo) int64 {
	if n.SecondsSinceSeen == nil {
		return 1<<62 - 1 // records never connected sort last within their bucket
	}
	return *n.SecondsSinceSeen
}

func parseGetNodesParams(raw json.RawMessage) (getNodesParams, error) {
	var p getNodesParams
	if len(raw) == 0 || string(raw) == "null" {
		return p, nil
	}

	// Accept either a positional array ([true]) or a named object
	// ({"include_flux": true}), since JSON-RPC 2.0 permits both.
	var arr []bool
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) > 0 {
			p.IncludeFlux = arr[0]
		}
		return p, nil
	}

	if err := json.Unmarshal(raw, &p); err != nil {
		return getNodesParams{}, err
	}
	return p, nil
}

func buildStats(records []network.Record, uptime time.Duration) NetworkStats {
	heights := make([]int32, 0, len(records))
	for _, r := range records {
		if r.StartHeight != nil {
			heights = append(heights, *r.StartHeight)
		}
	}
	tip := classify.EstimateTip(heights)

	var stats NetworkStats
	stats.TipHeight = tip
	stats.RuntimeSeconds = uptime.Seconds()

	for _, r := range records {
		stats.NumKnownNodes++
		if r.HasUserAgent() {
			stats.NumContacted++
		}
		if classify.IsRelevant(r.UserAgent, r.StartHeight, tip) {
			stats.NumRelevant++
		}

		var ct classify.ClientType = classify.Other
		if r.UserAgent != nil {
			ct = classify.ClientOf(*r.UserAgent)
		}
		switch ct {
		case classify.Zcashd:
			stats.NumZcashd++
		case classify.Zebra:
			stats.NumZebra++
		case classify.Flux:
			stats.NumFlux++
		default:
			if r.UserAgent != nil {
				stats.NumOther++
			}
		}
	}

	return stats
}

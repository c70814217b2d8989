package rpcserver

import "github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/classify"

// NodeInfo is one entry of getnodes' node list.
type NodeInfo struct {
	IP               string             `json:"ip"`
	Port             int                `json:"port"`
	ProtocolVersion  *uint32            `json:"protocol_version,omitempty"`
	UserAgent        *string            `json:"user_agent,omitempty"`
	StartHeight      *int32             `json:"start_height,omitempty"`
	Services         *uint64            `json:"services,omitempty"`
	SecondsSinceSeen *int64             `json:"seconds_since_last_connect,omitempty"`
	IsRelevant       bool               `json:"is_relevant"`
	IsFlux           bool               `json:"is_flux"`
	ClientType       classify.ClientType `json:"client_type"`
}

// NetworkStats is getstats' result, and is embedded in getnodes' result.
type NetworkStats struct {
	NumKnownNodes   int `json:"num_known_nodes"`
	NumContacted    int `json:"num_contacted_nodes"`
	NumRelevant     int `json:"num_relevant_zcash_nodes"`
	NumZcashd       int `json:"num_zcashd"`
	NumZebra        int `json:"num_zebra"`
	NumFlux         int `json:"num_flux"`
	NumOther        int `json:"num_other"`
	TipHeight       int32   `json:"tip_height"`
	RuntimeSeconds  float64 `json:"runtime_seconds"`
}

// NodesResponse is getnodes' result.
type NodesResponse struct {
	Stats NetworkStats `json:"stats"`
	Nodes []NodeInfo   `json:"nodes"`
}

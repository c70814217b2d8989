// Package metrics registers the crawler's Prometheus instrumentation.
// This is additive observability, not part of the JSON-RPC surface of
// record — getmetrics/getstats remain the authoritative summary API.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DialAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "znodes",
		Subsystem: "crawl",
		Name:      "dial_attempts_total",
		Help:      "Total number of outbound dial attempts.",
	})

	DialFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "znodes",
		Subsystem: "crawl",
		Name:      "dial_failures_total",
		Help:      "Total number of dial attempts that did not reach a completed handshake.",
	})

	HandshakesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "znodes",
		Subsystem: "crawl",
		Name:      "handshakes_completed_total",
		Help:      "Total number of completed one-sided handshakes.",
	})

	AddrMessagesReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "znodes",
		Subsystem: "crawl",
		Name:      "addr_messages_received_total",
		Help:      "Total number of Addr messages ingested from peers.",
	})

	ActiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "znodes",
		Subsystem: "crawl",
		Name:      "active_connections",
		Help:      "Number of currently open peer connections.",
	})

	KnownNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "znodes",
		Subsystem: "network",
		Name:      "known_nodes",
		Help:      "Number of known peer records.",
	})

	GoodNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "znodes",
		Subsystem: "network",
		Name:      "good_nodes",
		Help:      "Number of records that have ever completed a handshake.",
	})

	KnownEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "znodes",
		Subsystem: "network",
		Name:      "known_edges",
		Help:      "Number of live edges in the known-network graph.",
	})

	RPCRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "znodes",
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "Total number of JSON-RPC requests served, by method.",
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(
		DialAttempts,
		DialFailures,
		HandshakesCompleted,
		AddrMessagesReceived,
		ActiveConnections,
		KnownNodes,
		GoodNodes,
		KnownEdges,
		RPCRequests,
	)
}

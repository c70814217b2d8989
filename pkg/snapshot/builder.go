package snapshot

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/metrics"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
)

// Interval is the snapshot builder's period. The spec allows 30-60s; this
// fixes the midpoint as a single constant, resolving that choice rather
// than exposing it as configuration.
const Interval = 45 * time.Second

// edgeCutoff is how stale an edge may be before the builder drops it.
const edgeCutoff = 600 * time.Second

// Builder periodically walks the store, drops stale edges, and publishes
// a Summary plus a cloned record snapshot into atomically replaceable
// slots. RPC reads of either slot never block the builder or the crawl
// scheduler.
type Builder struct {
	store     *network.Store
	startedAt time.Time
	log       *zap.Logger

	summary atomic.Pointer[Summary]
	records atomic.Pointer[[]network.Record]
}

// NewBuilder returns a Builder over store, using startedAt as the
// crawler's process-start reference for CrawlerRuntime.
func NewBuilder(store *network.Store, startedAt time.Time, log *zap.Logger) *Builder {
	b := &Builder{store: store, startedAt: startedAt, log: log.Named("snapshot")}
	empty := Summary{ProtocolVersions: map[uint32]int{}, UserAgents: map[string]int{}}
	b.summary.Store(&empty)
	emptyRecords := []network.Record{}
	b.records.Store(&emptyRecords)
	return b
}

// Latest returns the most recently published Summary and record
// snapshot. It never blocks.
func (b *Builder) Latest() (Summary, []network.Record) {
	return *b.summary.Load(), *b.records.Load()
}

// Run runs the periodic build cycle, dedicating its own OS thread to
// isolate the (modest but non-trivial) cycle computation from the
// runtime's other goroutines, until ctx is cancelled.
func (b *Builder) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ticker := time.NewTicker(Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.cycle()
		}
	}
}

func (b *Builder) cycle() {
	now := time.Now()
	b.store.DropStaleEdges(now, edgeCutoff)

	records := b.store.Records()
	edges := b.store.Edges()

	summary := Build(records, edges, b.startedAt)

	b.records.Store(&records)
	b.summary.Store(&summary)

	metrics.KnownNodes.Set(float64(summary.NumKnownNodes))
	metrics.GoodNodes.Set(float64(summary.NumGoodNodes))
	metrics.KnownEdges.Set(float64(summary.NumKnownConnections))

	b.log.Debug("snapshot published",
		zap.Int("known_nodes", summary.NumKnownNodes),
		zap.Int("good_nodes", summary.NumGoodNodes),
		zap.Int("edges", summary.NumKnownConnections))
}

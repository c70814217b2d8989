package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/internal/zwire"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/rpcserver"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/seed"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/snapshot"
)

// LogFile is where the final summary is appended at graceful shutdown.
const LogFile = "crawler-log.txt"

// Config collects the orchestrator's startup parameters: one field per
// crawl-specific CLI flag, plus the network magic to dial with.
type Config struct {
	SeedAddrs          []string
	CrawlInterval       time.Duration
	RPCAddr            string // empty disables the RPC server
	NodeListeningPort   uint16
	Magic               zwire.Magic
}

// Orchestrator wires the store, seed resolver, scheduler, snapshot
// builder, and RPC server together, and owns the shutdown sequence.
type Orchestrator struct {
	cfg     Config
	log     *zap.Logger
	store   *network.Store
	resolver *seed.Resolver
	scheduler *Scheduler
	builder *snapshot.Builder
	rpc     *rpcserver.Server

	startedAt time.Time
}

// New validates cfg and wires up an Orchestrator. It returns an error if
// the seed list is empty after resolution, per the spec's fatal-startup
// policy.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Orchestrator, error) {
	store := network.New()
	resolver := seed.New(cfg.SeedAddrs, cfg.NodeListeningPort, log)

	resolved := resolver.Resolve(ctx)
	if len(resolved) == 0 {
		return nil, fmt.Errorf("crawl: no seed address resolved from %v", cfg.SeedAddrs)
	}
	now := time.Now()
	for _, a := range resolved {
		store.EnsureRecord(a)
	}

	startedAt := now
	scheduler := NewScheduler(store, cfg.Magic, cfg.CrawlInterval, log)
	builder := snapshot.NewBuilder(store, startedAt, log)

	o := &Orchestrator{
		cfg:       cfg,
		log:       log.Named("orchestrator"),
		store:     store,
		resolver:  resolver,
		scheduler: scheduler,
		builder:   builder,
		startedAt: startedAt,
	}

	if cfg.RPCAddr != "" {
		o.rpc = rpcserver.New(cfg.RPCAddr, builder, log)
	}

	return o, nil
}

// Run starts every subsystem and blocks until ctx is cancelled, then
// performs the orderly shutdown sequence: stop the crawl task, await its
// unwinding, append the final summary to LogFile. The RPC server, if
// enabled, is allowed to keep serving until the process exits, and its
// own goroutine is not awaited here.
func (o *Orchestrator) Run(ctx context.Context) error {
	seedCount := o.store.Len()

	go o.resolver.Run(ctx, seed.RefreshInterval, func(addrs []string) {
		for _, a := range addrs {
			if _, known := o.store.Get(a); known {
				continue
			}
			o.store.EnsureRecord(a)
			o.scheduler.DialNow(ctx, a)
		}
	})

	go o.builder.Run(ctx)

	if o.rpc != nil {
		go func() {
			if err := o.rpc.Serve(ctx); err != nil {
				if ctx.Err() == nil {
					o.log.Fatal("rpc server failed", zap.Error(err))
				}
				o.log.Error("rpc server exited", zap.Error(err))
			}
		}()
	}

	crawlDone := make(chan struct{})
	go func() {
		defer close(crawlDone)
		o.scheduler.Bootstrap(ctx, seedCount)
		o.scheduler.Run(ctx)
	}()

	<-ctx.Done()
	o.log.Info("shutdown signal received, waiting for crawl task to unwind")
	<-crawlDone

	return o.writeFinalSummary()
}

// writeFinalSummary appends the final snapshot.Summary to LogFile,
// delegating serialization to the summary type's own JSON encoding.
func (o *Orchestrator) writeFinalSummary() error {
	summary, _ := o.builder.Latest()

	f, err := os.OpenFile(LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("crawl: opening %s: %w", LogFile, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("crawl: writing final summary: %w", err)
	}
	return nil
}

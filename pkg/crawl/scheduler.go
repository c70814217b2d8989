package crawl

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/internal/zwire"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
)

const (
	// NumConnAttemptsPeriodic oversamples candidates each tick, relying
	// on the connection cap to clamp actual dials.
	NumConnAttemptsPeriodic = 2000

	// ReconnectInterval excludes recently-contacted records from
	// candidate selection.
	ReconnectInterval = 45 * time.Second

	// DefaultCrawlInterval is the scheduler's default tick period.
	DefaultCrawlInterval = 10 * time.Second

	bootstrapPollInterval = 500 * time.Millisecond
	bootstrapPollCount    = 30
	bootstrapGrowthWait   = 120 * time.Second
)

// Scheduler is the single long-running task that periodically selects
// dial targets, enforces the connection cap and reconnect cooldown, and
// reaps stale-open connections.
type Scheduler struct {
	store *network.Store
	mgr   *connManager
	eng   *engine
	log   *zap.Logger

	interval time.Duration
}

// NewScheduler builds a Scheduler dialing over magic, using interval as
// its tick period.
func NewScheduler(store *network.Store, magic zwire.Magic, interval time.Duration, log *zap.Logger) *Scheduler {
	mgr := newConnManager()
	return &Scheduler{
		store:    store,
		mgr:      mgr,
		eng:      newEngine(store, mgr, magic, log),
		log:      log.Named("scheduler"),
		interval: interval,
	}
}

// Bootstrap dispatches a dial to every known record (the resolved
// seeds), then waits up to 30*500ms for at least one connection to
// establish, then up to 120s for the record set to grow beyond
// seedCount, whichever comes first.
func (s *Scheduler) Bootstrap(ctx context.Context, seedCount int) {
	for _, rec := range s.store.Records() {
		s.DialNow(ctx, rec.Addr)
	}

	for i := 0; i < bootstrapPollCount; i++ {
		if s.mgr.ActiveCount() > 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(bootstrapPollInterval):
		}
	}

	deadline := time.Now().Add(bootstrapGrowthWait)
	for time.Now().Before(deadline) {
		if s.store.Len() > seedCount {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(bootstrapPollInterval):
		}
	}
}

// Run ticks every s.interval until ctx is cancelled, executing reap,
// candidate selection, and dial dispatch in order on every tick.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// DialNow reserves and dials addr immediately, outside the regular tick
// cycle, for callers that discover a single new address and don't want
// to wait for the next tick (the seed-refresh task, notably). It is a
// no-op if addr is already open or the connection cap is saturated.
func (s *Scheduler) DialNow(ctx context.Context, addr string) {
	if !s.mgr.TryReserve(addr) {
		return
	}
	go s.eng.Run(ctx, addr)
}

func (s *Scheduler) tick(ctx context.Context) {
	s.reapStaleOpens()

	candidates := s.selectCandidates()
	dispatched := 0
	for _, addr := range candidates {
		if !s.mgr.TryReserve(addr) {
			continue
		}
		dispatched++
		go s.eng.Run(ctx, addr)
	}
	s.log.Debug("tick complete", zap.Int("candidates", len(candidates)), zap.Int("dispatched", dispatched))
}

// reapStaleOpens disconnects every peer Connected for longer than
// StaleOpenTimeout without delivering a usable Addr.
func (s *Scheduler) reapStaleOpens() {
	now := time.Now()
	for _, addr := range s.mgr.ActiveAddrs() {
		rec, ok := s.store.Get(addr)
		if !ok || rec.State != network.Connected || rec.LastConnected == nil {
			continue
		}
		if now.Sub(*rec.LastConnected) > StaleOpenTimeout {
			s.store.SetState(addr, network.Disconnected)
			s.mgr.Release(addr)
		}
	}
}

// selectCandidates partitions records into need_info/have_info buckets,
// excludes recently-contacted records, shuffles each bucket
// independently, and returns need_info then have_info truncated to
// NumConnAttemptsPeriodic.
func (s *Scheduler) selectCandidates() []string {
	now := time.Now()
	var needInfo, haveInfo []string

	for _, rec := range s.store.Records() {
		if rec.LastConnected != nil && now.Sub(*rec.LastConnected) < ReconnectInterval {
			continue
		}
		if rec.HasUserAgent() {
			haveInfo = append(haveInfo, rec.Addr)
		} else {
			needInfo = append(needInfo, rec.Addr)
		}
	}

	shuffle(needInfo)
	shuffle(haveInfo)

	out := append(needInfo, haveInfo...)
	if len(out) > NumConnAttemptsPeriodic {
		out = out[:NumConnAttemptsPeriodic]
	}
	return out
}

func shuffle(s []string) {
	rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// ShouldConnect reports whether addr is currently eligible for a new
// dial: not already open or connecting, and under the connection cap.
// Exposed for tests exercising B4.
func (s *Scheduler) ShouldConnect(addr string) bool {
	return s.mgr.CanDial(addr)
}

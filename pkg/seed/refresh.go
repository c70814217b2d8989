package seed

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RefreshInterval is how often the seed list is re-resolved, per the
// spec's fixed 120-second DNS refresh period.
const RefreshInterval = 120 * time.Second

// Run re-resolves the configured seeds every interval and calls onNew
// with any address not seen on a previous pass — the orchestrator uses
// this to insert fresh addresses into the store and dispatch a dial for
// each. Run blocks until ctx is cancelled.
func (r *Resolver) Run(ctx context.Context, interval time.Duration, onNew func(addrs []string)) {
	seen := make(map[string]struct{})

	mark := func(addrs []string) []string {
		var fresh []string
		for _, a := range addrs {
			if _, ok := seen[a]; !ok {
				seen[a] = struct{}{}
				fresh = append(fresh, a)
			}
		}
		return fresh
	}

	if fresh := mark(r.Resolve(ctx)); len(fresh) > 0 {
		onNew(fresh)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if fresh := mark(r.Resolve(ctx)); len(fresh) > 0 {
				r.log.Debug("seed refresh found new addresses", zap.Int("count", len(fresh)))
				onNew(fresh)
			}
		}
	}
}

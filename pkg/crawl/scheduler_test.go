package crawl

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/internal/zwire"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
)

// B4: with exactly MaxConcurrentConnections active, should_connect
// returns false for every candidate.
func TestShouldConnectFalseAtCap(t *testing.T) {
	store := network.New()
	s := NewScheduler(store, zwire.MainNet, time.Second, zap.NewNop())

	candidates := []string{"1.2.3.4:8233"}
	for i := 0; i < MaxConcurrentConnections; i++ {
		candidates = append(candidates, fmt.Sprintf("10.0.0.%d:8233", i%256))
		s.mgr.active.Inc()
	}

	for _, addr := range candidates {
		require.False(t, s.ShouldConnect(addr))
	}
}

func TestSelectCandidatesExcludesRecentlyConnected(t *testing.T) {
	store := network.New()
	s := NewScheduler(store, zwire.MainNet, time.Second, zap.NewNop())

	store.EnsureRecord("A")
	store.RecordHandshakeSuccess("B", time.Now(), time.Millisecond)

	candidates := s.selectCandidates()
	require.Contains(t, candidates, "A")
	require.NotContains(t, candidates, "B")
}

func TestSelectCandidatesBucketsByUserAgent(t *testing.T) {
	store := network.New()
	s := NewScheduler(store, zwire.MainNet, time.Second, zap.NewNop())

	store.EnsureRecord("need-info")
	store.RecordVersion("have-info", 170100, "/MagicBean:5.4.2/", 1, 2700000)
	// Push have-info's last_connected outside the cooldown window so it
	// remains a candidate.
	old := time.Now().Add(-time.Hour)
	store.RecordHandshakeSuccess("have-info", old, time.Millisecond)

	candidates := s.selectCandidates()
	require.ElementsMatch(t, []string{"need-info", "have-info"}, candidates)
}

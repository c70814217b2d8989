package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// R2: parsing a seed string that is already ip:port is idempotent.
func TestResolveLiteralIPPortRoundTrips(t *testing.T) {
	r := New([]string{"1.2.3.4:9999"}, 8233, zap.NewNop())
	got := r.Resolve(context.Background())
	require.Equal(t, []string{"1.2.3.4:9999"}, got)
}

func TestResolveBareIPUsesDefaultPort(t *testing.T) {
	r := New([]string{"1.2.3.4"}, 8233, zap.NewNop())
	got := r.Resolve(context.Background())
	require.Equal(t, []string{"1.2.3.4:8233"}, got)
}

func TestResolveUnresolvableHostIsSkipped(t *testing.T) {
	r := New([]string{"this-host-does-not-resolve.invalid."}, 8233, zap.NewNop())
	got := r.Resolve(context.Background())
	require.Empty(t, got)
}

func TestResolveMultipleSeedsFlattens(t *testing.T) {
	r := New([]string{"1.2.3.4:1", "5.6.7.8"}, 8233, zap.NewNop())
	got := r.Resolve(context.Background())
	require.ElementsMatch(t, []string{"1.2.3.4:1", "5.6.7.8:8233"}, got)
}

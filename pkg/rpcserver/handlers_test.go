package rpcserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
)

func ptrU32(v uint32) *uint32 { return &v }
func ptrI32(v int32) *int32   { return &v }
func ptrStr(v string) *string { return &v }

// S5-style classification matrix exercised through buildStats.
func TestBuildStatsClassificationMatrix(t *testing.T) {
	now := time.Now()
	mk := func(addr, ua string, height int32) network.Record {
		return network.Record{
			Addr: addr, LastConnected: &now,
			UserAgent: ptrStr(ua), ProtocolVersion: ptrU32(170100), StartHeight: ptrI32(height),
		}
	}
	records := []network.Record{
		mk("a:8233", "/MagicBean:5.4.2/", 2700000),
		mk("b:8233", "/MagicBean:6.0.0/", 2700000),
		mk("c:8233", "/Zebra:1.0.0/", 2700000),
		mk("d:8233", "/MagicBean:5.4.2-flux/", 2700000),
		mk("e:8233", "/Foo/", 2700000),
	}

	stats := buildStats(records, 90*time.Second)
	require.Equal(t, 1, stats.NumZcashd)
	require.Equal(t, 1, stats.NumZebra)
	require.Equal(t, 2, stats.NumFlux)
	require.Equal(t, 1, stats.NumOther)
	require.Equal(t, 2, stats.NumRelevant)
	require.Equal(t, 90.0, stats.RuntimeSeconds)
}

func TestParseGetNodesParamsAcceptsArrayAndObject(t *testing.T) {
	p, err := parseGetNodesParams([]byte(`[true]`))
	require.NoError(t, err)
	require.True(t, p.IncludeFlux)

	p, err = parseGetNodesParams([]byte(`{"include_flux": true}`))
	require.NoError(t, err)
	require.True(t, p.IncludeFlux)

	p, err = parseGetNodesParams(nil)
	require.NoError(t, err)
	require.False(t, p.IncludeFlux)
}

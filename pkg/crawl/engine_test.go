package crawl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// B3: a peer sending an Addr containing only its own address does not
// trigger disconnect.
func TestAddrTriggersDisconnect(t *testing.T) {
	require.False(t, addrTriggersDisconnect("P", nil))
	require.False(t, addrTriggersDisconnect("P", []string{"P"}))
	require.True(t, addrTriggersDisconnect("P", []string{"A"}))
	require.True(t, addrTriggersDisconnect("P", []string{"A", "B"}))
	require.True(t, addrTriggersDisconnect("P", []string{"P", "A"}))
}

package snapshot

import (
	"net"
	"strconv"
)

// portOf extracts the numeric port from a host:port address string,
// returning 0 if it cannot be parsed.
func portOf(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	p, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return p
}

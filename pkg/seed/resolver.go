// Package seed turns user-supplied seed strings — literal ip:port pairs,
// bare IPs, or DNS names with an optional port override — into dialable
// socket addresses, and keeps re-resolving them for seeds whose DNS
// answer changes over time.
package seed

import (
	"context"
	"net"
	"strconv"

	"go.uber.org/zap"
)

// Resolver turns the seed strings it was configured with into socket
// addresses, using defaultPort for any seed that does not specify one.
type Resolver struct {
	seeds       []string
	defaultPort uint16
	log         *zap.Logger
}

// New returns a Resolver for seeds, falling back to defaultPort when a
// seed names a host without an explicit port.
func New(seeds []string, defaultPort uint16, log *zap.Logger) *Resolver {
	return &Resolver{seeds: seeds, defaultPort: defaultPort, log: log.Named("seed")}
}

// Resolve resolves every configured seed string and returns the flat,
// possibly-duplicated list of socket addresses produced. A seed that
// fails to resolve is logged and skipped rather than failing the whole
// call.
func (r *Resolver) Resolve(ctx context.Context) []string {
	var out []string
	for _, s := range r.seeds {
		addrs, err := r.resolveOne(ctx, s)
		if err != nil {
			r.log.Warn("seed did not resolve", zap.String("seed", s), zap.Error(err))
			continue
		}
		out = append(out, addrs...)
	}
	return out
}

// resolveOne implements the three seed-string forms: literal ip:port,
// bare IP (default port), and host[:port] resolved via DNS.
func (r *Resolver) resolveOne(ctx context.Context, s string) ([]string, error) {
	host, portStr, splitErr := net.SplitHostPort(s)
	hasPort := splitErr == nil
	if !hasPort {
		host = s
	}

	port := r.defaultPort
	if hasPort {
		p, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return nil, err
		}
		port = uint16(p)
	}

	// (a) literal ip:port, or (b) bare IP using the default port.
	if ip := net.ParseIP(host); ip != nil {
		return []string{net.JoinHostPort(ip.String(), portStr16(port))}, nil
	}

	// (c) a DNS name, with the rightmost :N (if any) already stripped
	// above as the port override; every resolved address is emitted
	// with that port.
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, net.JoinHostPort(a.IP.String(), portStr16(port)))
	}
	return out, nil
}

func portStr16(p uint16) string {
	return strconv.FormatUint(uint64(p), 10)
}

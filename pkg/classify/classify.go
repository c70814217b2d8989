// Package classify implements the crawler's client-taxonomy and
// relevance rules. Two distinct rule sets — RPC relevance and the
// summary's network-type tag — are kept separate on purpose: they serve
// different consumers and use different height thresholds.
package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// ClientType is the informational taxonomy bucket a user agent falls
// into.
type ClientType string

const (
	Flux   ClientType = "flux"
	Zcashd ClientType = "zcashd"
	Zebra  ClientType = "zebra"
	Other  ClientType = "other"
)

var magicBeanMajor = regexp.MustCompile(`magicbean:(\d+)`)

// ClientOf classifies a user agent string into a ClientType.
func ClientOf(userAgent string) ClientType {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "flux") {
		return Flux
	}
	if strings.Contains(ua, "magicbean") {
		if major, ok := magicBeanMajorVersion(ua); ok && major >= 6 {
			return Flux
		}
		return Zcashd
	}
	if strings.Contains(ua, "zebra") {
		return Zebra
	}
	return Other
}

func magicBeanMajorVersion(lowerUA string) (int, bool) {
	m := magicBeanMajor.FindStringSubmatch(lowerUA)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MinRPCRelevanceHeight is the height floor used by IsRelevant, distinct
// from the summary tag's MinNetworkTypeHeight.
const MinRPCRelevanceHeight int32 = 2_500_000

const (
	maxZebraHeightDelta  = 20_000
	maxZcashdHeightDelta = 100_000
)

// IsRelevant reports whether a record is a useful Zcash mainnet peer for
// the RPC surface: a recognized, non-flux client recent enough to be
// near the estimated chain tip.
func IsRelevant(userAgent *string, startHeight *int32, tip int32) bool {
	if userAgent == nil || startHeight == nil {
		return false
	}
	ua := *userAgent
	lower := strings.ToLower(ua)

	beginsMagicBean := strings.HasPrefix(lower, "/magicbean")
	beginsZebra := strings.HasPrefix(lower, "/zebra")
	if !beginsMagicBean && !beginsZebra {
		return false
	}
	if strings.Contains(lower, "flux") {
		return false
	}
	if beginsMagicBean {
		if major, ok := magicBeanMajorVersion(lower); ok && major >= 6 {
			return false
		}
	}

	height := *startHeight
	if height <= MinRPCRelevanceHeight {
		return false
	}

	delta := height - tip
	if delta < 0 {
		delta = -delta
	}
	if beginsZebra {
		return delta <= maxZebraHeightDelta
	}
	return delta <= maxZcashdHeightDelta
}

// MinNetworkTypeHeight is the height floor used by the summary's
// network-type tag — distinct from MinRPCRelevanceHeight by design; see
// the package doc comment.
const MinNetworkTypeHeight int32 = 2_000_000

const (
	MainnetPort = 8233
	TestnetPort = 18233
)

var networkTypeAgent = regexp.MustCompile(`^/(magicbean|zebra):\d+\.\d+\.\d+`)

// NetworkType is the coarse Zcash/Unknown tag attached to each good node
// in a snapshot's node_network_types list.
type NetworkType string

const (
	Zcash   NetworkType = "zcash"
	Unknown NetworkType = "unknown"
)

// NetworkTypeOf classifies a peer for the summary's node_network_types
// list, using the port, the advertised height, and a looser agent match
// than IsRelevant.
func NetworkTypeOf(userAgent *string, startHeight *int32, port int) NetworkType {
	lower := ""
	if userAgent != nil {
		lower = strings.ToLower(*userAgent)
	}

	if major, ok := magicBeanMajorVersion(lower); ok && major >= 6 {
		return Unknown
	}

	portOK := port == MainnetPort || port == TestnetPort
	agentOK := networkTypeAgent.MatchString(lower)

	if !portOK && !agentOK {
		return Unknown
	}
	if startHeight == nil || *startHeight < MinNetworkTypeHeight {
		return Unknown
	}
	return Zcash
}

package zwire

// Magic identifies the network a message belongs to, sent as the first
// four bytes of every frame header.
type Magic uint32

// Real Zcash network magic bytes (little-endian uint32 view of the
// four-byte magic each network advertises on the wire).
const (
	MainNet Magic = 0x6427e924
	TestNet Magic = 0xbff91afa
)

func (m Magic) String() string {
	switch m {
	case MainNet:
		return "main"
	case TestNet:
		return "test"
	default:
		return "unknown"
	}
}

// ServiceFlag advertises the services a peer offers in its Version message.
type ServiceFlag uint64

const (
	NodeNetwork ServiceFlag = 1
)

// ProtocolVersion is the version number the crawler advertises in its own
// Version message. It tracks a recent, widely deployed Zcash protocol
// version; peers are not rejected for advertising a different one.
const ProtocolVersion uint32 = 170100

// HeaderSize is the fixed size, in bytes, of a message frame header:
// 4-byte magic + 12-byte command + 4-byte payload length + 4-byte checksum.
const HeaderSize = 24

// MaxPayloadSize bounds how large a single message payload may be before
// the codec refuses to decode it. Matches the network's own message size
// ceiling, well above anything a crawler needs to send or expects to see
// from a polite peer.
const MaxPayloadSize = 2 * 1024 * 1024

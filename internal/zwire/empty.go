package zwire

// VerackMsg acknowledges a received Version message. It carries no fields.
type VerackMsg struct{ emptyPayload }

func (*VerackMsg) Command() Command { return CmdVerack }

// GetAddrMsg requests a peer's address list. It carries no fields.
type GetAddrMsg struct{ emptyPayload }

func (*GetAddrMsg) Command() Command { return CmdGetAddr }

// GetHeadersMsg requests block headers. The crawler only ever receives
// this (and always replies with an empty Headers), so locator/hash-stop
// fields are decoded and discarded rather than modeled in full.
type GetHeadersMsg struct{ emptyPayload }

func (*GetHeadersMsg) Command() Command { return CmdGetHeaders }

func (m *GetHeadersMsg) DecodePayload(r *binReader) {
	// Version (4 bytes) + a var-length locator hash list + a stop hash.
	var version uint32
	r.Read(&version)
	n := r.VarUint()
	for i := uint64(0); i < n && r.Err == nil; i++ {
		var hash [32]byte
		r.Read(&hash)
	}
	var stopHash [32]byte
	r.Read(&stopHash)
}

package zwire

// maxHeadersAllowed mirrors the network's own per-message header-count
// ceiling; the crawler only ever sends an empty Headers reply, but keeps
// this as a sanity bound in case a peer is ever read from.
const maxHeadersAllowed = 2000

// HeadersMsg carries a list of raw block headers. The crawler always
// sends this with an empty list in reply to GetHeaders, never requesting
// or storing real chain data.
type HeadersMsg struct {
	// Raw holds each header's serialized bytes verbatim (header + the
	// trailing zero transaction-count byte), undecoded: the crawler has
	// no use for block contents, only for satisfying the protocol.
	Raw [][]byte
}

func (*HeadersMsg) Command() Command { return CmdHeaders }

func (m *HeadersMsg) EncodePayload(w *binWriter) {
	w.VarUint(uint64(len(m.Raw)))
	for _, h := range m.Raw {
		w.Write(h)
	}
}

func (m *HeadersMsg) DecodePayload(r *binReader) {
	n := r.VarUint()
	if r.Err != nil {
		return
	}
	if n > maxHeadersAllowed {
		n = maxHeadersAllowed
	}
	m.Raw = make([][]byte, 0, n)
	// Headers content is never consumed by the crawler; stop after the
	// count since header bodies are variable-length and irrelevant here.
}

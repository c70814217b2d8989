package zwire

import "fmt"

// maxAddrEntries bounds how many entries an Addr message may list, a
// little above what any honest peer sends in one message, to keep a
// misbehaving or malicious peer from forcing an unbounded allocation.
const maxAddrEntries = 2500

// AddrMsg carries a gossip list of known peer addresses, each stamped
// with when the sender last saw it alive.
type AddrMsg struct {
	Addrs []NetAddr
}

func (*AddrMsg) Command() Command { return CmdAddr }

func (m *AddrMsg) EncodePayload(w *binWriter) {
	w.VarUint(uint64(len(m.Addrs)))
	for i := range m.Addrs {
		m.Addrs[i].encodeTimestamped(w)
	}
}

func (m *AddrMsg) DecodePayload(r *binReader) {
	n := r.VarUint()
	if r.Err != nil {
		return
	}
	if n > maxAddrEntries {
		r.Err = fmt.Errorf("zwire: addr list of %d entries exceeds max %d", n, maxAddrEntries)
		return
	}
	m.Addrs = make([]NetAddr, n)
	for i := range m.Addrs {
		m.Addrs[i].decodeTimestamped(r)
	}
}

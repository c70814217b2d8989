package zwire

// VersionMsg is the first message a node sends on a new connection,
// advertising its protocol version, services, and chain height. The
// crawler sends one unilaterally on connect and does not wait for the
// peer's own Version before doing so.
type VersionMsg struct {
	Version     uint32
	Services    ServiceFlag
	Timestamp   int64
	AddrRecv    NetAddr
	AddrFrom    NetAddr
	Nonce       uint64
	UserAgent   string
	StartHeight int32
	Relay       bool
}

func (*VersionMsg) Command() Command { return CmdVersion }

func (m *VersionMsg) EncodePayload(w *binWriter) {
	w.Write(m.Version)
	w.Write(uint64(m.Services))
	w.Write(m.Timestamp)
	m.AddrRecv.encode(w)
	m.AddrFrom.encode(w)
	w.Write(m.Nonce)
	w.VarString(m.UserAgent)
	w.Write(m.StartHeight)
	w.Write(m.Relay)
}

func (m *VersionMsg) DecodePayload(r *binReader) {
	r.Read(&m.Version)
	var services uint64
	r.Read(&services)
	m.Services = ServiceFlag(services)
	r.Read(&m.Timestamp)
	m.AddrRecv.decode(r)
	m.AddrFrom.decode(r)
	r.Read(&m.Nonce)
	m.UserAgent = r.VarString(256)
	r.Read(&m.StartHeight)
	r.Read(&m.Relay)
}

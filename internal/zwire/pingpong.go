package zwire

// PingMsg carries a nonce the receiver must echo back in a Pong.
type PingMsg struct {
	Nonce uint64
}

func (*PingMsg) Command() Command { return CmdPing }

func (m *PingMsg) EncodePayload(w *binWriter) { w.Write(m.Nonce) }
func (m *PingMsg) DecodePayload(r *binReader)  { r.Read(&m.Nonce) }

// PongMsg echoes the nonce from a received Ping.
type PongMsg struct {
	Nonce uint64
}

func (*PongMsg) Command() Command { return CmdPong }

func (m *PongMsg) EncodePayload(w *binWriter) { w.Write(m.Nonce) }
func (m *PongMsg) DecodePayload(r *binReader)  { r.Read(&m.Nonce) }

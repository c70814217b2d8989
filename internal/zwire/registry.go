package zwire

// NewPayload constructs a zero-value Payload for cmd, or reports false if
// cmd is not one of the kinds this package understands. Pass it as the
// newPayload callback to ReadMessage.
func NewPayload(cmd Command) (Payload, bool) {
	switch cmd {
	case CmdVersion:
		return &VersionMsg{}, true
	case CmdVerack:
		return &VerackMsg{}, true
	case CmdAddr:
		return &AddrMsg{}, true
	case CmdPing:
		return &PingMsg{}, true
	case CmdPong:
		return &PongMsg{}, true
	case CmdGetAddr:
		return &GetAddrMsg{}, true
	case CmdGetHeaders:
		return &GetHeadersMsg{}, true
	case CmdHeaders:
		return &HeadersMsg{}, true
	case CmdGetData:
		return &GetDataMsg{}, true
	case CmdNotFound:
		return &NotFoundMsg{}, true
	default:
		return nil, false
	}
}

// Package zwire implements the small slice of the Zcash peer-to-peer wire
// protocol the crawler needs to impersonate a polite full node: message
// framing, the handshake payloads, and peer-exchange gossip.
package zwire

// Command identifies the kind of a message payload. It is transmitted as a
// 12-byte, NUL-padded ASCII string in the message header, matching the
// Bitcoin-derived framing Zcash inherited.
type Command string

// Message kinds the crawler sends or understands. Anything else received
// off the wire makes ReadMessage return ErrUnknownCommand and is ignored
// by the protocol engine, per the spec's "any other message kind: ignored"
// rule.
const (
	CmdVersion    Command = "version"
	CmdVerack     Command = "verack"
	CmdAddr       Command = "addr"
	CmdPing       Command = "ping"
	CmdPong       Command = "pong"
	CmdGetAddr    Command = "getaddr"
	CmdGetHeaders Command = "getheaders"
	CmdHeaders    Command = "headers"
	CmdGetData    Command = "getdata"
	CmdNotFound   Command = "notfound"
)

func (c Command) bytes() [12]byte {
	var b [12]byte
	copy(b[:], c)
	return b
}

func commandFromBytes(b [12]byte) Command {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return Command(b[:n])
}

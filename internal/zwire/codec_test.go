package zwire

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadMessageRoundTrip(t *testing.T) {
	v := &VersionMsg{
		Version:     ProtocolVersion,
		Services:    NodeNetwork,
		Timestamp:   1700000000,
		AddrRecv:    NewNetAddr(net.ParseIP("1.2.3.4"), 8233, NodeNetwork),
		AddrFrom:    NewNetAddr(net.ParseIP("127.0.0.1"), 0, NodeNetwork),
		Nonce:       0xdeadbeef,
		UserAgent:   "/MagicBean:5.4.2/",
		StartHeight: 3150000,
		Relay:       true,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, MainNet, v))

	msg, err := ReadMessage(&buf, MainNet, NewPayload)
	require.NoError(t, err)
	require.Equal(t, CmdVersion, msg.Command)

	got, ok := msg.Payload.(*VersionMsg)
	require.True(t, ok)
	require.Equal(t, v.UserAgent, got.UserAgent)
	require.Equal(t, v.StartHeight, got.StartHeight)
	require.Equal(t, v.Nonce, got.Nonce)
	require.True(t, got.Relay)
}

func TestReadMessageRejectsBadChecksum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, MainNet, &VerackMsg{}))

	raw := buf.Bytes()
	// Corrupt the checksum field (last 4 bytes of the 24-byte header).
	raw[HeaderSize-1] ^= 0xff

	_, err := ReadMessage(bytes.NewReader(raw), MainNet, NewPayload)
	require.Error(t, err)
}

func TestReadMessageRejectsMagicMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, TestNet, &GetAddrMsg{}))

	_, err := ReadMessage(&buf, MainNet, NewPayload)
	require.Error(t, err)
}

func TestReadMessageUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHeader(&buf, MainNet, Command("bogus"), nil))

	_, err := ReadMessage(&buf, MainNet, NewPayload)
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestAddrRoundTrip(t *testing.T) {
	a := &AddrMsg{Addrs: []NetAddr{
		NewNetAddr(net.ParseIP("8.8.8.8"), 8233, NodeNetwork),
		NewNetAddr(net.ParseIP("1.1.1.1"), 18233, NodeNetwork),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, MainNet, a))

	msg, err := ReadMessage(&buf, MainNet, NewPayload)
	require.NoError(t, err)
	got := msg.Payload.(*AddrMsg)
	require.Len(t, got.Addrs, 2)
	require.Equal(t, "8.8.8.8:8233", got.Addrs[0].Addr())
}

func TestPingPongRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, MainNet, &PingMsg{Nonce: 42}))

	msg, err := ReadMessage(&buf, MainNet, NewPayload)
	require.NoError(t, err)
	require.Equal(t, uint64(42), msg.Payload.(*PingMsg).Nonce)
}

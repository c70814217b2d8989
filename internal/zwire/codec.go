package zwire

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
)

func doubleSHA256(b []byte) [32]byte {
	h1 := sha256.Sum256(b)
	return sha256.Sum256(h1[:])
}

func checksum(payload []byte) [4]byte {
	h := doubleSHA256(payload)
	var c [4]byte
	copy(c[:], h[:4])
	return c
}

// header is the 24-byte frame preceding every payload on the wire.
type header struct {
	Magic    Magic
	Command  [12]byte
	Length   uint32
	Checksum [4]byte
}

func readHeader(r io.Reader) (header, error) {
	var h header
	br := newBinReader(r)
	br.Read(&h.Magic)
	br.Read(&h.Command)
	br.Read(&h.Length)
	br.Read(&h.Checksum)
	if br.Err != nil {
		return header{}, br.Err
	}
	if h.Length > MaxPayloadSize {
		return header{}, fmt.Errorf("zwire: payload length %d exceeds max %d", h.Length, MaxPayloadSize)
	}
	return h, nil
}

func writeHeader(w io.Writer, magic Magic, cmd Command, payload []byte) error {
	bw := newBinWriter(w)
	bw.Write(magic)
	bw.Write(cmd.bytes())
	bw.Write(uint32(len(payload)))
	cs := checksum(payload)
	bw.Write(cs)
	return bw.Err
}

// WriteMessage encodes p's payload, frames it with a header addressed to
// magic, and writes the whole message to w.
func WriteMessage(w io.Writer, magic Magic, p Payload) error {
	var buf bytes.Buffer
	bw := newBinWriter(&buf)
	p.EncodePayload(bw)
	if bw.Err != nil {
		return fmt.Errorf("zwire: encode %s: %w", p.Command(), bw.Err)
	}
	if err := writeHeader(w, magic, p.Command(), buf.Bytes()); err != nil {
		return fmt.Errorf("zwire: write header for %s: %w", p.Command(), err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("zwire: write payload for %s: %w", p.Command(), err)
	}
	return nil
}

// ReadMessage reads a single framed message from r, verifies its magic and
// checksum, and decodes its payload using newPayload to construct the
// right Go type for the command carried in the header.
func ReadMessage(r io.Reader, magic Magic, newPayload func(Command) (Payload, bool)) (Message, error) {
	h, err := readHeader(r)
	if err != nil {
		return Message{}, err
	}
	if h.Magic != magic {
		return Message{}, fmt.Errorf("zwire: magic mismatch: got %s want %s", h.Magic, magic)
	}

	payloadBytes := make([]byte, h.Length)
	if _, err := io.ReadFull(r, payloadBytes); err != nil {
		return Message{}, fmt.Errorf("zwire: read payload: %w", err)
	}
	if got, want := checksum(payloadBytes), h.Checksum; got != want {
		return Message{}, fmt.Errorf("zwire: checksum mismatch")
	}

	cmd := commandFromBytes(h.Command)
	p, ok := newPayload(cmd)
	if !ok {
		return Message{Command: cmd}, ErrUnknownCommand
	}

	br := newBinReader(bytes.NewReader(payloadBytes))
	p.DecodePayload(br)
	if br.Err != nil {
		return Message{}, fmt.Errorf("zwire: decode %s: %w", cmd, br.Err)
	}
	return Message{Command: cmd, Payload: p}, nil
}

// ErrUnknownCommand is returned by ReadMessage when newPayload does not
// recognize the command in the frame header. Callers treat this as a
// message kind to ignore, not a connection-ending protocol error.
var ErrUnknownCommand = errUnknownCommand{}

type errUnknownCommand struct{}

func (errUnknownCommand) Error() string { return "zwire: unknown command" }

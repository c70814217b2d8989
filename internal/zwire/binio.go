package zwire

import (
	"encoding/binary"
	"io"
)

// binReader is a thin wrapper around an io.Reader that sticks its first
// error and turns every subsequent call into a no-op, so a message's
// Decode method can read its fields one after another and check the error
// once at the end instead of after every field.
type binReader struct {
	r   io.Reader
	Err error
}

func newBinReader(r io.Reader) *binReader {
	return &binReader{r: r}
}

func (r *binReader) Read(v interface{}) {
	if r.Err != nil {
		return
	}
	r.Err = binary.Read(r.r, binary.LittleEndian, v)
}

func (r *binReader) ReadBigEnd(v interface{}) {
	if r.Err != nil {
		return
	}
	r.Err = binary.Read(r.r, binary.BigEndian, v)
}

// VarUint reads a Bitcoin-style variable-length integer.
func (r *binReader) VarUint() uint64 {
	if r.Err != nil {
		return 0
	}
	var b uint8
	r.Err = binary.Read(r.r, binary.LittleEndian, &b)
	if r.Err != nil {
		return 0
	}

	switch b {
	case 0xfd:
		var v uint16
		r.Err = binary.Read(r.r, binary.LittleEndian, &v)
		return uint64(v)
	case 0xfe:
		var v uint32
		r.Err = binary.Read(r.r, binary.LittleEndian, &v)
		return uint64(v)
	case 0xff:
		var v uint64
		r.Err = binary.Read(r.r, binary.LittleEndian, &v)
		return v
	default:
		return uint64(b)
	}
}

// VarBytes reads a VarUint-prefixed byte slice.
func (r *binReader) VarBytes(maxLen int) []byte {
	n := r.VarUint()
	if r.Err != nil {
		return nil
	}
	if int64(n) > int64(maxLen) {
		r.Err = io.ErrShortBuffer
		return nil
	}
	b := make([]byte, n)
	r.Read(b)
	return b
}

// VarString calls VarBytes and casts the result to a string.
func (r *binReader) VarString(maxLen int) string {
	return string(r.VarBytes(maxLen))
}

// binWriter is the write-side counterpart of binReader: it sticks its
// first error so a message's Encode method can write fields back-to-back.
type binWriter struct {
	w   io.Writer
	Err error
}

func newBinWriter(w io.Writer) *binWriter {
	return &binWriter{w: w}
}

func (w *binWriter) Write(v interface{}) {
	if w.Err != nil {
		return
	}
	w.Err = binary.Write(w.w, binary.LittleEndian, v)
}

func (w *binWriter) WriteBigEnd(v interface{}) {
	if w.Err != nil {
		return
	}
	w.Err = binary.Write(w.w, binary.BigEndian, v)
}

// VarUint writes n as a Bitcoin-style variable-length integer.
func (w *binWriter) VarUint(n uint64) {
	if w.Err != nil {
		return
	}
	switch {
	case n < 0xfd:
		w.Write(uint8(n))
	case n <= 0xffff:
		w.Write(uint8(0xfd))
		w.Write(uint16(n))
	case n <= 0xffffffff:
		w.Write(uint8(0xfe))
		w.Write(uint32(n))
	default:
		w.Write(uint8(0xff))
		w.Write(n)
	}
}

// VarBytes writes b prefixed with its VarUint-encoded length.
func (w *binWriter) VarBytes(b []byte) {
	w.VarUint(uint64(len(b)))
	w.Write(b)
}

// VarString writes s as VarBytes of its byte representation.
func (w *binWriter) VarString(s string) {
	w.VarBytes([]byte(s))
}

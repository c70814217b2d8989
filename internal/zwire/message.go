package zwire

// Payload is implemented by every message payload type the crawler sends
// or decodes. It mirrors the teacher's Messager interface, generalized
// from NEO's command set to Zcash's.
type Payload interface {
	Command() Command
	EncodePayload(w *binWriter)
	DecodePayload(r *binReader)
}

// Message pairs a decoded payload with the command carried in its frame
// header, for callers that only need to dispatch on the command without
// type-asserting Payload.
type Message struct {
	Command Command
	Payload Payload
}

// emptyPayload is embedded by message kinds whose encoded form carries no
// fields: Verack, GetAddr, and GetHeaders (which overrides DecodePayload
// to skip past the fields a peer sends).
type emptyPayload struct{}

func (emptyPayload) EncodePayload(*binWriter) {}
func (emptyPayload) DecodePayload(*binReader) {}

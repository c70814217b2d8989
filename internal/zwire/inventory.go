package zwire

import "fmt"

// InvType identifies the kind of object an inventory vector refers to.
type InvType uint32

const (
	InvError InvType = 0
	InvTx    InvType = 1
	InvBlock InvType = 2
)

// InvVect is a single inventory vector: a type tag plus the 32-byte hash
// of the object it refers to.
type InvVect struct {
	Type InvType
	Hash [32]byte
}

// maxInvEntries bounds GetData/NotFound list sizes for the same reason
// maxAddrEntries bounds Addr lists.
const maxInvEntries = 50000

// GetDataMsg requests the objects named by its inventory vectors. The
// crawler never has the data and always answers with a NotFound
// naming the same vectors.
type GetDataMsg struct {
	Inventory []InvVect
}

func (*GetDataMsg) Command() Command { return CmdGetData }

func (m *GetDataMsg) EncodePayload(w *binWriter) { encodeInventory(w, m.Inventory) }
func (m *GetDataMsg) DecodePayload(r *binReader) { m.Inventory = decodeInventory(r) }

// NotFoundMsg tells a peer that the objects it asked for via GetData are
// not available.
type NotFoundMsg struct {
	Inventory []InvVect
}

func (*NotFoundMsg) Command() Command { return CmdNotFound }

func (m *NotFoundMsg) EncodePayload(w *binWriter) { encodeInventory(w, m.Inventory) }
func (m *NotFoundMsg) DecodePayload(r *binReader) { m.Inventory = decodeInventory(r) }

func encodeInventory(w *binWriter, inv []InvVect) {
	w.VarUint(uint64(len(inv)))
	for _, v := range inv {
		w.Write(v.Type)
		w.Write(v.Hash)
	}
}

func decodeInventory(r *binReader) []InvVect {
	n := r.VarUint()
	if r.Err != nil {
		return nil
	}
	if n > maxInvEntries {
		r.Err = fmt.Errorf("zwire: inventory list of %d entries exceeds max %d", n, maxInvEntries)
		return nil
	}
	inv := make([]InvVect, n)
	for i := range inv {
		r.Read(&inv[i].Type)
		r.Read(&inv[i].Hash)
	}
	return inv
}

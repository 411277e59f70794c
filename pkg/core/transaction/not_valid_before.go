package transaction

import (
	"github.com/R3E-Network/neo3-sdk/pkg/io"
)

// NotValidBefore represents the attribute for the height the transaction
// is not valid before.
type NotValidBefore struct {
	Height uint32 `json:"height"`
}

// DecodeBinary implements the Serializable interface.
func (n *NotValidBefore) DecodeBinary(br *io.BinReader) {
	n.Height = br.ReadU32LE()
}

// EncodeBinary implements the Serializable interface.
func (n *NotValidBefore) EncodeBinary(w *io.BinWriter) {
	w.WriteU32LE(n.Height)
}

// Copy implements the AttrValue interface.
func (n *NotValidBefore) Copy() AttrValue {
	return &NotValidBefore{
		Height: n.Height,
	}
}

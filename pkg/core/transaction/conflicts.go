package transaction

import (
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
)

// Conflicts represents the attribute for conflicting transactions.
type Conflicts struct {
	Hash util.Uint256 `json:"hash"`
}

// DecodeBinary implements the Serializable interface.
func (c *Conflicts) DecodeBinary(br *io.BinReader) {
	c.Hash.DecodeBinary(br)
}

// EncodeBinary implements the Serializable interface.
func (c *Conflicts) EncodeBinary(w *io.BinWriter) {
	c.Hash.EncodeBinary(w)
}

// Copy implements the AttrValue interface.
func (c *Conflicts) Copy() AttrValue {
	return &Conflicts{
		Hash: c.Hash,
	}
}

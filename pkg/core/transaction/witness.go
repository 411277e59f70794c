package transaction

import (
	"encoding/base64"
	"encoding/json"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/hash"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
)

const (
	// MaxInvocationScript is the maximum length of the invocation script,
	// enough for 16 multisignatures.
	MaxInvocationScript = 1024

	// MaxVerificationScript is the maximum allowed length of the
	// verification script.
	MaxVerificationScript = 1024
)

// Witness contains an invocation and a verification script.
type Witness struct {
	InvocationScript   []byte `json:"invocation"`
	VerificationScript []byte `json:"verification"`
}

// DecodeBinary implements the Serializable interface.
func (w *Witness) DecodeBinary(br *io.BinReader) {
	w.InvocationScript = br.ReadVarBytes(MaxInvocationScript)
	w.VerificationScript = br.ReadVarBytes(MaxVerificationScript)
}

// EncodeBinary implements the Serializable interface.
func (w *Witness) EncodeBinary(bw *io.BinWriter) {
	bw.WriteVarBytes(w.InvocationScript)
	bw.WriteVarBytes(w.VerificationScript)
}

// MarshalJSON implements the json.Marshaler interface.
func (w Witness) MarshalJSON() ([]byte, error) {
	data := map[string]string{
		"invocation":   base64.StdEncoding.EncodeToString(w.InvocationScript),
		"verification": base64.StdEncoding.EncodeToString(w.VerificationScript),
	}
	return json.Marshal(data)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (w *Witness) UnmarshalJSON(data []byte) error {
	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	invocation, err := base64.StdEncoding.DecodeString(m["invocation"])
	if err != nil {
		return err
	}
	verification, err := base64.StdEncoding.DecodeString(m["verification"])
	if err != nil {
		return err
	}
	w.InvocationScript = invocation
	w.VerificationScript = verification
	return nil
}

// ScriptHash returns the hash of the verification script.
func (w Witness) ScriptHash() util.Uint160 {
	return hash.Hash160(w.VerificationScript)
}

// Copy creates a deep copy of the Witness.
func (w Witness) Copy() Witness {
	return Witness{
		InvocationScript:   append([]byte(nil), w.InvocationScript...),
		VerificationScript: append([]byte(nil), w.VerificationScript...),
	}
}

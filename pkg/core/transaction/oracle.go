package transaction

import (
	"encoding/json"
	"errors"

	"github.com/R3E-Network/neo3-sdk/pkg/io"
)

// OracleResponseCode represents the result code of the oracle response.
type OracleResponseCode byte

// OracleResponse represents the oracle response attribute, it's attached
// to the response transaction by the oracle nodes.
type OracleResponse struct {
	ID     uint64             `json:"id"`
	Code   OracleResponseCode `json:"code"`
	Result []byte             `json:"result"`
}

// MaxOracleResultSize is the limit on the Result size.
const MaxOracleResultSize = 0xffff

// Enumeration of possible oracle response types.
const (
	Success                 OracleResponseCode = 0x00
	ProtocolNotSupported    OracleResponseCode = 0x10
	ConsensusUnreachable    OracleResponseCode = 0x12
	NotFound                OracleResponseCode = 0x14
	Timeout                 OracleResponseCode = 0x16
	Forbidden               OracleResponseCode = 0x18
	ResponseTooLarge        OracleResponseCode = 0x1a
	InsufficientFunds       OracleResponseCode = 0x1c
	ContentTypeNotSupported OracleResponseCode = 0x1f
	Error                   OracleResponseCode = 0xff
)

var oracleResponseCodeNames = map[OracleResponseCode]string{
	Success:                 "Success",
	ProtocolNotSupported:    "ProtocolNotSupported",
	ConsensusUnreachable:    "ConsensusUnreachable",
	NotFound:                "NotFound",
	Timeout:                 "Timeout",
	Forbidden:               "Forbidden",
	ResponseTooLarge:        "ResponseTooLarge",
	InsufficientFunds:       "InsufficientFunds",
	ContentTypeNotSupported: "ContentTypeNotSupported",
	Error:                   "Error",
}

// IsValid checks if the code value is a valid one.
func (c OracleResponseCode) IsValid() bool {
	_, ok := oracleResponseCodeNames[c]
	return ok
}

// String implements the fmt.Stringer interface.
func (c OracleResponseCode) String() string {
	return oracleResponseCodeNames[c]
}

// MarshalJSON implements the json.Marshaler interface.
func (c OracleResponseCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *OracleResponseCode) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	for code, name := range oracleResponseCodeNames {
		if name == js {
			*c = code
			return nil
		}
	}
	return errors.New("invalid oracle response code")
}

// DecodeBinary implements the Serializable interface.
func (r *OracleResponse) DecodeBinary(br *io.BinReader) {
	r.ID = br.ReadU64LE()
	r.Code = OracleResponseCode(br.ReadB())
	if br.Err == nil && !r.Code.IsValid() {
		br.Err = errors.New("invalid oracle response code")
		return
	}
	r.Result = br.ReadVarBytes(MaxOracleResultSize)
	if br.Err == nil && r.Code != Success && len(r.Result) > 0 {
		br.Err = errors.New("oracle response with non-success code and non-empty result")
	}
}

// EncodeBinary implements the Serializable interface.
func (r *OracleResponse) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(r.ID)
	w.WriteB(byte(r.Code))
	w.WriteVarBytes(r.Result)
}

// Copy implements the AttrValue interface.
func (r *OracleResponse) Copy() AttrValue {
	return &OracleResponse{
		ID:     r.ID,
		Code:   r.Code,
		Result: append([]byte(nil), r.Result...),
	}
}

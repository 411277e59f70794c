package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/io"
)

// AttrValue represents a Transaction Attribute value.
type AttrValue interface {
	io.Serializable
	// Copy returns a deep copy of the attribute value.
	Copy() AttrValue
}

// Attribute represents a Transaction attribute.
type Attribute struct {
	Type  AttrType
	Value AttrValue
}

// attrJSON is used for JSON I/O of Attribute.
type attrJSON struct {
	Type string `json:"type"`
}

// DecodeBinary implements the Serializable interface.
func (attr *Attribute) DecodeBinary(br *io.BinReader) {
	attr.Type = AttrType(br.ReadB())

	switch t := attr.Type; t {
	case HighPriorityT:
		return
	case OracleResponseT:
		attr.Value = new(OracleResponse)
	case NotValidBeforeT:
		attr.Value = new(NotValidBefore)
	case ConflictsT:
		attr.Value = new(Conflicts)
	default:
		if br.Err == nil {
			br.Err = fmt.Errorf("failed decoding TX attribute type: 0x%02x", uint8(t))
		}
		return
	}
	attr.Value.DecodeBinary(br)
}

// EncodeBinary implements the Serializable interface.
func (attr *Attribute) EncodeBinary(bw *io.BinWriter) {
	bw.WriteB(byte(attr.Type))
	switch t := attr.Type; t {
	case HighPriorityT:
	case OracleResponseT, NotValidBeforeT, ConflictsT:
		attr.Value.EncodeBinary(bw)
	default:
		bw.Err = fmt.Errorf("failed encoding TX attribute type: 0x%02x", uint8(t))
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (attr *Attribute) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(attrJSON{Type: attr.Type.String()})
	if err != nil {
		return nil, err
	}
	if attr.Value == nil {
		return base, nil
	}
	value, err := json.Marshal(attr.Value)
	if err != nil {
		return nil, err
	}
	// Merge the type field with the value fields into a flat object.
	if len(value) < 2 || value[0] != '{' {
		return nil, fmt.Errorf("attribute value is not a JSON object")
	}
	if string(value) == "{}" {
		return base, nil
	}
	res := append(base[:len(base)-1], ',')
	res = append(res, value[1:]...)
	return res, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (attr *Attribute) UnmarshalJSON(data []byte) error {
	aux := new(attrJSON)
	err := json.Unmarshal(data, aux)
	if err != nil {
		return err
	}
	t, err := AttrTypeFromString(aux.Type)
	if err != nil {
		return err
	}
	attr.Type = t
	switch t {
	case HighPriorityT:
		return nil
	case OracleResponseT:
		attr.Value = new(OracleResponse)
	case NotValidBeforeT:
		attr.Value = new(NotValidBefore)
	case ConflictsT:
		attr.Value = new(Conflicts)
	}
	return json.Unmarshal(data, attr.Value)
}

// Copy creates a deep copy of the Attribute.
func (attr *Attribute) Copy() *Attribute {
	if attr == nil {
		return nil
	}
	cp := &Attribute{
		Type: attr.Type,
	}
	if attr.Value != nil {
		cp.Value = attr.Value.Copy()
	}
	return cp
}

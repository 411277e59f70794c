package transaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
)

// WitnessConditionType encodes the type of the witness condition.
type WitnessConditionType byte

const (
	// WitnessBoolean is a generic boolean condition.
	WitnessBoolean WitnessConditionType = 0x00
	// WitnessNot reverses another condition.
	WitnessNot WitnessConditionType = 0x01
	// WitnessAnd means that all conditions must be met.
	WitnessAnd WitnessConditionType = 0x02
	// WitnessOr means that any of the conditions must be met.
	WitnessOr WitnessConditionType = 0x03
	// WitnessScriptHash matches the executing contract's script hash.
	WitnessScriptHash WitnessConditionType = 0x18
	// WitnessGroup matches the executing contract's group key.
	WitnessGroup WitnessConditionType = 0x19
	// WitnessCalledByEntry matches when the current script is an entry
	// script or is called by an entry script.
	WitnessCalledByEntry WitnessConditionType = 0x20
	// WitnessCalledByContract matches when the current script is called
	// by the specified contract.
	WitnessCalledByContract WitnessConditionType = 0x28
	// WitnessCalledByGroup matches when the current script is called by a
	// contract from the specified group.
	WitnessCalledByGroup WitnessConditionType = 0x29

	// MaxConditionNesting limits the maximum allowed level of condition
	// nesting.
	MaxConditionNesting = 2
)

// WitnessCondition is a condition of the witness filtering rule. It can
// be defined for the Rules-scoped signer and limits the use of its witness
// to the contexts matching the condition.
type WitnessCondition interface {
	// Type returns the condition type.
	Type() WitnessConditionType
	// EncodeBinary writes the condition to the given writer, type byte
	// included.
	EncodeBinary(*io.BinWriter)
	// DecodeBinarySpecific reads the condition-specific data (everything
	// but the type) from the given reader, decoding nested conditions up
	// to the given depth.
	DecodeBinarySpecific(*io.BinReader, int)
	// Copy returns a deep copy of the condition.
	Copy() WitnessCondition

	json.Marshaler
}

type (
	// ConditionBoolean is a boolean condition type.
	ConditionBoolean bool
	// ConditionNot inverses the wrapped condition.
	ConditionNot struct {
		Condition WitnessCondition
	}
	// ConditionAnd is a set of conditions required to match.
	ConditionAnd []WitnessCondition
	// ConditionOr is a set of conditions one of which is required to match.
	ConditionOr []WitnessCondition
	// ConditionScriptHash is a hash of the executing contract.
	ConditionScriptHash util.Uint160
	// ConditionGroup is a group of the executing contract.
	ConditionGroup keys.PublicKey
	// ConditionCalledByEntry matches entry scripts and scripts called by
	// them.
	ConditionCalledByEntry struct{}
	// ConditionCalledByContract matches by the calling contract hash.
	ConditionCalledByContract util.Uint160
	// ConditionCalledByGroup matches by the calling contract group.
	ConditionCalledByGroup keys.PublicKey
)

var conditionTypeNames = map[WitnessConditionType]string{
	WitnessBoolean:          "Boolean",
	WitnessNot:              "Not",
	WitnessAnd:              "And",
	WitnessOr:               "Or",
	WitnessScriptHash:       "ScriptHash",
	WitnessGroup:            "Group",
	WitnessCalledByEntry:    "CalledByEntry",
	WitnessCalledByContract: "CalledByContract",
	WitnessCalledByGroup:    "CalledByGroup",
}

// String implements the fmt.Stringer interface.
func (t WitnessConditionType) String() string {
	if name, ok := conditionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("WitnessConditionType(%d)", byte(t))
}

// conditionAux is used for JSON marshaling/unmarshaling of conditions.
type conditionAux struct {
	Expression  json.RawMessage   `json:"expression,omitempty"`
	Expressions []json.RawMessage `json:"expressions,omitempty"`
	Group       *keys.PublicKey   `json:"group,omitempty"`
	Hash        *util.Uint160     `json:"hash,omitempty"`
	Type        string            `json:"type"`
}

// Type implements the WitnessCondition interface.
func (c *ConditionBoolean) Type() WitnessConditionType {
	return WitnessBoolean
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionBoolean) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessBoolean))
	w.WriteBool(bool(*c))
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionBoolean) DecodeBinarySpecific(r *io.BinReader, _ int) {
	*c = ConditionBoolean(r.ReadBool())
}

// Copy implements the WitnessCondition interface.
func (c *ConditionBoolean) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionBoolean) MarshalJSON() ([]byte, error) {
	boolJSON, _ := json.Marshal(bool(*c))
	return json.Marshal(conditionAux{
		Type:       c.Type().String(),
		Expression: boolJSON,
	})
}

// Type implements the WitnessCondition interface.
func (c *ConditionNot) Type() WitnessConditionType {
	return WitnessNot
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionNot) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessNot))
	c.Condition.EncodeBinary(w)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionNot) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	c.Condition = decodeBinaryCondition(r, maxDepth-1)
}

// Copy implements the WitnessCondition interface.
func (c *ConditionNot) Copy() WitnessCondition {
	cc := *c
	cc.Condition = c.Condition.Copy()
	return &cc
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionNot) MarshalJSON() ([]byte, error) {
	condJSON, err := c.Condition.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionAux{
		Type:       c.Type().String(),
		Expression: condJSON,
	})
}

// Type implements the WitnessCondition interface.
func (c *ConditionAnd) Type() WitnessConditionType {
	return WitnessAnd
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionAnd) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessAnd))
	w.WriteArray([]WitnessCondition(*c))
}

func readArrayOfConditions(r *io.BinReader, maxDepth int) []WitnessCondition {
	l := r.ReadVarUint()
	if r.Err != nil {
		return nil
	}
	if l == 0 {
		r.Err = errors.New("empty condition list")
		return nil
	}
	if l > maxSubitems {
		r.Err = errors.New("too many elements")
		return nil
	}
	a := make([]WitnessCondition, l)
	for i := 0; i < int(l); i++ {
		a[i] = decodeBinaryCondition(r, maxDepth-1)
	}
	if r.Err != nil {
		return nil
	}
	return a
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionAnd) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	a := readArrayOfConditions(r, maxDepth)
	if r.Err == nil {
		*c = a
	}
}

// Copy implements the WitnessCondition interface.
func (c *ConditionAnd) Copy() WitnessCondition {
	cp := make(ConditionAnd, len(*c))
	for i, cond := range *c {
		cp[i] = cond.Copy()
	}
	return &cp
}

func arrayToJSON(c WitnessCondition, a []WitnessCondition) ([]byte, error) {
	exprs := make([]json.RawMessage, len(a))
	for i, cond := range a {
		b, err := cond.MarshalJSON()
		if err != nil {
			return nil, err
		}
		exprs[i] = json.RawMessage(b)
	}
	return json.Marshal(conditionAux{
		Type:        c.Type().String(),
		Expressions: exprs,
	})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionAnd) MarshalJSON() ([]byte, error) {
	return arrayToJSON(c, []WitnessCondition(*c))
}

// Type implements the WitnessCondition interface.
func (c *ConditionOr) Type() WitnessConditionType {
	return WitnessOr
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionOr) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessOr))
	w.WriteArray([]WitnessCondition(*c))
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionOr) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	a := readArrayOfConditions(r, maxDepth)
	if r.Err == nil {
		*c = a
	}
}

// Copy implements the WitnessCondition interface.
func (c *ConditionOr) Copy() WitnessCondition {
	cp := make(ConditionOr, len(*c))
	for i, cond := range *c {
		cp[i] = cond.Copy()
	}
	return &cp
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionOr) MarshalJSON() ([]byte, error) {
	return arrayToJSON(c, []WitnessCondition(*c))
}

// Type implements the WitnessCondition interface.
func (c *ConditionScriptHash) Type() WitnessConditionType {
	return WitnessScriptHash
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionScriptHash) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessScriptHash))
	w.WriteBytes(c[:])
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionScriptHash) DecodeBinarySpecific(r *io.BinReader, _ int) {
	r.ReadBytes(c[:])
}

// Copy implements the WitnessCondition interface.
func (c *ConditionScriptHash) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionScriptHash) MarshalJSON() ([]byte, error) {
	h := util.Uint160(*c)
	return json.Marshal(conditionAux{
		Type: c.Type().String(),
		Hash: &h,
	})
}

// Type implements the WitnessCondition interface.
func (c *ConditionGroup) Type() WitnessConditionType {
	return WitnessGroup
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessGroup))
	(*keys.PublicKey)(c).EncodeBinary(w)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	(*keys.PublicKey)(c).DecodeBinary(r)
}

// Copy implements the WitnessCondition interface.
func (c *ConditionGroup) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionGroup) MarshalJSON() ([]byte, error) {
	g := keys.PublicKey(*c)
	return json.Marshal(conditionAux{
		Type:  c.Type().String(),
		Group: &g,
	})
}

// Type implements the WitnessCondition interface.
func (c ConditionCalledByEntry) Type() WitnessConditionType {
	return WitnessCalledByEntry
}

// EncodeBinary implements the WitnessCondition interface.
func (c ConditionCalledByEntry) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByEntry))
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c ConditionCalledByEntry) DecodeBinarySpecific(_ *io.BinReader, _ int) {
}

// Copy implements the WitnessCondition interface.
func (c ConditionCalledByEntry) Copy() WitnessCondition {
	return ConditionCalledByEntry{}
}

// MarshalJSON implements the json.Marshaler interface.
func (c ConditionCalledByEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type: c.Type().String(),
	})
}

// Type implements the WitnessCondition interface.
func (c *ConditionCalledByContract) Type() WitnessConditionType {
	return WitnessCalledByContract
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionCalledByContract) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByContract))
	w.WriteBytes(c[:])
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionCalledByContract) DecodeBinarySpecific(r *io.BinReader, _ int) {
	r.ReadBytes(c[:])
}

// Copy implements the WitnessCondition interface.
func (c *ConditionCalledByContract) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByContract) MarshalJSON() ([]byte, error) {
	h := util.Uint160(*c)
	return json.Marshal(conditionAux{
		Type: c.Type().String(),
		Hash: &h,
	})
}

// Type implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) Type() WitnessConditionType {
	return WitnessCalledByGroup
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByGroup))
	(*keys.PublicKey)(c).EncodeBinary(w)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	(*keys.PublicKey)(c).DecodeBinary(r)
}

// Copy implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByGroup) MarshalJSON() ([]byte, error) {
	g := keys.PublicKey(*c)
	return json.Marshal(conditionAux{
		Type:  c.Type().String(),
		Group: &g,
	})
}

// DecodeBinaryCondition decodes and returns the condition from the given
// binary stream.
func DecodeBinaryCondition(r *io.BinReader) WitnessCondition {
	return decodeBinaryCondition(r, MaxConditionNesting)
}

func decodeBinaryCondition(r *io.BinReader, maxDepth int) WitnessCondition {
	if maxDepth <= 0 {
		r.Err = errors.New("too many nesting levels")
		return nil
	}
	t := WitnessConditionType(r.ReadB())
	if r.Err != nil {
		return nil
	}
	var res WitnessCondition
	switch t {
	case WitnessBoolean:
		res = new(ConditionBoolean)
	case WitnessNot:
		res = new(ConditionNot)
	case WitnessAnd:
		res = new(ConditionAnd)
	case WitnessOr:
		res = new(ConditionOr)
	case WitnessScriptHash:
		res = new(ConditionScriptHash)
	case WitnessGroup:
		res = new(ConditionGroup)
	case WitnessCalledByEntry:
		res = ConditionCalledByEntry{}
	case WitnessCalledByContract:
		res = new(ConditionCalledByContract)
	case WitnessCalledByGroup:
		res = new(ConditionCalledByGroup)
	default:
		r.Err = fmt.Errorf("invalid condition type: 0x%02x", byte(t))
		return nil
	}
	res.DecodeBinarySpecific(r, maxDepth)
	if r.Err != nil {
		return nil
	}
	return res
}

func unmarshalArrayOfConditionJSONs(arr []json.RawMessage, maxDepth int) ([]WitnessCondition, error) {
	l := len(arr)
	if l == 0 {
		return nil, errors.New("empty condition list")
	}
	if l > maxSubitems {
		return nil, errors.New("too many elements")
	}
	res := make([]WitnessCondition, l)
	for i := range arr {
		c, err := unmarshalConditionJSON(arr[i], maxDepth-1)
		if err != nil {
			return nil, err
		}
		res[i] = c
	}
	return res, nil
}

// UnmarshalConditionJSON unmarshals the condition from the given JSON data.
func UnmarshalConditionJSON(data []byte) (WitnessCondition, error) {
	return unmarshalConditionJSON(data, MaxConditionNesting)
}

func unmarshalConditionJSON(data []byte, maxDepth int) (WitnessCondition, error) {
	if maxDepth <= 0 {
		return nil, errors.New("too many nesting levels")
	}
	aux := &conditionAux{}
	err := json.Unmarshal(data, aux)
	if err != nil {
		return nil, err
	}
	var res WitnessCondition
	switch aux.Type {
	case WitnessBoolean.String():
		var v bool
		err = json.Unmarshal(aux.Expression, &v)
		if err != nil {
			return nil, err
		}
		res = (*ConditionBoolean)(&v)
	case WitnessNot.String():
		c, err := unmarshalConditionJSON(aux.Expression, maxDepth-1)
		if err != nil {
			return nil, err
		}
		res = &ConditionNot{Condition: c}
	case WitnessAnd.String():
		a, err := unmarshalArrayOfConditionJSONs(aux.Expressions, maxDepth)
		if err != nil {
			return nil, err
		}
		res = (*ConditionAnd)(&a)
	case WitnessOr.String():
		a, err := unmarshalArrayOfConditionJSONs(aux.Expressions, maxDepth)
		if err != nil {
			return nil, err
		}
		res = (*ConditionOr)(&a)
	case WitnessScriptHash.String():
		if aux.Hash == nil {
			return nil, errors.New("no hash specified")
		}
		res = (*ConditionScriptHash)(aux.Hash)
	case WitnessGroup.String():
		if aux.Group == nil {
			return nil, errors.New("no group specified")
		}
		res = (*ConditionGroup)(aux.Group)
	case WitnessCalledByEntry.String():
		res = ConditionCalledByEntry{}
	case WitnessCalledByContract.String():
		if aux.Hash == nil {
			return nil, errors.New("no hash specified")
		}
		res = (*ConditionCalledByContract)(aux.Hash)
	case WitnessCalledByGroup.String():
		if aux.Group == nil {
			return nil, errors.New("no group specified")
		}
		res = (*ConditionCalledByGroup)(aux.Group)
	default:
		return nil, errors.New("invalid condition type")
	}
	return res, nil
}

package smartcontract

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/holiman/uint256"
)

// Parameter represents a smart contract parameter.
type Parameter struct {
	// Type of the parameter.
	Type ParamType `json:"type"`
	// The actual value of the parameter.
	Value any `json:"value"`
}

// ParameterPair represents a key-value pair, a slice of which is stored in
// a MapType Parameter.
type ParameterPair struct {
	Key   Parameter `json:"key"`
	Value Parameter `json:"value"`
}

// NewParameterFromValue infers the parameter type from the value given and
// converts the value appropriately. It supports the basic Go types used by
// the script emitter plus Parameter itself and slices of supported types.
func NewParameterFromValue(value any) (Parameter, error) {
	var result = Parameter{
		Value: value,
	}

	switch v := value.(type) {
	case []byte:
		result.Type = ByteArrayType
	case string:
		result.Type = StringType
	case bool:
		result.Type = BoolType
	case *big.Int:
		result.Type = IntegerType
	case *uint256.Int:
		result.Type = IntegerType
		result.Value = v.ToBig()
	case int8:
		result.Type = IntegerType
		result.Value = big.NewInt(int64(v))
	case byte:
		result.Type = IntegerType
		result.Value = big.NewInt(int64(v))
	case int16:
		result.Type = IntegerType
		result.Value = big.NewInt(int64(v))
	case uint16:
		result.Type = IntegerType
		result.Value = big.NewInt(int64(v))
	case int32:
		result.Type = IntegerType
		result.Value = big.NewInt(int64(v))
	case uint32:
		result.Type = IntegerType
		result.Value = big.NewInt(int64(v))
	case int:
		result.Type = IntegerType
		result.Value = big.NewInt(int64(v))
	case uint:
		result.Type = IntegerType
		result.Value = new(big.Int).SetUint64(uint64(v))
	case int64:
		result.Type = IntegerType
		result.Value = big.NewInt(v)
	case uint64:
		result.Type = IntegerType
		result.Value = new(big.Int).SetUint64(v)
	case util.Uint160:
		result.Type = Hash160Type
	case util.Uint256:
		result.Type = Hash256Type
	case *keys.PublicKey:
		result.Type = PublicKeyType
		result.Value = v.Bytes()
	case Parameter:
		result = v
	case []any:
		arr, err := newArrayParameter(v)
		if err != nil {
			return result, err
		}
		result.Type = ArrayType
		result.Value = arr
	case []Parameter:
		result.Type = ArrayType
	case []ParameterPair:
		result.Type = MapType
	case nil:
		result.Type = AnyType
	default:
		return result, fmt.Errorf("unsupported parameter %T", value)
	}
	return result, nil
}

func newArrayParameter(values []any) ([]Parameter, error) {
	res := make([]Parameter, len(values))
	for i, value := range values {
		elem, err := NewParameterFromValue(value)
		if err != nil {
			return nil, err
		}
		res[i] = elem
	}
	return res, nil
}

// NewParametersFromValues is similar to NewParameterFromValue, but works
// with multiple values and returns a simple slice of Parameter.
func NewParametersFromValues(values ...any) ([]Parameter, error) {
	return newArrayParameter(values)
}

// ExpandParameterToEmitable converts a parameter to a value suitable for
// the script emitter, expanding arrays elementwise.
func ExpandParameterToEmitable(param Parameter) (any, error) {
	switch t := param.Type; t {
	case ArrayType:
		arr, ok := param.Value.([]Parameter)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]any, len(arr))
		for i := range arr {
			var err error
			res[i], err = ExpandParameterToEmitable(arr[i])
			if err != nil {
				return nil, err
			}
		}
		return res, nil
	case MapType, InteropInterfaceType, UnknownType, VoidType:
		return nil, fmt.Errorf("unsupported parameter type: %s", t)
	default:
		return param.Value, nil
	}
}

// rawParameter is used for JSON conversions.
type rawParameter struct {
	Type  ParamType       `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (p Parameter) MarshalJSON() ([]byte, error) {
	var (
		resultRawValue json.RawMessage
		resultErr      error
	)
	switch p.Type {
	case BoolType, StringType:
		resultRawValue, resultErr = json.Marshal(p.Value)
	case IntegerType:
		n, ok := p.Value.(*big.Int)
		if !ok {
			resultErr = errors.New("not an integer")
			break
		}
		resultRawValue = json.RawMessage(`"` + n.String() + `"`)
	case ByteArrayType, SignatureType:
		if p.Value == nil {
			resultRawValue = nil
			break
		}
		b, ok := p.Value.([]byte)
		if !ok {
			resultErr = errors.New("not a byte array")
			break
		}
		resultRawValue, resultErr = json.Marshal(base64.StdEncoding.EncodeToString(b))
	case PublicKeyType:
		b, ok := p.Value.([]byte)
		if !ok {
			resultErr = errors.New("not a public key")
			break
		}
		resultRawValue, resultErr = json.Marshal(hex.EncodeToString(b))
	case Hash160Type:
		u, ok := p.Value.(util.Uint160)
		if !ok {
			resultErr = errors.New("not a Hash160")
			break
		}
		resultRawValue, resultErr = json.Marshal(u)
	case Hash256Type:
		u, ok := p.Value.(util.Uint256)
		if !ok {
			resultErr = errors.New("not a Hash256")
			break
		}
		resultRawValue, resultErr = json.Marshal(u)
	case ArrayType:
		arr, ok := p.Value.([]Parameter)
		if !ok {
			resultErr = errors.New("not an array")
			break
		}
		resultRawValue, resultErr = json.Marshal(arr)
	case MapType:
		pairs, ok := p.Value.([]ParameterPair)
		if !ok {
			resultErr = errors.New("not a map")
			break
		}
		resultRawValue, resultErr = json.Marshal(pairs)
	case AnyType:
	default:
		resultErr = fmt.Errorf("can't marshal %s", p.Type)
	}
	if resultErr != nil {
		return nil, resultErr
	}
	return json.Marshal(rawParameter{
		Type:  p.Type,
		Value: resultRawValue,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var (
		r       rawParameter
		boolean bool
		s       string
		arr     []Parameter
	)
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	p.Type = r.Type
	p.Value = nil
	if r.Value == nil || string(r.Value) == "null" {
		return nil
	}
	switch r.Type {
	case BoolType:
		if err := json.Unmarshal(r.Value, &boolean); err != nil {
			return err
		}
		p.Value = boolean
	case StringType:
		if err := json.Unmarshal(r.Value, &s); err != nil {
			return err
		}
		p.Value = s
	case IntegerType:
		if err := json.Unmarshal(r.Value, &s); err != nil {
			return err
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return errors.New("invalid integer value")
		}
		p.Value = n
	case ByteArrayType, SignatureType:
		if err := json.Unmarshal(r.Value, &s); err != nil {
			return err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return err
		}
		p.Value = b
	case PublicKeyType:
		if err := json.Unmarshal(r.Value, &s); err != nil {
			return err
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return err
		}
		p.Value = b
	case Hash160Type:
		var u util.Uint160
		if err := json.Unmarshal(r.Value, &u); err != nil {
			return err
		}
		p.Value = u
	case Hash256Type:
		var u util.Uint256
		if err := json.Unmarshal(r.Value, &u); err != nil {
			return err
		}
		p.Value = u
	case ArrayType:
		if err := json.Unmarshal(r.Value, &arr); err != nil {
			return err
		}
		p.Value = arr
	case MapType:
		var pairs []ParameterPair
		if err := json.Unmarshal(r.Value, &pairs); err != nil {
			return err
		}
		p.Value = pairs
	case AnyType:
	default:
		return fmt.Errorf("can't unmarshal %s", p.Type)
	}
	return nil
}

package smartcontract

import (
	"errors"
	"fmt"
	"strings"
)

// ParamType represents the type of the smart contract parameter.
type ParamType int

// A list of supported smart contract parameter types.
const (
	UnknownType          ParamType = -1
	AnyType              ParamType = 0x00
	BoolType             ParamType = 0x10
	IntegerType          ParamType = 0x11
	ByteArrayType        ParamType = 0x12
	StringType           ParamType = 0x13
	Hash160Type          ParamType = 0x14
	Hash256Type          ParamType = 0x15
	PublicKeyType        ParamType = 0x16
	SignatureType        ParamType = 0x17
	ArrayType            ParamType = 0x20
	MapType              ParamType = 0x22
	InteropInterfaceType ParamType = 0x30
	VoidType             ParamType = 0xff
)

var paramTypeNames = map[ParamType]string{
	AnyType:              "Any",
	BoolType:             "Boolean",
	IntegerType:          "Integer",
	ByteArrayType:        "ByteArray",
	StringType:           "String",
	Hash160Type:          "Hash160",
	Hash256Type:          "Hash256",
	PublicKeyType:        "PublicKey",
	SignatureType:        "Signature",
	ArrayType:            "Array",
	MapType:              "Map",
	InteropInterfaceType: "InteropInterface",
	VoidType:             "Void",
}

// String implements the fmt.Stringer interface.
func (pt ParamType) String() string {
	if name, ok := paramTypeNames[pt]; ok {
		return name
	}
	return ""
}

// MarshalJSON implements the json.Marshaler interface.
func (pt ParamType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + pt.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (pt *ParamType) UnmarshalJSON(data []byte) error {
	l := len(data)
	if l < 2 || data[0] != '"' || data[l-1] != '"' {
		return errors.New("wrong format")
	}
	p, err := ParseParamType(string(data[1 : l-1]))
	if err != nil {
		return err
	}
	*pt = p
	return nil
}

// ParseParamType is a user-friendly relaxed parsing of the ParamType from
// a string, it accepts a number of shorthands in addition to the canonical
// names.
func ParseParamType(val string) (ParamType, error) {
	switch strings.ToLower(val) {
	case "signature":
		return SignatureType, nil
	case "bool", "boolean":
		return BoolType, nil
	case "int", "integer":
		return IntegerType, nil
	case "hash160":
		return Hash160Type, nil
	case "hash256":
		return Hash256Type, nil
	case "bytes", "bytearray", "bytestring":
		return ByteArrayType, nil
	case "key", "publickey":
		return PublicKeyType, nil
	case "string":
		return StringType, nil
	case "array", "struct":
		return ArrayType, nil
	case "map":
		return MapType, nil
	case "interopinterface":
		return InteropInterfaceType, nil
	case "void":
		return VoidType, nil
	case "any":
		return AnyType, nil
	default:
		return UnknownType, fmt.Errorf("unknown parameter type: %s", val)
	}
}

package smartcontract

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParameterFromValue(t *testing.T) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)

	var testCases = []struct {
		value    any
		expType  ParamType
		expValue any
	}{
		{[]byte{1, 2, 3}, ByteArrayType, []byte{1, 2, 3}},
		{"hello", StringType, "hello"},
		{false, BoolType, false},
		{42, IntegerType, big.NewInt(42)},
		{int64(-100500), IntegerType, big.NewInt(-100500)},
		{uint64(1) << 63, IntegerType, new(big.Int).Lsh(big.NewInt(1), 63)},
		{byte(7), IntegerType, big.NewInt(7)},
		{big.NewInt(100500), IntegerType, big.NewInt(100500)},
		{uint256.NewInt(100500), IntegerType, big.NewInt(100500)},
		{util.Uint160{1, 2, 3}, Hash160Type, util.Uint160{1, 2, 3}},
		{util.Uint256{3, 2, 1}, Hash256Type, util.Uint256{3, 2, 1}},
		{priv.PublicKey(), PublicKeyType, priv.PublicKey().Bytes()},
		{
			[]ParameterPair{{
				Key:   Parameter{Type: StringType, Value: "key"},
				Value: Parameter{Type: BoolType, Value: true},
			}},
			MapType,
			[]ParameterPair{{
				Key:   Parameter{Type: StringType, Value: "key"},
				Value: Parameter{Type: BoolType, Value: true},
			}},
		},
		{nil, AnyType, nil},
	}
	for _, tc := range testCases {
		p, err := NewParameterFromValue(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.expType, p.Type)
		assert.Equal(t, tc.expValue, p.Value)
	}

	t.Run("array", func(t *testing.T) {
		p, err := NewParameterFromValue([]any{1, "2"})
		require.NoError(t, err)
		require.Equal(t, ArrayType, p.Type)
		require.Equal(t, []Parameter{
			{Type: IntegerType, Value: big.NewInt(1)},
			{Type: StringType, Value: "2"},
		}, p.Value)
	})
	t.Run("passthrough", func(t *testing.T) {
		in := Parameter{Type: StringType, Value: "str"}
		p, err := NewParameterFromValue(in)
		require.NoError(t, err)
		require.Equal(t, in, p)
	})
	t.Run("unsupported", func(t *testing.T) {
		_, err := NewParameterFromValue(struct{}{})
		require.Error(t, err)
		_, err = NewParameterFromValue([]any{struct{}{}})
		require.Error(t, err)
	})
}

func TestParameterJSON(t *testing.T) {
	var testCases = []struct {
		param Parameter
		json  string
	}{
		{Parameter{Type: BoolType, Value: true}, `{"type":"Boolean","value":true}`},
		{Parameter{Type: StringType, Value: "str"}, `{"type":"String","value":"str"}`},
		{Parameter{Type: IntegerType, Value: big.NewInt(100500)}, `{"type":"Integer","value":"100500"}`},
		{Parameter{Type: ByteArrayType, Value: []byte{0xCA, 0xFE}}, `{"type":"ByteArray","value":"yv4="}`},
		{Parameter{Type: AnyType}, `{"type":"Any"}`},
		{
			Parameter{Type: ArrayType, Value: []Parameter{{Type: BoolType, Value: false}}},
			`{"type":"Array","value":[{"type":"Boolean","value":false}]}`,
		},
		{
			Parameter{Type: MapType, Value: []ParameterPair{{
				Key:   Parameter{Type: StringType, Value: "key"},
				Value: Parameter{Type: BoolType, Value: true},
			}}},
			`{"type":"Map","value":[{"key":{"type":"String","value":"key"},"value":{"type":"Boolean","value":true}}]}`,
		},
	}
	for _, tc := range testCases {
		data, err := json.Marshal(tc.param)
		require.NoError(t, err)
		assert.Equal(t, tc.json, string(data))

		var p Parameter
		require.NoError(t, json.Unmarshal(data, &p))
		assert.Equal(t, tc.param, p)
	}

	t.Run("hashes", func(t *testing.T) {
		u160 := util.Uint160{1, 2, 3}
		data, err := json.Marshal(Parameter{Type: Hash160Type, Value: u160})
		require.NoError(t, err)
		var p Parameter
		require.NoError(t, json.Unmarshal(data, &p))
		require.Equal(t, u160, p.Value)

		u256 := util.Uint256{3, 2, 1}
		data, err = json.Marshal(Parameter{Type: Hash256Type, Value: u256})
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &p))
		require.Equal(t, u256, p.Value)
	})

	t.Run("bad values", func(t *testing.T) {
		_, err := json.Marshal(Parameter{Type: IntegerType, Value: "str"})
		require.Error(t, err)

		var p Parameter
		require.Error(t, json.Unmarshal([]byte(`{"type":"Integer","value":"notanumber"}`), &p))
		require.Error(t, json.Unmarshal([]byte(`{"type":"ByteArray","value":"not base64!"}`), &p))
	})
}

func TestExpandParameterToEmitable(t *testing.T) {
	u160 := util.Uint160{1, 2, 3}
	in := Parameter{Type: ArrayType, Value: []Parameter{
		{Type: Hash160Type, Value: u160},
		{Type: IntegerType, Value: big.NewInt(5)},
	}}
	out, err := ExpandParameterToEmitable(in)
	require.NoError(t, err)
	require.Equal(t, []any{u160, big.NewInt(5)}, out)

	_, err = ExpandParameterToEmitable(Parameter{Type: MapType})
	require.Error(t, err)
}

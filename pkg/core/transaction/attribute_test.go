package transaction

import (
	"testing"

	"github.com/R3E-Network/neo3-sdk/internal/testserdes"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestAttributeSerDes(t *testing.T) {
	var cases = []*Attribute{
		{Type: HighPriorityT},
		{Type: OracleResponseT, Value: &OracleResponse{
			ID:     0x1122334455,
			Code:   Success,
			Result: []byte{1, 2, 3},
		}},
		{Type: NotValidBeforeT, Value: &NotValidBefore{Height: 100500}},
		{Type: ConflictsT, Value: &Conflicts{Hash: util.Uint256{1, 2, 3}}},
	}
	for _, expected := range cases {
		t.Run(expected.Type.String(), func(t *testing.T) {
			actual := &Attribute{}
			testserdes.EncodeDecodeBinary(t, expected, actual)

			actualJS := &Attribute{}
			testserdes.MarshalUnmarshalJSON(t, expected, actualJS)

			require.Equal(t, expected, expected.Copy())
		})
	}
}

func TestAttributeDecodeBad(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		require.Error(t, testserdes.DecodeBinary([]byte{0x42}, &Attribute{}))
	})
	t.Run("bad oracle code", func(t *testing.T) {
		buf := []byte{byte(OracleResponseT), 1, 0, 0, 0, 0, 0, 0, 0, 0x42, 0}
		require.Error(t, testserdes.DecodeBinary(buf, &Attribute{}))
	})
	t.Run("truncated", func(t *testing.T) {
		require.Error(t, testserdes.DecodeBinary([]byte{byte(NotValidBeforeT), 1, 2}, &Attribute{}))
	})
	t.Run("non-success result", func(t *testing.T) {
		attr := &Attribute{Type: OracleResponseT, Value: &OracleResponse{
			ID:     1,
			Code:   Timeout,
			Result: []byte{1, 2, 3},
		}}
		data, err := testserdes.EncodeBinary(attr)
		require.NoError(t, err)
		require.Error(t, testserdes.DecodeBinary(data, &Attribute{}))
	})
}

func TestAttributeEncodeBad(t *testing.T) {
	_, err := testserdes.EncodeBinary(&Attribute{Type: 0x42})
	require.Error(t, err)
}

func TestAttributeJSONBad(t *testing.T) {
	var a Attribute
	require.Error(t, a.UnmarshalJSON([]byte(`{"type":"Whatever"}`)))
	require.Error(t, a.UnmarshalJSON([]byte(`{"type":"NotValidBefore","height":"nan"}`)))
}

func TestOracleResponseJSONFormat(t *testing.T) {
	attr := &Attribute{Type: OracleResponseT, Value: &OracleResponse{
		ID:     42,
		Code:   NotFound,
		Result: []byte{},
	}}
	data, err := attr.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"OracleResponse","id":42,"code":"NotFound","result":""}`, string(data))
}

package util

import (
	"encoding/json"
	"testing"

	sio "github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160DecodeString(t *testing.T) {
	hexStr := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	val, err := Uint160DecodeStringBE(hexStr)
	require.NoError(t, err)
	assert.Equal(t, hexStr, val.StringBE())

	valLE, err := Uint160DecodeStringLE(hexStr)
	require.NoError(t, err)
	assert.Equal(t, hexStr, valLE.StringLE())
	assert.Equal(t, val, valLE.Reverse())

	_, err = Uint160DecodeStringBE(hexStr[1:])
	require.Error(t, err)

	_, err = Uint160DecodeStringBE(hexStr[:len(hexStr)-2] + "zz")
	require.Error(t, err)
}

func TestUint160DecodeBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	val, err := Uint160DecodeBytesBE(b)
	require.NoError(t, err)
	assert.Equal(t, b, val.BytesBE())

	valLE, err := Uint160DecodeBytesLE(b)
	require.NoError(t, err)
	assert.Equal(t, b, valLE.BytesLE())

	_, err = Uint160DecodeBytesBE(b[1:])
	require.Error(t, err)
}

func TestUint160LessEquals(t *testing.T) {
	a, err := Uint160DecodeStringBE("2d3b96ae1bcc5a585e075e3b81920210dec16302")
	require.NoError(t, err)
	b, err := Uint160DecodeStringBE("2d3b96ae1bcc5a585e075e3b81920210dec16303")
	require.NoError(t, err)

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
	assert.True(t, a.Equals(a))
	assert.False(t, a.Equals(b))
}

func TestUint160Serializable(t *testing.T) {
	var (
		a Uint160
		b Uint160
	)
	for i := range a {
		a[i] = byte(i)
	}
	data, err := sio.ToByteArray(&a)
	require.NoError(t, err)
	require.Equal(t, a.BytesBE(), data)
	require.NoError(t, sio.FromByteArray(&b, data))
	require.Equal(t, a, b)
}

func TestUint160JSON(t *testing.T) {
	var a, b Uint160
	for i := range a {
		a[i] = byte(i)
	}
	data, err := json.Marshal(a)
	require.NoError(t, err)
	require.Equal(t, `"0x`+a.StringLE()+`"`, string(data))
	require.NoError(t, json.Unmarshal(data, &b))
	require.Equal(t, a, b)
}

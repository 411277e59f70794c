package bigint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var testCases = []struct {
	number int64
	buf    []byte
}{
	{0, []byte{}},
	{1, []byte{1}},
	{-1, []byte{0xFF}},
	{16, []byte{16}},
	{127, []byte{0x7F}},
	{128, []byte{0x80, 0x00}},
	{-128, []byte{0x80}},
	{-129, []byte{0x7F, 0xFF}},
	{255, []byte{0xFF, 0x00}},
	{-255, []byte{0x01, 0xFF}},
	{256, []byte{0x00, 0x01}},
	{-256, []byte{0x00, 0xFF}},
	{-65281, []byte{0xFF, 0x00, 0xFF}},
	{32767, []byte{0xFF, 0x7F}},
	{-32768, []byte{0x00, 0x80}},
	{65535, []byte{0xFF, 0xFF, 0x00}},
	{1 << 24, []byte{0x00, 0x00, 0x00, 0x01}},
	{-(1 << 31), []byte{0x00, 0x00, 0x00, 0x80}},
}

func TestToBytes(t *testing.T) {
	for _, tc := range testCases {
		require.Equal(t, tc.buf, ToBytes(big.NewInt(tc.number)), "value %d", tc.number)
	}
}

func TestFromBytes(t *testing.T) {
	for _, tc := range testCases {
		n := FromBytes(tc.buf)
		require.Equal(t, tc.number, n.Int64(), "% x", tc.buf)
	}
}

func TestRoundTripRandomWidths(t *testing.T) {
	for _, s := range []string{
		"123456789101112131415",
		"-123456789101112131415",
		"340282366920938463463374607431768211455",  // 2^128-1
		"-340282366920938463463374607431768211456", // -2^128
	} {
		n, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		require.LessOrEqual(t, len(ToBytes(n)), MaxBytesLen)
		require.Equal(t, 0, n.Cmp(FromBytes(ToBytes(n))), s)
	}
}

func TestFromBytesUnsigned(t *testing.T) {
	require.Equal(t, int64(255), FromBytesUnsigned([]byte{0xFF}).Int64())
	require.Equal(t, int64(0xFF00), FromBytesUnsigned([]byte{0x00, 0xFF}).Int64())
	require.Equal(t, int64(0), FromBytesUnsigned([]byte{}).Int64())
}

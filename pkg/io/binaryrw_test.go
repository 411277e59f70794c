package io

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSerializable uint16

func (t testSerializable) EncodeBinary(w *BinWriter) {
	w.WriteU16LE(uint16(t))
}

func (t *testSerializable) DecodeBinary(r *BinReader) {
	*t = testSerializable(r.ReadU16LE())
}

func TestWriteReadU64LE(t *testing.T) {
	var val uint64 = 0xbadc0de15a11dead
	bw := NewBufBinWriter()
	bw.WriteU64LE(val)
	require.NoError(t, bw.Err)
	b := bw.Bytes()

	r := NewBinReaderFromBuf(b)
	require.Equal(t, val, r.ReadU64LE())
	require.NoError(t, r.Err)
}

func TestWriteReadU32LE(t *testing.T) {
	var val uint32 = 0xdeadbeef
	bw := NewBufBinWriter()
	bw.WriteU32LE(val)
	require.NoError(t, bw.Err)

	r := NewBinReaderFromBuf(bw.Bytes())
	require.Equal(t, val, r.ReadU32LE())
	require.NoError(t, r.Err)
}

func TestWriteReadBool(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteBool(true)
	bw.WriteBool(false)
	require.NoError(t, bw.Err)
	b := bw.Bytes()
	require.Equal(t, []byte{1, 0}, b)

	r := NewBinReaderFromBuf(b)
	require.True(t, r.ReadBool())
	require.False(t, r.ReadBool())
	require.NoError(t, r.Err)
}

func TestVarUintEncodings(t *testing.T) {
	var cases = map[uint64][]byte{
		0:          {0x00},
		5:          {0x05},
		0xfc:       {0xfc},
		0xfd:       {0xfd, 0xfd, 0x00},
		500:        {0xfd, 0xf4, 0x01},
		0xffff:     {0xfd, 0xff, 0xff},
		0x10000:    {0xfe, 0x00, 0x00, 0x01, 0x00},
		0xffffffff: {0xfe, 0xff, 0xff, 0xff, 0xff},
		0x100000000: {
			0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		},
	}
	for val, expected := range cases {
		bw := NewBufBinWriter()
		bw.WriteVarUint(val)
		require.NoError(t, bw.Err)
		b := bw.Bytes()
		assert.Equal(t, expected, b, "value %d", val)

		r := NewBinReaderFromBuf(b)
		assert.Equal(t, val, r.ReadVarUint())
		assert.NoError(t, r.Err)
	}
}

func TestVarUintCanonical(t *testing.T) {
	var bad = [][]byte{
		{0xfd, 0x05, 0x00},                                     // 5 in 16-bit form
		{0xfd, 0xfc, 0x00},                                     // 0xfc in 16-bit form
		{0xfe, 0xf4, 0x01, 0x00, 0x00},                         // 500 in 32-bit form
		{0xfe, 0xff, 0xff, 0x00, 0x00},                         // 0xffff in 32-bit form
		{0xff, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}, // 32-bit value in 64-bit form
	}
	for _, b := range bad {
		r := NewBinReaderFromBuf(b)
		r.ReadVarUint()
		require.ErrorIs(t, r.Err, ErrNonCanonicalVarInt, "% x", b)
	}
}

func TestVarUintTruncated(t *testing.T) {
	for _, b := range [][]byte{{0xfd}, {0xfd, 0x01}, {0xfe, 0x01, 0x02}, {0xff, 0x01}} {
		r := NewBinReaderFromBuf(b)
		r.ReadVarUint()
		require.ErrorIs(t, r.Err, io.ErrUnexpectedEOF)
	}
}

func TestWriteReadVarBytes(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef}
	bw := NewBufBinWriter()
	bw.WriteVarBytes(b)
	require.NoError(t, bw.Err)

	r := NewBinReaderFromBuf(bw.Bytes())
	require.Equal(t, b, r.ReadVarBytes())
	require.NoError(t, r.Err)
}

func TestReadVarBytesTruncated(t *testing.T) {
	r := NewBinReaderFromBuf([]byte{0x05, 0x01, 0x02})
	r.ReadVarBytes()
	require.ErrorIs(t, r.Err, io.ErrUnexpectedEOF)
}

func TestReadVarBytesLimit(t *testing.T) {
	r := NewBinReaderFromBuf([]byte{0x05, 0x01, 0x02, 0x03, 0x04, 0x05})
	r.ReadVarBytes(4)
	require.Error(t, r.Err)
}

func TestWriteReadString(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteString("NEO transfer")
	require.NoError(t, bw.Err)

	r := NewBinReaderFromBuf(bw.Bytes())
	require.Equal(t, "NEO transfer", r.ReadString())
	require.NoError(t, r.Err)
}

func TestReadStringInvalidUTF8(t *testing.T) {
	r := NewBinReaderFromBuf([]byte{0x02, 0xff, 0xfe})
	r.ReadString()
	require.ErrorIs(t, r.Err, ErrInvalidUTF8)
}

func TestWriteReadArray(t *testing.T) {
	arr := []testSerializable{1, 2, 3, 0xffff}
	bw := NewBufBinWriter()
	bw.WriteArray(arr)
	require.NoError(t, bw.Err)

	var actual []testSerializable
	r := NewBinReaderFromBuf(bw.Bytes())
	r.ReadArray(&actual)
	require.NoError(t, r.Err)
	require.Equal(t, arr, actual)
}

func TestReadArrayLimit(t *testing.T) {
	arr := []testSerializable{1, 2, 3}
	bw := NewBufBinWriter()
	bw.WriteArray(arr)
	require.NoError(t, bw.Err)

	var actual []testSerializable
	r := NewBinReaderFromBuf(bw.Bytes())
	r.ReadArray(&actual, 2)
	require.Error(t, r.Err)
}

func TestStickyError(t *testing.T) {
	r := NewBinReaderFromBuf([]byte{0x01})
	r.ReadU32LE()
	require.ErrorIs(t, r.Err, io.ErrUnexpectedEOF)
	// the cursor must not advance after an error
	require.Equal(t, 0, r.Position())
	require.Equal(t, byte(0), r.ReadB())
}

func TestBufBinWriterReset(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteB(0x42)
	require.Equal(t, []byte{0x42}, bw.Bytes())
	bw.WriteB(0x43)
	require.ErrorIs(t, bw.Err, ErrDrained)

	bw.Reset()
	bw.WriteB(0x44)
	require.Equal(t, []byte{0x44}, bw.Bytes())
}

func TestGetVarIntSize(t *testing.T) {
	require.Equal(t, 1, GetVarIntSize(1))
	require.Equal(t, 1, GetVarIntSize(0xfc))
	require.Equal(t, 3, GetVarIntSize(0xfd))
	require.Equal(t, 3, GetVarIntSize(0xffff))
	require.Equal(t, 5, GetVarIntSize(0x10000))
	require.Equal(t, 13, GetVarSize("strangevalue"))
}

// Package bigint implements the VM-compatible representation of arbitrary
// precision integers: minimal two's-complement little-endian byte strings.
package bigint

import (
	"math/big"

	"github.com/R3E-Network/neo3-sdk/pkg/util/slice"
)

// MaxBytesLen is the maximum length of a serialized integer suitable for
// the NEO VM.
const MaxBytesLen = 32 // 256-bit signed integer

var bigOne = big.NewInt(1)

// FromBytesUnsigned converts data in little-endian format to an unsigned
// integer.
func FromBytesUnsigned(data []byte) *big.Int {
	bs := slice.CopyReverse(data)
	return new(big.Int).SetBytes(bs)
}

// FromBytes converts data in little-endian two's-complement format to an
// integer.
func FromBytes(data []byte) *big.Int {
	if len(data) == 0 {
		if data == nil {
			panic("nil slice provided to `FromBytes`")
		}
		return big.NewInt(0)
	}

	isNeg := data[len(data)-1]&0x80 != 0

	n := new(big.Int).SetBytes(slice.CopyReverse(data))
	if !isNeg {
		return n
	}
	// Subtract 2^(8*len) to get the negative value back.
	bound := new(big.Int).Lsh(bigOne, uint(8*len(data)))
	return n.Sub(n, bound)
}

// ToBytes converts an integer to a minimal byte slice in little-endian
// two's-complement format. Zero is represented by an empty slice.
func ToBytes(n *big.Int) []byte {
	return ToPreallocatedBytes(n, []byte{})
}

// ToPreallocatedBytes converts an integer to a slice in little-endian
// two's-complement format using the given byte buffer.
func ToPreallocatedBytes(n *big.Int, data []byte) []byte {
	sign := n.Sign()
	if sign == 0 {
		return data[:0]
	}

	if sign > 0 {
		bs := n.Bytes()
		out := append(data[:0], slice.CopyReverse(bs)...)
		if out[len(out)-1]&0x80 != 0 {
			out = append(out, 0)
		}
		return out
	}

	l := (new(big.Int).Neg(n).BitLen() + 7) / 8
	// m is the two's-complement bit pattern for l bytes.
	m := new(big.Int).Lsh(bigOne, uint(8*l))
	m.Add(m, n)

	bs := m.Bytes() // big-endian, may be shorter than l
	out := append(data[:0], make([]byte, l)...)
	copy(out[l-len(bs):], bs)
	slice.Reverse(out)
	if out[l-1]&0x80 == 0 {
		// The sign bit didn't survive, extend with all-ones.
		out = append(out, 0xFF)
	}
	return out
}

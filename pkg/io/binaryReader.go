package io

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
	"unicode/utf8"
)

// MaxArraySize is the maximum size of an array which can be decoded.
// It is taken from https://github.com/neo-project/neo/blob/master/src/neo/IO/Helper.cs
const MaxArraySize = 0x1000000

// ErrNonCanonicalVarInt is returned when a variable-length integer uses a
// wider prefix than its minimal encoding requires. Canonical encoding is
// mandatory, otherwise re-serialization of decoded data could produce a
// different byte stream and a different hash.
var ErrNonCanonicalVarInt = errors.New("non-canonical var-int encoding")

// ErrInvalidUTF8 is returned when a decoded string is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 string")

// BinReader is a convenient wrapper around a byte slice and an err object.
// It reads values from an immutable buffer advancing an internal cursor and
// keeps the first error encountered, turning all subsequent reads into no-ops.
type BinReader struct {
	data []byte
	pos  int
	Err  error
}

// NewBinReaderFromBuf makes a BinReader from the given byte buffer. The
// buffer is not copied and must not be mutated while the reader is in use.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return &BinReader{data: b}
}

// Position returns the current cursor offset.
func (r *BinReader) Position() int {
	return r.pos
}

// Len returns the number of bytes remaining in the buffer.
func (r *BinReader) Len() int {
	return len(r.data) - r.pos
}

// ReadU64LE reads a little-endian uint64 value.
func (r *BinReader) ReadU64LE() uint64 {
	if r.Err == nil {
		if pos := r.pos; pos+8 <= len(r.data) {
			r.pos += 8
			return binary.LittleEndian.Uint64(r.data[pos:])
		}
		r.Err = io.ErrUnexpectedEOF
	}
	return 0
}

// ReadU32LE reads a little-endian uint32 value.
func (r *BinReader) ReadU32LE() uint32 {
	if r.Err == nil {
		if pos := r.pos; pos+4 <= len(r.data) {
			r.pos += 4
			return binary.LittleEndian.Uint32(r.data[pos:])
		}
		r.Err = io.ErrUnexpectedEOF
	}
	return 0
}

// ReadU16LE reads a little-endian uint16 value.
func (r *BinReader) ReadU16LE() uint16 {
	if r.Err == nil {
		if pos := r.pos; pos+2 <= len(r.data) {
			r.pos += 2
			return binary.LittleEndian.Uint16(r.data[pos:])
		}
		r.Err = io.ErrUnexpectedEOF
	}
	return 0
}

// ReadU16BE reads a big-endian uint16 value.
func (r *BinReader) ReadU16BE() uint16 {
	if r.Err == nil {
		if pos := r.pos; pos+2 <= len(r.data) {
			r.pos += 2
			return binary.BigEndian.Uint16(r.data[pos:])
		}
		r.Err = io.ErrUnexpectedEOF
	}
	return 0
}

// ReadB reads a single byte.
func (r *BinReader) ReadB() byte {
	if r.Err == nil {
		if pos := r.pos; pos < len(r.data) {
			r.pos++
			return r.data[pos]
		}
		r.Err = io.ErrUnexpectedEOF
	}
	return 0
}

// ReadBool reads a boolean value encoded as a single byte (zero is false,
// anything else is true).
func (r *BinReader) ReadBool() bool {
	return r.ReadB() != 0
}

// ReadBytes copies exactly len(b) bytes from the buffer into b. No length
// prefix is read, this is the fixed-size counterpart of ReadVarBytes.
func (r *BinReader) ReadBytes(b []byte) {
	if r.Err != nil {
		return
	}
	if r.pos+len(b) > len(r.data) {
		r.Err = io.ErrUnexpectedEOF
		return
	}
	copy(b, r.data[r.pos:])
	r.pos += len(b)
}

// ReadVarUint reads a variable-length-encoded integer. Non-minimal
// encodings are rejected with ErrNonCanonicalVarInt.
func (r *BinReader) ReadVarUint() uint64 {
	if r.Err != nil {
		return 0
	}

	switch b := r.ReadB(); b {
	case 0xfd:
		v := r.ReadU16LE()
		if r.Err == nil && v < 0xfd {
			r.Err = ErrNonCanonicalVarInt
		}
		return uint64(v)
	case 0xfe:
		v := r.ReadU32LE()
		if r.Err == nil && v <= 0xffff {
			r.Err = ErrNonCanonicalVarInt
		}
		return uint64(v)
	case 0xff:
		v := r.ReadU64LE()
		if r.Err == nil && v <= 0xffffffff {
			r.Err = ErrNonCanonicalVarInt
		}
		return v
	default:
		return uint64(b)
	}
}

// ReadVarBytes reads a variable-length byte array (var-int length prefix
// followed by that many bytes), with an optional maximum size limit.
func (r *BinReader) ReadVarBytes(maxSize ...int) []byte {
	n := r.ReadVarUint()
	ms := MaxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}
	if n > uint64(ms) {
		if r.Err == nil {
			r.Err = fmt.Errorf("byte-slice is too big (%d)", n)
		}
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	return b
}

// ReadString reads a variable-length UTF-8 string.
func (r *BinReader) ReadString(maxSize ...int) string {
	b := r.ReadVarBytes(maxSize...)
	if r.Err == nil && !utf8.Valid(b) {
		r.Err = ErrInvalidUTF8
		return ""
	}
	return string(b)
}

// ReadArray reads a var-int-prefixed array into t, which must be a pointer
// to a slice of Serializable elements (or pointers to them).
func (r *BinReader) ReadArray(t any, maxSize ...int) {
	value := reflect.ValueOf(t)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Slice {
		panic(value.Type().String() + " is not a pointer to a slice")
	}

	if r.Err != nil {
		return
	}

	sliceType := value.Elem().Type()
	elemType := sliceType.Elem()
	isPtr := elemType.Kind() == reflect.Ptr

	ms := MaxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}

	lu := r.ReadVarUint()
	if lu > uint64(ms) {
		if r.Err == nil {
			r.Err = fmt.Errorf("array is too big (%d)", lu)
		}
		return
	}

	l := int(lu)
	arr := reflect.MakeSlice(sliceType, l, l)

	for i := 0; i < l; i++ {
		var elem reflect.Value
		if isPtr {
			elem = reflect.New(elemType.Elem())
			arr.Index(i).Set(elem)
		} else {
			elem = arr.Index(i).Addr()
		}

		el, ok := elem.Interface().(decodable)
		if !ok {
			panic(elemType.String() + " is not decodable")
		}

		el.DecodeBinary(r)
		if r.Err != nil {
			return
		}
	}

	value.Elem().Set(arr)
}

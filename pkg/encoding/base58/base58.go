// Package base58 wraps generic base58 encoder with NEO-specific
// checksummed versions of it.
package base58

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/hash"
	"github.com/mr-tron/base58"
)

// ErrBadChecksum is returned when the embedded 4-byte checksum doesn't
// match the recomputed one.
var ErrBadChecksum = errors.New("bad checksum")

// CheckDecode implements a base58-encoded string decoding with hash-based
// checksum check.
func CheckDecode(s string) (b []byte, err error) {
	b, err = base58.Decode(s)
	if err != nil {
		return nil, err
	}

	if len(b) < 5 {
		return nil, fmt.Errorf("invalid base58 checksummed string, %d bytes only", len(b))
	}

	if !bytes.Equal(hash.Checksum(b[:len(b)-4]), b[len(b)-4:]) {
		return nil, ErrBadChecksum
	}
	return b[:len(b)-4], nil
}

// CheckEncode encodes given bytes into a base58 string with a 4-byte
// double-SHA256 checksum appended.
func CheckEncode(b []byte) string {
	b = append(b, hash.Checksum(b)...)
	return base58.Encode(b)
}

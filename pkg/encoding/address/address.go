// Package address implements conversion between script hashes and NEO
// addresses: base58check(version byte + 20-byte script hash).
package address

import (
	"errors"

	"github.com/R3E-Network/neo3-sdk/pkg/encoding/base58"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
)

const (
	// NEO2Prefix is the first byte of an address for NEO2.
	NEO2Prefix byte = 0x17
	// NEO3Prefix is the first byte of an address for NEO3.
	NEO3Prefix byte = 0x35
)

// Prefix is the byte used to prepend to addresses when encoding them, it
// can be changed and defaults to the NEO3 one.
var Prefix = NEO3Prefix

// ErrInvalidAddress is returned for addresses of the wrong length or with
// an unexpected version byte. Checksum failures come from the base58 layer.
var ErrInvalidAddress = errors.New("invalid address")

// Uint160ToString returns the "NEO address" from the given script hash
// using the default prefix.
func Uint160ToString(u util.Uint160) string {
	return EncodeUint160(u, Prefix)
}

// EncodeUint160 returns the "NEO address" from the given script hash and
// address version byte.
func EncodeUint160(u util.Uint160, version byte) string {
	// Dont forget to prepend the Address version.
	b := append([]byte{version}, u.BytesBE()...)
	return base58.CheckEncode(b)
}

// StringToUint160 attempts to decode the given NEO address string into a
// script hash, requiring the default prefix.
func StringToUint160(s string) (util.Uint160, error) {
	u, version, err := DecodeUint160(s)
	if err != nil {
		return util.Uint160{}, err
	}
	if version != Prefix {
		return util.Uint160{}, ErrInvalidAddress
	}
	return u, nil
}

// DecodeUint160 attempts to decode the given NEO address string into a
// script hash and an address version byte. Wrong payload length or bad
// checksum make the whole decode fail.
func DecodeUint160(s string) (util.Uint160, byte, error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return util.Uint160{}, 0, err
	}
	if len(b) != util.Uint160Size+1 {
		return util.Uint160{}, 0, ErrInvalidAddress
	}
	u, err := util.Uint160DecodeBytesBE(b[1:])
	if err != nil {
		return util.Uint160{}, 0, err
	}
	return u, b[0], nil
}

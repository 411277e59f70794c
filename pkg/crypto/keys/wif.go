package keys

import (
	"errors"
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/encoding/base58"
)

// WIFVersion is the version used to decode and encode WIF keys.
const WIFVersion = 0x80

// WIF represents a wallet import format.
type WIF struct {
	// Version of the wallet import format. Default to 0x80.
	Version byte

	// Compressed indicates whether the public key derived from the
	// imported private key should be in its compressed form.
	Compressed bool

	// PrivateKey is the private key imported through the WIF.
	PrivateKey *PrivateKey

	// S is the original WIF string.
	S string
}

// WIFEncode encodes the given private key into a WIF string.
func WIFEncode(key []byte, version byte, compressed bool) (string, error) {
	if version == 0x00 {
		version = WIFVersion
	}
	if len(key) != 32 {
		return "", fmt.Errorf("invalid private key length: %d", len(key))
	}

	buf := make([]byte, 0, 34)
	buf = append(buf, version)
	buf = append(buf, key...)
	if compressed {
		buf = append(buf, 0x01)
	}
	return base58.CheckEncode(buf), nil
}

// WIFDecode decodes the given WIF string into a WIF struct.
func WIFDecode(wif string, version byte) (*WIF, error) {
	b, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, err
	}
	if version == 0x00 {
		version = WIFVersion
	}
	w := &WIF{
		Version: version,
		S:       wif,
	}
	if b[0] != version {
		return nil, fmt.Errorf("invalid WIF version got %d, expected %d", b[0], version)
	}

	switch len(b) {
	case 33: // OK, uncompressed public key.
	case 34:
		// Check the compression flag.
		if b[33] != 0x01 {
			return nil, errors.New("invalid compression flag")
		}
		w.Compressed = true
	default:
		return nil, fmt.Errorf("invalid WIF length %d, expecting 33 or 34", len(b))
	}

	w.PrivateKey, err = NewPrivateKeyFromBytes(b[1:33])
	if err != nil {
		return nil, err
	}
	return w, nil
}

// NewPrivateKeyFromWIF returns a NEO PrivateKey from the given WIF.
func NewPrivateKeyFromWIF(wif string) (*PrivateKey, error) {
	w, err := WIFDecode(wif, WIFVersion)
	if err != nil {
		return nil, err
	}
	return w.PrivateKey, nil
}

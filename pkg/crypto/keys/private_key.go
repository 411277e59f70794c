// Package keys wraps ECDSA keys with the serialization, signing and
// script-building conventions of the NEO protocol.
package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/nspcc-dev/rfc6979"
)

// PrivateKey represents a NEO private key and provides a high level API
// around ecdsa.PrivateKey.
type PrivateKey struct {
	ecdsa.PrivateKey
}

// NewPrivateKey creates a new random Secp256r1 private key.
func NewPrivateKey() (*PrivateKey, error) {
	pk, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{*pk}, nil
}

// NewSecp256k1PrivateKey creates a new random Secp256k1 private key.
func NewSecp256k1PrivateKey() (*PrivateKey, error) {
	pk, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{*pk.ToECDSA()}, nil
}

// NewPrivateKeyFromHex returns a Secp256r1 PrivateKey created from the
// given hex string.
func NewPrivateKeyFromHex(str string) (*PrivateKey, error) {
	b, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromBytes(b)
}

// NewPrivateKeyFromBytes returns a NEO Secp256r1 PrivateKey from the given
// byte slice.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("invalid byte length: expected %d bytes got %d", 32, len(b))
	}
	var (
		c = elliptic.P256()
		d = new(big.Int).SetBytes(b)
	)
	if d.Sign() <= 0 || d.Cmp(c.Params().N) >= 0 {
		return nil, errors.New("invalid private key value")
	}

	x, y := c.ScalarBaseMult(d.Bytes())
	return &PrivateKey{
		ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{
				Curve: c,
				X:     x,
				Y:     y,
			},
			D: d,
		},
	}, nil
}

// PublicKey derives the public key from the private key.
func (p *PrivateKey) PublicKey() *PublicKey {
	result := PublicKey(p.PrivateKey.PublicKey)
	return &result
}

// Bytes returns the underlying 32-byte big-endian scalar of the private
// key.
func (p *PrivateKey) Bytes() []byte {
	bytes := p.D.Bytes()
	result := make([]byte, 32)
	copy(result[32-len(bytes):], bytes)
	return result
}

// GetScriptHash returns the script hash of the verification script built
// from the corresponding public key.
func (p *PrivateKey) GetScriptHash() util.Uint160 {
	return p.PublicKey().GetScriptHash()
}

// Address derives the NEO3 address that is coupled with the private key.
func (p *PrivateKey) Address() string {
	return p.PublicKey().Address()
}

// WIF returns the (wallet import format) of the private key.
func (p *PrivateKey) WIF() string {
	w, err := WIFEncode(p.Bytes(), WIFVersion, true)
	// The only way WIFEncode can fail is an invalid key size which is
	// ruled out by Bytes above.
	if err != nil {
		panic(err)
	}
	return w
}

// Sign signs arbitrary data using the private key. The data is hashed
// with SHA-256 first.
func (p *PrivateKey) Sign(data []byte) []byte {
	var digest = sha256.Sum256(data)

	return p.SignHash(digest[:])
}

// SignHashable signs some Hashable item for the network specified using
// the private key. Both the magic and the item hash enter the signed
// digest.
func (p *PrivateKey) SignHashable(magic uint32, hash util.Uint256) []byte {
	var b [4 + util.Uint256Size]byte
	b[0] = byte(magic)
	b[1] = byte(magic >> 8)
	b[2] = byte(magic >> 16)
	b[3] = byte(magic >> 24)
	copy(b[4:], hash.BytesBE())
	return p.Sign(b[:])
}

// SignHash signs a particular hash with the private key. The signature is
// deterministic per RFC 6979.
func (p *PrivateKey) SignHash(digest []byte) []byte {
	r, s := rfc6979.SignECDSA(&p.PrivateKey, digest, sha256.New)
	return getSignatureSlice(p.PrivateKey.Curve, r, s)
}

func getSignatureSlice(curve elliptic.Curve, r, s *big.Int) []byte {
	params := curve.Params()
	curveOrderByteSize := params.P.BitLen() / 8
	signature := make([]byte, curveOrderByteSize*2)
	_ = r.FillBytes(signature[:curveOrderByteSize])
	_ = s.FillBytes(signature[curveOrderByteSize:])

	return signature
}

// String implements the fmt.Stringer interface.
func (p *PrivateKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Destroy wipes the contents of the private key from memory. Any
// operations with the key after call to Destroy have undefined behavior.
func (p *PrivateKey) Destroy() {
	bits := p.D.Bits()
	for i := range bits {
		bits[i] = 0
	}
}

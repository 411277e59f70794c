package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/hash"
	"github.com/R3E-Network/neo3-sdk/pkg/encoding/address"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/emit"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/interopnames"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// coordLen is the amount of bytes in a serialized X or Y coordinate.
const coordLen = 32

// SignatureLen is the length of a standard signature, r followed by s,
// both left-padded to the coordinate length.
const SignatureLen = 2 * coordLen

// PublicKeys is a list of public keys.
type PublicKeys []*PublicKey

func (keys PublicKeys) Len() int      { return len(keys) }
func (keys PublicKeys) Swap(i, j int) { keys[i], keys[j] = keys[j], keys[i] }
func (keys PublicKeys) Less(i, j int) bool {
	return keys[i].Cmp(keys[j]) == -1
}

// Sort sorts the keys in the canonical multisignature order.
func (keys PublicKeys) Sort() {
	sort.Sort(keys)
}

// DecodeBytes decodes PublicKeys from the given slice of bytes.
func (keys *PublicKeys) DecodeBytes(data []byte) error {
	b := io.NewBinReaderFromBuf(data)
	b.ReadArray(keys)
	return b.Err
}

// Bytes encodes PublicKeys to the new slice of bytes.
func (keys PublicKeys) Bytes() []byte {
	buf := io.NewBufBinWriter()
	buf.WriteArray(keys)
	if buf.Err != nil {
		panic(buf.Err)
	}
	return buf.Bytes()
}

// Contains checks whether the passed param is contained in PublicKeys.
func (keys PublicKeys) Contains(pKey *PublicKey) bool {
	for _, key := range keys {
		if key.Equal(pKey) {
			return true
		}
	}
	return false
}

// Copy returns a copy of keys.
func (keys PublicKeys) Copy() PublicKeys {
	if keys == nil {
		return nil
	}
	res := make(PublicKeys, len(keys))
	copy(res, keys)
	return res
}

// Unique returns a set of public keys.
func (keys PublicKeys) Unique() PublicKeys {
	unique := PublicKeys{}
	for _, publicKey := range keys {
		if !unique.Contains(publicKey) {
			unique = append(unique, publicKey)
		}
	}
	return unique
}

// PublicKey represents a public key and provides a high level API around
// ecdsa.PublicKey.
type PublicKey ecdsa.PublicKey

// Equal returns true in case public keys are equal.
func (p *PublicKey) Equal(key *PublicKey) bool {
	return p.X.Cmp(key.X) == 0 && p.Y.Cmp(key.Y) == 0
}

// Cmp compares two keys: -1 if p < key, 0 if p == key and 1 otherwise.
// X coordinates are compared first, Y breaks the tie.
func (p *PublicKey) Cmp(key *PublicKey) int {
	xCmp := p.X.Cmp(key.X)
	if xCmp != 0 {
		return xCmp
	}
	return p.Y.Cmp(key.Y)
}

// NewPublicKeyFromString returns a public key created from the given hex
// string public key representation in compressed form.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b, elliptic.P256())
}

// NewPublicKeyFromBytes returns a public key created from b using the
// given elliptic curve. It must be in compressed form, 33 bytes with the
// 0x02 or 0x03 prefix.
func NewPublicKeyFromBytes(b []byte, curve elliptic.Curve) (*PublicKey, error) {
	if len(b) != coordLen+1 {
		return nil, fmt.Errorf("invalid public key length: %d", len(b))
	}
	if b[0] != 0x02 && b[0] != 0x03 {
		return nil, fmt.Errorf("invalid public key prefix: 0x%02x", b[0])
	}
	switch curve {
	case elliptic.P256():
		x, y := elliptic.UnmarshalCompressed(curve, b)
		if x == nil {
			return nil, errors.New("error decompressing public key")
		}
		return &PublicKey{Curve: curve, X: x, Y: y}, nil
	case secp256k1.S256():
		pub, err := secp256k1.ParsePubKey(b)
		if err != nil {
			return nil, err
		}
		return (*PublicKey)(pub.ToECDSA()), nil
	default:
		return nil, errors.New("unsupported curve")
	}
}

// Bytes returns byte array representation of the public key in compressed
// form, the 0x02 or 0x03 prefix depending on the Y parity followed by the
// 32-byte big-endian X coordinate.
func (p *PublicKey) Bytes() []byte {
	var (
		x       = p.X.Bytes()
		paddedX = append(make([]byte, coordLen-len(x)), x...)
		prefix  = byte(0x03)
	)
	if p.Y.Bit(0) == 0 {
		prefix = 0x02
	}
	return append([]byte{prefix}, paddedX...)
}

// UncompressedBytes returns the public key in the uncompressed SEC form,
// the 0x04 prefix followed by both coordinates.
func (p *PublicKey) UncompressedBytes() []byte {
	return elliptic.Marshal(p.Curve, p.X, p.Y)
}

// String implements the fmt.Stringer interface.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// DecodeBinary decodes a PublicKey from the given BinReader using the
// curve of the NEO protocol, P-256.
func (p *PublicKey) DecodeBinary(r *io.BinReader) {
	b := make([]byte, coordLen+1)
	r.ReadBytes(b[:1])
	if r.Err != nil {
		return
	}
	if b[0] != 0x02 && b[0] != 0x03 {
		r.Err = fmt.Errorf("invalid public key prefix: 0x%02x", b[0])
		return
	}
	r.ReadBytes(b[1:])
	if r.Err != nil {
		return
	}
	pub, err := NewPublicKeyFromBytes(b, elliptic.P256())
	if err != nil {
		r.Err = err
		return
	}
	*p = *pub
}

// EncodeBinary encodes a PublicKey to the given BinWriter.
func (p *PublicKey) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(p.Bytes())
}

// GetVerificationScript returns the NEO VM verification script of the key,
// a single-signature contract checked with System.Crypto.CheckSig.
func (p *PublicKey) GetVerificationScript() []byte {
	buf := io.NewBufBinWriter()
	emit.Bytes(buf.BinWriter, p.Bytes())
	emit.Syscall(buf.BinWriter, interopnames.SystemCryptoCheckSig)
	return buf.Bytes()
}

// GetScriptHash returns a Uint160 hash of the verification script.
func (p *PublicKey) GetScriptHash() util.Uint160 {
	return hash.Hash160(p.GetVerificationScript())
}

// Address returns the base58-encoded NEO3 address of the key.
func (p *PublicKey) Address() string {
	return address.Uint160ToString(p.GetScriptHash())
}

// Verify returns true if the signature is valid and corresponds to the
// hash and the public key.
func (p *PublicKey) Verify(signature, hash []byte) bool {
	if p.X == nil || p.Y == nil || len(signature) != SignatureLen {
		return false
	}
	rBytes := new(big.Int).SetBytes(signature[0:coordLen])
	sBytes := new(big.Int).SetBytes(signature[coordLen:SignatureLen])
	pk := ecdsa.PublicKey(*p)
	return ecdsa.Verify(&pk, hash, rBytes, sBytes)
}

// VerifyHashable returns true if the signature is valid for the given
// item hash on the network specified. It is the verification counterpart
// of PrivateKey.SignHashable.
func (p *PublicKey) VerifyHashable(signature []byte, magic uint32, hash util.Uint256) bool {
	var b [4 + util.Uint256Size]byte
	b[0] = byte(magic)
	b[1] = byte(magic >> 8)
	b[2] = byte(magic >> 16)
	b[3] = byte(magic >> 24)
	copy(b[4:], hash.BytesBE())
	digest := sha256.Sum256(b[:])
	return p.Verify(signature, digest[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + hex.EncodeToString(p.Bytes()) + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	l := len(data)
	if l < 2 || data[0] != '"' || data[l-1] != '"' {
		return errors.New("wrong format")
	}
	bytes := make([]byte, hex.DecodedLen(l-2))
	_, err := hex.Decode(bytes, data[1:l-1])
	if err != nil {
		return err
	}
	pub, err := NewPublicKeyFromBytes(bytes, elliptic.P256())
	if err != nil {
		return err
	}
	*p = *pub
	return nil
}

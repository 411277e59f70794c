package keys

import (
	"crypto/sha256"
	"testing"

	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digestOf(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func TestNewPrivateKeyFromBytes(t *testing.T) {
	// The generator point of P-256 corresponds to the scalar 1.
	key, err := NewPrivateKeyFromHex("0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	require.Equal(t,
		"036b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
		key.PublicKey().String())

	_, err = NewPrivateKeyFromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	// Zero is not a valid scalar.
	_, err = NewPrivateKeyFromHex("0000000000000000000000000000000000000000000000000000000000000000")
	require.Error(t, err)

	// Neither is the group order.
	_, err = NewPrivateKeyFromHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")
	require.Error(t, err)
}

func TestPrivateKeyBytesRoundtrip(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)

	b := key.Bytes()
	require.Equal(t, 32, len(b))

	key2, err := NewPrivateKeyFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, key.D, key2.D)
	require.True(t, key.PublicKey().Equal(key2.PublicKey()))
}

func TestSignAndVerify(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)
	pub := key.PublicKey()

	data := []byte("sample")
	sig := key.Sign(data)
	require.Equal(t, SignatureLen, len(sig))

	digest := digestOf(data)
	assert.True(t, pub.Verify(sig, digest))

	// Deterministic signing per RFC 6979.
	assert.Equal(t, sig, key.Sign(data))

	sig[0] ^= 0xFF
	assert.False(t, pub.Verify(sig, digest))

	other, err := NewPrivateKey()
	require.NoError(t, err)
	assert.False(t, other.PublicKey().Verify(key.Sign(data), digest))
}

func TestSignHashable(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)

	h := util.Uint256(sha256.Sum256([]byte("some tx")))
	sigMain := key.SignHashable(0x334F454E, h)
	sigTest := key.SignHashable(0x3454334E, h)
	require.Equal(t, SignatureLen, len(sigMain))
	require.NotEqual(t, sigMain, sigTest)
	require.Equal(t, sigMain, key.SignHashable(0x334F454E, h))

	pub := key.PublicKey()
	require.True(t, pub.VerifyHashable(sigMain, 0x334F454E, h))
	require.True(t, pub.VerifyHashable(sigTest, 0x3454334E, h))

	// A signature made for one network is invalid on any other.
	require.False(t, pub.VerifyHashable(sigMain, 0x3454334E, h))
}

func TestSecp256k1Key(t *testing.T) {
	key, err := NewSecp256k1PrivateKey()
	require.NoError(t, err)
	pub := key.PublicKey()

	data := []byte("sample")
	sig := key.Sign(data)
	require.Equal(t, SignatureLen, len(sig))
	assert.True(t, pub.Verify(sig, digestOf(data)))
}

func TestPrivateKeyAddress(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)

	require.Equal(t, key.PublicKey().Address(), key.Address())
	require.Equal(t, key.PublicKey().GetScriptHash(), key.GetScriptHash())
	require.Equal(t, byte('N'), key.Address()[0])
}

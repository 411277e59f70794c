package keys

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWIFEncodeDecode(t *testing.T) {
	keyHex := "0000000000000000000000000000000000000000000000000000000000000001"
	key, _ := hex.DecodeString(keyHex)

	wif, err := WIFEncode(key, WIFVersion, true)
	require.NoError(t, err)
	assert.Equal(t, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn", wif)

	w, err := WIFDecode(wif, WIFVersion)
	require.NoError(t, err)
	assert.Equal(t, keyHex, w.PrivateKey.String())
	assert.True(t, w.Compressed)
	assert.Equal(t, wif, w.S)
}

func TestWIFUncompressed(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)

	wif, err := WIFEncode(key.Bytes(), 0, false)
	require.NoError(t, err)

	w, err := WIFDecode(wif, 0)
	require.NoError(t, err)
	assert.False(t, w.Compressed)
	assert.EqualValues(t, WIFVersion, w.Version)
	assert.Equal(t, key.Bytes(), w.PrivateKey.Bytes())
}

func TestWIFRoundtripViaPrivateKey(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)

	key2, err := NewPrivateKeyFromWIF(key.WIF())
	require.NoError(t, err)
	require.Equal(t, key.Bytes(), key2.Bytes())
}

func TestWIFDecodeErrors(t *testing.T) {
	// Not base58 at all.
	_, err := WIFDecode("0O0l", WIFVersion)
	require.Error(t, err)

	// Garbled checksum.
	wif, err := WIFEncode(make([]byte, 31), WIFVersion, true)
	require.Error(t, err)
	require.Equal(t, "", wif)

	key, err := NewPrivateKey()
	require.NoError(t, err)
	good := key.WIF()
	bad := "K" + good[1:]
	if bad == good {
		bad = "L" + good[1:]
	}
	_, err = WIFDecode(bad, WIFVersion)
	require.Error(t, err)

	// Wrong version.
	_, err = WIFDecode(good, 0x42)
	require.Error(t, err)
}

package smartcontract

import (
	"encoding/binary"
	"testing"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/disasm"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/emit"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/interopnames"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeys(t *testing.T, n int) keys.PublicKeys {
	pubs := make(keys.PublicKeys, n)
	for i := range pubs {
		priv, err := keys.NewPrivateKey()
		require.NoError(t, err)
		pubs[i] = priv.PublicKey()
	}
	return pubs
}

func TestCreateSignatureRedeemScript(t *testing.T) {
	pubs := newKeys(t, 1)
	script, err := CreateSignatureRedeemScript(pubs[0])
	require.NoError(t, err)
	require.Equal(t, pubs[0].GetVerificationScript(), script)

	pub, ok := ParseSignatureContract(script)
	require.True(t, ok)
	require.Equal(t, pubs[0].Bytes(), pub)
	require.True(t, IsSignatureContract(script))
	require.False(t, IsMultiSigContract(script))
}

func TestCreateMultiSigRedeemScript(t *testing.T) {
	pubs := newKeys(t, 3)
	script, err := CreateMultiSigRedeemScript(2, pubs)
	require.NoError(t, err)

	m, gotKeys, ok := ParseMultiSigContract(script)
	require.True(t, ok)
	require.Equal(t, 2, m)
	require.Equal(t, 3, len(gotKeys))

	sorted := pubs.Copy()
	sorted.Sort()
	for i := range sorted {
		require.Equal(t, sorted[i].Bytes(), gotKeys[i])
	}

	require.True(t, IsMultiSigContract(script))
	require.False(t, IsSignatureContract(script))

	// Script contents do not depend on the initial key ordering.
	shuffled := keys.PublicKeys{pubs[2], pubs[0], pubs[1]}
	script2, err := CreateMultiSigRedeemScript(2, shuffled)
	require.NoError(t, err)
	require.Equal(t, script, script2)
}

func TestCreateMultiSigRedeemScriptErrors(t *testing.T) {
	pubs := newKeys(t, 2)

	_, err := CreateMultiSigRedeemScript(0, pubs)
	require.Error(t, err)

	_, err = CreateMultiSigRedeemScript(3, pubs)
	require.Error(t, err)
}

func TestCreateDefaultAndMajorityMultiSigRedeemScript(t *testing.T) {
	pubs := newKeys(t, 7)

	script, err := CreateDefaultMultiSigRedeemScript(pubs)
	require.NoError(t, err)
	m, _, ok := ParseMultiSigContract(script)
	require.True(t, ok)
	require.Equal(t, 5, m) // 7 - (7-1)/3

	script, err = CreateMajorityMultiSigRedeemScript(pubs)
	require.NoError(t, err)
	m, _, ok = ParseMultiSigContract(script)
	require.True(t, ok)
	require.Equal(t, 4, m) // 7/2 + 1
}

func TestParseMultiSigContractBad(t *testing.T) {
	pubs := newKeys(t, 2)
	script, err := CreateMultiSigRedeemScript(2, pubs)
	require.NoError(t, err)

	t.Run("wrong syscall", func(t *testing.T) {
		bad := make([]byte, len(script))
		copy(bad, script)
		bad[len(bad)-1] ^= 0xFF
		_, _, ok := ParseMultiSigContract(bad)
		require.False(t, ok)
	})
	t.Run("truncated", func(t *testing.T) {
		_, _, ok := ParseMultiSigContract(script[:len(script)-1])
		require.False(t, ok)
	})
	t.Run("trailing garbage", func(t *testing.T) {
		_, _, ok := ParseMultiSigContract(append(script[:len(script):len(script)], 0x40))
		require.False(t, ok)
	})
	t.Run("m greater than n", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		emit.Int(buf.BinWriter, 3)
		for _, pub := range pubs {
			emit.Bytes(buf.BinWriter, pub.Bytes())
		}
		emit.Int(buf.BinWriter, int64(len(pubs)))
		emit.Syscall(buf.BinWriter, interopnames.SystemCryptoCheckMultisig)
		_, _, ok := ParseMultiSigContract(buf.Bytes())
		require.False(t, ok)
	})
	t.Run("ends at key boundary", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		emit.Int(buf.BinWriter, 2)
		for _, pub := range pubs {
			emit.Bytes(buf.BinWriter, pub.Bytes())
		}
		require.NotPanics(t, func() {
			require.False(t, IsMultiSigContract(buf.Bytes()))
		})
	})
	t.Run("wrong key count", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		emit.Int(buf.BinWriter, 2)
		for _, pub := range pubs {
			emit.Bytes(buf.BinWriter, pub.Bytes())
		}
		emit.Int(buf.BinWriter, 3)
		emit.Syscall(buf.BinWriter, interopnames.SystemCryptoCheckMultisig)
		_, _, ok := ParseMultiSigContract(buf.Bytes())
		require.False(t, ok)
	})
}

func TestParseSignatureContractBad(t *testing.T) {
	pubs := newKeys(t, 1)
	script := pubs[0].GetVerificationScript()

	_, ok := ParseSignatureContract(script[:len(script)-1])
	assert.False(t, ok)

	bad := make([]byte, len(script))
	copy(bad, script)
	bad[0] = byte(opcode.PUSHDATA2)
	_, ok = ParseSignatureContract(bad)
	assert.False(t, ok)
}

func TestAccountScriptsDisassemble(t *testing.T) {
	t.Run("signature", func(t *testing.T) {
		pubs := newKeys(t, 1)
		script, err := CreateSignatureRedeemScript(pubs[0])
		require.NoError(t, err)

		instrs, err := disasm.Decode(script)
		require.NoError(t, err)
		require.Equal(t, 2, len(instrs))

		assert.Equal(t, opcode.PUSHDATA1, instrs[0].Opcode)
		assert.Equal(t, pubs[0].Bytes(), instrs[0].Operand)
		assert.Equal(t, opcode.SYSCALL, instrs[1].Opcode)
		name, err := interopnames.FromID(binary.LittleEndian.Uint32(instrs[1].Operand))
		require.NoError(t, err)
		assert.Equal(t, interopnames.SystemCryptoCheckSig, name)
	})
	t.Run("multisig", func(t *testing.T) {
		pubs := newKeys(t, 3)
		script, err := CreateMultiSigRedeemScript(2, pubs)
		require.NoError(t, err)

		instrs, err := disasm.Decode(script)
		require.NoError(t, err)
		require.Equal(t, 6, len(instrs))

		sorted := pubs.Copy()
		sorted.Sort()
		assert.Equal(t, opcode.PUSH2, instrs[0].Opcode)
		for i := range sorted {
			assert.Equal(t, opcode.PUSHDATA1, instrs[1+i].Opcode)
			assert.Equal(t, sorted[i].Bytes(), instrs[1+i].Operand)
		}
		assert.Equal(t, opcode.PUSH3, instrs[4].Opcode)
		assert.Equal(t, opcode.SYSCALL, instrs[5].Opcode)
		name, err := interopnames.FromID(binary.LittleEndian.Uint32(instrs[5].Operand))
		require.NoError(t, err)
		assert.Equal(t, interopnames.SystemCryptoCheckMultisig, name)
	})
}

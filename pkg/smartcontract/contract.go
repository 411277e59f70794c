package smartcontract

import (
	"encoding/binary"
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/emit"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/interopnames"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/opcode"
)

// MaxMultiSigKeys is the maximum number of keys allowed in a
// multisignature verification script.
const MaxMultiSigKeys = 1024

var (
	verifyInteropID      = interopnames.ToID([]byte(interopnames.SystemCryptoCheckSig))
	multisigInteropID    = interopnames.ToID([]byte(interopnames.SystemCryptoCheckMultisig))
	sigScriptLen         = 40 // PUSHDATA1 + key + SYSCALL.
	minMultisigScriptLen = 42 // m + PUSHDATA1 + key + n + SYSCALL.
)

// CreateSignatureRedeemScript creates a check signature script runnable by
// the VM.
func CreateSignatureRedeemScript(key *keys.PublicKey) ([]byte, error) {
	return key.GetVerificationScript(), nil
}

// CreateMultiSigRedeemScript creates an "m out of n" multisignature script
// runnable by the VM. The keys are sorted in their canonical order, so the
// resulting script doesn't depend on the slice ordering.
func CreateMultiSigRedeemScript(m int, publicKeys keys.PublicKeys) ([]byte, error) {
	if m < 1 {
		return nil, fmt.Errorf("param m cannot be smaller than 1, got %d", m)
	}
	if m > len(publicKeys) {
		return nil, fmt.Errorf("length of the signatures (%d) is higher then the number of public keys", m)
	}
	if len(publicKeys) > MaxMultiSigKeys {
		return nil, fmt.Errorf("public key count %d exceeds maximum of %d", len(publicKeys), MaxMultiSigKeys)
	}

	buf := io.NewBufBinWriter()
	emit.Int(buf.BinWriter, int64(m))
	sorted := publicKeys.Copy()
	sorted.Sort()
	for _, pubKey := range sorted {
		emit.Bytes(buf.BinWriter, pubKey.Bytes())
	}
	emit.Int(buf.BinWriter, int64(len(publicKeys)))
	emit.Syscall(buf.BinWriter, interopnames.SystemCryptoCheckMultisig)

	if buf.Err != nil {
		return nil, buf.Err
	}
	return buf.Bytes(), nil
}

// CreateDefaultMultiSigRedeemScript creates an "m out of n" multisignature
// script using the list of public keys given with m set to the BFT
// majority, n - (n-1)/3.
func CreateDefaultMultiSigRedeemScript(publicKeys keys.PublicKeys) ([]byte, error) {
	n := len(publicKeys)
	m := n - (n-1)/3
	return CreateMultiSigRedeemScript(m, publicKeys)
}

// CreateMajorityMultiSigRedeemScript creates an "m out of n"
// multisignature script using the list of public keys given with m set to
// the simple majority, n/2+1.
func CreateMajorityMultiSigRedeemScript(publicKeys keys.PublicKeys) ([]byte, error) {
	n := len(publicKeys)
	m := n/2 + 1
	return CreateMultiSigRedeemScript(m, publicKeys)
}

// IsSignatureContract checks whether the passed script is a signature
// check contract.
func IsSignatureContract(script []byte) bool {
	_, ok := ParseSignatureContract(script)
	return ok
}

// ParseSignatureContract parses a simple signature contract and returns
// the public key it uses.
func ParseSignatureContract(script []byte) ([]byte, bool) {
	if len(script) != sigScriptLen {
		return nil, false
	}
	if opcode.Opcode(script[0]) != opcode.PUSHDATA1 || script[1] != 33 ||
		opcode.Opcode(script[35]) != opcode.SYSCALL ||
		binary.LittleEndian.Uint32(script[36:]) != verifyInteropID {
		return nil, false
	}
	return script[2:35], true
}

// IsMultiSigContract checks whether the passed script is a multi-signature
// contract.
func IsMultiSigContract(script []byte) bool {
	_, _, ok := ParseMultiSigContract(script)
	return ok
}

// ParseMultiSigContract parses a multi-signature contract and returns the
// number of signatures required along with the public keys used, in the
// script order.
func ParseMultiSigContract(script []byte) (int, [][]byte, bool) {
	var nsigs, nkeys int

	if len(script) < minMultisigScriptLen {
		return nsigs, nil, false
	}
	nsigs, pos, ok := getSmallInt(script, 0)
	if !ok || nsigs < 1 || nsigs > MaxMultiSigKeys {
		return nsigs, nil, false
	}
	var pubs [][]byte
	for pos+1 < len(script) && opcode.Opcode(script[pos]) == opcode.PUSHDATA1 {
		if script[pos+1] != 33 || pos+35 > len(script) {
			return nsigs, nil, false
		}
		pubs = append(pubs, script[pos+2:pos+35])
		nkeys++
		pos += 35
	}
	if nkeys < nsigs || nkeys > MaxMultiSigKeys {
		return nsigs, nil, false
	}
	nkeys2, pos, ok := getSmallInt(script, pos)
	if !ok || nkeys2 != nkeys {
		return nsigs, nil, false
	}
	if len(script) != pos+5 || opcode.Opcode(script[pos]) != opcode.SYSCALL ||
		binary.LittleEndian.Uint32(script[pos+1:]) != multisigInteropID {
		return nsigs, nil, false
	}
	return nsigs, pubs, true
}

// getSmallInt reads a positive integer pushed with one of the compact
// integer push opcodes and returns it along with the next offset.
func getSmallInt(script []byte, pos int) (int, int, bool) {
	if pos >= len(script) {
		return 0, 0, false
	}
	op := opcode.Opcode(script[pos])
	switch {
	case op >= opcode.PUSH1 && op <= opcode.PUSH16:
		return int(op-opcode.PUSH0), pos + 1, true
	case op == opcode.PUSHINT8:
		if pos+2 > len(script) {
			return 0, 0, false
		}
		return int(int8(script[pos+1])), pos + 2, true
	case op == opcode.PUSHINT16:
		if pos+3 > len(script) {
			return 0, 0, false
		}
		v := int16(binary.LittleEndian.Uint16(script[pos+1:]))
		return int(v), pos + 3, true
	default:
		return 0, 0, false
	}
}

package txbuilder

import (
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/core/transaction"
	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/smartcontract"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/emit"
	"go.uber.org/zap"
)

// Sign obtains a signature for every signer through the callback, builds
// the witnesses in signer order and moves the builder to its terminal
// Signed state. The transaction hash covers everything but the witnesses,
// so attaching them does not change it.
func (b *Builder) Sign(cb SigningCallback) error {
	if b.state != feeEstimated {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}

	txHash := b.tx.Hash()
	witnesses := make([]transaction.Witness, len(b.tx.Signers))
	for i, signer := range b.tx.Signers {
		sig, err := cb(txHash, signer)
		if err != nil {
			return fmt.Errorf("signer %s: %w", signer.Account.StringLE(), err)
		}
		inv, err := invocationScript(b.scripts[i], sig)
		if err != nil {
			return fmt.Errorf("signer %s: %w", signer.Account.StringLE(), err)
		}
		witnesses[i] = transaction.Witness{
			InvocationScript:   inv,
			VerificationScript: b.scripts[i],
		}
	}
	b.tx.Scripts = witnesses
	b.state = signed
	b.log.Debug("transaction signed",
		zap.String("hash", txHash.StringLE()),
		zap.Int("witnesses", len(witnesses)))
	return nil
}

// invocationScript wraps raw signature bytes into an invocation script
// matching the verification script. Signature and multisignature contracts
// get their signatures pushed via PUSHDATA1, anything else passes the
// callback's output through as a ready-made invocation script.
func invocationScript(verificationScript, sig []byte) ([]byte, error) {
	var nSigs int
	switch {
	case smartcontract.IsSignatureContract(verificationScript):
		nSigs = 1
	case smartcontract.IsMultiSigContract(verificationScript):
		nSigs, _, _ = smartcontract.ParseMultiSigContract(verificationScript)
	default:
		return sig, nil
	}

	if len(sig) != nSigs*keys.SignatureLen {
		return nil, fmt.Errorf("expected %d signature bytes, got %d",
			nSigs*keys.SignatureLen, len(sig))
	}
	w := io.NewBufBinWriter()
	for i := 0; i < nSigs; i++ {
		emit.Bytes(w.BinWriter, sig[i*keys.SignatureLen:(i+1)*keys.SignatureLen])
	}
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

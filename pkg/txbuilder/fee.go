package txbuilder

import (
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/config"
	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/encoding/fixedn"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/smartcontract"
	"go.uber.org/zap"
)

// Predicted size of an invocation script pushing a single signature.
const sigInvocationSize = 2 + keys.SignatureLen

// EstimateFees validates the accumulated configuration, fills in
// ValidUntilBlock and both fees and moves the builder to the FeeEstimated
// state. It may be called again to re-price the same transaction as long
// as it has not been signed.
func (b *Builder) EstimateFees(q ChainQuerier) error {
	if b.state == signed {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	if err := b.validate(); err != nil {
		return err
	}

	height, err := q.BlockCount()
	if err != nil {
		return err
	}
	increment := b.cfg.MaxValidUntilBlockIncrement
	if increment == 0 {
		increment = config.DefaultMaxValidUntilBlockIncrement
	}
	if b.tx.ValidUntilBlock == 0 {
		b.tx.ValidUntilBlock = height + increment
	} else if b.tx.ValidUntilBlock <= height || b.tx.ValidUntilBlock > height+increment {
		return fmt.Errorf("%w: %d is outside of the (%d, %d] window",
			ErrInvalidValidUntilBlock, b.tx.ValidUntilBlock, height, height+increment)
	}

	if !b.sysFeeSet {
		sysFee, err := q.EstimateSystemFee(b.tx.Script, b.tx.Signers)
		if err != nil {
			return err
		}
		b.tx.SystemFee = sysFee
	}

	if !b.netFeeSet {
		netFee, err := b.calculateNetworkFee(q)
		if err != nil {
			return err
		}
		b.tx.NetworkFee = netFee
	}

	b.state = feeEstimated
	b.log.Debug("fees estimated",
		zap.Stringer("sysfee", fixedn.Fixed8(b.tx.SystemFee)),
		zap.Stringer("netfee", fixedn.Fixed8(b.tx.NetworkFee)),
		zap.Uint32("vub", b.tx.ValidUntilBlock))
	return nil
}

// calculateNetworkFee prices the transaction as predicted serialized size
// times fee-per-byte plus the verification cost of every witness.
func (b *Builder) calculateNetworkFee(q ChainQuerier) (int64, error) {
	feePerByte, err := q.FeePerByte()
	if err != nil {
		return 0, err
	}
	if feePerByte == 0 {
		feePerByte = b.cfg.FeePerByte
	}

	unsigned, err := b.tx.EncodeHashableFields()
	if err != nil {
		return 0, err
	}
	size := len(unsigned) + io.GetVarIntSize(len(b.scripts))

	var verificationFee int64
	for _, vs := range b.scripts {
		invSize := invocationSize(vs)
		size += io.GetVarIntSize(invSize) + invSize
		size += io.GetVarIntSize(len(vs)) + len(vs)

		cost, err := q.VerificationCost(vs, invSize)
		if err != nil {
			return 0, err
		}
		verificationFee += cost
	}
	return int64(size)*feePerByte + verificationFee, nil
}

// invocationSize predicts the size of the invocation script matching the
// given verification script. Contract-based witnesses are assumed to need
// no invocation data.
func invocationSize(verificationScript []byte) int {
	if smartcontract.IsSignatureContract(verificationScript) {
		return sigInvocationSize
	}
	if m, _, ok := smartcontract.ParseMultiSigContract(verificationScript); ok {
		return m * sigInvocationSize
	}
	return 0
}

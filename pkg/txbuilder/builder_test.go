package txbuilder

import (
	"errors"
	"testing"

	"github.com/R3E-Network/neo3-sdk/pkg/config"
	"github.com/R3E-Network/neo3-sdk/pkg/config/netmode"
	"github.com/R3E-Network/neo3-sdk/pkg/core/transaction"
	"github.com/R3E-Network/neo3-sdk/pkg/crypto/hash"
	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/smartcontract"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/opcode"
	"github.com/stretchr/testify/require"
)

// fakeQuerier implements ChainQuerier with canned responses.
type fakeQuerier struct {
	height     uint32
	sysFee     int64
	feePerByte int64
	verifCost  int64
	err        error
}

func (q *fakeQuerier) EstimateSystemFee(script []byte, signers []transaction.Signer) (int64, error) {
	return q.sysFee, q.err
}

func (q *fakeQuerier) BlockCount() (uint32, error) {
	return q.height, q.err
}

func (q *fakeQuerier) FeePerByte() (int64, error) {
	return q.feePerByte, q.err
}

func (q *fakeQuerier) VerificationCost(verificationScript []byte, invocationSize int) (int64, error) {
	return q.verifCost, q.err
}

func testQuerier() *fakeQuerier {
	return &fakeQuerier{
		height:     1000,
		sysFee:     100500,
		feePerByte: 1000,
		verifCost:  1_000_000,
	}
}

func testKeyAndSigner(t *testing.T) (*keys.PrivateKey, transaction.Signer, []byte) {
	key, err := keys.NewPrivateKey()
	require.NoError(t, err)
	vs := key.PublicKey().GetVerificationScript()
	signer := transaction.Signer{
		Account: hash.Hash160(vs),
		Scopes:  transaction.CalledByEntry,
	}
	return key, signer, vs
}

func testCallback(t *testing.T, key *keys.PrivateKey) SigningCallback {
	return func(txHash util.Uint256, signer transaction.Signer) ([]byte, error) {
		return key.SignHashable(uint32(netmode.UnitTestNet), txHash), nil
	}
}

func TestBuildAndSign(t *testing.T) {
	key, signer, vs := testKeyAndSigner(t)
	q := testQuerier()

	b := New(config.Default(netmode.UnitTestNet))
	require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
	require.NoError(t, b.AddSigner(signer, vs))

	data, err := b.BuildAndSign(q, testCallback(t, key))
	require.NoError(t, err)

	tx, err := transaction.NewTransactionFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, q.sysFee, tx.SystemFee)
	require.Equal(t, signer.Account, tx.Sender())
	require.Equal(t, q.height+config.DefaultMaxValidUntilBlockIncrement, tx.ValidUntilBlock)

	// The predicted witness size matches the actual one, so the network
	// fee covers the signed transaction exactly.
	require.Equal(t, int64(tx.Size())*q.feePerByte+q.verifCost, tx.NetworkFee)

	// The witness pushes a single verifiable signature.
	require.Len(t, tx.Scripts, 1)
	w := tx.Scripts[0]
	require.Equal(t, vs, w.VerificationScript)
	require.EqualValues(t, opcode.PUSHDATA1, w.InvocationScript[0])
	require.EqualValues(t, keys.SignatureLen, w.InvocationScript[1])
	sig := w.InvocationScript[2:]
	require.True(t, key.PublicKey().VerifyHashable(sig, uint32(netmode.UnitTestNet), tx.Hash()))
}

func TestBuildAndSignMultisig(t *testing.T) {
	var (
		privs = make([]*keys.PrivateKey, 3)
		pubs  = make(keys.PublicKeys, 3)
	)
	for i := range privs {
		key, err := keys.NewPrivateKey()
		require.NoError(t, err)
		privs[i] = key
		pubs[i] = key.PublicKey()
	}
	vs, err := smartcontract.CreateMultiSigRedeemScript(2, pubs)
	require.NoError(t, err)
	signer := transaction.Signer{
		Account: hash.Hash160(vs),
		Scopes:  transaction.CalledByEntry,
	}

	b := New(config.Default(netmode.UnitTestNet))
	require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
	require.NoError(t, b.AddSigner(signer, vs))

	cb := func(txHash util.Uint256, s transaction.Signer) ([]byte, error) {
		var sigs []byte
		for _, key := range privs[:2] {
			sigs = append(sigs, key.SignHashable(uint32(netmode.UnitTestNet), txHash)...)
		}
		return sigs, nil
	}
	data, err := b.BuildAndSign(testQuerier(), cb)
	require.NoError(t, err)

	tx, err := transaction.NewTransactionFromBytes(data)
	require.NoError(t, err)
	require.Len(t, tx.Scripts, 1)

	// Two signatures pushed, PUSHDATA1 each.
	inv := tx.Scripts[0].InvocationScript
	require.Equal(t, 2*(2+keys.SignatureLen), len(inv))
	require.EqualValues(t, opcode.PUSHDATA1, inv[0])
	require.EqualValues(t, opcode.PUSHDATA1, inv[2+keys.SignatureLen])
}

func TestBuilderValidation(t *testing.T) {
	_, signer, vs := testKeyAndSigner(t)

	var cases = []struct {
		name      string
		configure func(t *testing.T, b *Builder)
		err       error
	}{
		{"empty script", func(t *testing.T, b *Builder) {
			require.NoError(t, b.AddSigner(signer, vs))
		}, ErrEmptyScript},
		{"no signers", func(t *testing.T, b *Builder) {
			require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
		}, ErrNoSigners},
		{"too many signers", func(t *testing.T, b *Builder) {
			require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
			for i := 0; i < transaction.MaxSigners+1; i++ {
				s := transaction.Signer{Account: util.Uint160{byte(i)}}
				require.NoError(t, b.AddSigner(s, nil))
			}
		}, ErrTooManySigners},
		{"duplicate signer", func(t *testing.T, b *Builder) {
			require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
			require.NoError(t, b.AddSigner(signer, vs))
			require.NoError(t, b.AddSigner(signer, vs))
		}, ErrDuplicateSigner},
		{"too many attributes", func(t *testing.T, b *Builder) {
			require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
			require.NoError(t, b.AddSigner(signer, vs))
			for i := 0; i < transaction.MaxAttributes+1; i++ {
				attr := transaction.Attribute{
					Type:  transaction.ConflictsT,
					Value: &transaction.Conflicts{Hash: util.Uint256{byte(i)}},
				}
				require.NoError(t, b.AddAttribute(attr))
			}
		}, ErrTooManyAttributes},
		{"duplicate high priority", func(t *testing.T, b *Builder) {
			require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
			require.NoError(t, b.AddSigner(signer, vs))
			require.NoError(t, b.AddAttribute(transaction.Attribute{Type: transaction.HighPriorityT}))
			require.NoError(t, b.AddAttribute(transaction.Attribute{Type: transaction.HighPriorityT}))
		}, ErrDuplicateAttribute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(config.Default(netmode.UnitTestNet))
			tc.configure(t, b)
			require.ErrorIs(t, b.EstimateFees(testQuerier()), tc.err)
		})
	}
}

func TestBuilderValidUntilBlock(t *testing.T) {
	_, signer, vs := testKeyAndSigner(t)
	q := testQuerier()

	newBuilder := func(t *testing.T) *Builder {
		b := New(config.Default(netmode.UnitTestNet))
		require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
		require.NoError(t, b.AddSigner(signer, vs))
		return b
	}

	t.Run("at current height", func(t *testing.T) {
		b := newBuilder(t)
		require.NoError(t, b.SetValidUntilBlock(q.height))
		require.ErrorIs(t, b.EstimateFees(q), ErrInvalidValidUntilBlock)
	})
	t.Run("past the window", func(t *testing.T) {
		b := newBuilder(t)
		require.NoError(t, b.SetValidUntilBlock(q.height+config.DefaultMaxValidUntilBlockIncrement+1))
		require.ErrorIs(t, b.EstimateFees(q), ErrInvalidValidUntilBlock)
	})
	t.Run("explicit valid value", func(t *testing.T) {
		b := newBuilder(t)
		require.NoError(t, b.SetValidUntilBlock(q.height+1))
		require.NoError(t, b.EstimateFees(q))
		require.Equal(t, q.height+1, b.Transaction().ValidUntilBlock)
	})
}

func TestBuilderStateMachine(t *testing.T) {
	key, signer, vs := testKeyAndSigner(t)
	q := testQuerier()

	b := New(config.Default(netmode.UnitTestNet))
	require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
	require.NoError(t, b.AddSigner(signer, vs))

	// Not signed yet.
	_, err := b.Bytes()
	require.ErrorIs(t, err, ErrIllegalState)
	require.ErrorIs(t, b.Sign(testCallback(t, key)), ErrIllegalState)

	require.NoError(t, b.EstimateFees(q))

	// Re-estimation is allowed until the transaction is signed.
	require.NoError(t, b.EstimateFees(q))

	// Mutation is not.
	require.ErrorIs(t, b.SetScript(nil), ErrIllegalState)
	require.ErrorIs(t, b.SetNonce(42), ErrIllegalState)
	require.ErrorIs(t, b.AddSigner(transaction.Signer{}, nil), ErrIllegalState)
	require.ErrorIs(t, b.AddAttribute(transaction.Attribute{}), ErrIllegalState)

	require.NoError(t, b.Sign(testCallback(t, key)))
	require.ErrorIs(t, b.EstimateFees(q), ErrIllegalState)
	require.ErrorIs(t, b.Sign(testCallback(t, key)), ErrIllegalState)

	data, err := b.Bytes()
	require.NoError(t, err)
	_, err = transaction.NewTransactionFromBytes(data)
	require.NoError(t, err)
}

func TestBuilderQuerierErrors(t *testing.T) {
	key, signer, vs := testKeyAndSigner(t)
	boom := errors.New("node unavailable")

	b := New(config.Default(netmode.UnitTestNet))
	require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
	require.NoError(t, b.AddSigner(signer, vs))

	q := testQuerier()
	q.err = boom
	_, err := b.BuildAndSign(q, testCallback(t, key))
	require.ErrorIs(t, err, boom)
}

func TestBuilderSignerAccountMismatch(t *testing.T) {
	_, _, vs := testKeyAndSigner(t)
	b := New(config.Default(netmode.UnitTestNet))
	err := b.AddSigner(transaction.Signer{Account: util.Uint160{0xFF}}, vs)
	require.ErrorIs(t, err, ErrAccountMismatch)
}

func TestBuilderSigningErrors(t *testing.T) {
	_, signer, vs := testKeyAndSigner(t)
	q := testQuerier()

	t.Run("callback failure", func(t *testing.T) {
		b := New(config.Default(netmode.UnitTestNet))
		require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
		require.NoError(t, b.AddSigner(signer, vs))
		require.NoError(t, b.EstimateFees(q))

		boom := errors.New("hardware wallet unplugged")
		err := b.Sign(func(util.Uint256, transaction.Signer) ([]byte, error) {
			return nil, boom
		})
		require.ErrorIs(t, err, boom)
	})
	t.Run("bad signature length", func(t *testing.T) {
		b := New(config.Default(netmode.UnitTestNet))
		require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
		require.NoError(t, b.AddSigner(signer, vs))
		require.NoError(t, b.EstimateFees(q))

		err := b.Sign(func(util.Uint256, transaction.Signer) ([]byte, error) {
			return []byte{1, 2, 3}, nil
		})
		require.Error(t, err)
	})
}

func TestBuilderManualFees(t *testing.T) {
	key, signer, vs := testKeyAndSigner(t)
	q := testQuerier()

	b := New(config.Default(netmode.UnitTestNet))
	require.NoError(t, b.SetScript([]byte{byte(opcode.PUSH1)}))
	require.NoError(t, b.AddSigner(signer, vs))
	require.NoError(t, b.SetSystemFee(42))
	require.NoError(t, b.SetNetworkFee(43))

	data, err := b.BuildAndSign(q, testCallback(t, key))
	require.NoError(t, err)

	tx, err := transaction.NewTransactionFromBytes(data)
	require.NoError(t, err)
	require.EqualValues(t, 42, tx.SystemFee)
	require.EqualValues(t, 43, tx.NetworkFee)
}

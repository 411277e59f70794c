// Package txbuilder provides a stateful helper that assembles, prices and
// signs Neo N3 transactions. It owns no key material and performs no I/O
// itself, all chain data comes through the ChainQuerier interface and all
// signatures come through a caller-supplied callback.
package txbuilder

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/config"
	"github.com/R3E-Network/neo3-sdk/pkg/core/transaction"
	"github.com/R3E-Network/neo3-sdk/pkg/crypto/hash"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"go.uber.org/zap"
)

// ChainQuerier is the node-facing collaborator the builder needs to price
// a transaction. Errors from it are returned to the caller unchanged, the
// builder never retries on its own.
type ChainQuerier interface {
	// EstimateSystemFee simulates the script with the given signers and
	// returns the GAS consumed by the execution.
	EstimateSystemFee(script []byte, signers []transaction.Signer) (int64, error)
	// BlockCount returns the current chain height.
	BlockCount() (uint32, error)
	// FeePerByte returns the current network fee price per transaction byte.
	FeePerByte() (int64, error)
	// VerificationCost returns the execution cost of running the given
	// verification script against an invocation script of the given size.
	VerificationCost(verificationScript []byte, invocationSize int) (int64, error)
}

// SigningCallback produces a signature of the given transaction hash on
// behalf of the given signer. For multisignature accounts it returns the
// required signatures concatenated. Key custody stays entirely on the
// callback side.
type SigningCallback func(txHash util.Uint256, signer transaction.Signer) ([]byte, error)

// Builder errors.
var (
	// ErrIllegalState is returned when an operation is not allowed in the
	// builder's current phase, like mutating an already signed transaction.
	ErrIllegalState = errors.New("operation not allowed in this builder state")

	ErrEmptyScript            = errors.New("no script")
	ErrNoSigners              = errors.New("no signers")
	ErrTooManySigners         = errors.New("too many signers")
	ErrDuplicateSigner        = errors.New("duplicate signer")
	ErrAccountMismatch        = errors.New("signer account does not match verification script")
	ErrTooManyAttributes      = errors.New("too many attributes")
	ErrDuplicateAttribute     = errors.New("duplicate singleton attribute")
	ErrInvalidValidUntilBlock = errors.New("invalid ValidUntilBlock")
)

// state is the phase of the builder's lifecycle. Transitions go strictly
// forward: configuring, feeEstimated, signed.
type state int

const (
	configuring state = iota
	feeEstimated
	signed
)

func (s state) String() string {
	switch s {
	case configuring:
		return "Configuring"
	case feeEstimated:
		return "FeeEstimated"
	case signed:
		return "Signed"
	default:
		return "Unknown"
	}
}

// Builder assembles a transaction step by step. It is not safe for
// concurrent use, each instance belongs to a single construction flow.
type Builder struct {
	cfg config.ProtocolConfiguration
	log *zap.Logger

	state state
	tx    *transaction.Transaction

	// Verification script for each signer, index-matched with tx.Signers.
	scripts [][]byte

	sysFeeSet bool
	netFeeSet bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for debug traces of fee estimation and
// state transitions. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// New creates a Builder in the configuring state with a random nonce.
func New(cfg config.ProtocolConfiguration, opts ...Option) *Builder {
	b := &Builder{
		cfg: cfg,
		log: zap.NewNop(),
		tx:  transaction.New(nil, 0),
	}
	b.tx.Nonce = randomNonce()
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func randomNonce() uint32 {
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// SetScript sets the script the transaction is going to execute.
func (b *Builder) SetScript(script []byte) error {
	if b.state != configuring {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	b.tx.Script = script
	return nil
}

// SetNonce overrides the randomly generated nonce.
func (b *Builder) SetNonce(nonce uint32) error {
	if b.state != configuring {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	b.tx.Nonce = nonce
	return nil
}

// SetValidUntilBlock sets an explicit expiration height. When unset, the
// maximum allowed by the protocol configuration is used.
func (b *Builder) SetValidUntilBlock(vub uint32) error {
	if b.state != configuring {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	b.tx.ValidUntilBlock = vub
	return nil
}

// SetSystemFee sets the system fee explicitly, skipping remote estimation.
func (b *Builder) SetSystemFee(fee int64) error {
	if b.state != configuring {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	b.tx.SystemFee = fee
	b.sysFeeSet = true
	return nil
}

// SetNetworkFee sets the network fee explicitly, skipping calculation.
func (b *Builder) SetNetworkFee(fee int64) error {
	if b.state != configuring {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	b.tx.NetworkFee = fee
	b.netFeeSet = true
	return nil
}

// AddSigner appends a signer together with its verification script. The
// first added signer is the sender. An empty verification script denotes
// a contract-based witness whose invocation script the signing callback
// returns verbatim.
func (b *Builder) AddSigner(signer transaction.Signer, verificationScript []byte) error {
	if b.state != configuring {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	if len(verificationScript) != 0 && hash.Hash160(verificationScript) != signer.Account {
		return fmt.Errorf("%w: %s", ErrAccountMismatch, signer.Account.StringLE())
	}
	b.tx.Signers = append(b.tx.Signers, signer)
	b.scripts = append(b.scripts, verificationScript)
	return nil
}

// AddAttribute appends a transaction attribute.
func (b *Builder) AddAttribute(attr transaction.Attribute) error {
	if b.state != configuring {
		return fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	b.tx.Attributes = append(b.tx.Attributes, attr)
	return nil
}

// validate checks the accumulated configuration before fee estimation.
func (b *Builder) validate() error {
	if len(b.tx.Script) == 0 {
		return ErrEmptyScript
	}
	if len(b.tx.Signers) == 0 {
		return ErrNoSigners
	}
	if len(b.tx.Signers) > transaction.MaxSigners {
		return fmt.Errorf("%w: %d", ErrTooManySigners, len(b.tx.Signers))
	}
	for i := range b.tx.Signers {
		for j := i + 1; j < len(b.tx.Signers); j++ {
			if b.tx.Signers[i].Account.Equals(b.tx.Signers[j].Account) {
				return fmt.Errorf("%w: %s", ErrDuplicateSigner, b.tx.Signers[i].Account.StringLE())
			}
		}
	}
	if len(b.tx.Attributes) > transaction.MaxAttributes {
		return fmt.Errorf("%w: %d", ErrTooManyAttributes, len(b.tx.Attributes))
	}
	seen := make(map[transaction.AttrType]bool)
	for _, attr := range b.tx.Attributes {
		switch attr.Type {
		case transaction.HighPriorityT, transaction.OracleResponseT, transaction.NotValidBeforeT:
			if seen[attr.Type] {
				return fmt.Errorf("%w: %s", ErrDuplicateAttribute, attr.Type)
			}
			seen[attr.Type] = true
		}
	}
	return nil
}

// Transaction returns a deep copy of the transaction being built.
func (b *Builder) Transaction() *transaction.Transaction {
	return b.tx.Copy()
}

// Bytes returns the serialized signed transaction.
func (b *Builder) Bytes() ([]byte, error) {
	if b.state != signed {
		return nil, fmt.Errorf("%w: %s", ErrIllegalState, b.state)
	}
	data := b.tx.Bytes()
	if data == nil {
		return nil, errors.New("failed to serialize transaction")
	}
	return data, nil
}

// BuildAndSign runs fee estimation and signing in one step and returns the
// serialized signed transaction.
func (b *Builder) BuildAndSign(q ChainQuerier, cb SigningCallback) ([]byte, error) {
	if err := b.EstimateFees(q); err != nil {
		return nil, err
	}
	if err := b.Sign(cb); err != nil {
		return nil, err
	}
	return b.Bytes()
}

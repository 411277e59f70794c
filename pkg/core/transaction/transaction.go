package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/R3E-Network/neo3-sdk/pkg/crypto/hash"
	"github.com/R3E-Network/neo3-sdk/pkg/encoding/address"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
)

const (
	// MaxTransactionSize is the upper limit size in bytes that a
	// transaction can reach. It is set to be 102400.
	MaxTransactionSize = 102400
	// MaxAttributes is the maximum number of attributes per transaction.
	MaxAttributes = 16
	// MaxSigners is the maximum number of cosigners per transaction.
	MaxSigners = 16
	// DummyVersion represents the reserved transaction version for trimmed
	// transactions.
	DummyVersion = 255
)

// Transaction errors returned by constraint checks.
var (
	// ErrInvalidWitnessNum returns when the number of witnesses does not
	// match the number of signers.
	ErrInvalidWitnessNum = errors.New("number of witnesses does not match signers")

	ErrInvalidVersion     = errors.New("only version 0 is supported")
	ErrNegativeSystemFee  = errors.New("negative system fee")
	ErrNegativeNetworkFee = errors.New("negative network fee")
	ErrTooBigFees         = errors.New("too big fees: int64 overflow")
	ErrEmptySigners       = errors.New("signers array should contain sender")
	ErrNonUniqueSigners   = errors.New("transaction signers should be unique")
	ErrInvalidAttribute   = errors.New("invalid attribute")
	ErrEmptyScript        = errors.New("no script")
	ErrTooManySigners     = errors.New("too many signers")
	ErrTooManyAttributes  = errors.New("too many attributes")
)

// Transaction is a process recorded in the NEO blockchain.
type Transaction struct {
	// The trading version which is currently 0.
	Version uint8

	// Random number to avoid hash collision.
	Nonce uint32

	// Fee to be burned, in fixed8 GAS units.
	SystemFee int64

	// Fee to be distributed to consensus nodes, in fixed8 GAS units.
	NetworkFee int64

	// Maximum blockchain height exceeding which transaction should fail
	// verification.
	ValidUntilBlock uint32

	// Code to run in NeoVM for this transaction.
	Script []byte

	// Transaction attributes.
	Attributes []Attribute

	// Transaction signers list (starts with the sender).
	Signers []Signer

	// The scripts that come with this transaction. Scripts exist out of
	// the verification script and invocation script.
	Scripts []Witness

	// size is transaction's serialized size.
	size int

	// Hash of the transaction (double SHA256 of the signed part).
	hash util.Uint256

	// Whether the hash is correct.
	hashed bool
}

// New returns a new transaction to execute the given script paying the
// given system fee.
func New(script []byte, gas int64) *Transaction {
	return &Transaction{
		Version:    0,
		Script:     script,
		SystemFee:  gas,
		Attributes: []Attribute{},
		Signers:    []Signer{},
		Scripts:    []Witness{},
	}
}

// NewTransactionFromBytes decodes a byte array into a Transaction, which
// must be fully serialized, trailing bytes are an error.
func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	tx := &Transaction{}
	r := io.NewBinReaderFromBuf(b)
	tx.DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Len() != 0 {
		return nil, errors.New("additional data after the transaction")
	}
	tx.size = len(b)
	return tx, nil
}

// Hash returns the hash of the transaction which is the double SHA256 of
// the serialized form of the transaction without the witnesses.
func (t *Transaction) Hash() util.Uint256 {
	if !t.hashed {
		if t.createHash() != nil {
			panic("failed to compute hash!")
		}
	}
	return t.hash
}

// Sender returns the sender of the transaction which is always on the
// first place in the transaction's signers list.
func (t *Transaction) Sender() util.Uint160 {
	if len(t.Signers) == 0 {
		panic("transaction does not have signers")
	}
	return t.Signers[0].Account
}

// HasSigner returns true if the given account is present in the list of
// signers.
func (t *Transaction) HasSigner(hash util.Uint160) bool {
	for _, h := range t.Signers {
		if h.Account.Equals(hash) {
			return true
		}
	}
	return false
}

// GetAttributes returns the list of transaction's attributes of the given
// type. Returns nil in case if attributes not found.
func (t *Transaction) GetAttributes(typ AttrType) []Attribute {
	var result []Attribute
	for _, attr := range t.Attributes {
		if attr.Type == typ {
			result = append(result, attr)
		}
	}
	return result
}

// HasAttribute returns true if the transaction has an attribute of the
// given type.
func (t *Transaction) HasAttribute(typ AttrType) bool {
	for i := range t.Attributes {
		if t.Attributes[i].Type == typ {
			return true
		}
	}
	return false
}

// decodeHashableFields decodes the fields that are used for signing the
// transaction, which are all fields except the scripts.
func (t *Transaction) decodeHashableFields(br *io.BinReader) {
	t.Version = uint8(br.ReadB())
	t.Nonce = br.ReadU32LE()
	t.SystemFee = int64(br.ReadU64LE())
	t.NetworkFee = int64(br.ReadU64LE())
	t.ValidUntilBlock = br.ReadU32LE()
	br.ReadArray(&t.Signers, MaxSigners)
	br.ReadArray(&t.Attributes, MaxAttributes)
	t.Script = br.ReadVarBytes(MaxTransactionSize)
	if br.Err == nil {
		br.Err = t.isValid()
	}
}

// DecodeBinary implements the Serializable interface.
func (t *Transaction) DecodeBinary(br *io.BinReader) {
	start := br.Position()
	t.decodeHashableFields(br)
	if br.Err != nil {
		return
	}
	br.ReadArray(&t.Scripts, MaxSigners)
	if br.Err != nil {
		return
	}
	if len(t.Scripts) != len(t.Signers) {
		br.Err = ErrInvalidWitnessNum
		return
	}
	t.size = br.Position() - start
	br.Err = t.createHash()
}

// EncodeBinary implements the Serializable interface.
func (t *Transaction) EncodeBinary(bw *io.BinWriter) {
	t.encodeHashableFields(bw)
	bw.WriteArray(t.Scripts)
}

// encodeHashableFields encodes the fields that are not used for signing
// the transaction, which are all fields except the scripts.
func (t *Transaction) encodeHashableFields(bw *io.BinWriter) {
	bw.WriteB(byte(t.Version))
	bw.WriteU32LE(t.Nonce)
	bw.WriteU64LE(uint64(t.SystemFee))
	bw.WriteU64LE(uint64(t.NetworkFee))
	bw.WriteU32LE(t.ValidUntilBlock)
	bw.WriteArray(t.Signers)
	bw.WriteArray(t.Attributes)
	bw.WriteVarBytes(t.Script)
}

// EncodeHashableFields returns the serialized transaction's fields which
// are signed by the witnesses, i.e. everything but the witnesses.
func (t *Transaction) EncodeHashableFields() ([]byte, error) {
	bw := io.NewBufBinWriter()
	t.encodeHashableFields(bw.BinWriter)
	if bw.Err != nil {
		return nil, bw.Err
	}
	return bw.Bytes(), nil
}

// createHash creates the hash of the transaction.
func (t *Transaction) createHash() error {
	b, err := t.EncodeHashableFields()
	if err != nil {
		return err
	}
	t.hash = hash.DoubleSha256(b)
	t.hashed = true
	return nil
}

// DecodeHashableFields decodes a part of the transaction containing the
// hashable fields from the given buffer.
func (t *Transaction) DecodeHashableFields(buf []byte) error {
	r := io.NewBinReaderFromBuf(buf)
	t.decodeHashableFields(r)
	if r.Err != nil {
		return r.Err
	}
	if r.Len() != 0 {
		return errors.New("additional data after the signed part")
	}
	t.Scripts = make([]Witness, 0)
	return t.createHash()
}

// Bytes converts the transaction to []byte.
func (t *Transaction) Bytes() []byte {
	buf := io.NewBufBinWriter()
	t.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return nil
	}
	return buf.Bytes()
}

// Size returns the size of the serialized transaction.
func (t *Transaction) Size() int {
	if t.size == 0 {
		t.size = len(t.Bytes())
	}
	return t.size
}

// FeePerByte returns the network fee divided by the size of the
// transaction.
func (t *Transaction) FeePerByte() int64 {
	return t.NetworkFee / int64(t.Size())
}

// isValid checks whether decoded/unmarshalled transaction is valid and
// returns an appropriate error if not.
func (t *Transaction) isValid() error {
	if t.Version > 0 {
		return ErrInvalidVersion
	}
	if t.SystemFee < 0 {
		return ErrNegativeSystemFee
	}
	if t.NetworkFee < 0 {
		return ErrNegativeNetworkFee
	}
	if t.NetworkFee+t.SystemFee < t.SystemFee {
		return ErrTooBigFees
	}
	if len(t.Signers) == 0 {
		return ErrEmptySigners
	}
	if len(t.Signers) > MaxSigners {
		return ErrTooManySigners
	}
	for i := range t.Signers {
		for j := i + 1; j < len(t.Signers); j++ {
			if t.Signers[i].Account.Equals(t.Signers[j].Account) {
				return ErrNonUniqueSigners
			}
		}
	}
	if len(t.Attributes) > MaxAttributes {
		return ErrTooManyAttributes
	}
	attrs := map[AttrType]bool{}
	for i := range t.Attributes {
		typ := t.Attributes[i].Type
		if !typ.allowsMultiple() {
			if attrs[typ] {
				return fmt.Errorf("%w: multiple %s attributes", ErrInvalidAttribute, typ)
			}
			attrs[typ] = true
		}
	}
	if len(t.Script) == 0 {
		return ErrEmptyScript
	}
	return nil
}

// Copy creates a deep copy of the Transaction, including all slice fields.
// Cached values like size and hash are reset to be recalculated when
// needed.
func (t *Transaction) Copy() *Transaction {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Attributes != nil {
		cp.Attributes = make([]Attribute, len(t.Attributes))
		for i, attr := range t.Attributes {
			cp.Attributes[i] = *attr.Copy()
		}
	}
	if t.Signers != nil {
		cp.Signers = make([]Signer, len(t.Signers))
		for i, signer := range t.Signers {
			cp.Signers[i] = *signer.Copy()
		}
	}
	if t.Scripts != nil {
		cp.Scripts = make([]Witness, len(t.Scripts))
		for i, script := range t.Scripts {
			cp.Scripts[i] = script.Copy()
		}
	}
	cp.Script = append([]byte(nil), t.Script...)

	cp.size = 0
	cp.hash = util.Uint256{}
	cp.hashed = false
	return &cp
}

// transactionJSON is a wrapper for Transaction and used for correct
// marshalling of transaction.Data.
type transactionJSON struct {
	TxID            util.Uint256 `json:"hash"`
	Size            int          `json:"size"`
	Version         uint8        `json:"version"`
	Nonce           uint32       `json:"nonce"`
	Sender          string       `json:"sender"`
	SysFee          string       `json:"sysfee"`
	NetFee          string       `json:"netfee"`
	ValidUntilBlock uint32       `json:"validuntilblock"`
	Attributes      []Attribute  `json:"attributes"`
	Signers         []Signer     `json:"signers"`
	Script          []byte       `json:"script"`
	Scripts         []Witness    `json:"witnesses"`
}

// MarshalJSON implements the json.Marshaler interface.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	tx := transactionJSON{
		TxID:            t.Hash(),
		Size:            t.Size(),
		Version:         t.Version,
		Nonce:           t.Nonce,
		Sender:          address.Uint160ToString(t.Sender()),
		ValidUntilBlock: t.ValidUntilBlock,
		Attributes:      t.Attributes,
		Signers:         t.Signers,
		Script:          t.Script,
		Scripts:         t.Scripts,
		SysFee:          strconv.FormatInt(t.SystemFee, 10),
		NetFee:          strconv.FormatInt(t.NetworkFee, 10),
	}
	return json.Marshal(tx)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	tx := new(transactionJSON)
	if err := json.Unmarshal(data, tx); err != nil {
		return err
	}
	t.Version = tx.Version
	t.Nonce = tx.Nonce
	t.ValidUntilBlock = tx.ValidUntilBlock
	t.Attributes = tx.Attributes
	t.Signers = tx.Signers
	t.Scripts = tx.Scripts
	t.Script = tx.Script
	sysFee, err := strconv.ParseInt(tx.SysFee, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse system fee: %w", err)
	}
	t.SystemFee = sysFee
	netFee, err := strconv.ParseInt(tx.NetFee, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse network fee: %w", err)
	}
	t.NetworkFee = netFee
	if err := t.isValid(); err != nil {
		return err
	}
	if err := t.createHash(); err != nil {
		return err
	}
	if t.Hash() != tx.TxID {
		return errors.New("txid doesn't match transaction hash")
	}
	return nil
}

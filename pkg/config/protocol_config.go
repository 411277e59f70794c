package config

import (
	"errors"
	"fmt"

	"github.com/R3E-Network/neo3-sdk/pkg/config/netmode"
)

const (
	// DefaultAddressVersion is the version byte prepended to a script hash
	// before base58check address encoding on N3 networks.
	DefaultAddressVersion = 0x35
	// DefaultMaxValidUntilBlockIncrement is the default cap on how far in
	// the future a transaction may remain valid, in blocks. It corresponds
	// to roughly one day of 15-second blocks.
	DefaultMaxValidUntilBlockIncrement = 5760
	// DefaultFeePerByte is the default network fee price for a single byte
	// of a serialized transaction, in GAS fractions.
	DefaultFeePerByte = 1000
)

// ProtocolConfiguration represents the protocol parameters a client needs
// to build and sign transactions for a particular network.
type ProtocolConfiguration struct {
	Magic          netmode.Magic `yaml:"Magic"`
	AddressVersion byte          `yaml:"AddressVersion"`
	// MaxValidUntilBlockIncrement is the upper increment size of blockchain
	// height in blocks exceeding that a transaction should fail validation.
	MaxValidUntilBlockIncrement uint32 `yaml:"MaxValidUntilBlockIncrement"`
	// FeePerByte is the network fee price for a single transaction byte
	// used when no live value is available from a node.
	FeePerByte int64 `yaml:"FeePerByte"`
}

// Default returns a ProtocolConfiguration with stock parameters for the
// given network.
func Default(magic netmode.Magic) ProtocolConfiguration {
	return ProtocolConfiguration{
		Magic:                       magic,
		AddressVersion:              DefaultAddressVersion,
		MaxValidUntilBlockIncrement: DefaultMaxValidUntilBlockIncrement,
		FeePerByte:                  DefaultFeePerByte,
	}
}

// Validate checks ProtocolConfiguration for internal consistency.
func (p *ProtocolConfiguration) Validate() error {
	if p.Magic == 0 {
		return errors.New("no network magic specified")
	}
	if p.MaxValidUntilBlockIncrement == 0 {
		return errors.New("MaxValidUntilBlockIncrement must not be 0")
	}
	if p.FeePerByte < 0 {
		return fmt.Errorf("invalid FeePerByte %d", p.FeePerByte)
	}
	return nil
}

package transaction

import (
	"github.com/R3E-Network/neo3-sdk/pkg/crypto/keys"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
)

// The maximum number of AllowedContracts, AllowedGroups or Rules.
const maxSubitems = 16

// Signer implements a Transaction signer.
type Signer struct {
	Account          util.Uint160      `json:"account"`
	Scopes           WitnessScope      `json:"scopes"`
	AllowedContracts []util.Uint160    `json:"allowedcontracts,omitempty"`
	AllowedGroups    []*keys.PublicKey `json:"allowedgroups,omitempty"`
	Rules            []WitnessRule     `json:"rules,omitempty"`
}

// EncodeBinary implements the Serializable interface.
func (c *Signer) EncodeBinary(bw *io.BinWriter) {
	bw.WriteBytes(c.Account[:])
	bw.WriteB(byte(c.Scopes))
	if c.Scopes&CustomContracts != 0 {
		bw.WriteArray(c.AllowedContracts)
	}
	if c.Scopes&CustomGroups != 0 {
		bw.WriteArray(c.AllowedGroups)
	}
	if c.Scopes&Rules != 0 {
		bw.WriteArray(c.Rules)
	}
}

// DecodeBinary implements the Serializable interface.
func (c *Signer) DecodeBinary(br *io.BinReader) {
	br.ReadBytes(c.Account[:])
	if br.Err != nil {
		return
	}
	c.Scopes, br.Err = ScopesFromByte(br.ReadB())
	if br.Err != nil {
		return
	}
	if c.Scopes&CustomContracts != 0 {
		br.ReadArray(&c.AllowedContracts, maxSubitems)
	}
	if c.Scopes&CustomGroups != 0 {
		br.ReadArray(&c.AllowedGroups, maxSubitems)
	}
	if c.Scopes&Rules != 0 {
		br.ReadArray(&c.Rules, maxSubitems)
	}
}

// Copy creates a deep copy of the Signer.
func (c *Signer) Copy() *Signer {
	if c == nil {
		return nil
	}
	cp := *c
	if c.AllowedContracts != nil {
		cp.AllowedContracts = make([]util.Uint160, len(c.AllowedContracts))
		copy(cp.AllowedContracts, c.AllowedContracts)
	}
	if c.AllowedGroups != nil {
		cp.AllowedGroups = make([]*keys.PublicKey, len(c.AllowedGroups))
		copy(cp.AllowedGroups, c.AllowedGroups)
	}
	if c.Rules != nil {
		cp.Rules = make([]WitnessRule, len(c.Rules))
		for i, r := range c.Rules {
			cp.Rules[i] = *r.Copy()
		}
	}
	return &cp
}

package transaction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WitnessScope represents the set of witness flags for a Transaction signer.
type WitnessScope byte

const (
	// None specifies that no contract was witnessed. Only sign the
	// transaction.
	None WitnessScope = 0
	// CalledByEntry means that this condition must hold: EntryScriptHash
	// == CallingScriptHash. The witness/permission/signature given on
	// first invocation will automatically expire if entering deeper
	// internal invokes. This can be the default safe choice for native
	// NEO/GAS.
	CalledByEntry WitnessScope = 0x01
	// CustomContracts define valid custom contract hashes for witnessing.
	CustomContracts WitnessScope = 0x10
	// CustomGroups define custom public keys for group members.
	CustomGroups WitnessScope = 0x20
	// Rules is a set of conditions with boolean operators.
	Rules WitnessScope = 0x40
	// Global allows this witness in all contexts. This cannot be combined
	// with other flags.
	Global WitnessScope = 0x80
)

var scopeNames = map[WitnessScope]string{
	None:            "None",
	CalledByEntry:   "CalledByEntry",
	CustomContracts: "CustomContracts",
	CustomGroups:    "CustomGroups",
	Rules:           "WitnessRules",
	Global:          "Global",
}

// String implements the fmt.Stringer interface. Combined scopes are
// rendered as a comma-separated list of the flag names.
func (s WitnessScope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	var flags []string
	for _, f := range []WitnessScope{CalledByEntry, CustomContracts, CustomGroups, Rules} {
		if s&f != 0 {
			flags = append(flags, scopeNames[f])
		}
	}
	if len(flags) == 0 {
		return fmt.Sprintf("WitnessScope(0x%02x)", byte(s))
	}
	return strings.Join(flags, ", ")
}

// ScopesFromString converts a string of comma-separated scopes to a set of
// scopes (case-sensitive). The string can combine several scopes, e.g. be
// any of: "Global", "CalledByEntry, CustomGroups" etc. In case of an empty
// string an error is returned.
func ScopesFromString(s string) (WitnessScope, error) {
	var result WitnessScope

	dict := make(map[string]WitnessScope, len(scopeNames))
	for scope, name := range scopeNames {
		dict[name] = scope
	}
	var isGlobal bool
	for _, scopeStr := range strings.Split(s, ",") {
		scope, ok := dict[strings.TrimSpace(scopeStr)]
		if !ok {
			return result, fmt.Errorf("invalid witness scope: %v", scopeStr)
		}
		if isGlobal && scope != Global {
			return result, fmt.Errorf("Global scope can not be combined with other scopes")
		}
		result |= scope
		if scope == Global {
			isGlobal = true
		}
	}
	if result&Global != 0 && result != Global {
		return result, fmt.Errorf("Global scope can not be combined with other scopes")
	}
	return result, nil
}

// ScopesFromByte converts a byte to a set of scopes rejecting unknown flag
// combinations.
func ScopesFromByte(b byte) (WitnessScope, error) {
	var res = WitnessScope(b)
	if res&^(Global|CalledByEntry|CustomContracts|CustomGroups|Rules) != 0 {
		return 0, fmt.Errorf("invalid scope %d", b)
	}
	if res&Global != 0 && res != Global {
		return 0, fmt.Errorf("Global scope can not be combined with other scopes")
	}
	return res, nil
}

// scopesToString converts witness scopes to their string representation.
func scopesToString(scopes WitnessScope) string {
	if scopes&Global != 0 || scopes == None {
		return scopes.String()
	}
	var res strings.Builder
	for _, f := range []WitnessScope{CalledByEntry, CustomContracts, CustomGroups, Rules} {
		if scopes&f != 0 {
			if res.Len() != 0 {
				res.WriteString(", ")
			}
			res.WriteString(scopeNames[f])
		}
	}
	return res.String()
}

// MarshalJSON implements the json.Marshaler interface.
func (s WitnessScope) MarshalJSON() ([]byte, error) {
	return []byte(`"` + scopesToString(s) + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *WitnessScope) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	scopes, err := ScopesFromString(js)
	if err != nil {
		return err
	}
	*s = scopes
	return nil
}

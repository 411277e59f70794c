package transaction

import (
	"fmt"
)

// AttrType represents the known types of the transaction attribute.
type AttrType uint8

// List of valid attribute types.
const (
	// HighPriority whitelists the transaction to be processed first,
	// it's only valid when signed by the committee.
	HighPriorityT AttrType = 1
	// OracleResponseT identifies an oracle response attribute.
	OracleResponseT AttrType = 0x11
	// NotValidBeforeT sets the height the transaction is valid from.
	NotValidBeforeT AttrType = 0x20
	// ConflictsT marks a transaction hash this transaction conflicts with.
	ConflictsT AttrType = 0x21
)

var attrTypeNames = map[AttrType]string{
	HighPriorityT:   "HighPriority",
	OracleResponseT: "OracleResponse",
	NotValidBeforeT: "NotValidBefore",
	ConflictsT:      "Conflicts",
}

// String implements the fmt.Stringer interface.
func (t AttrType) String() string {
	if name, ok := attrTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AttrType(0x%02x)", uint8(t))
}

// AttrTypeFromString converts an attribute type name to the AttrType.
func AttrTypeFromString(s string) (AttrType, error) {
	for t, name := range attrTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute type: %s", s)
}

// allowsMultiple tells whether the attribute type may appear in a
// transaction more than once.
func (t AttrType) allowsMultiple() bool {
	return t == ConflictsT
}

// Package callflag defines a set of flags used to restrict the capabilities
// of a called contract.
package callflag

import (
	"errors"
	"strings"
)

// CallFlag represents a call flag.
type CallFlag byte

// Default flags.
const (
	ReadStates CallFlag = 1 << iota
	WriteStates
	AllowCall
	AllowNotify

	States            = ReadStates | WriteStates
	ReadOnly          = ReadStates | AllowCall
	All               = States | AllowCall | AllowNotify
	NoneFlag CallFlag = 0
)

var flagStrings = map[CallFlag]string{
	NoneFlag:    "None",
	ReadStates:  "ReadStates",
	WriteStates: "WriteStates",
	AllowCall:   "AllowCall",
	AllowNotify: "AllowNotify",
	States:      "States",
	ReadOnly:    "ReadOnly",
	All:         "All",
}

var basicFlags = []CallFlag{ReadStates, WriteStates, AllowCall, AllowNotify}

// Has returns true iff all bits set in cf are also set in f.
func (f CallFlag) Has(cf CallFlag) bool {
	return f&cf == cf
}

// String implements the fmt.Stringer interface. Composite flags that have
// no name of their own are rendered as a comma-separated list of basic
// flags.
func (f CallFlag) String() string {
	if s, ok := flagStrings[f]; ok {
		return s
	}
	var parts []string
	for _, b := range basicFlags {
		if f.Has(b) {
			parts = append(parts, flagStrings[b])
		}
	}
	return strings.Join(parts, ", ")
}

// FromString parses a CallFlag from its string representation, accepting
// both single names and comma-separated combinations.
func FromString(s string) (CallFlag, error) {
	var res CallFlag
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		var found bool
		for f, name := range flagStrings {
			if name == part {
				res |= f
				found = true
				break
			}
		}
		if !found {
			return NoneFlag, errors.New("unknown call flag: " + part)
		}
	}
	return res, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f CallFlag) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *CallFlag) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("invalid call flag")
	}
	v, err := FromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

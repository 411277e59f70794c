// Package fixedn provides a fixed-point decimal type used for GAS amounts.
package fixedn

import (
	"errors"
	"strconv"
	"strings"

	"github.com/R3E-Network/neo3-sdk/pkg/io"
)

const (
	precision = 8
	decimals  = 100000000
)

var errInvalidString = errors.New("fixed8 must satisfy following regex \\d+(\\.\\d{1,8})?")

// Fixed8 represents a fixed-point number with precision 10^-8. It is the
// unit GAS fees are expressed in on the wire.
type Fixed8 int64

// String implements the Stringer interface.
func (f Fixed8) String() string {
	buf := new(strings.Builder)
	val := int64(f)
	if val < 0 {
		buf.WriteRune('-')
		val = -val
	}
	str := strconv.FormatInt(val/decimals, 10)
	buf.WriteString(str)
	val %= decimals
	if val > 0 {
		buf.WriteRune('.')
		str = strconv.FormatInt(val, 10)
		for i := len(str); i < precision; i++ {
			buf.WriteRune('0')
		}
		buf.WriteString(strings.TrimRight(str, "0"))
	}
	return buf.String()
}

// FloatValue returns the original value representing Fixed8 as float64.
func (f Fixed8) FloatValue() float64 {
	return float64(f) / decimals
}

// IntegralValue returns an integer part of the original value representing
// Fixed8 as int64.
func (f Fixed8) IntegralValue() int64 {
	return int64(f) / decimals
}

// FractionalValue returns a decimal part of the original value. It has the
// same sign as f, so that f = f.IntegralValue() + f.FractionalValue().
func (f Fixed8) FractionalValue() int32 {
	return int32(int64(f) % decimals)
}

// Fixed8FromInt64 returns a new Fixed8 type multiplied by decimals.
func Fixed8FromInt64(val int64) Fixed8 {
	return Fixed8(decimals * val)
}

// Fixed8FromFloat returns a new Fixed8 type multiplied by decimals.
func Fixed8FromFloat(val float64) Fixed8 {
	return Fixed8(int64(decimals * val))
}

// Fixed8FromString parses s which must be a fixed point number with
// precision up to 10^-8.
func Fixed8FromString(s string) (Fixed8, error) {
	num, frac, _ := strings.Cut(s, ".")
	ip, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, errInvalidString
	}
	res := ip * decimals
	if frac == "" {
		return Fixed8(res), nil
	}
	if len(frac) > precision {
		return 0, errInvalidString
	}
	fp, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, errInvalidString
	}
	for i := len(frac); i < precision; i++ {
		fp *= 10
	}
	if strings.HasPrefix(num, "-") {
		return Fixed8(res - int64(fp)), nil
	}
	return Fixed8(res + int64(fp)), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Fixed8) UnmarshalJSON(data []byte) error {
	if len(data) > 2 {
		if data[0] == '"' && data[len(data)-1] == '"' {
			data = data[1 : len(data)-1]
		}
	}
	return f.setFromString(string(data))
}

// UnmarshalYAML implements the yaml unmarshaler interface.
func (f *Fixed8) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	err := unmarshal(&s)
	if err != nil {
		return err
	}
	return f.setFromString(s)
}

func (f *Fixed8) setFromString(s string) error {
	p, err := Fixed8FromString(s)
	if err != nil {
		return err
	}
	*f = p
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f Fixed8) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// MarshalYAML implements the yaml marshaler interface.
func (f Fixed8) MarshalYAML() (any, error) {
	return f.String(), nil
}

// DecodeBinary implements the io.Serializable interface.
func (f *Fixed8) DecodeBinary(r *io.BinReader) {
	*f = Fixed8(r.ReadU64LE())
}

// EncodeBinary implements the io.Serializable interface.
func (f *Fixed8) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(uint64(*f))
}

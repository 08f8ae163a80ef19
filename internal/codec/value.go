package codec

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Exponents is the fixed menu of decimal exponents offered for scalable
// integer leaves (powers of ten).
var Exponents = []int{0, 6, 9, 12, 18, 24}

// ValidExponent reports whether exp is on the menu.
func ValidExponent(exp int) bool {
	for _, e := range Exponents {
		if e == exp {
			return true
		}
	}
	return false
}

// NextExponent returns the menu entry after exp, wrapping around. Unknown
// values restart the cycle at 0.
func NextExponent(exp int) int {
	for i, e := range Exponents {
		if e == exp {
			return Exponents[(i+1)%len(Exponents)]
		}
	}
	return Exponents[0]
}

// ParseLeaf converts a leaf's raw text plus its declared type into a
// call-ready generic value. exponent only applies to scalable integer
// types (uint256/uint128); pass 0 otherwise.
func ParseLeaf(typ, text string, exponent int) (interface{}, error) {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasSuffix(typ, "]") || strings.HasPrefix(typ, "tuple"):
		return ParseJSON(text)

	case typ == "bool":
		return text == "true" || text == "1", nil

	case strings.HasPrefix(typ, "uint") || strings.HasPrefix(typ, "int"):
		if exponent > 0 {
			return ScaleDecimal(text, exponent)
		}
		return ParseBigInt(text)

	default:
		return text, nil
	}
}

// ParseJSON parses array/tuple input text as JSON. Empty input yields an
// empty array. Numbers are kept as json.Number so wide integers survive.
func ParseJSON(text string) (interface{}, error) {
	if text == "" {
		return []interface{}{}, nil
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// ParseBigInt parses an arbitrary-precision integer. Decimal and
// 0x-prefixed hex are accepted; empty input yields zero.
func ParseBigInt(text string) (*big.Int, error) {
	if text == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", text)
	}
	return n, nil
}

// ScaleDecimal treats text as a decimal string with at most exp fractional
// digits and returns text × 10^exp as an integer. Non-numeric input or too
// many fractional digits fail with a descriptive error; nothing is ever
// silently truncated. exp 0 rejects any fractional part.
func ScaleDecimal(text string, exp int) (*big.Int, error) {
	if text == "" {
		return new(big.Int), nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal %q: %w", text, err)
	}
	shifted := d.Shift(int32(exp))
	if !shifted.IsInteger() {
		if exp == 0 {
			return nil, fmt.Errorf("decimal %q not allowed with exponent 0", text)
		}
		return nil, fmt.Errorf("decimal %q has more than %d fractional digits", text, exp)
	}
	return shifted.BigInt(), nil
}

// ParseEther converts a decimal ETH string to wei. Used for payable values.
func ParseEther(text string) (*big.Int, error) {
	wei, err := ScaleDecimal(strings.TrimSpace(text), 18)
	if err != nil {
		return nil, fmt.Errorf("invalid ETH value: %w", err)
	}
	return wei, nil
}

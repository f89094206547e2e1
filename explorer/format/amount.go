// Package format turns base-unit token amounts and chain identifiers into display strings.
package format

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Placeholder is rendered wherever a value cannot be computed
const Placeholder = "-"

const defaultExponent int32 = 6

// denomExponents maps denom prefixes to the number of decimals of the base unit.
// Order matters, the first matching prefix wins.
var denomExponents = []struct {
	prefix   string
	exponent int32
}{
	{"inj", 18},   // EVM style 18 decimals
	{"rowan", 18}, // EVM style 18 decimals
	{"basecro", 8},
	{"nanolike", 9},
}

var ten = decimal.NewFromInt(10)

// Exponent returns the base unit exponent for a denom
func Exponent(denom string) int32 {
	for _, e := range denomExponents {
		if strings.HasPrefix(denom, e.prefix) {
			return e.exponent
		}
	}
	return defaultExponent
}

// ParseAmount parses a base unit amount. Reward amounts are decimals ("12.500000000000000000").
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ToDisplayAmount converts a base unit amount into the display unit of the denom.
// Values greater than 10 are rounded to fractionDigits places, smaller values keep
// their full precision so small balances stay readable.
func ToDisplayAmount(raw string, denom string, fractionDigits int32) decimal.Decimal {
	amount, ok := ParseAmount(raw)
	if !ok {
		return decimal.Zero
	}
	value := amount.Shift(-Exponent(denom))
	if value.GreaterThan(ten) {
		return value.Round(fractionDigits)
	}
	return value
}

// WithCommas renders a decimal with thousands separators in the integer part
func WithCommas(d decimal.Decimal) string {
	s := d.String()
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return s
	}
	out := humanize.BigComma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}

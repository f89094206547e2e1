package format

import (
	"github.com/shopspring/decimal"
)

// countAbbrs are the suffixes for successive powers of 1000
var countAbbrs = []string{"", "K", "M", "B", "t", "q", "s", "S", "o", "n", "d", "U", "D", "T", "Qt", "Qd", "Sd", "St"}

var thousand = decimal.NewFromInt(1000)

// FormatNumber scales count down by powers of 1000 and rounds it to decimals places.
// The suffix is only appended when withAbbr is set.
func FormatNumber(count decimal.Decimal, withAbbr bool, decimals int32) string {
	i := 0
	scaled := count
	for scaled.Abs().GreaterThanOrEqual(thousand) && i < len(countAbbrs)-1 {
		scaled = scaled.Div(thousand)
		i++
	}
	out := scaled.Round(decimals).String()
	if withAbbr && countAbbrs[i] != "" {
		out += countAbbrs[i]
	}
	return out
}

// Ratio divides two amounts given as strings. It reports false when either side is
// missing or the denominator is zero.
func Ratio(numerator, denominator string) (decimal.Decimal, bool) {
	num, ok := ParseAmount(numerator)
	if !ok {
		return decimal.Zero, false
	}
	den, ok := ParseAmount(denominator)
	if !ok || den.IsZero() {
		return decimal.Zero, false
	}
	return num.Div(den), true
}

// Percent renders a ratio as a percentage with two decimals
func Percent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).Round(2).String()
}

// PercentOf renders numerator/denominator as "<pct>%", or "-%" when it is undefined
func PercentOf(numerator, denominator decimal.Decimal) string {
	if denominator.IsZero() {
		return Placeholder + "%"
	}
	return Percent(numerator.Div(denominator)) + "%"
}

// Sum adds amounts, skipping the ones that cannot be parsed
func Sum(amounts ...string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		if d, ok := ParseAmount(a); ok {
			total = total.Add(d)
		}
	}
	return total
}

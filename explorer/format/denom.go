package format

import (
	"fmt"
	"strings"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

// DenomTrace resolves an IBC denom to the asset it represents
type DenomTrace struct {
	Path      string `json:"path" toml:"path"`             // e.g., "transfer/channel-0"
	BaseDenom string `json:"base_denom" toml:"base_denom"` // e.g., "uatom"
}

// DenomTraces maps "ibc/<HASH>" denoms to their traces
type DenomTraces map[string]DenomTrace

// Resolve returns the denom used for symbol and exponent lookups
func (t DenomTraces) Resolve(denom string) string {
	if trace, ok := t[denom]; ok && trace.BaseDenom != "" {
		return trace.BaseDenom
	}
	return denom
}

// ToDisplaySymbol converts a base denom into a ticker like symbol
func ToDisplaySymbol(denom string) string {
	if denom == "" {
		return ""
	}
	symbol := strings.ToUpper(denom)
	switch {
	case symbol[0] == 'U' && symbol != "USDX":
		return symbol[1:]
	case symbol == "BASECRO":
		return "CRO"
	case strings.HasPrefix(symbol, "IBC/"):
		return "IBC..."
	case strings.HasPrefix(symbol, "NANOLIKE"):
		return "LIKE"
	}
	return symbol
}

// FormatToken renders a coin as "<amount> <SYMBOL>". When overrides know the denom
// (IBC denom traces) the traced base denom is used instead of the raw one.
func FormatToken(token models.Coin, overrides DenomTraces, fractionDigits int32) string {
	denom := overrides.Resolve(token.Denom)
	if _, ok := ParseAmount(token.Amount); !ok {
		return fmt.Sprintf("%s %s", Placeholder, ToDisplaySymbol(denom))
	}
	amount := ToDisplayAmount(token.Amount, denom, fractionDigits)
	return fmt.Sprintf("%s %s", WithCommas(amount), ToDisplaySymbol(denom))
}

// FormatTokens renders every coin with two decimals and joins them with a comma
func FormatTokens(tokens []models.Coin, overrides DenomTraces) string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, FormatToken(t, overrides, 2))
	}
	return strings.Join(out, ",")
}

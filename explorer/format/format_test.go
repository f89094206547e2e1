package format

import (
	"testing"
	"time"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
	"github.com/shopspring/decimal"
	"github.com/zeebo/assert"
)

func TestToDisplayAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		denom    string
		fraction int32
		want     string
	}{
		{name: "default exponent", raw: "5000000", denom: "uatom", fraction: 2, want: "5"},
		{name: "rounded above ten", raw: "150000000000", denom: "uatom", fraction: 2, want: "150000"},
		{name: "rounding applies above ten", raw: "12345678", denom: "uatom", fraction: 2, want: "12.35"},
		{name: "full precision at or below ten", raw: "1234567", denom: "uatom", fraction: 2, want: "1.234567"},
		{name: "below ten ignores fraction digits", raw: "9999999", denom: "uatom", fraction: 0, want: "9.999999"},
		{name: "basecro", raw: "250000000", denom: "basecro", fraction: 2, want: "2.5"},
		{name: "nanolike", raw: "3000000000", denom: "nanolike", fraction: 2, want: "3"},
		{name: "inj 18 decimals", raw: "2500000000000000000", denom: "inj", fraction: 2, want: "2.5"},
		{name: "rowan 18 decimals", raw: "123456000000000000000", denom: "rowan", fraction: 2, want: "123.46"},
		{name: "reward decimals", raw: "1500000.750000000000000000", denom: "uatom", fraction: 2, want: "1.50000075"},
		{name: "invalid amount", raw: "abc", denom: "uatom", fraction: 2, want: "0"},
		{name: "empty amount", raw: "", denom: "uatom", fraction: 2, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDisplayAmount(tt.raw, tt.denom, tt.fraction)
			assert.Equal(t, got.String(), tt.want)
		})
	}
}

func TestToDisplaySymbol(t *testing.T) {
	tests := map[string]string{
		"uatom":          "ATOM",
		"basecro":        "CRO",
		"ibc/ABC123":     "IBC...",
		"USDX":           "USDX",
		"usdx":           "USDX",
		"nanolike":       "LIKE",
		"inj":            "INJ",
		"stake":          "STAKE",
		"":               "",
		"uosmo":          "OSMO",
		"nanolikecoin":   "LIKE",
		"IBC/27394FB092": "IBC...",
	}
	for denom, want := range tests {
		t.Run(denom, func(t *testing.T) {
			assert.Equal(t, ToDisplaySymbol(denom), want)
		})
	}
}

func TestFormatToken(t *testing.T) {
	overrides := DenomTraces{
		"ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2": {
			Path:      "transfer/channel-0",
			BaseDenom: "uatom",
		},
	}

	tests := []struct {
		name  string
		token models.Coin
		want  string
	}{
		{name: "native", token: models.Coin{Denom: "uatom", Amount: "5000000"}, want: "5 ATOM"},
		{name: "commas above ten", token: models.Coin{Denom: "uatom", Amount: "1234567890000"}, want: "1,234,567.89 ATOM"},
		{name: "ibc without trace", token: models.Coin{Denom: "ibc/ABCDEF", Amount: "1000000"}, want: "1 IBC..."},
		{
			name:  "ibc with trace",
			token: models.Coin{Denom: "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2", Amount: "2000000"},
			want:  "2 ATOM",
		},
		{name: "missing amount", token: models.Coin{Denom: "uatom"}, want: "- ATOM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, FormatToken(tt.token, overrides, 2), tt.want)
		})
	}
}

func TestFormatTokens(t *testing.T) {
	tokens := []models.Coin{
		{Denom: "uatom", Amount: "5000"},
		{Denom: "basecro", Amount: "100000000"},
	}
	assert.Equal(t, FormatTokens(tokens, nil), "0.005 ATOM,1 CRO")
	assert.Equal(t, FormatTokens(nil, nil), "")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		count    decimal.Decimal
		withAbbr bool
		want     string
	}{
		{decimal.NewFromInt(0), true, "0"},
		{decimal.NewFromInt(999), true, "999"},
		{decimal.NewFromInt(1000), true, "1K"},
		{decimal.NewFromInt(1234567), true, "1.23M"},
		{decimal.NewFromInt(1234567), false, "1.23"},
		{decimal.NewFromInt(250_000_000_000), true, "250B"},
		{decimal.RequireFromString("0.5"), true, "0.5"},
		{decimal.RequireFromString("1e54"), true, "1000St"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, FormatNumber(tt.count, tt.withAbbr, 2), tt.want)
		})
	}
}

func TestRatioAndPercent(t *testing.T) {
	ratio, ok := Ratio("25", "100")
	assert.True(t, ok)
	assert.Equal(t, Percent(ratio), "25")

	_, ok = Ratio("25", "0")
	assert.False(t, ok)
	_, ok = Ratio("", "10")
	assert.False(t, ok)

	assert.Equal(t, PercentOf(decimal.NewFromInt(1), decimal.NewFromInt(3)), "33.33%")
	assert.Equal(t, PercentOf(decimal.NewFromInt(1), decimal.Zero), "-%")
	assert.Equal(t, Sum("1", "2.5", "bad", "").String(), "3.5")
}

func TestAbbr(t *testing.T) {
	assert.Equal(t, Abbr("ABCDEF123456", 6), "ABCDEF...")
	assert.Equal(t, Abbr("ABC", 6), "ABC")
	assert.Equal(t, AbbrAddress("cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu", 10), "cosmos1qyp...yyc5lzv7xu")
	assert.Equal(t, AbbrAddress("short", 10), "short")
}

func TestToDay(t *testing.T) {
	ts := time.Date(2022, 3, 4, 17, 5, 9, 0, time.UTC)
	now = func() time.Time { return ts.Add(3 * time.Minute) }
	defer func() { now = time.Now }()

	assert.Equal(t, ToDay(ts, LayoutLong), "2022-03-04 17:05")
	assert.Equal(t, ToDay(ts, LayoutDate), "2022-03-04")
	assert.Equal(t, ToDay(ts, LayoutTime), "17:05:09")
	assert.Equal(t, ToDay(ts, LayoutBlock), "04-03-2022 05:05:09")
	assert.Equal(t, ToDay(ts, LayoutDefault), "2022-03-04 17:05:09")
	assert.Equal(t, ToDay(ts, LayoutFrom), "3 minutes ago")
	assert.Equal(t, ToDay(time.Time{}, LayoutLong), Placeholder)
}

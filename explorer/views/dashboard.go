// Package views turns API responses into the flat models the explorer pages show.
// Every normalizer is a pure function of its inputs.
package views

import (
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
)

// DashboardData holds the responses of one dashboard refresh
type DashboardData struct {
	LatestBlock   *models.BlockResponse
	StakingPool   *models.StakingPoolResponse
	StakingParams *models.StakingParamsResponse
	Inflation     *models.InflationResponse
	BankTotal     *models.BankTotalResponse
}

// Summary is the figure row at the top of the dashboard
type Summary struct {
	BlockHeight         int64  `json:"block_height"`
	LatestBlockTime     string `json:"latest_block_time"` // relative, e.g., "5 seconds ago"
	BondedTokensPercent string `json:"bonded_tokens_percent"`
	BondedTokensDetail  string `json:"bonded_tokens_detail"` // "<bonded> / <total supply>"
	InflationPercent    string `json:"inflation_percent"`
}

// NormalizeSummary computes the dashboard figures. Missing responses or amounts turn
// into placeholders.
func NormalizeSummary(data DashboardData) Summary {
	var (
		bonded, total, bondDenom, inflation string
		summary                             Summary
	)
	if data.StakingPool != nil {
		bonded = data.StakingPool.Result.BondedTokens
	}
	if data.StakingParams != nil {
		bondDenom = data.StakingParams.Result.BondDenom
	}
	if data.BankTotal != nil {
		total = data.BankTotal.Result.Amount
	}
	if data.Inflation != nil {
		inflation = data.Inflation.Inflation
	}

	summary.LatestBlockTime = format.Placeholder
	if data.LatestBlock != nil {
		summary.BlockHeight = data.LatestBlock.Height()
		summary.LatestBlockTime = format.ToDay(data.LatestBlock.Block.Header.Time, format.LayoutFrom)
	}

	summary.BondedTokensPercent = format.Placeholder + "%"
	if ratio, ok := format.Ratio(bonded, total); ok {
		summary.BondedTokensPercent = format.Percent(ratio) + "%"
	}
	summary.BondedTokensDetail = tokenCount(bonded, bondDenom) + " / " + tokenCount(total, bondDenom)

	summary.InflationPercent = format.Placeholder + "%"
	if rate, ok := format.ParseAmount(inflation); ok {
		summary.InflationPercent = format.Percent(rate) + "%"
	}
	return summary
}

// tokenCount renders a base unit amount in display units with a size suffix, e.g., "190.5M"
func tokenCount(amount, denom string) string {
	if _, ok := format.ParseAmount(amount); !ok || denom == "" {
		return format.Placeholder
	}
	return format.FormatNumber(format.ToDisplayAmount(amount, denom, 2), true, 2)
}

// BlockRow is one line of the latest blocks table
type BlockRow struct {
	Height   int64  `json:"height"`
	Proposer string `json:"proposer"`
	Txs      int    `json:"txs"`
	Time     string `json:"time"`
}

// NormalizeBlockRows renders the block window, proposers resolved through the directory
func NormalizeBlockRows(blocks []*models.BlockResponse, dir *resolver.Directory) []BlockRow {
	rows := make([]BlockRow, 0, len(blocks))
	for _, b := range blocks {
		header := b.Block.Header
		rows = append(rows, BlockRow{
			Height:   b.Height(),
			Proposer: dir.ResolveByConsensusKey(header.ProposerAddress),
			Txs:      len(b.Block.Data.Txs),
			Time:     format.ToDay(header.Time, format.LayoutBlock),
		})
	}
	return rows
}

// Dashboard is the complete dashboard view
type Dashboard struct {
	Summary Summary    `json:"summary"`
	Blocks  []BlockRow `json:"blocks"`
}

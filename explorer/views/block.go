package views

import (
	"encoding/json"
	"time"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/txdecode"
)

// TxRow is one decoded transaction of a block
type TxRow struct {
	Hash     string `json:"hash"`
	Fee      string `json:"fee"`
	Memo     string `json:"memo"`
	Messages string `json:"messages"` // e.g., "Send×2, Delegate×1"
}

// BlockView is the block detail page
type BlockView struct {
	Height   int64          `json:"height"`
	Proposer string         `json:"proposer"`
	BlockID  []models.Field `json:"block_id"`
	Header   []models.Field `json:"header"`
	Txs      []TxRow        `json:"txs"`
	// Skipped counts the transactions that could not be decoded
	Skipped int `json:"skipped"`
}

// NormalizeBlock flattens the block id and header and decodes every transaction.
// Transactions that fail to decode are left out of Txs and counted in Skipped.
func NormalizeBlock(block *models.BlockResponse, dir *resolver.Directory, overrides format.DenomTraces) *BlockView {
	header := block.Block.Header
	view := &BlockView{
		Height:   block.Height(),
		Proposer: dir.ResolveByConsensusKey(header.ProposerAddress),
		BlockID:  blockIDFields(block.BlockID),
		Header: []models.Field{
			{Name: "version", Value: jsonValue(header.Version)},
			{Name: "chain_id", Value: header.ChainID},
			{Name: "height", Value: header.Height.String()},
			{Name: "time", Value: header.Time.Format(time.RFC3339Nano)},
			{Name: "last_block_id", Value: jsonValue(header.LastBlockID)},
			{Name: "last_commit_hash", Value: header.LastCommitHash},
			{Name: "data_hash", Value: header.DataHash},
			{Name: "validators_hash", Value: header.ValidatorsHash},
			{Name: "next_validators_hash", Value: header.NextValidatorsHash},
			{Name: "consensus_hash", Value: header.ConsensusHash},
			{Name: "app_hash", Value: header.AppHash},
			{Name: "last_results_hash", Value: header.LastResultsHash},
			{Name: "evidence_hash", Value: header.EvidenceHash},
			{Name: "proposer_address", Value: header.ProposerAddress},
		},
		Txs: make([]TxRow, 0, len(block.Block.Data.Txs)),
	}

	for _, raw := range block.Block.Data.Txs {
		tx := txdecode.Decode(raw)
		if tx == nil {
			view.Skipped++
			continue
		}
		view.Txs = append(view.Txs, TxRow{
			Hash:     tx.Hash,
			Fee:      format.FormatTokens(tx.Fee, overrides),
			Memo:     tx.Memo,
			Messages: txdecode.SummarizeMessages(tx.Messages),
		})
	}
	return view
}

func blockIDFields(id models.BlockID) []models.Field {
	fields := []models.Field{{Name: "hash", Value: id.Hash}}
	if id.Parts != nil {
		fields = append(fields, models.Field{Name: "parts", Value: jsonValue(id.Parts)})
	}
	if id.PartSetHeader != nil {
		fields = append(fields, models.Field{Name: "part_set_header", Value: jsonValue(id.PartSetHeader)})
	}
	return fields
}

// jsonValue renders nested values the way the detail lists show them
func jsonValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return format.Placeholder
	}
	return string(b)
}

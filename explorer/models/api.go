package models

import (
	"encoding/json"
	"time"
)

// Coin is a token amount in the chain's base unit
type Coin struct {
	Denom  string `json:"denom"`  // e.g., "uatom"
	Amount string `json:"amount"` // e.g., "1000000", reward coins may carry decimals
}

// PartSetHeader is part of the block id
type PartSetHeader struct {
	Total int    `json:"total"`
	Hash  string `json:"hash"`
}

// BlockID identifies a block. Legacy LCD responses use "parts", newer ones "part_set_header".
type BlockID struct {
	Hash          string         `json:"hash"`
	Parts         *PartSetHeader `json:"parts,omitempty"`
	PartSetHeader *PartSetHeader `json:"part_set_header,omitempty"`
}

// BlockHeader is the subset of the tendermint header the explorer displays
type BlockHeader struct {
	Version struct {
		Block FlexString `json:"block"`
		App   FlexString `json:"app"`
	} `json:"version"`
	ChainID            string     `json:"chain_id"`
	Height             FlexString `json:"height"`
	Time               time.Time  `json:"time"`
	LastBlockID        BlockID    `json:"last_block_id"`
	LastCommitHash     string     `json:"last_commit_hash"`
	DataHash           string     `json:"data_hash"`
	ValidatorsHash     string     `json:"validators_hash"`
	NextValidatorsHash string     `json:"next_validators_hash"`
	ConsensusHash      string     `json:"consensus_hash"`
	AppHash            string     `json:"app_hash"`
	LastResultsHash    string     `json:"last_results_hash"`
	EvidenceHash       string     `json:"evidence_hash"`
	ProposerAddress    string     `json:"proposer_address"` // upper case hex consensus address
}

// BlockResponse is returned by /blocks/{height} and /blocks/latest
type BlockResponse struct {
	BlockID BlockID `json:"block_id"`
	Block   struct {
		Header BlockHeader `json:"header"`
		Data   struct {
			Txs []string `json:"txs"` // base64 encoded TxRaw envelopes
		} `json:"data"`
	} `json:"block"`
}

// Height returns the block height from the header
func (b BlockResponse) Height() int64 {
	return b.Block.Header.Height.Int64()
}

// StakingParamsResponse is returned by /staking/parameters
type StakingParamsResponse struct {
	Height FlexString `json:"height"`
	Result struct {
		UnbondingTime     FlexString `json:"unbonding_time"`
		MaxValidators     FlexString `json:"max_validators"`
		MaxEntries        FlexString `json:"max_entries"`
		HistoricalEntries FlexString `json:"historical_entries"`
		BondDenom         string     `json:"bond_denom"`
	} `json:"result"`
}

// StakingPoolResponse is returned by /staking/pool
type StakingPoolResponse struct {
	Height FlexString `json:"height"`
	Result struct {
		NotBondedTokens string `json:"not_bonded_tokens"`
		BondedTokens    string `json:"bonded_tokens"`
	} `json:"result"`
}

// BankTotalResponse is returned by /bank/total/{denom}
type BankTotalResponse struct {
	Height FlexString `json:"height"`
	Result Coin       `json:"result"`
}

// InflationResponse is returned by /cosmos/mint/v1beta1/inflation
type InflationResponse struct {
	Inflation string `json:"inflation"` // e.g., "0.070000000000000000"
}

// ValidatorsResponse is returned by /staking/validators
type ValidatorsResponse struct {
	Height FlexString       `json:"height"`
	Result []ValidatorEntry `json:"result"`
}

// TxDetailResponse is returned by /cosmos/tx/v1beta1/txs/{hash}
type TxDetailResponse struct {
	Tx         *APITx      `json:"tx"`
	TxResponse *TxResponse `json:"tx_response"`
}

// APITx is the already decoded transaction of the tx service
type APITx struct {
	Type string `json:"@type"`
	Body *struct {
		Messages      []json.RawMessage `json:"messages"`
		Memo          string            `json:"memo"`
		TimeoutHeight FlexString        `json:"timeout_height"`
	} `json:"body"`
	AuthInfo *struct {
		Fee *struct {
			Amount   []Coin     `json:"amount"`
			GasLimit FlexString `json:"gas_limit"`
			Payer    string     `json:"payer"`
			Granter  string     `json:"granter"`
		} `json:"fee"`
	} `json:"auth_info"`
	Signatures []string `json:"signatures"`
}

// TxResponse carries the execution result of a transaction
type TxResponse struct {
	Height    FlexString `json:"height"`
	TxHash    string     `json:"txhash"`
	Codespace string     `json:"codespace"`
	Code      int        `json:"code"`
	RawLog    string     `json:"raw_log"`
	GasWanted FlexString `json:"gas_wanted"`
	GasUsed   FlexString `json:"gas_used"`
	Timestamp time.Time  `json:"timestamp"`
}

// AccountResponse is returned by /auth/accounts/{address}
type AccountResponse struct {
	Height FlexString `json:"height"`
	Result struct {
		Type  string `json:"type"` // e.g., "cosmos-sdk/BaseAccount"
		Value struct {
			Address       string          `json:"address"`
			PublicKey     json.RawMessage `json:"public_key"`
			AccountNumber FlexString      `json:"account_number"`
			Sequence      FlexString      `json:"sequence"`
		} `json:"value"`
	} `json:"result"`
}

// BalancesResponse is returned by /bank/balances/{address}
type BalancesResponse struct {
	Height FlexString `json:"height"`
	Result []Coin     `json:"result"`
}

// DelegatorReward is the pending reward of one delegation
type DelegatorReward struct {
	ValidatorAddress string `json:"validator_address"`
	Reward           []Coin `json:"reward"`
}

// RewardsResponse is returned by /cosmos/distribution/v1beta1/delegators/{address}/rewards
type RewardsResponse struct {
	Rewards []DelegatorReward `json:"rewards"`
	Total   []Coin            `json:"total"`
}

// DelegatorValidatorsResponse is returned by /cosmos/distribution/v1beta1/delegators/{address}/validators
type DelegatorValidatorsResponse struct {
	Validators []string `json:"validators"`
}

// DelegationResponse is one entry of /cosmos/staking/v1beta1/delegations/{address}
type DelegationResponse struct {
	Delegation struct {
		DelegatorAddress string `json:"delegator_address"`
		ValidatorAddress string `json:"validator_address"`
		Shares           string `json:"shares"`
	} `json:"delegation"`
	Balance Coin `json:"balance"`
}

// DelegationsResponse wraps the delegation list
type DelegationsResponse struct {
	DelegationResponses []DelegationResponse `json:"delegation_responses"`
}

// UnbondingEntry is a single pending unbonding
type UnbondingEntry struct {
	CreationHeight FlexString `json:"creation_height"`
	CompletionTime time.Time  `json:"completion_time"`
	InitialBalance string     `json:"initial_balance"`
	Balance        string     `json:"balance"`
}

// UnbondingResponse is one entry of /cosmos/staking/v1beta1/delegators/{address}/unbonding_delegations
type UnbondingResponse struct {
	DelegatorAddress string           `json:"delegator_address"`
	ValidatorAddress string           `json:"validator_address"`
	Entries          []UnbondingEntry `json:"entries"`
}

// UnbondingsResponse wraps the unbonding list
type UnbondingsResponse struct {
	UnbondingResponses []UnbondingResponse `json:"unbonding_responses"`
}

// LegacyMsg is an amino JSON message, e.g., {"type": "cosmos-sdk/MsgSend", "value": {...}}
type LegacyMsg struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// LegacyTx is the amino StdTx returned by the /txs search
type LegacyTx struct {
	Type  string      `json:"type"`
	Msg   []LegacyMsg `json:"msg"`
	Value struct {
		Msg  []LegacyMsg `json:"msg"`
		Memo string      `json:"memo"`
	} `json:"value"`
}

// Messages returns the messages regardless of which nesting the node used
func (t LegacyTx) Messages() []LegacyMsg {
	if len(t.Msg) > 0 {
		return t.Msg
	}
	return t.Value.Msg
}

// SearchTx is one entry of the /txs search result
type SearchTx struct {
	Height    FlexString `json:"height"`
	TxHash    string     `json:"txhash"`
	Code      int        `json:"code"`
	GasWanted FlexString `json:"gas_wanted"`
	GasUsed   FlexString `json:"gas_used"`
	Tx        LegacyTx   `json:"tx"`
	Timestamp time.Time  `json:"timestamp"`
}

// TxsSearchResponse is returned by /txs?message.sender=...
type TxsSearchResponse struct {
	TotalCount FlexString `json:"total_count"`
	Count      FlexString `json:"count"`
	PageNumber FlexString `json:"page_number"`
	PageTotal  FlexString `json:"page_total"`
	Limit      FlexString `json:"limit"`
	Txs        []SearchTx `json:"txs"`
}

// DenomTrace is an IBC denom trace as listed by the transfer module
type DenomTrace struct {
	Path      string `json:"path"`       // e.g., "transfer/channel-2"
	BaseDenom string `json:"base_denom"` // e.g., "uatone"
}

// DenomTracesResponse is returned by /ibc/apps/transfer/v1/denom_traces
type DenomTracesResponse struct {
	DenomTraces []DenomTrace `json:"denom_traces"`
	Pagination  Pagination   `json:"pagination"`
}

// Pagination is part of every response that has an array of items
type Pagination struct {
	NextKey string     `json:"next_key"`
	Total   FlexString `json:"total"`
}

package views

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/txdecode"
)

// Asset types of the address page
const (
	AssetBalance    = "Balance"
	AssetDelegation = "Delegation"
	AssetReward     = "Reward"
	AssetUnbonding  = "Unbonding"
)

// delegation table rows show the last characters of unknown validators
const validatorAbbr = 8

// AddressData holds the responses the address page is built from
type AddressData struct {
	Account     *models.AccountResponse
	Balances    *models.BalancesResponse
	Delegations []models.DelegationResponse
	Rewards     *models.RewardsResponse
	Validators  *models.DelegatorValidatorsResponse
	Unbonding   []models.UnbondingResponse
	Txs         *models.TxsSearchResponse
}

// Asset is one entry of the holdings list
type Asset struct {
	Type    string `json:"type"`
	Denom   string `json:"denom"`
	Amount  string `json:"amount"`  // base units
	Display string `json:"display"` // e.g., "1,250.5 ATOM"
	Percent string `json:"percent"` // share of the total, e.g., "12.5%"
}

// DelegationRow joins a delegation with its pending reward
type DelegationRow struct {
	Validator        string `json:"validator"`
	ValidatorAddress string `json:"validator_address"`
	Token            string `json:"token"`
	Reward           string `json:"reward"`
}

// TxInfo is one line of the address transaction list
type TxInfo struct {
	Height   int64  `json:"height"`
	TxHash   string `json:"txhash"`
	Messages string `json:"messages"`
	Time     string `json:"time"`
}

// AddressView is the address detail page
type AddressView struct {
	Address      string          `json:"address"`
	Total        string          `json:"total"` // sum of all assets in base units
	Assets       []Asset         `json:"assets"`
	Delegations  []DelegationRow `json:"delegations"`
	Validators   []string        `json:"validators"`
	Transactions []TxInfo        `json:"transactions"`
	Account      []models.Field  `json:"account"`
}

// NormalizeAddress aggregates the holdings of an address. Amounts of all assets are
// summed in base units to compute every asset's share; a zero total gives "-%".
func NormalizeAddress(address string, data AddressData, dir *resolver.Directory, overrides format.DenomTraces) *AddressView {
	var balances []models.Coin
	if data.Balances != nil {
		balances = data.Balances.Result
	}
	var totalRewards []models.Coin
	var rewards []models.DelegatorReward
	if data.Rewards != nil {
		totalRewards = data.Rewards.Total
		rewards = data.Rewards.Rewards
	}

	delegationAmount := decimal.Zero
	delegationDenom := ""
	for i, d := range data.Delegations {
		if i == 0 {
			delegationDenom = d.Balance.Denom
		}
		delegationAmount = delegationAmount.Add(format.Sum(d.Balance.Amount))
	}
	unbondingAmount := decimal.Zero
	for _, u := range data.Unbonding {
		for _, e := range u.Entries {
			unbondingAmount = unbondingAmount.Add(format.Sum(e.Balance))
		}
	}

	total := sumCoins(balances).Add(sumCoins(totalRewards)).Add(delegationAmount).Add(unbondingAmount)
	asset := func(kind string, coin models.Coin) Asset {
		amount, _ := format.ParseAmount(coin.Amount)
		return Asset{
			Type:    kind,
			Denom:   coin.Denom,
			Amount:  coin.Amount,
			Display: format.FormatToken(coin, overrides, 2),
			Percent: format.PercentOf(amount, total),
		}
	}

	view := &AddressView{
		Address:      address,
		Total:        total.String(),
		Assets:       make([]Asset, 0, len(balances)+len(totalRewards)+2),
		Delegations:  make([]DelegationRow, 0, len(data.Delegations)),
		Validators:   []string{},
		Transactions: []TxInfo{},
	}
	for _, b := range balances {
		view.Assets = append(view.Assets, asset(AssetBalance, b))
	}
	view.Assets = append(view.Assets, asset(AssetDelegation, models.Coin{Denom: delegationDenom, Amount: delegationAmount.String()}))
	for _, r := range totalRewards {
		view.Assets = append(view.Assets, asset(AssetReward, r))
	}
	view.Assets = append(view.Assets, asset(AssetUnbonding, models.Coin{Denom: delegationDenom, Amount: unbondingAmount.String()}))

	rewardsByValidator := make(map[string][]models.Coin, len(rewards))
	for _, r := range rewards {
		rewardsByValidator[r.ValidatorAddress] = r.Reward
	}
	for _, d := range data.Delegations {
		validator := d.Delegation.ValidatorAddress
		row := DelegationRow{
			Validator:        dir.ResolveByOperatorAddress(validator, validatorAbbr),
			ValidatorAddress: validator,
			Token:            format.FormatToken(d.Balance, overrides, 2),
			Reward:           format.Placeholder,
		}
		if reward, ok := rewardsByValidator[validator]; ok && len(reward) > 0 {
			row.Reward = format.FormatTokens(reward, overrides)
		}
		view.Delegations = append(view.Delegations, row)
	}

	if data.Validators != nil {
		for _, v := range data.Validators.Validators {
			view.Validators = append(view.Validators, dir.ResolveByOperatorAddress(v, validatorAbbr))
		}
	}

	if data.Txs != nil {
		for _, tx := range data.Txs.Txs {
			view.Transactions = append(view.Transactions, TxInfo{
				Height:   tx.Height.Int64(),
				TxHash:   tx.TxHash,
				Messages: txdecode.SummarizeLegacy(tx.Tx.Messages()),
				Time:     format.ToDay(tx.Timestamp, format.LayoutLong),
			})
		}
	}

	view.Account = accountFields(data.Account)
	return view
}

func sumCoins(coins []models.Coin) decimal.Decimal {
	amounts := make([]string, 0, len(coins))
	for _, c := range coins {
		amounts = append(amounts, c.Amount)
	}
	return format.Sum(amounts...)
}

func accountFields(account *models.AccountResponse) []models.Field {
	if account == nil {
		return []models.Field{}
	}
	value := account.Result.Value
	publicKey := format.Placeholder
	if len(bytes.TrimSpace(value.PublicKey)) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, value.PublicKey); err == nil {
			publicKey = buf.String()
		}
	}
	return []models.Field{
		{Name: "Account Type", Value: account.Result.Type},
		{Name: "Account Number", Value: value.AccountNumber.String()},
		{Name: "Sequence", Value: value.Sequence.String()},
		{Name: "Public Key", Value: publicKey},
	}
}

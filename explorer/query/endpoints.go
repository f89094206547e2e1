package query

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

func (c *Client) FetchBlockByHeight(ctx context.Context, height int64) (*models.BlockResponse, error) {
	var out models.BlockResponse
	if err := c.get(ctx, "block", "/blocks/"+strconv.FormatInt(height, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchLatestBlock(ctx context.Context) (*models.BlockResponse, error) {
	var out models.BlockResponse
	if err := c.get(ctx, "latest_block", "/blocks/latest", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchStakingParams(ctx context.Context) (*models.StakingParamsResponse, error) {
	var out models.StakingParamsResponse
	if err := c.get(ctx, "staking_params", "/staking/parameters", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchStakingPool(ctx context.Context) (*models.StakingPoolResponse, error) {
	var out models.StakingPoolResponse
	if err := c.get(ctx, "staking_pool", "/staking/pool", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchBankTotal returns the supply of denom. IBC denoms keep their slash.
func (c *Client) FetchBankTotal(ctx context.Context, denom string) (*models.BankTotalResponse, error) {
	var out models.BankTotalResponse
	if err := c.get(ctx, "bank_total", "/bank/total/"+denom, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchInflation(ctx context.Context) (*models.InflationResponse, error) {
	var out models.InflationResponse
	if err := c.get(ctx, "inflation", "/cosmos/mint/v1beta1/inflation", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchValidators lists the validators for the validator directory
func (c *Client) FetchValidators(ctx context.Context) ([]models.ValidatorEntry, error) {
	var out models.ValidatorsResponse
	if err := c.get(ctx, "validators", "/staking/validators", nil, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (c *Client) FetchTxDetail(ctx context.Context, hash string) (*models.TxDetailResponse, error) {
	var out models.TxDetailResponse
	if err := c.get(ctx, "tx_detail", "/cosmos/tx/v1beta1/txs/"+url.PathEscape(hash), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchAccountInfo(ctx context.Context, address string) (*models.AccountResponse, error) {
	var out models.AccountResponse
	if err := c.get(ctx, "account", "/auth/accounts/"+url.PathEscape(address), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchAccountBalance(ctx context.Context, address string) (*models.BalancesResponse, error) {
	var out models.BalancesResponse
	if err := c.get(ctx, "balances", "/bank/balances/"+url.PathEscape(address), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchStakingRewards(ctx context.Context, address string) (*models.RewardsResponse, error) {
	var out models.RewardsResponse
	path := "/cosmos/distribution/v1beta1/delegators/" + url.PathEscape(address) + "/rewards"
	if err := c.get(ctx, "rewards", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchStakingValidators(ctx context.Context, address string) (*models.DelegatorValidatorsResponse, error) {
	var out models.DelegatorValidatorsResponse
	path := "/cosmos/distribution/v1beta1/delegators/" + url.PathEscape(address) + "/validators"
	if err := c.get(ctx, "delegator_validators", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchStakingDelegations returns the delegation entries of the delegator
func (c *Client) FetchStakingDelegations(ctx context.Context, address string) ([]models.DelegationResponse, error) {
	var out models.DelegationsResponse
	if err := c.get(ctx, "delegations", "/cosmos/staking/v1beta1/delegations/"+url.PathEscape(address), nil, &out); err != nil {
		return nil, err
	}
	return out.DelegationResponses, nil
}

// FetchStakingUnbonding returns the unbonding entries of the delegator
func (c *Client) FetchStakingUnbonding(ctx context.Context, address string) ([]models.UnbondingResponse, error) {
	var out models.UnbondingsResponse
	path := "/cosmos/staking/v1beta1/delegators/" + url.PathEscape(address) + "/unbonding_delegations"
	if err := c.get(ctx, "unbonding", path, nil, &out); err != nil {
		return nil, err
	}
	return out.UnbondingResponses, nil
}

// GetTxsBySender pages through the transactions signed by sender. Pages start at 1.
func (c *Client) GetTxsBySender(ctx context.Context, sender string, page, limit int) (*models.TxsSearchResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	params := map[string]string{
		"message.sender": sender,
		"page":           strconv.Itoa(page),
		"limit":          strconv.Itoa(limit),
	}
	var out models.TxsSearchResponse
	if err := c.get(ctx, "txs_by_sender", "/txs", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

var errUpstream = errors.New("upstream down")

// fakeAPI serves a chain whose height grows by one on every latest block request
type fakeAPI struct {
	height atomic.Int64

	mu         sync.Mutex
	bankDenoms []string
	failOn     map[string]bool
	traces     []models.DenomTrace
}

func newFakeAPI(start int64) *fakeAPI {
	f := &fakeAPI{failOn: map[string]bool{}}
	f.height.Store(start - 1)
	return f
}

func (f *fakeAPI) fail(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[name] {
		return errUpstream
	}
	return nil
}

func (f *fakeAPI) setFail(name string, fail bool) {
	f.mu.Lock()
	f.failOn[name] = fail
	f.mu.Unlock()
}

func fakeBlock(height int64) *models.BlockResponse {
	b := &models.BlockResponse{}
	b.Block.Header.Height = models.FlexString(strconv.FormatInt(height, 10))
	b.Block.Header.Time = time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	b.Block.Header.ProposerAddress = "AE216C2EF5247A3782C135EFA279A3E4CDC61094"
	return b
}

func (f *fakeAPI) FetchValidators(context.Context) ([]models.ValidatorEntry, error) {
	if err := f.fail("validators"); err != nil {
		return nil, err
	}
	v := models.ValidatorEntry{OperatorAddress: "cosmosvaloper1alice"}
	v.Description.Moniker = "Alice"
	v.ConsensusPubkey = models.ConsensusPubkey{Type: "/cosmos.crypto.ed25519.PubKey", Key: "AQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyA="}
	return []models.ValidatorEntry{v}, nil
}

func (f *fakeAPI) FetchBlockByHeight(_ context.Context, height int64) (*models.BlockResponse, error) {
	if err := f.fail("block"); err != nil {
		return nil, err
	}
	b := fakeBlock(height)
	b.Block.Data.Txs = []string{"!!!"}
	return b, nil
}

func (f *fakeAPI) FetchLatestBlock(context.Context) (*models.BlockResponse, error) {
	if err := f.fail("latest"); err != nil {
		return nil, err
	}
	return fakeBlock(f.height.Add(1)), nil
}

func (f *fakeAPI) FetchStakingParams(context.Context) (*models.StakingParamsResponse, error) {
	if err := f.fail("params"); err != nil {
		return nil, err
	}
	out := &models.StakingParamsResponse{}
	out.Result.BondDenom = "uatom"
	return out, nil
}

func (f *fakeAPI) FetchStakingPool(context.Context) (*models.StakingPoolResponse, error) {
	out := &models.StakingPoolResponse{}
	out.Result.BondedTokens = "50000000"
	return out, nil
}

func (f *fakeAPI) FetchBankTotal(_ context.Context, denom string) (*models.BankTotalResponse, error) {
	f.mu.Lock()
	f.bankDenoms = append(f.bankDenoms, denom)
	f.mu.Unlock()
	return &models.BankTotalResponse{Result: models.Coin{Denom: denom, Amount: "100000000"}}, nil
}

func (f *fakeAPI) FetchInflation(context.Context) (*models.InflationResponse, error) {
	return &models.InflationResponse{Inflation: "0.1"}, nil
}

const fakeTxDetail = `{
  "tx": {"body": {"messages": [{"@type": "/cosmos.bank.v1beta1.MsgSend", "from_address": "cosmos1a",
    "to_address": "cosmos1b", "amount": [{"denom": "uatom", "amount": "1"}]}], "memo": "memo"},
    "auth_info": {"fee": {"amount": [], "gas_limit": "100"}}, "signatures": []},
  "tx_response": {"height": "5", "txhash": "ABCD", "code": 0, "gas_wanted": "100", "gas_used": "50",
    "timestamp": "2021-06-01T10:00:00Z"}
}`

func (f *fakeAPI) FetchTxDetail(_ context.Context, hash string) (*models.TxDetailResponse, error) {
	if err := f.fail("tx"); err != nil {
		return nil, err
	}
	var out models.TxDetailResponse
	if err := json.Unmarshal([]byte(fakeTxDetail), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *fakeAPI) FetchAccountInfo(_ context.Context, address string) (*models.AccountResponse, error) {
	if err := f.fail("account"); err != nil {
		return nil, err
	}
	out := &models.AccountResponse{}
	out.Result.Type = "cosmos-sdk/BaseAccount"
	out.Result.Value.Address = address
	return out, nil
}

func (f *fakeAPI) FetchAccountBalance(context.Context, string) (*models.BalancesResponse, error) {
	return &models.BalancesResponse{Result: []models.Coin{{Denom: "uatom", Amount: "1000000"}}}, nil
}

func (f *fakeAPI) FetchStakingRewards(context.Context, string) (*models.RewardsResponse, error) {
	return &models.RewardsResponse{}, nil
}

func (f *fakeAPI) FetchStakingValidators(context.Context, string) (*models.DelegatorValidatorsResponse, error) {
	return &models.DelegatorValidatorsResponse{Validators: []string{"cosmosvaloper1alice"}}, nil
}

func (f *fakeAPI) FetchStakingDelegations(context.Context, string) ([]models.DelegationResponse, error) {
	var d models.DelegationResponse
	d.Delegation.ValidatorAddress = "cosmosvaloper1alice"
	d.Balance = models.Coin{Denom: "uatom", Amount: "1000000"}
	return []models.DelegationResponse{d}, nil
}

func (f *fakeAPI) FetchStakingUnbonding(context.Context, string) ([]models.UnbondingResponse, error) {
	return nil, nil
}

func (f *fakeAPI) GetTxsBySender(_ context.Context, _ string, page, limit int) (*models.TxsSearchResponse, error) {
	return &models.TxsSearchResponse{
		PageNumber: models.FlexString(strconv.Itoa(page)),
		Limit:      models.FlexString(strconv.Itoa(limit)),
	}, nil
}

func (f *fakeAPI) FetchDenomTraces(context.Context) ([]models.DenomTrace, error) {
	if err := f.fail("traces"); err != nil {
		return nil, err
	}
	return f.traces, nil
}

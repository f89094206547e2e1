// Package service loads the explorer views. It fetches the responses a view needs
// concurrently and only builds the view once all of them arrived.
package service

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/query"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "service").Logger()
}

// SetLogger allows setting a custom logger
func SetLogger(l zerolog.Logger) {
	log = l.With().Str("component", "service").Logger()
}

// API is the chain REST API as used by the views
type API interface {
	resolver.ValidatorFetcher

	FetchBlockByHeight(ctx context.Context, height int64) (*models.BlockResponse, error)
	FetchLatestBlock(ctx context.Context) (*models.BlockResponse, error)
	FetchStakingParams(ctx context.Context) (*models.StakingParamsResponse, error)
	FetchStakingPool(ctx context.Context) (*models.StakingPoolResponse, error)
	FetchBankTotal(ctx context.Context, denom string) (*models.BankTotalResponse, error)
	FetchInflation(ctx context.Context) (*models.InflationResponse, error)
	FetchTxDetail(ctx context.Context, hash string) (*models.TxDetailResponse, error)
	FetchAccountInfo(ctx context.Context, address string) (*models.AccountResponse, error)
	FetchAccountBalance(ctx context.Context, address string) (*models.BalancesResponse, error)
	FetchStakingRewards(ctx context.Context, address string) (*models.RewardsResponse, error)
	FetchStakingValidators(ctx context.Context, address string) (*models.DelegatorValidatorsResponse, error)
	FetchStakingDelegations(ctx context.Context, address string) ([]models.DelegationResponse, error)
	FetchStakingUnbonding(ctx context.Context, address string) ([]models.UnbondingResponse, error)
	GetTxsBySender(ctx context.Context, sender string, page, limit int) (*models.TxsSearchResponse, error)
	FetchDenomTraces(ctx context.Context) ([]models.DenomTrace, error)
}

var _ API = (*query.Client)(nil)

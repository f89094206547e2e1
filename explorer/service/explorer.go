package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/query"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/views"
)

// DefaultTxsLimit is the page size of the address transaction list
const DefaultTxsLimit = 20

var decodeFailures metric.Int64Counter

func init() {
	var err error
	decodeFailures, err = otel.Meter("github.com/Cogwheel-Validator/spectra-explorer/explorer/service").
		Int64Counter("explorer.tx.decode_failures",
			metric.WithDescription("Block transactions that could not be decoded"),
		)
	if err != nil {
		log.Error().Err(err).Msg("failed to create decode failure counter")
	}
}

// Explorer builds views from the API and the validator directory
type Explorer struct {
	api       API
	resolver  *resolver.Resolver
	overrides atomic.Pointer[format.DenomTraces]
	fileMap   format.DenomTraces
}

// New returns an Explorer. fileOverrides are denom traces from the configured denom
// map, they take precedence over the traces listed by the chain.
func New(api API, r *resolver.Resolver, fileOverrides format.DenomTraces) *Explorer {
	e := &Explorer{api: api, resolver: r, fileMap: fileOverrides}
	merged := make(format.DenomTraces, len(fileOverrides))
	for k, v := range fileOverrides {
		merged[k] = v
	}
	e.overrides.Store(&merged)
	return e
}

// DenomTraces returns the current denom overrides
func (e *Explorer) DenomTraces() format.DenomTraces {
	return *e.overrides.Load()
}

// Directory returns the validator directory snapshot for one render
func (e *Explorer) Directory() *resolver.Directory {
	return e.resolver.Directory()
}

// RefreshValidators replaces the cached validator directory
func (e *Explorer) RefreshValidators(ctx context.Context) (int, error) {
	return e.resolver.Refresh(ctx, e.api)
}

// RefreshDenomTraces loads the IBC denom traces of the chain and merges them with the
// denom map overrides
func (e *Explorer) RefreshDenomTraces(ctx context.Context) (int, error) {
	traces, err := e.api.FetchDenomTraces(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch denom traces: %w", err)
	}
	merged := query.BuildDenomTraces(traces)
	for k, v := range e.fileMap {
		merged[k] = v
	}
	e.overrides.Store(&merged)
	return len(merged), nil
}

// DashboardData fetches the dashboard responses. The bank total needs the bond denom
// and is fetched once the staking params arrived.
func (e *Explorer) DashboardData(ctx context.Context) (views.DashboardData, error) {
	var data views.DashboardData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.LatestBlock, err = e.api.FetchLatestBlock(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.StakingPool, err = e.api.FetchStakingPool(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.StakingParams, err = e.api.FetchStakingParams(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Inflation, err = e.api.FetchInflation(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return views.DashboardData{}, fmt.Errorf("failed to load dashboard: %w", err)
	}
	if data.LatestBlock == nil || data.StakingParams == nil {
		return views.DashboardData{}, errors.New("failed to load dashboard: empty response")
	}

	bankTotal, err := e.api.FetchBankTotal(ctx, data.StakingParams.Result.BondDenom)
	if err != nil {
		return views.DashboardData{}, fmt.Errorf("failed to load dashboard: %w", err)
	}
	data.BankTotal = bankTotal
	return data, nil
}

// Block loads the block detail
func (e *Explorer) Block(ctx context.Context, height int64) (*views.BlockView, error) {
	block, err := e.api.FetchBlockByHeight(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("failed to load block %d: %w", height, err)
	}
	view := views.NormalizeBlock(block, e.Directory(), e.DenomTraces())
	if view.Skipped > 0 {
		log.Debug().Int64("height", height).Int("skipped", view.Skipped).Msg("undecodable transactions in block")
		if decodeFailures != nil {
			decodeFailures.Add(ctx, int64(view.Skipped))
		}
	}
	return view, nil
}

// Transaction loads the transaction detail
func (e *Explorer) Transaction(ctx context.Context, hash string) (*views.TransactionView, error) {
	detail, err := e.api.FetchTxDetail(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s: %w", hash, err)
	}
	return views.NormalizeTransaction(detail, e.DenomTraces())
}

// Address loads the address detail with one page of its transactions
func (e *Explorer) Address(ctx context.Context, address string, page, limit int) (*views.AddressView, error) {
	if limit <= 0 {
		limit = DefaultTxsLimit
	}

	var data views.AddressData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Account, err = e.api.FetchAccountInfo(gctx, address)
		return err
	})
	g.Go(func() (err error) {
		data.Balances, err = e.api.FetchAccountBalance(gctx, address)
		return err
	})
	g.Go(func() (err error) {
		data.Rewards, err = e.api.FetchStakingRewards(gctx, address)
		return err
	})
	g.Go(func() (err error) {
		data.Validators, err = e.api.FetchStakingValidators(gctx, address)
		return err
	})
	g.Go(func() (err error) {
		data.Delegations, err = e.api.FetchStakingDelegations(gctx, address)
		return err
	})
	g.Go(func() (err error) {
		data.Unbonding, err = e.api.FetchStakingUnbonding(gctx, address)
		return err
	})
	g.Go(func() (err error) {
		data.Txs, err = e.api.GetTxsBySender(gctx, address, page, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load address %s: %w", address, err)
	}
	return views.NormalizeAddress(address, data, e.Directory(), e.DenomTraces()), nil
}

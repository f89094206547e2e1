package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/cache"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/config"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/query"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/service"
)

// runtime is what the online commands share: the loaded config, the API client,
// the validator cache and the explorer built on top of them
type runtime struct {
	config   *config.ExplorerConfig
	client   *query.Client
	store    cache.Store
	explorer *service.Explorer
}

func newRuntime(ctx context.Context, opts *options) (*runtime, error) {
	var configPath *string
	if opts.configPath != "" {
		configPath = &opts.configPath
	}
	cfg, err := config.LoadExplorerConfig(configPath)
	if err != nil {
		return nil, err
	}

	denoms, err := config.LoadDenomMap(ctx, cfg.DenomMapSource)
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(cfg.CacheBackend, cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open validator cache: %w", err)
	}

	client, err := query.NewClient(cfg.QueryConfig())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	log.Debug().
		Str("api", client.CurrentURL()).
		Str("cache", cfg.CacheBackend).
		Int("denom_overrides", len(denoms)).
		Msg("explorer runtime ready")

	return &runtime{
		config:   cfg,
		client:   client,
		store:    store,
		explorer: service.New(client, resolver.New(store), denoms),
	}, nil
}

// ensureValidators loads the validator directory when the cache holds none, so
// proposers and validators show monikers
func (r *runtime) ensureValidators(ctx context.Context) {
	if r.explorer.Directory().Len() > 0 {
		return
	}
	if _, err := r.explorer.RefreshValidators(ctx); err != nil {
		log.Warn().Err(err).Msg("validator refresh failed, showing addresses")
	}
}

func (r *runtime) Close() {
	r.client.Close()
	if err := r.store.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close validator cache")
	}
}

// withRuntime adapts a command body that needs the online runtime
func withRuntime(opts *options, fn func(cmd *cobra.Command, rt *runtime, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer rt.Close()
		return fn(cmd, rt, args)
	}
}

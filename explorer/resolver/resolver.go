// Package resolver maps consensus addresses and operator addresses to validator monikers
// using the cached validator directory.
package resolver

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/cache"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

var Logger zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	Logger = zerolog.New(out).With().Timestamp().Str("component", "resolver").Logger()
}

// SetLogger allows setting a custom logger
func SetLogger(l zerolog.Logger) {
	Logger = l
}

const consensusKeyAbbr = 6

// ValidatorFetcher lists the validators of the chain
type ValidatorFetcher interface {
	FetchValidators(ctx context.Context) ([]models.ValidatorEntry, error)
}

// Resolver reads and refreshes the validator directory kept in the cache store
type Resolver struct {
	store cache.Store
}

func New(store cache.Store) *Resolver {
	return &Resolver{store: store}
}

// Refresh fetches the validator list and replaces the cached entry with it
func (r *Resolver) Refresh(ctx context.Context, fetcher ValidatorFetcher) (int, error) {
	validators, err := fetcher.FetchValidators(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch validators: %w", err)
	}
	if err := cache.SaveJSON(r.store, cache.ValidatorsKey, validators); err != nil {
		return 0, fmt.Errorf("failed to store validators: %w", err)
	}
	Logger.Debug().Int("validators", len(validators)).Msg("validator directory refreshed")
	return len(validators), nil
}

// Directory reads the cached validator list. A missing or unreadable entry gives an
// empty directory, lookups then fall back to truncated identifiers.
func (r *Resolver) Directory() *Directory {
	var validators []models.ValidatorEntry
	ok, err := cache.LoadJSON(r.store, cache.ValidatorsKey, &validators)
	if err != nil {
		Logger.Warn().Err(err).Msg("validator cache unreadable")
		return NewDirectory(nil)
	}
	if !ok {
		return NewDirectory(nil)
	}
	return NewDirectory(validators)
}

// ResolveByConsensusKey is Directory().ResolveByConsensusKey
func (r *Resolver) ResolveByConsensusKey(hexAddress string) string {
	return r.Directory().ResolveByConsensusKey(hexAddress)
}

// ResolveByOperatorAddress is Directory().ResolveByOperatorAddress
func (r *Resolver) ResolveByOperatorAddress(address string, length int) string {
	return r.Directory().ResolveByOperatorAddress(address, length)
}

// Directory is an immutable snapshot of the validator list, indexed for lookups
type Directory struct {
	byConsensus map[string]string
	byOperator  map[string]string
}

func NewDirectory(validators []models.ValidatorEntry) *Directory {
	d := &Directory{
		byConsensus: make(map[string]string, len(validators)),
		byOperator:  make(map[string]string, len(validators)),
	}
	for _, v := range validators {
		moniker := v.Description.Moniker
		if v.OperatorAddress != "" {
			d.byOperator[v.OperatorAddress] = moniker
		}
		if hexAddr := ConsensusPubkeyToHexAddress(v.ConsensusPubkey); hexAddr != "" {
			d.byConsensus[hexAddr] = moniker
		}
	}
	return d
}

// Len returns the number of indexed validators
func (d *Directory) Len() int {
	return len(d.byOperator)
}

// ResolveByConsensusKey returns the moniker of the validator with the given hex
// consensus address, or the address abbreviated
func (d *Directory) ResolveByConsensusKey(hexAddress string) string {
	if moniker, ok := d.byConsensus[strings.ToUpper(hexAddress)]; ok && moniker != "" {
		return moniker
	}
	return format.Abbr(hexAddress, consensusKeyAbbr)
}

// ResolveByOperatorAddress returns the moniker of the validator, or the last length
// characters of the address. A length <= 0 keeps the whole address.
func (d *Directory) ResolveByOperatorAddress(address string, length int) string {
	if moniker, ok := d.byOperator[address]; ok && moniker != "" {
		return moniker
	}
	if length <= 0 || length >= len(address) {
		return address
	}
	return address[len(address)-length:]
}

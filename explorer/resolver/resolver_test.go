package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/cache"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

const (
	// raw key bytes 0x01..0x20
	objectKey    = "AQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyA="
	bech32Key    = "cosmosvalconspub1zcjduepqqypqxpq9qcrsszg2pvxq6rs0zqg3yyc5z5tpwxqergd3c8g7rusqu92atf"
	keyHexAddr   = "AE216C2EF5247A3782C135EFA279A3E4CDC61094"
	otherKey     = "BwcHBwcHBwcHBwcHBwcHBwcHBwcHBwcHBwcHBwcHBwc="
	otherHexAddr = "4BB06F8E4E3A7715D201D573D0AA423762E55DAB"
)

func TestConsensusPubkeyToHexAddress(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "object", json: `{"@type": "/cosmos.crypto.ed25519.PubKey", "key": "` + objectKey + `"}`, want: keyHexAddr},
		{name: "amino object", json: `{"type": "tendermint/PubKeyEd25519", "value": "` + otherKey + `"}`, want: otherHexAddr},
		{name: "bech32", json: `"` + bech32Key + `"`, want: keyHexAddr},
		{name: "bad checksum", json: `"` + bech32Key[:len(bech32Key)-1] + `q"`, want: ""},
		{name: "bad base64", json: `{"key": "%%%"}`, want: ""},
		{name: "empty", json: `null`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pk models.ConsensusPubkey
			assert.NoError(t, json.Unmarshal([]byte(tt.json), &pk))
			assert.Equal(t, ConsensusPubkeyToHexAddress(pk), tt.want)
		})
	}
}

func TestIsAccountAddress(t *testing.T) {
	assert.True(t, IsAccountAddress("cosmos1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnrk363e"))
	assert.False(t, IsAccountAddress("cosmos1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnrk363f"))
	assert.False(t, IsAccountAddress("cosmos1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnzszga8hs"))
	assert.False(t, IsAccountAddress("COSMOS1QQQSYQCYQ5RQWZQFPG9SCRGWPUGPZYSNRK363E"))
	assert.False(t, IsAccountAddress("12345"))
}

type fakeFetcher struct {
	validators []models.ValidatorEntry
	err        error
}

func (f *fakeFetcher) FetchValidators(context.Context) ([]models.ValidatorEntry, error) {
	return f.validators, f.err
}

func validator(operator, moniker, pubkeyJSON string) models.ValidatorEntry {
	var v models.ValidatorEntry
	v.OperatorAddress = operator
	v.Description.Moniker = moniker
	if pubkeyJSON != "" {
		if err := json.Unmarshal([]byte(pubkeyJSON), &v.ConsensusPubkey); err != nil {
			panic(err)
		}
	}
	return v
}

func TestResolver(t *testing.T) {
	store := cache.NewMemoryStore()
	r := New(store)

	// nothing cached yet
	assert.Equal(t, r.ResolveByOperatorAddress("cosmosvaloperXYZ", 3), "XYZ")
	assert.Equal(t, r.ResolveByConsensusKey(keyHexAddr), "AE216C...")

	fetcher := &fakeFetcher{validators: []models.ValidatorEntry{
		validator("cosmosvaloperXYZ", "Alice", `"`+bech32Key+`"`),
		validator("cosmosvaloperABC", "Bob", `{"key": "`+otherKey+`"}`),
	}}
	n, err := r.Refresh(context.Background(), fetcher)
	assert.NoError(t, err)
	assert.Equal(t, n, 2)

	assert.Equal(t, r.ResolveByOperatorAddress("cosmosvaloperXYZ", 8), "Alice")
	assert.Equal(t, r.ResolveByConsensusKey(keyHexAddr), "Alice")
	assert.Equal(t, r.ResolveByConsensusKey(otherHexAddr), "Bob")

	// misses fall back to truncated identifiers
	assert.Equal(t, r.ResolveByOperatorAddress("cosmosvaloper1unknown", 7), "unknown")
	assert.Equal(t, r.ResolveByOperatorAddress("cosmosvaloper1unknown", 0), "cosmosvaloper1unknown")
	assert.Equal(t, r.ResolveByConsensusKey("0011223344"), "001122...")

	// refresh replaces the directory wholesale
	fetcher.validators = []models.ValidatorEntry{validator("cosmosvaloperABC", "Bob", "")}
	_, err = r.Refresh(context.Background(), fetcher)
	assert.NoError(t, err)
	d := r.Directory()
	assert.Equal(t, d.Len(), 1)
	assert.Equal(t, d.ResolveByOperatorAddress("cosmosvaloperXYZ", 3), "XYZ")
	assert.Equal(t, d.ResolveByConsensusKey(otherHexAddr), "4BB06F...")
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	store := cache.NewMemoryStore()
	r := New(store)
	_, err := r.Refresh(context.Background(), &fakeFetcher{validators: []models.ValidatorEntry{validator("op", "Alice", "")}})
	assert.NoError(t, err)

	_, err = r.Refresh(context.Background(), &fakeFetcher{err: errors.New("boom")})
	assert.Error(t, err)
	assert.Equal(t, r.ResolveByOperatorAddress("op", 0), "Alice")
}

func TestDirectoryUnreadableCache(t *testing.T) {
	store := cache.NewMemoryStore()
	assert.NoError(t, store.Put(cache.ValidatorsKey, []byte("not json")))
	r := New(store)
	assert.Equal(t, r.Directory().Len(), 0)
	assert.Equal(t, r.ResolveByOperatorAddress("cosmosvaloper1abc", 3), "abc")
}

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	getter "github.com/hashicorp/go-getter"
	"github.com/pelletier/go-toml/v2"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/query"
)

const denomFetchTimeout = 60 * time.Second

// DenomFile is the denom override file
//
//	[[denom]]
//	ibc_denom = "ibc/27394FB0..."
//	path = "transfer/channel-0"
//	base_denom = "uatom"
type DenomFile struct {
	Denoms []DenomEntry `toml:"denom"`
}

// DenomEntry overrides one IBC denom. IBCDenom may be left out, it is then derived
// from the path and base denom.
type DenomEntry struct {
	IBCDenom  string `toml:"ibc_denom"`
	Path      string `toml:"path"`
	BaseDenom string `toml:"base_denom"`
}

// LoadDenomMap fetches the override file from a go-getter source (local path, http,
// git, s3...) and parses it. An empty source yields an empty map.
func LoadDenomMap(ctx context.Context, source string) (format.DenomTraces, error) {
	if source == "" {
		return format.DenomTraces{}, nil
	}

	dir, err := os.MkdirTemp("", "explorer-denoms-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, denomFetchTimeout)
	defer cancel()

	dst := filepath.Join(dir, "denoms.toml")
	client := getter.Client{
		Ctx:  ctx,
		Src:  source,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("failed to download denom map from %s: %w", source, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to read denom map: %w", err)
	}
	return ParseDenomMap(data)
}

// ParseDenomMap parses a TOML denom override file
func ParseDenomMap(data []byte) (format.DenomTraces, error) {
	var file DenomFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse denom map: %w", err)
	}

	out := make(format.DenomTraces, len(file.Denoms))
	for i, d := range file.Denoms {
		if d.BaseDenom == "" {
			return nil, fmt.Errorf("denom %d: base_denom is required", i)
		}
		ibcDenom := d.IBCDenom
		if ibcDenom == "" {
			if d.Path == "" {
				return nil, fmt.Errorf("denom %d: ibc_denom or path is required", i)
			}
			ibcDenom = query.ComputeDenomHash(d.Path + "/" + d.BaseDenom)
		}
		if !strings.HasPrefix(ibcDenom, "ibc/") {
			return nil, fmt.Errorf("denom %d: %q is not an ibc denom", i, ibcDenom)
		}
		out[ibcDenom] = format.DenomTrace{Path: d.Path, BaseDenom: d.BaseDenom}
	}
	return out, nil
}

package query

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

// FetchDenomTraces walks all pages of the IBC transfer denom traces
func (c *Client) FetchDenomTraces(ctx context.Context) ([]models.DenomTrace, error) {
	traces := make([]models.DenomTrace, 0)
	nextKey := ""

	for {
		var params map[string]string
		if nextKey != "" {
			params = map[string]string{"pagination.key": nextKey}
		}

		var page models.DenomTracesResponse
		if err := c.get(ctx, "denom_traces", "/ibc/apps/transfer/v1/denom_traces", params, &page); err != nil {
			return nil, err
		}
		traces = append(traces, page.DenomTraces...)

		if page.Pagination.NextKey == "" || page.Pagination.NextKey == nextKey {
			break
		}
		nextKey = page.Pagination.NextKey
	}

	return traces, nil
}

// ComputeDenomHash computes the IBC denom of a full trace such as "transfer/channel-0/uatom"
func ComputeDenomHash(trace string) string {
	hash := sha256.Sum256([]byte(trace))
	return fmt.Sprintf("ibc/%s", strings.ToUpper(hex.EncodeToString(hash[:])))
}

// BuildDenomTraces indexes traces by their IBC denom. Traces without a path are
// native denoms and are left out.
func BuildDenomTraces(traces []models.DenomTrace) format.DenomTraces {
	out := make(format.DenomTraces, len(traces))
	for _, t := range traces {
		if t.Path == "" || t.BaseDenom == "" {
			continue
		}
		out[ComputeDenomHash(t.Path+"/"+t.BaseDenom)] = format.DenomTrace{Path: t.Path, BaseDenom: t.BaseDenom}
	}
	return out
}

package views

import (
	"regexp"
	"strings"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
)

// SearchKind is the page a search query leads to
type SearchKind string

const (
	SearchBlock       SearchKind = "block"
	SearchTransaction SearchKind = "transaction"
	SearchAddress     SearchKind = "address"
	SearchUnknown     SearchKind = "unknown"
)

var (
	heightPattern = regexp.MustCompile(`^\d+$`)
	txHashPattern = regexp.MustCompile(`^[0-9A-Fa-f]{64}$`)
)

// SearchResult is the classified query. Query is normalized for the target page,
// transaction hashes are upper cased.
type SearchResult struct {
	Kind  SearchKind `json:"kind"`
	Query string     `json:"query"`
}

// ClassifySearch decides whether q is a block height, a transaction hash or an
// account address
func ClassifySearch(q string) SearchResult {
	q = strings.TrimSpace(q)
	switch {
	case q == "":
		return SearchResult{Kind: SearchUnknown}
	case txHashPattern.MatchString(q):
		return SearchResult{Kind: SearchTransaction, Query: strings.ToUpper(q)}
	case heightPattern.MatchString(q):
		height := strings.TrimLeft(q, "0")
		if height == "" {
			return SearchResult{Kind: SearchUnknown, Query: q}
		}
		return SearchResult{Kind: SearchBlock, Query: height}
	case resolver.IsAccountAddress(q):
		return SearchResult{Kind: SearchAddress, Query: q}
	}
	return SearchResult{Kind: SearchUnknown, Query: q}
}

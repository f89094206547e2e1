// Package txdecode turns transaction envelopes into the explorer's StdTx model.
//
// Two adapters converge on the same StdTx shape:
//   - Decode parses the base64 TxRaw envelopes found in block data
//   - FromAPI converts the already decoded transaction of the tx service
package txdecode

import (
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

// TxTypeURL is the type of every transaction produced by this package
const TxTypeURL = "/cosmos.tx.v1beta1.Tx"

// StdTx is the normalized transaction. It is not modified after construction except
// for the hash, which only the raw decoder assigns.
type StdTx struct {
	Type          string        `json:"type"`
	Fee           []models.Coin `json:"fee"`
	Gas           uint64        `json:"gas"`
	Memo          string        `json:"memo"`
	Messages      []Message     `json:"messages"`
	Signatures    []string      `json:"signatures"` // base64
	TimeoutHeight uint64        `json:"timeout_height"`
	Hash          string        `json:"hash,omitempty"` // upper case hex SHA-256 of the raw bytes
}

// Fee of a transaction as carried by the auth info
type Fee struct {
	Amount   []models.Coin
	GasLimit uint64
}

func newStdTx(fee Fee, memo string, msgs []Message, sigs []string, timeoutHeight uint64) *StdTx {
	if fee.Amount == nil {
		fee.Amount = []models.Coin{}
	}
	if msgs == nil {
		msgs = []Message{}
	}
	if sigs == nil {
		sigs = []string{}
	}
	return &StdTx{
		Type:          TxTypeURL,
		Fee:           fee.Amount,
		Gas:           fee.GasLimit,
		Memo:          memo,
		Messages:      msgs,
		Signatures:    sigs,
		TimeoutHeight: timeoutHeight,
	}
}

// Labels returns the short names of the transaction messages
func (tx *StdTx) Labels() []string {
	labels := make([]string, 0, len(tx.Messages))
	for _, m := range tx.Messages {
		labels = append(labels, ShortName(m.TypeURL()))
	}
	return labels
}

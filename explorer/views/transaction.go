package views

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/txdecode"
)

// TransactionView is the transaction detail page
type TransactionView struct {
	Basic    []models.Field   `json:"basic"`
	Messages [][]models.Field `json:"messages"`
}

// NormalizeTransaction builds the basic record and the message field lists of a transaction
func NormalizeTransaction(detail *models.TxDetailResponse, overrides format.DenomTraces) (*TransactionView, error) {
	if detail == nil || detail.TxResponse == nil {
		return nil, errors.New("transaction response is missing")
	}
	tx, err := txdecode.FromAPI(detail.Tx)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction: %w", err)
	}

	res := detail.TxResponse
	status := "Success"
	if res.Code != 0 {
		status = "Failed"
	}

	view := &TransactionView{
		Basic: []models.Field{
			{Name: "txhash", Value: res.TxHash},
			{Name: "status", Value: status},
			{Name: "height", Value: res.Height.String()},
			{Name: "timestamp", Value: format.ToDay(res.Timestamp, format.LayoutLong)},
			{Name: "gas", Value: res.GasUsed.String() + " / " + res.GasWanted.String()},
			{Name: "fee", Value: format.FormatTokens(tx.Fee, overrides)},
			{Name: "memo", Value: tx.Memo},
			{Name: "timeout_height", Value: strconv.FormatUint(tx.TimeoutHeight, 10)},
		},
		Messages: make([][]models.Field, 0, len(tx.Messages)),
	}
	for _, m := range tx.Messages {
		view.Messages = append(view.Messages, m.Fields())
	}
	return view, nil
}

package txdecode

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

// FromAPI builds a StdTx from the decoded transaction of /cosmos/tx/v1beta1/txs/{hash}.
// The hash is left empty, the tx response carries it.
func FromAPI(apiTx *models.APITx) (*StdTx, error) {
	if apiTx == nil {
		return nil, ErrEmpty
	}
	if apiTx.Body == nil {
		return nil, ErrMissingBody
	}
	if apiTx.AuthInfo == nil {
		return nil, ErrMissingAuthInfo
	}

	var fee Fee
	if apiTx.AuthInfo.Fee != nil {
		fee.Amount = apiTx.AuthInfo.Fee.Amount
		fee.GasLimit = apiTx.AuthInfo.Fee.GasLimit.Uint64()
	}

	msgs := make([]Message, 0, len(apiTx.Body.Messages))
	for i, raw := range apiTx.Body.Messages {
		msg, err := messageFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}

	return newStdTx(fee, apiTx.Body.Memo, msgs, apiTx.Signatures, apiTx.Body.TimeoutHeight.Uint64()), nil
}

func messageFromJSON(raw json.RawMessage) (Message, error) {
	var head struct {
		Type string `json:"@type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	if head.Type == "" {
		return nil, fmt.Errorf("message without @type")
	}

	var msg Message
	switch head.Type {
	case TypeMsgSend:
		msg = &MsgSend{}
	case TypeMsgDelegate:
		msg = &MsgDelegate{}
	case TypeMsgUndelegate:
		msg = &MsgUndelegate{}
	case TypeMsgBeginRedelegate:
		msg = &MsgBeginRedelegate{}
	case TypeMsgWithdrawDelegatorReward:
		msg = &MsgWithdrawDelegatorReward{}
	default:
		return unknownFromJSON(head.Type, raw), nil
	}
	if err := json.Unmarshal(raw, msg); err != nil {
		return unknownFromJSON(head.Type, raw), nil
	}
	if send, ok := msg.(*MsgSend); ok && send.Amount == nil {
		send.Amount = []models.Coin{}
	}
	return msg, nil
}

func unknownFromJSON(typeURL string, raw json.RawMessage) *UnknownMsg {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	return &UnknownMsg{Type: typeURL, JSON: buf.String()}
}

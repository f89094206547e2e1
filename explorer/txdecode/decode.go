package txdecode

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

var (
	ErrEmpty           = errors.New("empty transaction")
	ErrMissingBody     = errors.New("missing body")
	ErrMissingAuthInfo = errors.New("missing auth info")
)

// Decode parses a base64 encoded TxRaw envelope. It returns nil when the input can not be
// decoded so callers can skip the entry and keep going.
func Decode(raw string) *StdTx {
	tx, err := DecodeErr(raw)
	if err != nil {
		return nil
	}
	return tx
}

// DecodeErr is Decode with the failure cause
func DecodeErr(raw string) (*StdTx, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmpty
	}
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, errors.Wrap(err, "base64")
	}
	tx, err := decodeTxRaw(b)
	if err != nil {
		return nil, err
	}
	tx.Hash = Hash(b)
	return tx, nil
}

// Hash is the transaction hash as shown by the chain, upper case hex SHA-256
func Hash(txBytes []byte) string {
	sum := sha256.Sum256(txBytes)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func decodeTxRaw(b []byte) (*StdTx, error) {
	fields, err := readFields(b)
	if err != nil {
		return nil, errors.WithMessage(err, "tx raw")
	}

	var (
		body, authInfo []byte
		hasBody        bool
		hasAuth        bool
		sigs           []string
	)
	for _, f := range fields {
		if f.typ != protowire.BytesType {
			continue
		}
		switch f.num {
		case 1:
			body, hasBody = f.bytes, true
		case 2:
			authInfo, hasAuth = f.bytes, true
		case 3:
			sigs = append(sigs, base64.StdEncoding.EncodeToString(f.bytes))
		}
	}
	if !hasBody {
		return nil, ErrMissingBody
	}
	if !hasAuth {
		return nil, ErrMissingAuthInfo
	}

	msgs, memo, timeoutHeight, err := decodeBody(body)
	if err != nil {
		return nil, errors.WithMessage(err, "body")
	}
	fee, err := decodeAuthInfo(authInfo)
	if err != nil {
		return nil, errors.WithMessage(err, "auth info")
	}
	return newStdTx(fee, memo, msgs, sigs, timeoutHeight), nil
}

func decodeBody(b []byte) ([]Message, string, uint64, error) {
	fields, err := readFields(b)
	if err != nil {
		return nil, "", 0, err
	}
	var (
		msgs          []Message
		memo          string
		timeoutHeight uint64
	)
	for _, f := range fields {
		switch f.num {
		case 1:
			typeURL, value, err := decodeAny(f)
			if err != nil {
				return nil, "", 0, errors.WithMessage(err, "message")
			}
			msgs = append(msgs, decodeMessage(typeURL, value))
		case 2:
			if memo, err = stringField(f); err != nil {
				return nil, "", 0, err
			}
		case 3:
			if timeoutHeight, err = varintField(f); err != nil {
				return nil, "", 0, err
			}
		}
	}
	return msgs, memo, timeoutHeight, nil
}

func decodeAuthInfo(b []byte) (Fee, error) {
	fields, err := readFields(b)
	if err != nil {
		return Fee{}, err
	}
	var fee Fee
	for _, f := range fields {
		if f.num != 2 {
			continue
		}
		if f.typ != protowire.BytesType {
			return Fee{}, errors.Errorf("fee: unexpected wire type %d", f.typ)
		}
		if fee, err = decodeFee(f.bytes); err != nil {
			return Fee{}, errors.WithMessage(err, "fee")
		}
	}
	return fee, nil
}

func decodeFee(b []byte) (Fee, error) {
	fields, err := readFields(b)
	if err != nil {
		return Fee{}, err
	}
	var fee Fee
	for _, f := range fields {
		switch f.num {
		case 1:
			if f.typ != protowire.BytesType {
				return Fee{}, errors.Errorf("amount: unexpected wire type %d", f.typ)
			}
			coin, err := decodeCoin(f.bytes)
			if err != nil {
				return Fee{}, errors.WithMessage(err, "amount")
			}
			fee.Amount = append(fee.Amount, coin)
		case 2:
			if fee.GasLimit, err = varintField(f); err != nil {
				return Fee{}, err
			}
		}
	}
	return fee, nil
}

func decodeCoin(b []byte) (models.Coin, error) {
	fields, err := readFields(b)
	if err != nil {
		return models.Coin{}, err
	}
	var c models.Coin
	for _, f := range fields {
		switch f.num {
		case 1:
			c.Denom, err = stringField(f)
		case 2:
			c.Amount, err = stringField(f)
		}
		if err != nil {
			return models.Coin{}, err
		}
	}
	return c, nil
}

func decodeAny(f field) (string, []byte, error) {
	if f.typ != protowire.BytesType {
		return "", nil, errors.Errorf("any: unexpected wire type %d", f.typ)
	}
	fields, err := readFields(f.bytes)
	if err != nil {
		return "", nil, err
	}
	var (
		typeURL string
		value   []byte
	)
	for _, inner := range fields {
		switch inner.num {
		case 1:
			if typeURL, err = stringField(inner); err != nil {
				return "", nil, err
			}
		case 2:
			if inner.typ != protowire.BytesType {
				return "", nil, errors.Errorf("any value: unexpected wire type %d", inner.typ)
			}
			value = inner.bytes
		}
	}
	if typeURL == "" {
		return "", nil, errors.New("any without type url")
	}
	return typeURL, value, nil
}

// decodeMessage selects the variant by type URL. Messages that fail to decode are kept
// as UnknownMsg so the label can still be shown.
func decodeMessage(typeURL string, value []byte) Message {
	var (
		msg Message
		err error
	)
	switch typeURL {
	case TypeMsgSend:
		msg, err = decodeMsgSend(value)
	case TypeMsgDelegate:
		var m *MsgDelegate
		m, err = decodeDelegation(value, func(d, v string, c models.Coin) *MsgDelegate {
			return &MsgDelegate{DelegatorAddress: d, ValidatorAddress: v, Amount: c}
		})
		msg = m
	case TypeMsgUndelegate:
		var m *MsgUndelegate
		m, err = decodeDelegation(value, func(d, v string, c models.Coin) *MsgUndelegate {
			return &MsgUndelegate{DelegatorAddress: d, ValidatorAddress: v, Amount: c}
		})
		msg = m
	case TypeMsgBeginRedelegate:
		msg, err = decodeMsgBeginRedelegate(value)
	case TypeMsgWithdrawDelegatorReward:
		msg, err = decodeMsgWithdrawDelegatorReward(value)
	default:
		return &UnknownMsg{Type: typeURL, Value: value}
	}
	if err != nil {
		return &UnknownMsg{Type: typeURL, Value: value}
	}
	return msg
}

func decodeMsgSend(b []byte) (*MsgSend, error) {
	fields, err := readFields(b)
	if err != nil {
		return nil, err
	}
	m := &MsgSend{Amount: []models.Coin{}}
	for _, f := range fields {
		switch f.num {
		case 1:
			m.FromAddress, err = stringField(f)
		case 2:
			m.ToAddress, err = stringField(f)
		case 3:
			var c models.Coin
			if f.typ != protowire.BytesType {
				return nil, errors.Errorf("amount: unexpected wire type %d", f.typ)
			}
			if c, err = decodeCoin(f.bytes); err == nil {
				m.Amount = append(m.Amount, c)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// decodeDelegation covers MsgDelegate and MsgUndelegate, they share the field layout
func decodeDelegation[T any](b []byte, build func(delegator, validator string, amount models.Coin) T) (T, error) {
	var zero T
	fields, err := readFields(b)
	if err != nil {
		return zero, err
	}
	var (
		delegator, validator string
		amount               models.Coin
	)
	for _, f := range fields {
		switch f.num {
		case 1:
			delegator, err = stringField(f)
		case 2:
			validator, err = stringField(f)
		case 3:
			if f.typ != protowire.BytesType {
				return zero, errors.Errorf("amount: unexpected wire type %d", f.typ)
			}
			amount, err = decodeCoin(f.bytes)
		}
		if err != nil {
			return zero, err
		}
	}
	return build(delegator, validator, amount), nil
}

func decodeMsgBeginRedelegate(b []byte) (*MsgBeginRedelegate, error) {
	fields, err := readFields(b)
	if err != nil {
		return nil, err
	}
	m := &MsgBeginRedelegate{}
	for _, f := range fields {
		switch f.num {
		case 1:
			m.DelegatorAddress, err = stringField(f)
		case 2:
			m.ValidatorSrcAddress, err = stringField(f)
		case 3:
			m.ValidatorDstAddress, err = stringField(f)
		case 4:
			if f.typ != protowire.BytesType {
				return nil, errors.Errorf("amount: unexpected wire type %d", f.typ)
			}
			m.Amount, err = decodeCoin(f.bytes)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeMsgWithdrawDelegatorReward(b []byte) (*MsgWithdrawDelegatorReward, error) {
	fields, err := readFields(b)
	if err != nil {
		return nil, err
	}
	m := &MsgWithdrawDelegatorReward{}
	for _, f := range fields {
		switch f.num {
		case 1:
			m.DelegatorAddress, err = stringField(f)
		case 2:
			m.ValidatorAddress, err = stringField(f)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

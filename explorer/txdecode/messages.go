package txdecode

import (
	"encoding/base64"
	"strings"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

// Known message type URLs
const (
	TypeMsgSend                    = "/cosmos.bank.v1beta1.MsgSend"
	TypeMsgDelegate                = "/cosmos.staking.v1beta1.MsgDelegate"
	TypeMsgUndelegate              = "/cosmos.staking.v1beta1.MsgUndelegate"
	TypeMsgBeginRedelegate         = "/cosmos.staking.v1beta1.MsgBeginRedelegate"
	TypeMsgWithdrawDelegatorReward = "/cosmos.distribution.v1beta1.MsgWithdrawDelegatorReward"
)

// Message is one transaction message. The concrete type is selected by the type URL,
// anything not known decodes to UnknownMsg.
type Message interface {
	TypeURL() string
	// Fields lists the message content in display order
	Fields() []models.Field
}

// MsgSend moves coins between two accounts
type MsgSend struct {
	FromAddress string        `json:"from_address"`
	ToAddress   string        `json:"to_address"`
	Amount      []models.Coin `json:"amount"`
}

func (m *MsgSend) TypeURL() string { return TypeMsgSend }

func (m *MsgSend) Fields() []models.Field {
	return []models.Field{
		{Name: "@type", Value: TypeMsgSend},
		{Name: "from_address", Value: m.FromAddress},
		{Name: "to_address", Value: m.ToAddress},
		{Name: "amount", Value: coinsValue(m.Amount)},
	}
}

// MsgDelegate bonds coins to a validator
type MsgDelegate struct {
	DelegatorAddress string      `json:"delegator_address"`
	ValidatorAddress string      `json:"validator_address"`
	Amount           models.Coin `json:"amount"`
}

func (m *MsgDelegate) TypeURL() string { return TypeMsgDelegate }

func (m *MsgDelegate) Fields() []models.Field {
	return delegationFields(TypeMsgDelegate, m.DelegatorAddress, m.ValidatorAddress, m.Amount)
}

// MsgUndelegate starts unbonding coins from a validator
type MsgUndelegate struct {
	DelegatorAddress string      `json:"delegator_address"`
	ValidatorAddress string      `json:"validator_address"`
	Amount           models.Coin `json:"amount"`
}

func (m *MsgUndelegate) TypeURL() string { return TypeMsgUndelegate }

func (m *MsgUndelegate) Fields() []models.Field {
	return delegationFields(TypeMsgUndelegate, m.DelegatorAddress, m.ValidatorAddress, m.Amount)
}

// MsgBeginRedelegate moves a delegation between validators
type MsgBeginRedelegate struct {
	DelegatorAddress    string      `json:"delegator_address"`
	ValidatorSrcAddress string      `json:"validator_src_address"`
	ValidatorDstAddress string      `json:"validator_dst_address"`
	Amount              models.Coin `json:"amount"`
}

func (m *MsgBeginRedelegate) TypeURL() string { return TypeMsgBeginRedelegate }

func (m *MsgBeginRedelegate) Fields() []models.Field {
	return []models.Field{
		{Name: "@type", Value: TypeMsgBeginRedelegate},
		{Name: "delegator_address", Value: m.DelegatorAddress},
		{Name: "validator_src_address", Value: m.ValidatorSrcAddress},
		{Name: "validator_dst_address", Value: m.ValidatorDstAddress},
		{Name: "amount", Value: coinValue(m.Amount)},
	}
}

// MsgWithdrawDelegatorReward claims the rewards of one delegation
type MsgWithdrawDelegatorReward struct {
	DelegatorAddress string `json:"delegator_address"`
	ValidatorAddress string `json:"validator_address"`
}

func (m *MsgWithdrawDelegatorReward) TypeURL() string { return TypeMsgWithdrawDelegatorReward }

func (m *MsgWithdrawDelegatorReward) Fields() []models.Field {
	return []models.Field{
		{Name: "@type", Value: TypeMsgWithdrawDelegatorReward},
		{Name: "delegator_address", Value: m.DelegatorAddress},
		{Name: "validator_address", Value: m.ValidatorAddress},
	}
}

// UnknownMsg keeps a message this package has no decoder for.
// Value holds the protobuf bytes, JSON the API representation; only one is set.
type UnknownMsg struct {
	Type  string `json:"@type"`
	Value []byte `json:"value,omitempty"`
	JSON  string `json:"json,omitempty"`
}

func (m *UnknownMsg) TypeURL() string { return m.Type }

func (m *UnknownMsg) Fields() []models.Field {
	fields := []models.Field{{Name: "@type", Value: m.Type}}
	if m.JSON != "" {
		return append(fields, models.Field{Name: "value", Value: m.JSON})
	}
	return append(fields, models.Field{Name: "value", Value: base64.StdEncoding.EncodeToString(m.Value)})
}

func delegationFields(typeURL, delegator, validator string, amount models.Coin) []models.Field {
	return []models.Field{
		{Name: "@type", Value: typeURL},
		{Name: "delegator_address", Value: delegator},
		{Name: "validator_address", Value: validator},
		{Name: "amount", Value: coinValue(amount)},
	}
}

func coinValue(c models.Coin) string {
	return c.Amount + c.Denom
}

func coinsValue(coins []models.Coin) string {
	out := make([]string, 0, len(coins))
	for _, c := range coins {
		out = append(out, coinValue(c))
	}
	return strings.Join(out, ",")
}

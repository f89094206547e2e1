package txdecode

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/zeebo/assert"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func coinBytes(denom, amount string) []byte {
	return appendString(appendString(nil, 1, denom), 2, amount)
}

func anyBytes(typeURL string, value []byte) []byte {
	return appendBytes(appendString(nil, 1, typeURL), 2, value)
}

func sendBytes(from, to string, coins ...models.Coin) []byte {
	b := appendString(nil, 1, from)
	b = appendString(b, 2, to)
	for _, c := range coins {
		b = appendBytes(b, 3, coinBytes(c.Denom, c.Amount))
	}
	return b
}

func delegateBytes(delegator, validator string, c models.Coin) []byte {
	b := appendString(nil, 1, delegator)
	b = appendString(b, 2, validator)
	return appendBytes(b, 3, coinBytes(c.Denom, c.Amount))
}

type envelope struct {
	messages      [][]byte // encoded Any
	memo          string
	timeoutHeight uint64
	fee           []models.Coin
	gasLimit      uint64
	signatures    [][]byte
}

func (e envelope) encode() []byte {
	var body []byte
	for _, m := range e.messages {
		body = appendBytes(body, 1, m)
	}
	if e.memo != "" {
		body = appendString(body, 2, e.memo)
	}
	if e.timeoutHeight != 0 {
		body = appendVarint(body, 3, e.timeoutHeight)
	}

	var fee []byte
	for _, c := range e.fee {
		fee = appendBytes(fee, 1, coinBytes(c.Denom, c.Amount))
	}
	fee = appendVarint(fee, 2, e.gasLimit)

	// signer info content is ignored by the decoder
	authInfo := appendBytes(nil, 1, []byte{0x12, 0x00})
	authInfo = appendBytes(authInfo, 2, fee)

	raw := appendBytes(nil, 1, body)
	raw = appendBytes(raw, 2, authInfo)
	for _, s := range e.signatures {
		raw = appendBytes(raw, 3, s)
	}
	return raw
}

func (e envelope) base64() string {
	return base64.StdEncoding.EncodeToString(e.encode())
}

var sampleEnvelope = envelope{
	messages: [][]byte{
		anyBytes(TypeMsgSend, sendBytes("cosmos1from", "cosmos1to", models.Coin{Denom: "uatom", Amount: "1000000"})),
		anyBytes(TypeMsgDelegate, delegateBytes("cosmos1from", "cosmosvaloper1val", models.Coin{Denom: "uatom", Amount: "250"})),
		anyBytes("/ibc.core.client.v1.MsgUpdateClient", []byte{0x0a, 0x01, 'x'}),
	},
	memo:          "hello",
	timeoutHeight: 1200,
	fee:           []models.Coin{{Denom: "uatom", Amount: "5000"}},
	gasLimit:      200000,
	signatures:    [][]byte{[]byte("sig-one")},
}

func TestDecode(t *testing.T) {
	raw := sampleEnvelope.encode()
	tx := Decode(base64.StdEncoding.EncodeToString(raw))
	assert.NotNil(t, tx)

	assert.Equal(t, tx.Type, TxTypeURL)
	assert.Equal(t, tx.Memo, "hello")
	assert.Equal(t, tx.TimeoutHeight, uint64(1200))
	assert.Equal(t, tx.Gas, uint64(200000))
	assert.DeepEqual(t, tx.Fee, []models.Coin{{Denom: "uatom", Amount: "5000"}})
	assert.DeepEqual(t, tx.Signatures, []string{base64.StdEncoding.EncodeToString([]byte("sig-one"))})

	assert.Equal(t, len(tx.Messages), 3)
	send, ok := tx.Messages[0].(*MsgSend)
	assert.True(t, ok)
	assert.Equal(t, send.FromAddress, "cosmos1from")
	assert.Equal(t, send.ToAddress, "cosmos1to")
	assert.DeepEqual(t, send.Amount, []models.Coin{{Denom: "uatom", Amount: "1000000"}})

	delegate, ok := tx.Messages[1].(*MsgDelegate)
	assert.True(t, ok)
	assert.Equal(t, delegate.ValidatorAddress, "cosmosvaloper1val")
	assert.Equal(t, delegate.Amount.Amount, "250")

	unknown, ok := tx.Messages[2].(*UnknownMsg)
	assert.True(t, ok)
	assert.Equal(t, unknown.TypeURL(), "/ibc.core.client.v1.MsgUpdateClient")

	sum := sha256.Sum256(raw)
	assert.Equal(t, tx.Hash, strings.ToUpper(hex.EncodeToString(sum[:])))
}

func TestDecodeIdempotent(t *testing.T) {
	raw := sampleEnvelope.base64()
	first := Decode(raw)
	second := Decode(raw)
	assert.NotNil(t, first)
	assert.DeepEqual(t, first, second)
}

func TestDecodeMalformed(t *testing.T) {
	valid := sampleEnvelope.base64()
	onlyBody := base64.StdEncoding.EncodeToString(appendBytes(nil, 1, appendString(nil, 2, "memo")))
	onlyAuth := base64.StdEncoding.EncodeToString(appendBytes(nil, 2, nil))

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: "   "},
		{name: "not base64", raw: "%%%not-base64%%%"},
		{name: "truncated base64", raw: valid[:len(valid)-3]},
		{name: "not an envelope", raw: base64.StdEncoding.EncodeToString([]byte("hello world"))},
		{name: "truncated envelope", raw: base64.StdEncoding.EncodeToString(sampleEnvelope.encode()[:10])},
		{name: "missing auth info", raw: onlyBody},
		{name: "missing body", raw: onlyAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Decode(tt.raw) == nil)
			_, err := DecodeErr(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestDecodeBrokenMessageFallsBack(t *testing.T) {
	e := envelope{
		// field 1 of MsgSend declared as varint
		messages: [][]byte{anyBytes(TypeMsgSend, appendVarint(nil, 1, 7))},
		gasLimit: 1,
	}
	tx := Decode(e.base64())
	assert.NotNil(t, tx)
	assert.Equal(t, len(tx.Messages), 1)
	_, ok := tx.Messages[0].(*UnknownMsg)
	assert.True(t, ok)
	assert.Equal(t, tx.Messages[0].TypeURL(), TypeMsgSend)
}

func TestDecodeEmptyCollections(t *testing.T) {
	tx := Decode(envelope{}.base64())
	assert.NotNil(t, tx)
	assert.Equal(t, len(tx.Messages), 0)
	assert.Equal(t, len(tx.Fee), 0)
	assert.NotNil(t, tx.Signatures)
	assert.Equal(t, tx.Memo, "")
}

const sampleAPITx = `{
  "@type": "/cosmos.tx.v1beta1.Tx",
  "body": {
    "messages": [
      {"@type": "/cosmos.bank.v1beta1.MsgSend", "from_address": "cosmos1from", "to_address": "cosmos1to",
       "amount": [{"denom": "uatom", "amount": "1000000"}]},
      {"@type": "/cosmos.staking.v1beta1.MsgDelegate", "delegator_address": "cosmos1from",
       "validator_address": "cosmosvaloper1val", "amount": {"denom": "uatom", "amount": "250"}},
      {"@type": "/ibc.core.client.v1.MsgUpdateClient", "client_id": "07-tendermint-0"}
    ],
    "memo": "hello",
    "timeout_height": "1200"
  },
  "auth_info": {
    "signer_infos": [],
    "fee": {"amount": [{"denom": "uatom", "amount": "5000"}], "gas_limit": "200000", "payer": "", "granter": ""}
  },
  "signatures": ["c2lnLW9uZQ=="]
}`

// Both adapters must agree on everything but the hash and the unknown message payload
func TestAdaptersConverge(t *testing.T) {
	var apiTx models.APITx
	assert.NoError(t, json.Unmarshal([]byte(sampleAPITx), &apiTx))

	fromAPI, err := FromAPI(&apiTx)
	assert.NoError(t, err)
	fromRaw := Decode(sampleEnvelope.base64())
	assert.NotNil(t, fromRaw)

	assert.Equal(t, fromAPI.Type, fromRaw.Type)
	assert.Equal(t, fromAPI.Memo, fromRaw.Memo)
	assert.Equal(t, fromAPI.Gas, fromRaw.Gas)
	assert.Equal(t, fromAPI.TimeoutHeight, fromRaw.TimeoutHeight)
	assert.DeepEqual(t, fromAPI.Fee, fromRaw.Fee)
	assert.DeepEqual(t, fromAPI.Signatures, fromRaw.Signatures)
	assert.DeepEqual(t, fromAPI.Messages[:2], fromRaw.Messages[:2])
	assert.DeepEqual(t, fromAPI.Labels(), fromRaw.Labels())
	assert.Equal(t, fromAPI.Hash, "")

	unknown := fromAPI.Messages[2].(*UnknownMsg)
	assert.Equal(t, unknown.JSON, `{"@type":"/ibc.core.client.v1.MsgUpdateClient","client_id":"07-tendermint-0"}`)
}

func TestFromAPIErrors(t *testing.T) {
	_, err := FromAPI(nil)
	assert.Error(t, err)

	_, err = FromAPI(&models.APITx{})
	assert.Error(t, err)

	var noType models.APITx
	assert.NoError(t, json.Unmarshal([]byte(`{"body": {"messages": [{"memo": "x"}]}, "auth_info": {}}`), &noType))
	_, err = FromAPI(&noType)
	assert.Error(t, err)
}

func TestMessageFields(t *testing.T) {
	send := &MsgSend{FromAddress: "a", ToAddress: "b", Amount: []models.Coin{{Denom: "uatom", Amount: "1"}, {Denom: "basecro", Amount: "2"}}}
	assert.DeepEqual(t, send.Fields(), []models.Field{
		{Name: "@type", Value: TypeMsgSend},
		{Name: "from_address", Value: "a"},
		{Name: "to_address", Value: "b"},
		{Name: "amount", Value: "1uatom,2basecro"},
	})

	unknown := &UnknownMsg{Type: "/x.y.MsgZ", Value: []byte{1, 2, 3}}
	assert.Equal(t, unknown.Fields()[1].Value, "AQID")
}

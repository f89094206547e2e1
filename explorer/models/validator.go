package models

import (
	"bytes"
	"encoding/json"
)

// ValidatorEntry is a validator as listed by /staking/validators
type ValidatorEntry struct {
	OperatorAddress string          `json:"operator_address"` // e.g., "cosmosvaloper1..."
	ConsensusPubkey ConsensusPubkey `json:"consensus_pubkey"`
	Jailed          bool            `json:"jailed"`
	Status          FlexString      `json:"status"`
	Tokens          string          `json:"tokens"`
	Description     struct {
		Moniker  string `json:"moniker"`
		Identity string `json:"identity"`
		Website  string `json:"website"`
	} `json:"description"`
}

// ConsensusPubkey is either a bech32 string ("cosmosvalconspub1...") or a key object.
// Key objects come as {"@type": ..., "key": ...} or, on amino nodes, {"type": ..., "value": ...}.
type ConsensusPubkey struct {
	Bech32 string
	Type   string
	Key    string // base64 encoded raw key bytes
}

// IsObject is true when the key was given in object form
func (p ConsensusPubkey) IsObject() bool {
	return p.Bech32 == "" && p.Key != ""
}

func (p *ConsensusPubkey) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ConsensusPubkey{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ConsensusPubkey{Bech32: s}
		return nil
	}
	var obj struct {
		AtType string `json:"@type"`
		Type   string `json:"type"`
		Key    string `json:"key"`
		Value  string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.Bech32 = ""
	p.Type = obj.AtType
	if p.Type == "" {
		p.Type = obj.Type
	}
	p.Key = obj.Key
	if p.Key == "" {
		p.Key = obj.Value
	}
	return nil
}

func (p ConsensusPubkey) MarshalJSON() ([]byte, error) {
	if p.Bech32 != "" || p.Key == "" {
		return json.Marshal(p.Bech32)
	}
	return json.Marshal(struct {
		Type string `json:"@type"`
		Key  string `json:"key"`
	}{p.Type, p.Key})
}

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString accepts both JSON strings and JSON numbers. The LCD endpoints are not
// consistent about heights, sequences and gas values ("123" vs 123).
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the raw value
func (f FlexString) String() string {
	return string(f)
}

// Int64 parses the value, returning 0 when it is empty or not an integer
func (f FlexString) Int64() int64 {
	v, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Uint64 parses the value, returning 0 when it is empty or not an unsigned integer
func (f FlexString) Uint64() uint64 {
	v, err := strconv.ParseUint(string(f), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

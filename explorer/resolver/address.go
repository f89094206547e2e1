package resolver

import (
	"fmt"
	"regexp"

	"github.com/btcsuite/btcutil/bech32"
)

// account addresses carry a 20 byte payload, 38 data characters plus the checksum
var accountAddressPattern = regexp.MustCompile(`^[a-z]{2,6}1[a-z\d]{38}$`)

// DecodeBech32 returns the human readable part and the 8-bit payload of a bech32 string
func DecodeBech32(s string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode bech32: %w", err)
	}
	conv, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("failed to convert bits: %w", err)
	}
	return hrp, conv, nil
}

// IsAccountAddress reports whether s looks like an account address and has a valid checksum
func IsAccountAddress(s string) bool {
	if !accountAddressPattern.MatchString(s) {
		return false
	}
	_, data, err := DecodeBech32(s)
	return err == nil && len(data) == 20
}

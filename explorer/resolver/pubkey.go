package resolver

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

// aminoEd25519Prefix is the amino type prefix plus length byte of a bech32 encoded ed25519 consensus key
const aminoEd25519Prefix = "1624DE6420"

// ConsensusPubkeyToHexAddress derives the consensus address used in block headers from
// a validator consensus key: the first 20 bytes of the SHA-256 of the raw key, upper case hex.
// It returns "" when the key can not be decoded.
func ConsensusPubkeyToHexAddress(pk models.ConsensusPubkey) string {
	var raw []byte
	switch {
	case pk.IsObject():
		b, err := base64.StdEncoding.DecodeString(pk.Key)
		if err != nil {
			return ""
		}
		raw = b
	case pk.Bech32 != "":
		_, data, err := DecodeBech32(pk.Bech32)
		if err != nil {
			return ""
		}
		keyHex := strings.ToUpper(hex.EncodeToString(data))
		keyHex = strings.TrimPrefix(keyHex, aminoEd25519Prefix)
		b, err := hex.DecodeString(keyHex)
		if err != nil {
			return ""
		}
		raw = b
	default:
		return ""
	}
	if len(raw) == 0 {
		return ""
	}
	sum := sha256.Sum256(raw)
	return strings.ToUpper(hex.EncodeToString(sum[:20]))
}

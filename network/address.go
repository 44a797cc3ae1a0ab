package network

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const addressHexLen = 40

// IsValidAddress reports whether s is a well-formed account address: a "0x"
// prefix followed by 40 hex characters. All-lowercase and all-uppercase
// forms are accepted as is; mixed-case input must carry a correct EIP-55
// checksum. No network access is performed.
func IsValidAddress(s string) bool {
	if len(s) != 2+addressHexLen || s[:2] != "0x" {
		return false
	}
	body := s[2:]
	if _, err := hex.DecodeString(body); err != nil {
		return false
	}
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	ma, err := common.NewMixedcaseAddressFromString(s)
	return err == nil && ma.ValidChecksum()
}

// ChecksumAddress returns the EIP-55 form of a 40-character hex address with
// the 0x prefix. The input is assumed to be valid hex.
func ChecksumAddress(s string) string {
	return common.HexToAddress(s).Hex()
}

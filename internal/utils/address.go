// internal/utils/address.go
package utils

import (
	"regexp"
	"strings"
)

var walletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsWalletAddress reports whether s looks like an EVM wallet address. The
// check is format-only; no checksum validation is attempted.
func IsWalletAddress(s string) bool {
	return walletAddressPattern.MatchString(s)
}

// SameAddress compares two addresses case-insensitively.
func SameAddress(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

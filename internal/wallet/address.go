package wallet

import (
	"regexp"
	"strings"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

var (
	// workchain:64 hex digits
	rawAddress = regexp.MustCompile(`^-?\d+:[0-9a-fA-F]{64}$`)
	// 36 bytes in base64 or base64url
	friendlyAddress = regexp.MustCompile(`^[A-Za-z0-9_\-+/]{48}$`)
)

// NormalizeAddress trims addr and checks it is a raw or user-friendly TON address.
func NormalizeAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if rawAddress.MatchString(addr) || friendlyAddress.MatchString(addr) {
		return addr, nil
	}
	return "", domain.ErrBadAddress
}

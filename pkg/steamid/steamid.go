// Package steamid converts between 32-bit account ids and 64-bit ids of
// individual accounts in the public universe.
package steamid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// individualPublic is the high word shared by every individual account id:
// universe 1, account type 1, instance 1.
const individualPublic uint64 = 0x01100001

// ErrInvalidID indicates an id could not be parsed.
var ErrInvalidID = errors.New("steamid: invalid id")

// FromAccountID returns the 64-bit id for a 32-bit account id.
func FromAccountID(accountID uint32) uint64 {
	return individualPublic<<32 | uint64(accountID)
}

// ToAccountID returns the 32-bit account id held in the low word of id.
func ToAccountID(id uint64) uint32 {
	return uint32(id)
}

// FromAccountIDString is FromAccountID for decimal strings.
func FromAccountIDString(accountID string) (string, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(accountID), 10, 32)
	if err != nil {
		return "", fmt.Errorf("%w: account id %q: %v", ErrInvalidID, accountID, err)
	}
	return strconv.FormatUint(FromAccountID(uint32(v)), 10), nil
}

// ToAccountIDString is ToAccountID for decimal strings.
func ToAccountIDString(id string) (string, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidID, id, err)
	}
	return strconv.FormatUint(uint64(ToAccountID(v)), 10), nil
}

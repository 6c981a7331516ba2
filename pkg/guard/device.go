package guard

import (
	"crypto/sha1"
	"fmt"

	"github.com/google/uuid"
)

// DeviceIDPrefix is prepended to every derived device id.
const DeviceIDPrefix = "android:"

// DeviceID derives a stable device id from an account id. The first 16 bytes
// of SHA-1(accountID) are rendered in 8-4-4-4-12 lowercase hex groups.
//
// The result is self-consistent but is not the id the official mobile client
// would generate for the same account.
func DeviceID(accountID string) (string, error) {
	if !isASCII(accountID) {
		return "", fmt.Errorf("%w: account id must be ASCII", ErrInvalidEncoding)
	}
	sum := sha1.Sum([]byte(accountID))
	id, err := uuid.FromBytes(sum[:16])
	if err != nil {
		return "", fmt.Errorf("guard: failed to format device id: %w", err)
	}
	return DeviceIDPrefix + id.String(), nil
}

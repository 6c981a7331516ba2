package guard

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

// DecodeSecret decodes a base64 secret as stored in a credential file.
// Whitespace anywhere in the value, such as a wrapped line, is ignored.
func DecodeSecret(secret string) ([]byte, error) {
	secret = strings.Join(strings.Fields(secret), "")
	if secret == "" {
		return nil, fmt.Errorf("%w: secret must not be empty", ErrInvalidConfig)
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: secret must be valid base64: %v", ErrInvalidConfig, err)
	}
	return key, nil
}

// timeWindow returns the 30 second step a timestamp falls in.
func timeWindow(timestamp int64) (uint64, error) {
	if timestamp < 0 {
		return 0, fmt.Errorf("%w: %d is before the epoch", ErrInvalidTimestamp, timestamp)
	}
	return uint64(timestamp) / Period, nil
}

func appendUint64(buf []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(buf, v)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

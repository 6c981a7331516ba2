package guard

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
)

// Tags naming the confirmation actions understood by the platform. Any ASCII
// tag is accepted by the signer.
const (
	TagList    = "conf"
	TagDetails = "details"
	TagAllow   = "allow"
	TagCancel  = "cancel"
)

// Confirmation is a signed confirmation key together with the inputs it was
// computed from. Timestamp must be sent alongside Key.
type Confirmation struct {
	Tag       string
	Timestamp int64
	Key       string
}

// ConfirmationKey signs tag at timestamp with the base64 identity secret.
func ConfirmationKey(identitySecret, tag string, timestamp int64) (string, error) {
	key, err := DecodeSecret(identitySecret)
	if err != nil {
		return "", err
	}
	return SignConfirmation(key, tag, timestamp)
}

// SignConfirmation returns base64(HMAC-SHA1(key, timestamp || tag)) where the
// timestamp is encoded as a big-endian uint64.
func SignConfirmation(key []byte, tag string, timestamp int64) (string, error) {
	if timestamp < 0 {
		return "", fmt.Errorf("%w: %d is before the epoch", ErrInvalidTimestamp, timestamp)
	}
	if !isASCII(tag) {
		return "", fmt.Errorf("%w: tag must be ASCII", ErrInvalidEncoding)
	}

	msg := make([]byte, 0, 8+len(tag))
	msg = appendUint64(msg, uint64(timestamp))
	msg = append(msg, tag...)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

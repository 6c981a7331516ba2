package guard

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
)

const (
	// CodeLength is the number of characters in a guard code.
	CodeLength = 5
	// Period is the lifetime of a guard code in seconds.
	Period = 30

	codeAlphabet = "23456789BCDFGHJKMNPQRTVWXY"
)

// GenerateCode returns the guard code for the base64 shared secret at the
// given Unix timestamp.
func GenerateCode(sharedSecret string, timestamp int64) (string, error) {
	key, err := DecodeSecret(sharedSecret)
	if err != nil {
		return "", err
	}
	return CodeFromKey(key, timestamp)
}

// CodeFromKey returns the guard code for an already decoded shared secret.
func CodeFromKey(key []byte, timestamp int64) (string, error) {
	window, err := timeWindow(timestamp)
	if err != nil {
		return "", err
	}
	return codeForWindow(key, window), nil
}

// codeForWindow applies HOTP dynamic truncation to HMAC-SHA1(key, window) and
// spells the 31-bit result in the guard alphabet, least significant digit first.
func codeForWindow(key []byte, window uint64) string {
	mac := hmac.New(sha1.New, key)
	mac.Write(appendUint64(nil, window))
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	full := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	base := uint32(len(codeAlphabet))
	code := make([]byte, CodeLength)
	for i := range code {
		code[i] = codeAlphabet[full%base]
		full /= base
	}
	return string(code)
}

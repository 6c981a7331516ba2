// Package secrets loads mobile authenticator credentials from the JSON
// files ("maFiles") written when an authenticator is enrolled.
package secrets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jeremyhahn/go-steamguard/pkg/guard"
)

var (
	// ErrMissingField indicates a required credential field is absent.
	ErrMissingField = errors.New("secrets: missing field")
	// ErrMalformed indicates the credential document could not be decoded.
	ErrMalformed = errors.New("secrets: malformed credentials")
)

// AccountID is a 64-bit account id that may be written either as a JSON
// number or as a string.
type AccountID uint64

// UnmarshalJSON accepts 76561197960287930 and "76561197960287930".
func (id *AccountID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: steamid: %v", ErrMalformed, err)
	}
	*id = AccountID(v)
	return nil
}

// String returns the decimal form of the id, or "" when unset.
func (id AccountID) String() string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Session holds the subset of the stored web session that carries the id.
type Session struct {
	SteamID AccountID `json:"SteamID"`
}

// Credentials mirrors the fields of a credential file used by this module.
type Credentials struct {
	SharedSecret   string    `json:"shared_secret"`
	IdentitySecret string    `json:"identity_secret"`
	AccountName    string    `json:"account_name"`
	SteamID        AccountID `json:"steamid"`
	DeviceID       string    `json:"device_id"`
	URI            string    `json:"uri"`
	RevocationCode string    `json:"revocation_code"`
	SerialNumber   string    `json:"serial_number"`
	Session        *Session  `json:"Session,omitempty"`
}

// validate checks the fields needed to produce guard codes.
func (c *Credentials) validate() error {
	if c.SharedSecret == "" && c.URI == "" {
		return fmt.Errorf("%w: shared_secret", ErrMissingField)
	}
	return nil
}

// AccountID returns the 64-bit account id, preferring the top level steamid
// field over the one stored in the session.
func (c *Credentials) AccountID() string {
	if c.SteamID != 0 {
		return c.SteamID.String()
	}
	if c.Session != nil {
		return c.Session.SteamID.String()
	}
	return ""
}

// SharedKey decodes the shared secret.
func (c *Credentials) SharedKey() ([]byte, error) {
	return guard.DecodeSecret(c.SharedSecret)
}

// IdentityKey decodes the identity secret.
func (c *Credentials) IdentityKey() ([]byte, error) {
	return guard.DecodeSecret(c.IdentitySecret)
}

// GuardConfig builds a guard.Config for these credentials. Clock and Skew
// are left for the caller to set.
func (c *Credentials) GuardConfig() guard.Config {
	return guard.Config{
		SharedSecret:   c.SharedSecret,
		IdentitySecret: c.IdentitySecret,
		AccountID:      c.AccountID(),
		AccountName:    c.AccountName,
		URI:            c.URI,
	}
}

// Parse decodes credentials from r.
func Parse(r io.Reader) (*Credentials, error) {
	var creds Credentials
	if err := json.NewDecoder(r).Decode(&creds); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := creds.validate(); err != nil {
		return nil, err
	}
	return &creds, nil
}

// LoadFile reads credentials from the file at path.
func LoadFile(path string) (*Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("secrets: open %s: %w", path, err)
	}
	defer f.Close()

	creds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("secrets: %s: %w", path, err)
	}
	return creds, nil
}

package guard

import (
	"context"
	"crypto/subtle"
	"encoding/base32"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/pquerna/otp"
)

const (
	// Issuer is the issuer name used in provisioning URIs.
	Issuer = "Steam"
	// MaxSkew is the largest accepted Config.Skew.
	MaxSkew = 10
)

// Config holds the secrets and options for a single account.
type Config struct {
	// SharedSecret is the base64 shared secret used for guard codes.
	// Required unless URI is set.
	SharedSecret string
	// IdentitySecret is the base64 identity secret used to sign confirmations.
	// Optional; confirmation methods fail without it.
	IdentitySecret string
	// AccountID is the 64-bit account id used to derive the device id.
	AccountID string
	// AccountName is the login name shown in provisioning URIs.
	AccountName string
	// URI is an otpauth://totp provisioning URI carrying the shared secret
	// in base32. Used only when SharedSecret is empty.
	URI string
	// Clock supplies the current time.
	// Default: SystemClock
	Clock Clock
	// Skew is the number of windows before and after the current one
	// accepted by Authenticate.
	// Default: 1, maximum MaxSkew
	Skew uint
}

// validate checks that the configuration is usable.
func (c Config) validate() error {
	if strings.TrimSpace(c.SharedSecret) == "" && strings.TrimSpace(c.URI) == "" {
		return fmt.Errorf("%w: shared secret or uri must be set", ErrInvalidConfig)
	}
	if !isASCII(c.AccountID) {
		return fmt.Errorf("%w: account id must be ASCII", ErrInvalidEncoding)
	}
	if c.Skew > MaxSkew {
		return fmt.Errorf("%w: skew must be at most %d", ErrInvalidConfig, MaxSkew)
	}
	return nil
}

// sharedKey decodes the shared secret from SharedSecret or, failing that, URI.
func (c Config) sharedKey() ([]byte, string, error) {
	if strings.TrimSpace(c.SharedSecret) != "" {
		key, err := DecodeSecret(c.SharedSecret)
		return key, c.AccountName, err
	}

	key, err := otp.NewKeyFromURL(strings.TrimSpace(c.URI))
	if err != nil {
		return nil, "", fmt.Errorf("%w: uri: %v", ErrInvalidConfig, err)
	}
	if key.Type() != "totp" {
		return nil, "", fmt.Errorf("%w: uri must be an otpauth://totp uri", ErrInvalidConfig)
	}
	secret := strings.ToUpper(strings.TrimRight(key.Secret(), "="))
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	if err != nil {
		return nil, "", fmt.Errorf("%w: uri secret must be valid base32: %v", ErrInvalidConfig, err)
	}
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("%w: uri secret must not be empty", ErrInvalidConfig)
	}

	name := c.AccountName
	if name == "" {
		name = key.AccountName()
	}
	return raw, name, nil
}

// Authenticator generates and checks guard codes and signs confirmations
// for one account. It is safe for concurrent use.
type Authenticator struct {
	sharedKey   []byte
	identityKey []byte
	accountID   string
	accountName string
	clock       Clock
	skew        uint
}

// NewAuthenticator decodes the configured secrets and returns an Authenticator.
// Malformed secrets are reported here, before any code is generated.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	shared, name, err := cfg.sharedKey()
	if err != nil {
		return nil, err
	}

	var identity []byte
	if strings.TrimSpace(cfg.IdentitySecret) != "" {
		identity, err = DecodeSecret(cfg.IdentitySecret)
		if err != nil {
			return nil, fmt.Errorf("identity secret: %w", err)
		}
	}

	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Skew == 0 {
		cfg.Skew = 1
	}

	return &Authenticator{
		sharedKey:   shared,
		identityKey: identity,
		accountID:   cfg.AccountID,
		accountName: name,
		clock:       cfg.Clock,
		skew:        cfg.Skew,
	}, nil
}

// now reads the clock at call time.
func (a *Authenticator) now() int64 {
	return a.clock.Now().Unix()
}

// Generate returns the guard code for the current time.
func (a *Authenticator) Generate() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	return CodeFromKey(a.sharedKey, a.now())
}

// GenerateAt returns the guard code for the given Unix timestamp.
func (a *Authenticator) GenerateAt(timestamp int64) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	return CodeFromKey(a.sharedKey, timestamp)
}

// Authenticate checks a guard code against the current window and Skew
// windows either side of it.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}
	if len(code) != CodeLength {
		return fmt.Errorf("%w: code must be %d characters", ErrInvalidCode, CodeLength)
	}

	current, err := timeWindow(a.now())
	if err != nil {
		return err
	}

	skew := uint64(a.skew)
	first := uint64(0)
	if current > skew {
		first = current - skew
	}
	last := current + skew
	if last < current {
		last = math.MaxUint64
	}
	for w := first; ; w++ {
		want := codeForWindow(a.sharedKey, w)
		if subtle.ConstantTimeCompare([]byte(want), []byte(code)) == 1 {
			return nil
		}
		if w == last {
			break
		}
	}
	return ErrInvalidCode
}

// ConfirmationKey signs tag with the identity secret at the current time.
// The returned Confirmation carries the timestamp that was signed.
func (a *Authenticator) ConfirmationKey(tag string) (Confirmation, error) {
	if a == nil {
		return Confirmation{}, ErrNilAuthenticator
	}
	return a.ConfirmationKeyAt(tag, a.now())
}

// ConfirmationKeyAt signs tag with the identity secret at timestamp.
func (a *Authenticator) ConfirmationKeyAt(tag string, timestamp int64) (Confirmation, error) {
	if a == nil {
		return Confirmation{}, ErrNilAuthenticator
	}
	if a.identityKey == nil {
		return Confirmation{}, fmt.Errorf("%w: identity secret not configured", ErrInvalidConfig)
	}
	key, err := SignConfirmation(a.identityKey, tag, timestamp)
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{Tag: tag, Timestamp: timestamp, Key: key}, nil
}

// DeviceID derives the device id for the configured account.
func (a *Authenticator) DeviceID() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	if a.accountID == "" {
		return "", fmt.Errorf("%w: account id not configured", ErrInvalidConfig)
	}
	return DeviceID(a.accountID)
}

// GetProvisioningURI returns an otpauth:// URI carrying the shared secret in
// base32, as accepted by Config.URI.
func (a *Authenticator) GetProvisioningURI() string {
	if a == nil {
		return ""
	}

	name := a.accountName
	if name == "" {
		name = a.accountID
	}

	v := url.Values{}
	v.Set("secret", base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(a.sharedKey))
	v.Set("issuer", Issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", fmt.Sprintf("%d", CodeLength))
	v.Set("period", fmt.Sprintf("%d", Period))

	label := url.PathEscape(fmt.Sprintf("%s:%s", Issuer, name))
	return fmt.Sprintf("otpauth://totp/%s?%s", label, v.Encode())
}

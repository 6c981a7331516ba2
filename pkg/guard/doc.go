// Package guard implements the mobile authenticator protocol used by the
// Steam platform: five character guard codes, confirmation signatures and
// device ids.
//
// Guard codes are derived like TOTP (RFC 6238) codes with a 30 second period
// and HMAC-SHA1, but the truncated value is spelled in a 26 symbol alphabet
// that leaves out easily confused glyphs:
//
//	23456789BCDFGHJKMNPQRTVWXY
//
// # Stateless Functions
//
// The package-level functions take base64 secrets as found in credential
// files and an explicit Unix timestamp:
//
//	code, err := guard.GenerateCode(sharedSecret, time.Now().Unix())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ts := time.Now().Unix()
//	key, err := guard.ConfirmationKey(identitySecret, guard.TagAllow, ts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Send both key and ts to the platform.
//
//	deviceID, err := guard.DeviceID("76561197960287930")
//
// # Authenticator
//
// An Authenticator binds the secrets of one account and reads its Clock on
// every call:
//
//	auth, err := guard.NewAuthenticator(guard.Config{
//	    SharedSecret:   sharedSecret,
//	    IdentitySecret: identitySecret,
//	    AccountID:      "76561197960287930",
//	    Clock:          guard.OffsetClock(guard.SystemClock{}, serverOffset),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := auth.Generate()
//	conf, err := auth.ConfirmationKey(guard.TagAllow)
//	// conf.Timestamp is the value that was signed.
//
// # Errors
//
// Malformed secrets fail with ErrInvalidConfig, non-ASCII tags and account
// ids with ErrInvalidEncoding. Errors are never retried or logged.
//
// # Thread Safety
//
// All functions are pure and the Authenticator is immutable after
// construction, so both are safe for concurrent use.
package guard

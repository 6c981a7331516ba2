package guard

import "errors"

// Common errors returned by the guard package.
var (
	// ErrInvalidConfig indicates a secret or configuration value could not be
	// used, for example a secret that is not valid base64.
	ErrInvalidConfig = errors.New("guard: invalid configuration")
	// ErrInvalidEncoding indicates a tag or account id is not plain ASCII.
	ErrInvalidEncoding = errors.New("guard: invalid encoding")
	// ErrInvalidTimestamp indicates a timestamp before the Unix epoch.
	ErrInvalidTimestamp = errors.New("guard: invalid timestamp")
	// ErrInvalidCode indicates the provided code does not match any accepted time window.
	ErrInvalidCode = errors.New("guard: invalid code")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("guard: authenticator is nil")
)

package api

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeremyhahn/go-steamguard/pkg/guard"
	"github.com/jeremyhahn/go-steamguard/pkg/secrets"
)

// Authenticator defines the per-account operations the service dispatches to.
// *guard.Authenticator is the production implementation.
type Authenticator interface {
	Generate() (string, error)
	Authenticate(ctx context.Context, code string) error
	ConfirmationKey(tag string) (guard.Confirmation, error)
	DeviceID() (string, error)
}

// Account represents a named authenticator.
type Account struct {
	Name          string
	Authenticator Authenticator
}

// Config contains the accounts the service manages, in lookup order.
type Config struct {
	Accounts []Account
	// Logger receives debug records for each operation. Secrets, codes and
	// confirmation keys are never logged.
	// Default: zap.NewNop()
	Logger *zap.Logger
}

// Service routes guard operations to the authenticator of a named account.
// It is read-only after construction and safe for concurrent use.
type Service struct {
	accounts []Account
	byName   map[string]Authenticator
	logger   *zap.Logger
}

var (
	// ErrNoAccounts indicates the service was initialised without any accounts.
	ErrNoAccounts = errors.New("api: no accounts configured")
	// ErrAccountNotFound indicates a requested account name does not exist.
	ErrAccountNotFound = errors.New("api: requested account not configured")
	// ErrMissingCode indicates a verification request did not carry a code.
	ErrMissingCode = errors.New("api: code required")
)

// NewService builds a Service from the supplied configuration.
func NewService(cfg Config) (*Service, error) {
	if len(cfg.Accounts) == 0 {
		return nil, ErrNoAccounts
	}

	accounts := make([]Account, 0, len(cfg.Accounts))
	byName := make(map[string]Authenticator, len(cfg.Accounts))
	for i, a := range cfg.Accounts {
		if a.Authenticator == nil {
			return nil, fmt.Errorf("api: account at index %d has no authenticator", i)
		}
		if a.Name == "" {
			return nil, fmt.Errorf("api: account at index %d has no name", i)
		}
		if _, ok := byName[a.Name]; ok {
			return nil, fmt.Errorf("api: duplicate account name %q", a.Name)
		}
		byName[a.Name] = a.Authenticator
		accounts = append(accounts, a)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{accounts: accounts, byName: byName, logger: logger}, nil
}

// NewAccount builds an Account backed by a guard.Authenticator for creds.
// The account is named after creds.AccountName unless name is set.
func NewAccount(name string, creds *secrets.Credentials, clock guard.Clock) (Account, error) {
	if creds == nil {
		return Account{}, errors.New("api: credentials are nil")
	}
	if name == "" {
		name = creds.AccountName
	}

	cfg := creds.GuardConfig()
	cfg.Clock = clock
	auth, err := guard.NewAuthenticator(cfg)
	if err != nil {
		return Account{}, fmt.Errorf("api: account %q: %w", name, err)
	}
	return Account{Name: name, Authenticator: auth}, nil
}

// Accounts returns the configured account names in order.
func (s *Service) Accounts() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.accounts))
	for _, a := range s.accounts {
		names = append(names, a.Name)
	}
	return names
}

func (s *Service) lookup(ctx context.Context, name string) (Authenticator, error) {
	if s == nil || len(s.accounts) == 0 {
		return nil, ErrNoAccounts
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	auth, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
	}
	return auth, nil
}

// Code returns the current guard code for account.
func (s *Service) Code(ctx context.Context, account string) (string, error) {
	auth, err := s.lookup(ctx, account)
	if err != nil {
		return "", err
	}
	code, err := auth.Generate()
	if err != nil {
		s.logger.Debug("generate code failed", zap.String("account", account), zap.Error(err))
		return "", err
	}
	s.logger.Debug("generated code", zap.String("account", account))
	return code, nil
}

// Confirm signs a confirmation for account with the given tag.
func (s *Service) Confirm(ctx context.Context, account, tag string) (guard.Confirmation, error) {
	auth, err := s.lookup(ctx, account)
	if err != nil {
		return guard.Confirmation{}, err
	}
	conf, err := auth.ConfirmationKey(tag)
	if err != nil {
		s.logger.Debug("sign confirmation failed", zap.String("account", account), zap.String("tag", tag), zap.Error(err))
		return guard.Confirmation{}, err
	}
	s.logger.Debug("signed confirmation",
		zap.String("account", account),
		zap.String("tag", tag),
		zap.Int64("timestamp", conf.Timestamp))
	return conf, nil
}

// DeviceID returns the derived device id for account.
func (s *Service) DeviceID(ctx context.Context, account string) (string, error) {
	auth, err := s.lookup(ctx, account)
	if err != nil {
		return "", err
	}
	return auth.DeviceID()
}

// VerifyRequest contains a code and an optional target account.
type VerifyRequest struct {
	Account string
	Code    string
}

// Verify checks a code against the named account, or against every account
// in order when no account is named. It succeeds on the first match.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) error {
	if s == nil || len(s.accounts) == 0 {
		return ErrNoAccounts
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Code == "" {
		return ErrMissingCode
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var targets []Account
	if req.Account != "" {
		auth, err := s.lookup(ctx, req.Account)
		if err != nil {
			return err
		}
		targets = []Account{{Name: req.Account, Authenticator: auth}}
	} else {
		targets = s.accounts
	}

	var errs []error
	for _, a := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.Authenticator.Authenticate(ctx, req.Code); err == nil {
			s.logger.Debug("code accepted", zap.String("account", a.Name))
			return nil
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", a.Name, err))
		}
	}

	s.logger.Debug("code rejected", zap.Int("accounts", len(targets)))
	return errors.Join(errs...)
}

var _ Authenticator = (*guard.Authenticator)(nil)

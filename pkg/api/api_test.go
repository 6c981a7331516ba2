package api

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeremyhahn/go-steamguard/pkg/guard"
	"github.com/jeremyhahn/go-steamguard/pkg/secrets"
)

type stubAuthenticator struct {
	code     string
	err      error
	calls    int
	lastCode string
	lastTag  string
}

func (s *stubAuthenticator) Generate() (string, error) {
	s.calls++
	return s.code, s.err
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, code string) error {
	s.calls++
	s.lastCode = code
	if s.err != nil {
		return s.err
	}
	if code != s.code {
		return guard.ErrInvalidCode
	}
	return nil
}

func (s *stubAuthenticator) ConfirmationKey(tag string) (guard.Confirmation, error) {
	s.calls++
	s.lastTag = tag
	return guard.Confirmation{Tag: tag, Timestamp: 42, Key: "key"}, s.err
}

func (s *stubAuthenticator) DeviceID() (string, error) {
	s.calls++
	return "android:device", s.err
}

func TestNewServiceValidation(t *testing.T) {
	stub := &stubAuthenticator{}

	if _, err := NewService(Config{}); !errors.Is(err, ErrNoAccounts) {
		t.Fatalf("expected ErrNoAccounts, got %v", err)
	}
	if _, err := NewService(Config{Accounts: []Account{{Name: "alice"}}}); err == nil || !strings.Contains(err.Error(), "no authenticator") {
		t.Fatalf("expected missing authenticator error, got %v", err)
	}
	if _, err := NewService(Config{Accounts: []Account{{Authenticator: stub}}}); err == nil || !strings.Contains(err.Error(), "no name") {
		t.Fatalf("expected missing name error, got %v", err)
	}
	dup := Config{Accounts: []Account{{Name: "alice", Authenticator: stub}, {Name: "alice", Authenticator: stub}}}
	if _, err := NewService(dup); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCode(t *testing.T) {
	alice := &stubAuthenticator{code: "R87JJ"}
	svc, err := NewService(Config{Accounts: []Account{{Name: "alice", Authenticator: alice}}})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	code, err := svc.Code(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Code error: %v", err)
	}
	if code != "R87JJ" {
		t.Errorf("Code = %q", code)
	}

	if _, err := svc.Code(context.Background(), "bob"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestConfirmAndDeviceID(t *testing.T) {
	alice := &stubAuthenticator{}
	svc, err := NewService(Config{Accounts: []Account{{Name: "alice", Authenticator: alice}}})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	conf, err := svc.Confirm(context.Background(), "alice", guard.TagAllow)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if conf.Tag != guard.TagAllow || alice.lastTag != guard.TagAllow {
		t.Errorf("tag not forwarded: %+v", conf)
	}

	id, err := svc.DeviceID(context.Background(), "alice")
	if err != nil {
		t.Fatalf("DeviceID error: %v", err)
	}
	if id != "android:device" {
		t.Errorf("DeviceID = %q", id)
	}
}

func TestVerifyNamedAccount(t *testing.T) {
	alice := &stubAuthenticator{code: "AAAAA"}
	bob := &stubAuthenticator{code: "BBBBB"}
	svc, err := NewService(Config{Accounts: []Account{{Name: "alice", Authenticator: alice}, {Name: "bob", Authenticator: bob}}})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	if err := svc.Verify(context.Background(), VerifyRequest{Account: "bob", Code: "BBBBB"}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if alice.calls != 0 {
		t.Fatalf("alice should not be consulted, calls=%d", alice.calls)
	}

	err = svc.Verify(context.Background(), VerifyRequest{Account: "bob", Code: "AAAAA"})
	if !errors.Is(err, guard.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}

	if err := svc.Verify(context.Background(), VerifyRequest{Account: "carol", Code: "AAAAA"}); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestVerifyAllAccounts(t *testing.T) {
	alice := &stubAuthenticator{code: "AAAAA"}
	bob := &stubAuthenticator{code: "BBBBB"}
	svc, err := NewService(Config{Accounts: []Account{{Name: "alice", Authenticator: alice}, {Name: "bob", Authenticator: bob}}})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	if err := svc.Verify(context.Background(), VerifyRequest{Code: "BBBBB"}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if alice.calls != 1 || bob.calls != 1 {
		t.Fatalf("expected both accounts consulted once, got alice=%d bob=%d", alice.calls, bob.calls)
	}

	err = svc.Verify(context.Background(), VerifyRequest{Code: "CCCCC"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "alice") || !strings.Contains(err.Error(), "bob") {
		t.Fatalf("expected joined errors, got %v", err)
	}
}

func TestVerifyErrors(t *testing.T) {
	alice := &stubAuthenticator{code: "AAAAA"}
	svc, err := NewService(Config{Accounts: []Account{{Name: "alice", Authenticator: alice}}})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	if err := svc.Verify(context.Background(), VerifyRequest{}); !errors.Is(err, ErrMissingCode) {
		t.Fatalf("expected ErrMissingCode, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Verify(ctx, VerifyRequest{Code: "AAAAA"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if alice.calls != 0 {
		t.Fatalf("authenticator should not be called after cancellation")
	}

	var nilSvc *Service
	if err := nilSvc.Verify(context.Background(), VerifyRequest{Code: "AAAAA"}); !errors.Is(err, ErrNoAccounts) {
		t.Fatalf("expected ErrNoAccounts, got %v", err)
	}
	if _, err := nilSvc.Code(context.Background(), "alice"); !errors.Is(err, ErrNoAccounts) {
		t.Fatalf("expected ErrNoAccounts, got %v", err)
	}
}

func TestAccounts(t *testing.T) {
	stub := &stubAuthenticator{}
	svc, err := NewService(Config{Accounts: []Account{{Name: "b", Authenticator: stub}, {Name: "a", Authenticator: stub}}})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	got := svc.Accounts()
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("Accounts = %v", got)
	}
}

func TestLoggingNeverIncludesSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	creds, err := secrets.Parse(strings.NewReader(`{
		"shared_secret": "MTIzNDU2Nzg5MDEyMzQ1Njc4OTA=",
		"identity_secret": "aWRlbnRpdHktc2VjcmV0LWZvci10ZXN0cw==",
		"account_name": "alice",
		"steamid": "76561197960287930"
	}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	account, err := NewAccount("", creds, guard.FixedClock(time.Unix(1700000000, 0)))
	if err != nil {
		t.Fatalf("NewAccount error: %v", err)
	}
	if account.Name != "alice" {
		t.Fatalf("account name = %q, want alice", account.Name)
	}

	svc, err := NewService(Config{Accounts: []Account{account}, Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	code, err := svc.Code(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Code error: %v", err)
	}
	if code != "R87JJ" {
		t.Fatalf("Code = %q, want R87JJ", code)
	}
	conf, err := svc.Confirm(context.Background(), "alice", guard.TagList)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if err := svc.Verify(context.Background(), VerifyRequest{Code: code}); err != nil {
		t.Fatalf("Verify error: %v", err)
	}

	if logs.Len() == 0 {
		t.Fatal("expected debug records")
	}
	for _, entry := range logs.All() {
		for _, field := range entry.Context {
			if field.String == code || field.String == conf.Key || strings.Contains(field.String, "MTIz") {
				t.Errorf("log record %q leaks %s=%q", entry.Message, field.Key, field.String)
			}
		}
	}
}

func TestNewAccountErrors(t *testing.T) {
	if _, err := NewAccount("x", nil, nil); err == nil {
		t.Fatal("expected error for nil credentials")
	}
	creds := &secrets.Credentials{SharedSecret: "***"}
	if _, err := NewAccount("x", creds, nil); !errors.Is(err, guard.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

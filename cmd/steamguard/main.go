// Command steamguard prints guard codes, confirmation keys and device ids
// for an account enrolled with a mobile authenticator.
//
// Usage:
//
//	steamguard [-mafile path] [-time unix] [-offset duration] <command> [args]
//
// Commands:
//
//	code           print the current guard code
//	verify CODE    check a guard code against the current time
//	confirm TAG    print a confirmation key and the timestamp it signs
//	device-id      print the derived device id
//	uri            print the otpauth provisioning uri
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeremyhahn/go-steamguard/internal/config"
	"github.com/jeremyhahn/go-steamguard/internal/logging"
	"github.com/jeremyhahn/go-steamguard/pkg/api"
	"github.com/jeremyhahn/go-steamguard/pkg/guard"
	"github.com/jeremyhahn/go-steamguard/pkg/secrets"
)

const usage = "usage: steamguard [-mafile path] [-time unix] [-offset duration] code|verify CODE|confirm TAG|device-id|uri"

var errUsage = errors.New(usage)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.NewWithWriter(cfg.LogLevel, cfg.AppEnv, stderr)
	defer func() { _ = logger.Sync() }()

	fs := flag.NewFlagSet("steamguard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maFile := fs.String("mafile", cfg.MaFile, "path to the credential file")
	at := fs.Int64("time", -1, "Unix timestamp to use instead of the clock")
	offset := fs.Duration("offset", cfg.TimeOffset, "offset between server time and the local clock")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 || *maFile == "" {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	clock := guard.OffsetClock(guard.SystemClock{}, *offset)
	if *at >= 0 {
		clock = guard.FixedClock(time.Unix(*at, 0))
	}

	out, err := execute(ctx, logger, *maFile, clock, fs.Args())
	if errors.Is(err, errUsage) {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", fs.Arg(0)), zap.Error(err))
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func execute(ctx context.Context, logger *zap.Logger, maFile string, clock guard.Clock, args []string) (string, error) {
	creds, err := secrets.LoadFile(maFile)
	if err != nil {
		return "", err
	}

	name := creds.AccountName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(maFile), filepath.Ext(maFile))
	}
	account, err := api.NewAccount(name, creds, clock)
	if err != nil {
		return "", err
	}
	svc, err := api.NewService(api.Config{Accounts: []api.Account{account}, Logger: logger})
	if err != nil {
		return "", err
	}

	switch args[0] {
	case "code":
		return svc.Code(ctx, name)
	case "verify":
		if len(args) != 2 {
			return "", errUsage
		}
		if err := svc.Verify(ctx, api.VerifyRequest{Account: name, Code: args[1]}); err != nil {
			return "", err
		}
		return "ok", nil
	case "confirm":
		if len(args) != 2 {
			return "", errUsage
		}
		conf, err := svc.Confirm(ctx, name, args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d %s", conf.Timestamp, conf.Key), nil
	case "device-id":
		return svc.DeviceID(ctx, name)
	case "uri":
		auth, ok := account.Authenticator.(*guard.Authenticator)
		if !ok {
			return "", fmt.Errorf("account %q does not support provisioning uris", name)
		}
		return auth.GetProvisioningURI(), nil
	default:
		return "", errUsage
	}
}

// Command splitledger drives a payment-splitting ledger stored in a local
// bbolt file.
//
// Usage:
//
//	splitledger [-datadir dir] [-identity n] <command> [args]
//
// The keystore password is read from -password or SPLITLEDGER_PASSWORD.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/config"
	"github.com/bitfsorg/libsplit-go/ledger"
	"github.com/bitfsorg/libsplit-go/logging"
	"github.com/bitfsorg/libsplit-go/storage"
	"github.com/bitfsorg/libsplit-go/wallet"
)

const (
	dbFile      = "ledger.db"
	passwordEnv = "SPLITLEDGER_PASSWORD"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		slog.Error("splitledger failed", "error", err)
		os.Exit(1)
	}
}

// env is what a command runs against. Fields are filled lazily so that
// init and address do not need to open the database.
type env struct {
	out      io.Writer
	dataDir  string
	password string
	identity uint32
	cfg      config.Config

	wallet  *wallet.Wallet
	store   *storage.BoltStore
	ledger  *ledger.Ledger
	logFile io.Closer
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("splitledger", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dataDir := fs.String("datadir", config.DefaultDataDir(), "data directory")
	password := fs.String("password", os.Getenv(passwordEnv), "keystore password")
	identity := fs.Uint("identity", 0, "identity index to sign with")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: splitledger <command> [args]; commands: %s", errUsage, commandNames())
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q; commands: %s", errUsage, name, commandNames())
	}

	e := &env{out: out, dataDir: *dataDir, password: *password, identity: uint32(*identity)}
	if name != "init" {
		if err := e.loadConfig(); err != nil {
			return err
		}
	}
	defer e.close()
	return cmd.run(e, fs.Args()[1:])
}

func (e *env) loadConfig() error {
	cfg, err := config.LoadConfig(config.ConfigPath(e.dataDir))
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}
	e.cfg = cfg
	if cfg.DataDir != "" {
		e.dataDir = cfg.DataDir
	}

	logFile := cfg.LogFile
	if logFile != "" && !filepath.IsAbs(logFile) {
		logFile = filepath.Join(e.dataDir, logFile)
	}
	_, closer, err := logging.Setup(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}
	e.logFile = closer
	return nil
}

// signer opens the keystore and derives the configured identity.
func (e *env) signer() (*wallet.Identity, error) {
	if e.wallet == nil {
		network, err := wallet.GetNetwork(e.cfg.Network)
		if err != nil {
			return nil, err
		}
		w, err := wallet.OpenKeystore(wallet.KeystorePath(e.dataDir), e.password, network)
		if err != nil {
			return nil, err
		}
		e.wallet = w
	}
	return e.wallet.DeriveIdentity(e.identity)
}

func (e *env) openLedger() (*ledger.Ledger, error) {
	if e.ledger != nil {
		return e.ledger, nil
	}
	store, err := storage.OpenBoltStore(filepath.Join(e.dataDir, dbFile))
	if err != nil {
		return nil, err
	}
	l, err := ledger.New(store, nil, &ledger.Options{
		UsageQuota:  e.cfg.UsageQuota,
		MaxPageSize: e.cfg.MaxPageSize,
		Logger:      slog.Default(),
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	e.store, e.ledger = store, l
	return l, nil
}

// sign returns the ledger and the signing identity together with a proof
// over digest for the identity's current nonce.
func (e *env) sign(digest func(self auth.Address, nonce uint64) []byte) (*ledger.Ledger, *wallet.Identity, *auth.Proof, error) {
	id, err := e.signer()
	if err != nil {
		return nil, nil, nil, err
	}
	l, err := e.openLedger()
	if err != nil {
		return nil, nil, nil, err
	}
	n, err := l.Nonce(id.Address())
	if err != nil {
		return nil, nil, nil, err
	}
	proof, err := id.Sign(digest(id.Address(), n))
	if err != nil {
		return nil, nil, nil, err
	}
	return l, id, proof, nil
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			slog.Warn("close ledger database", "error", err)
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func (e *env) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

package wallet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// KeystoreFile is the keystore's file name inside a data directory.
const KeystoreFile = "wallet.enc"

// KeystorePath returns the keystore location inside dataDir.
func KeystorePath(dataDir string) string {
	return filepath.Join(dataDir, KeystoreFile)
}

// InitKeystore generates a new mnemonic, encrypts its seed under password
// and writes it to path. The mnemonic is returned for the user to back up.
// An existing keystore is never overwritten.
func InitKeystore(path, passphrase, password string, entropyBits int) (string, error) {
	mnemonic, err := GenerateMnemonic(entropyBits)
	if err != nil {
		return "", err
	}
	if err := ImportKeystore(path, mnemonic, passphrase, password); err != nil {
		return "", err
	}
	return mnemonic, nil
}

// ImportKeystore writes the seed of an existing mnemonic to path.
func ImportKeystore(path, mnemonic, passphrase, password string) error {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return err
	}
	enc, err := EncryptSeed(seed, password)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("wallet: create keystore directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrKeystoreExists, path)
		}
		return fmt.Errorf("wallet: create keystore: %w", err)
	}
	if _, err := f.Write(enc); err != nil {
		f.Close()
		return fmt.Errorf("wallet: write keystore: %w", err)
	}
	return f.Close()
}

// OpenKeystore decrypts the keystore at path and returns its wallet.
func OpenKeystore(path, password string, network *Network) (*Wallet, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrKeystoreNotFound, path)
		}
		return nil, fmt.Errorf("wallet: read keystore: %w", err)
	}
	seed, err := DecryptSeed(enc, password)
	if err != nil {
		return nil, err
	}
	return NewWallet(seed, network)
}

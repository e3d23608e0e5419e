// Package asset provides the fungible-asset capability the split ledger
// consumes: balances, transfers and minting of assets named by a short id.
// All operations run inside the caller's storage transaction, so a failed
// ledger call rolls back its transfers too.
package asset

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/storage"
)

// MaxIDLen is the longest accepted asset id.
const MaxIDLen = 64

var bucketBalances = []byte("balances")

// Ledger moves and reports asset balances.
type Ledger interface {
	// Balance returns owner's balance of asset; absent balances are zero.
	Balance(tx storage.Tx, asset string, owner auth.Address) (int64, error)

	// Transfer moves amount of asset from one owner to another.
	Transfer(tx storage.Tx, asset string, from, to auth.Address, amount int64) error

	// Mint credits amount of asset to an owner out of thin air.
	Mint(tx storage.Tx, asset string, to auth.Address, amount int64) error
}

// KVLedger keeps balances in the "balances" bucket keyed by
// len(asset) || asset || owner.
type KVLedger struct{}

// Compile-time interface check.
var _ Ledger = KVLedger{}

// ValidateID checks an asset id.
func ValidateID(asset string) error {
	if len(asset) == 0 || len(asset) > MaxIDLen {
		return fmt.Errorf("%w: %q", ErrInvalidAsset, asset)
	}
	return nil
}

func balanceKey(asset string, owner auth.Address) []byte {
	k := make([]byte, 0, 1+len(asset)+auth.AddressSize)
	k = append(k, byte(len(asset)))
	k = append(k, asset...)
	return append(k, owner[:]...)
}

func readBalance(tx storage.Tx, key []byte) (int64, error) {
	v := tx.Get(bucketBalances, key)
	if v == nil {
		return 0, nil
	}
	if len(v) != 8 {
		return 0, fmt.Errorf("%w: %d bytes", ErrCorruptBalance, len(v))
	}
	return int64(binary.BigEndian.Uint64(v)), nil
}

func writeBalance(tx storage.Tx, key []byte, bal int64) error {
	return tx.Put(bucketBalances, key, binary.BigEndian.AppendUint64(nil, uint64(bal)))
}

// Balance returns owner's balance of asset.
func (KVLedger) Balance(tx storage.Tx, asset string, owner auth.Address) (int64, error) {
	if err := ValidateID(asset); err != nil {
		return 0, err
	}
	return readBalance(tx, balanceKey(asset, owner))
}

// Transfer debits from and credits to. Transfers to self and zero amounts
// are validated but leave balances unchanged.
func (KVLedger) Transfer(tx storage.Tx, asset string, from, to auth.Address, amount int64) error {
	if err := ValidateID(asset); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeAmount, amount)
	}

	fromKey := balanceKey(asset, from)
	fromBal, err := readBalance(tx, fromKey)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return fmt.Errorf("%w: %s holds %d %s, needs %d", ErrInsufficientBalance, from, fromBal, asset, amount)
	}
	if amount == 0 || from == to {
		return nil
	}

	toKey := balanceKey(asset, to)
	toBal, err := readBalance(tx, toKey)
	if err != nil {
		return err
	}
	if toBal > math.MaxInt64-amount {
		return fmt.Errorf("%w: %s", ErrBalanceOverflow, to)
	}

	if err := writeBalance(tx, fromKey, fromBal-amount); err != nil {
		return fmt.Errorf("asset: debit: %w", err)
	}
	if err := writeBalance(tx, toKey, toBal+amount); err != nil {
		return fmt.Errorf("asset: credit: %w", err)
	}
	return nil
}

// Mint credits amount to an owner.
func (KVLedger) Mint(tx storage.Tx, asset string, to auth.Address, amount int64) error {
	if err := ValidateID(asset); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeAmount, amount)
	}

	key := balanceKey(asset, to)
	bal, err := readBalance(tx, key)
	if err != nil {
		return err
	}
	if bal > math.MaxInt64-amount {
		return fmt.Errorf("%w: %s", ErrBalanceOverflow, to)
	}
	return writeBalance(tx, key, bal+amount)
}

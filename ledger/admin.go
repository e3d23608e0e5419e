package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/bitfsorg/libsplit-go/asset"
	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/storage"
)

const (
	opInitializeAdmin = "initialize_admin"
	opAddAsset        = "add_supported_asset"
	opRemoveAsset     = "remove_supported_asset"
	opPause           = "pause"
	opUnpause         = "unpause"
	opMint            = "mint"
)

func requireAdmin(tx storage.Tx, caller auth.Address) error {
	admin, ok := loadAdmin(tx)
	if !ok {
		return ErrAdminNotSet
	}
	if caller != admin {
		return fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller)
	}
	return nil
}

// adminUpdate authorizes admin, checks that admin holds the role and runs fn
// in the same transaction.
func (l *Ledger) adminUpdate(op string, admin auth.Address, proof *auth.Proof, digest func(uint64) []byte, fn func(tx storage.Tx) error) error {
	err := l.store.Update(func(tx storage.Tx) error {
		if err := authorize(tx, admin, proof, digest); err != nil {
			return err
		}
		if err := requireAdmin(tx, admin); err != nil {
			return err
		}
		return fn(tx)
	})
	if err != nil {
		return l.reject(op, err)
	}
	return nil
}

// InitializeAdminDigest returns the message admin signs to claim the role.
func InitializeAdminDigest(admin auth.Address, nonce uint64) []byte {
	return auth.Digest(opInitializeAdmin, admin[:], nonceArg(nonce))
}

// InitializeAdmin sets the admin. It succeeds once per ledger.
func (l *Ledger) InitializeAdmin(admin auth.Address, proof *auth.Proof) error {
	err := l.store.Update(func(tx storage.Tx) error {
		err := authorize(tx, admin, proof, func(n uint64) []byte { return InitializeAdminDigest(admin, n) })
		if err != nil {
			return err
		}
		if _, ok := loadAdmin(tx); ok {
			return ErrAlreadyInitialized
		}
		if err := tx.Put(bucketMeta, keyAdmin, admin[:]); err != nil {
			return fmt.Errorf("ledger: save admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return l.reject(opInitializeAdmin, err)
	}
	l.log.Info("admin initialized", "admin", admin)
	return nil
}

// Admin returns the admin address, or ErrAdminNotSet.
func (l *Ledger) Admin() (auth.Address, error) {
	var admin auth.Address
	err := l.store.View(func(tx storage.Tx) error {
		var ok bool
		if admin, ok = loadAdmin(tx); !ok {
			return ErrAdminNotSet
		}
		return nil
	})
	return admin, err
}

// AssetDigest returns the message admin signs to add or remove id from
// the allow-list. add selects which.
func AssetDigest(id string, admin auth.Address, add bool, nonce uint64) []byte {
	op := opRemoveAsset
	if add {
		op = opAddAsset
	}
	return auth.Digest(op, []byte(id), admin[:], nonceArg(nonce))
}

// AddSupportedAsset allows groups to be created for id.
func (l *Ledger) AddSupportedAsset(id string, admin auth.Address, proof *auth.Proof) error {
	if err := asset.ValidateID(id); err != nil {
		return l.reject(opAddAsset, err)
	}
	err := l.adminUpdate(opAddAsset, admin, proof, func(n uint64) []byte { return AssetDigest(id, admin, true, n) }, func(tx storage.Tx) error {
		return tx.Put(bucketAssets, []byte(id), present)
	})
	if err != nil {
		return err
	}
	l.log.Info("asset allowed", "asset", id)
	return nil
}

// RemoveSupportedAsset stops new groups from using id. Existing groups
// keep distributing in it.
func (l *Ledger) RemoveSupportedAsset(id string, admin auth.Address, proof *auth.Proof) error {
	if err := asset.ValidateID(id); err != nil {
		return l.reject(opRemoveAsset, err)
	}
	err := l.adminUpdate(opRemoveAsset, admin, proof, func(n uint64) []byte { return AssetDigest(id, admin, false, n) }, func(tx storage.Tx) error {
		return tx.Delete(bucketAssets, []byte(id))
	})
	if err != nil {
		return err
	}
	l.log.Info("asset removed", "asset", id)
	return nil
}

// IsSupportedAsset reports whether id is on the allow-list.
func (l *Ledger) IsSupportedAsset(id string) (bool, error) {
	var ok bool
	err := l.store.View(func(tx storage.Tx) error {
		ok = tx.Get(bucketAssets, []byte(id)) != nil
		return nil
	})
	return ok, err
}

// PauseDigest returns the message admin signs to set the pause flag to
// paused.
func PauseDigest(admin auth.Address, paused bool, nonce uint64) []byte {
	if paused {
		return auth.Digest(opPause, admin[:], nonceArg(nonce))
	}
	return auth.Digest(opUnpause, admin[:], nonceArg(nonce))
}

// Pause rejects every group mutation until Unpause.
func (l *Ledger) Pause(admin auth.Address, proof *auth.Proof) error {
	return l.setPaused(opPause, admin, proof, true)
}

// Unpause clears the pause flag.
func (l *Ledger) Unpause(admin auth.Address, proof *auth.Proof) error {
	return l.setPaused(opUnpause, admin, proof, false)
}

func (l *Ledger) setPaused(op string, admin auth.Address, proof *auth.Proof, paused bool) error {
	flag := []byte{0}
	if paused {
		flag[0] = 1
	}
	err := l.adminUpdate(op, admin, proof, func(n uint64) []byte { return PauseDigest(admin, paused, n) }, func(tx storage.Tx) error {
		return tx.Put(bucketMeta, keyPaused, flag)
	})
	if err != nil {
		return err
	}
	l.log.Info("pause flag set", "paused", paused, "admin", admin)
	return nil
}

// IsPaused reports the pause flag.
func (l *Ledger) IsPaused() (bool, error) {
	var paused bool
	err := l.store.View(func(tx storage.Tx) error {
		paused = isPaused(tx)
		return nil
	})
	return paused, err
}

// MintDigest returns the message admin signs to mint amount of id to to.
func MintDigest(id string, to auth.Address, amount int64, admin auth.Address, nonce uint64) []byte {
	return auth.Digest(opMint, []byte(id), to[:], binary.BigEndian.AppendUint64(nil, uint64(amount)), admin[:], nonceArg(nonce))
}

// Mint credits amount of an allowed asset to to.
func (l *Ledger) Mint(id string, to auth.Address, amount int64, admin auth.Address, proof *auth.Proof) error {
	if amount <= 0 {
		return l.reject(opMint, fmt.Errorf("%w: %d", ErrInvalidAmount, amount))
	}
	err := l.adminUpdate(opMint, admin, proof, func(n uint64) []byte { return MintDigest(id, to, amount, admin, n) }, func(tx storage.Tx) error {
		if tx.Get(bucketAssets, []byte(id)) == nil {
			return fmt.Errorf("%w: %q", ErrUnsupportedAsset, id)
		}
		return l.assets.Mint(tx, id, to, amount)
	})
	if err != nil {
		return err
	}
	l.log.Info("minted", "asset", id, "to", to, "amount", amount)
	return nil
}

// Balance returns owner's holding of asset id.
func (l *Ledger) Balance(id string, owner auth.Address) (int64, error) {
	var bal int64
	err := l.store.View(func(tx storage.Tx) error {
		var err error
		bal, err = l.assets.Balance(tx, id, owner)
		return err
	})
	return bal, err
}

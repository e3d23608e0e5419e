package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

const opStartFundraising = "start_fundraising"

// GetFundraisingStatus returns the group's campaign. A group that never ran
// one reports a zero, inactive config.
func (l *Ledger) GetFundraisingStatus(id revshare.GroupID) (revshare.FundraisingConfig, error) {
	var cfg revshare.FundraisingConfig
	err := l.store.View(func(tx storage.Tx) error {
		var err error
		cfg, err = loadFundraising(tx, id)
		return err
	})
	return cfg, err
}

// StartFundraisingDigest returns the message caller signs to open a
// campaign for id.
func StartFundraisingDigest(id revshare.GroupID, target int64, caller auth.Address, nonce uint64) []byte {
	return auth.Digest(opStartFundraising, id[:], binary.BigEndian.AppendUint64(nil, uint64(target)), caller[:], nonceArg(nonce))
}

// StartFundraising opens a campaign that counts every distribution to the
// group until target is reached. Only the creator may start one, and a
// finished campaign's total is reset.
func (l *Ledger) StartFundraising(id revshare.GroupID, target int64, caller auth.Address, proof *auth.Proof) error {
	if target <= 0 {
		return l.reject(opStartFundraising, fmt.Errorf("%w: target %d", ErrInvalidAmount, target))
	}
	err := l.store.Update(func(tx storage.Tx) error {
		err := authorize(tx, caller, proof, func(n uint64) []byte { return StartFundraisingDigest(id, target, caller, n) })
		if err != nil {
			return err
		}
		if err := requireNotPaused(tx); err != nil {
			return err
		}
		g, err := loadGroup(tx, id)
		if err != nil {
			return err
		}
		if caller != g.Creator {
			return fmt.Errorf("%w: only the creator can fundraise for %s", ErrUnauthorized, id)
		}
		if !g.Active {
			return fmt.Errorf("%w: %s", ErrGroupInactive, id)
		}
		cur, err := loadFundraising(tx, id)
		if err != nil {
			return err
		}
		if cur.IsActive {
			return fmt.Errorf("%w: %s", ErrFundraisingActive, id)
		}
		return saveFundraising(tx, id, revshare.FundraisingConfig{TargetAmount: target, IsActive: true})
	})
	if err != nil {
		return l.reject(opStartFundraising, err)
	}
	l.log.Info("fundraising started", "group", id, "target", target)
	return nil
}

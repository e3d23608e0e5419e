package ledger

import (
	"fmt"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

const (
	opDeactivate = "deactivate"
	opDelete     = "delete"
)

// Get returns the group with the given id.
func (l *Ledger) Get(id revshare.GroupID) (*revshare.Group, error) {
	var g *revshare.Group
	err := l.store.View(func(tx storage.Tx) error {
		var err error
		g, err = loadGroup(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// IsGroupActive reports whether the group accepts distributions.
func (l *Ledger) IsGroupActive(id revshare.GroupID) (bool, error) {
	g, err := l.Get(id)
	if err != nil {
		return false, err
	}
	return g.Active, nil
}

// GetAllGroups returns every live group in index order.
func (l *Ledger) GetAllGroups() ([]*revshare.Group, error) {
	var groups []*revshare.Group
	err := l.store.View(func(tx storage.Tx) error {
		ids, err := loadIndex(tx)
		if err != nil {
			return err
		}
		groups, err = loadGroups(tx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// DeactivateDigest returns the message caller signs to deactivate id.
func DeactivateDigest(id revshare.GroupID, caller auth.Address, nonce uint64) []byte {
	return auth.Digest(opDeactivate, id[:], caller[:], nonceArg(nonce))
}

// Deactivate stops a group from accepting distributions. Only the creator
// or the admin may deactivate.
func (l *Ledger) Deactivate(id revshare.GroupID, caller auth.Address, proof *auth.Proof) error {
	err := l.store.Update(func(tx storage.Tx) error {
		err := authorize(tx, caller, proof, func(n uint64) []byte { return DeactivateDigest(id, caller, n) })
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
		if err := requireCreatorOrAdmin(tx, g, caller); err != nil {
			return err
		}
		if !g.Active {
			return fmt.Errorf("%w: %s", ErrGroupInactive, id)
		}
		g.Active = false
		return saveGroup(tx, g)
	})
	if err != nil {
		return l.reject(opDeactivate, err)
	}
	l.log.Info("group deactivated", "group", id, "caller", caller)
	return nil
}

// DeleteDigest returns the message caller signs to delete id.
func DeleteDigest(id revshare.GroupID, caller auth.Address, nonce uint64) []byte {
	return auth.Digest(opDelete, id[:], caller[:], nonceArg(nonce))
}

// Delete removes a deactivated group from the registry and the index.
// Its earnings, payment history and fundraising record are kept, and its
// id stays reserved. Any remaining usage quota is forfeited.
func (l *Ledger) Delete(id revshare.GroupID, caller auth.Address, proof *auth.Proof) error {
	err := l.store.Update(func(tx storage.Tx) error {
		err := authorize(tx, caller, proof, func(n uint64) []byte { return DeleteDigest(id, caller, n) })
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
		if err := requireCreatorOrAdmin(tx, g, caller); err != nil {
			return err
		}
		if g.Active {
			return fmt.Errorf("%w: %s", ErrGroupNotDeactivated, id)
		}

		ids, err := loadIndex(tx)
		if err != nil {
			return err
		}
		if err := saveIndex(tx, removeFromIndex(ids, id)); err != nil {
			return err
		}
		if err := tx.Delete(bucketGroups, id[:]); err != nil {
			return fmt.Errorf("ledger: delete group: %w", err)
		}
		return nil
	})
	if err != nil {
		return l.reject(opDelete, err)
	}
	l.metrics.groupDeleted()
	l.log.Info("group deleted", "group", id, "caller", caller)
	return nil
}

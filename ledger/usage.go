package ledger

import (
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

const opReduceUsage = "reduce_usage"

// ReduceUsage consumes one use of the group's quota. A group with no uses
// left stays at zero.
func (l *Ledger) ReduceUsage(id revshare.GroupID) (uint32, error) {
	var remaining uint32
	err := l.store.Update(func(tx storage.Tx) error {
		if err := requireNotPaused(tx); err != nil {
			return err
		}
		g, err := loadGroup(tx, id)
		if err != nil {
			return err
		}
		if g.RemainingUsages > 0 {
			g.RemainingUsages--
			if err := saveGroup(tx, g); err != nil {
				return err
			}
		}
		remaining = g.RemainingUsages
		return nil
	})
	if err != nil {
		return 0, l.reject(opReduceUsage, err)
	}
	return remaining, nil
}

// GetRemainingUsages returns the group's remaining quota.
func (l *Ledger) GetRemainingUsages(id revshare.GroupID) (uint32, error) {
	g, err := l.Get(id)
	if err != nil {
		return 0, err
	}
	return g.RemainingUsages, nil
}

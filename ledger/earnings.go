package ledger

import (
	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

// GetMemberEarnings returns the cumulative amount member has received from
// the group. Unknown groups and members read as zero.
func (l *Ledger) GetMemberEarnings(member auth.Address, id revshare.GroupID) (int64, error) {
	var total int64
	err := l.store.View(func(tx storage.Tx) error {
		var err error
		total, err = readEarnings(tx, id, member)
		return err
	})
	return total, err
}

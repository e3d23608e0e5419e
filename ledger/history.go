package ledger

import (
	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

// GetGroupPaymentHistory returns the group's records oldest first. The
// history outlives the group.
func (l *Ledger) GetGroupPaymentHistory(id revshare.GroupID) ([]*revshare.PaymentRecord, error) {
	var records []*revshare.PaymentRecord
	err := l.store.View(func(tx storage.Tx) error {
		var err error
		records, err = scanRecords(tx, bucketGroupHistory, id[:])
		return err
	})
	return records, err
}

// GetUserPaymentHistory returns the records addr sent, oldest first.
func (l *Ledger) GetUserPaymentHistory(addr auth.Address) ([]*revshare.PaymentRecord, error) {
	var records []*revshare.PaymentRecord
	err := l.store.View(func(tx storage.Tx) error {
		var err error
		records, err = scanRecords(tx, bucketUserHistory, addr[:])
		return err
	})
	return records, err
}

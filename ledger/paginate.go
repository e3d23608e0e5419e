package ledger

import (
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

// GetGroupsPaginated returns up to limit groups starting at offset in index
// order. limit is clamped to the configured maximum page size. An offset
// past the end yields an empty page that still reports the total.
func (l *Ledger) GetGroupsPaginated(offset, limit uint32) (*revshare.Page, error) {
	if limit > l.maxPageSize {
		limit = l.maxPageSize
	}
	page := &revshare.Page{Offset: offset, Limit: limit}
	err := l.store.View(func(tx storage.Tx) error {
		ids, err := loadIndex(tx)
		if err != nil {
			return err
		}
		page.Total = uint32(len(ids))
		if offset >= page.Total {
			return nil
		}
		end := min(uint64(offset)+uint64(limit), uint64(page.Total))
		page.Groups, err = loadGroups(tx, ids[offset:end])
		return err
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/bitfsorg/libsplit-go/asset"
	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

const opCreate = "create"

// CreateOpts holds options for the Create operation.
type CreateOpts struct {
	ID        revshare.GroupID
	Name      string
	Creator   auth.Address
	FeePerUse int64
	Asset     string
	Members   []revshare.GroupMember
}

// Digest returns the message the creator signs to authorize Create with
// the creator's current nonce.
func (o *CreateOpts) Digest(nonce uint64) []byte {
	args := [][]byte{
		nonceArg(nonce),
		o.ID[:],
		[]byte(o.Name),
		o.Creator[:],
		binary.BigEndian.AppendUint64(nil, uint64(o.FeePerUse)),
		[]byte(o.Asset),
	}
	for _, m := range o.Members {
		args = append(args, binary.BigEndian.AppendUint32(append([]byte(nil), m.Address[:]...), m.Percentage))
	}
	return auth.Digest(opCreate, args...)
}

func (o *CreateOpts) validate() error {
	if len(o.Name) == 0 || len(o.Name) > revshare.MaxNameLen {
		return fmt.Errorf("%w: name is %d bytes", ErrInvalidName, len(o.Name))
	}
	if o.FeePerUse < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFee, o.FeePerUse)
	}
	if err := asset.ValidateID(o.Asset); err != nil {
		return err
	}
	return revshare.ValidateMembers(o.Members)
}

// Create registers a new group, active and with the configured usage
// quota. The group id must never have been used before, even by a group
// that has since been deleted.
func (l *Ledger) Create(opts *CreateOpts, proof *auth.Proof) (*revshare.Group, error) {
	if opts == nil {
		return nil, l.reject(opCreate, ErrNilParam)
	}
	if err := opts.validate(); err != nil {
		return nil, l.reject(opCreate, err)
	}

	g := &revshare.Group{
		ID:              opts.ID,
		Creator:         opts.Creator,
		Name:            opts.Name,
		Members:         append([]revshare.GroupMember(nil), opts.Members...),
		FeePerUse:       opts.FeePerUse,
		Asset:           opts.Asset,
		Active:          true,
		RemainingUsages: l.usageQuota,
		CreatedAt:       l.now().Unix(),
	}

	err := l.store.Update(func(tx storage.Tx) error {
		if err := authorize(tx, opts.Creator, proof, opts.Digest); err != nil {
			return err
		}
		if err := requireNotPaused(tx); err != nil {
			return err
		}
		if tx.Get(bucketAssets, []byte(g.Asset)) == nil {
			return fmt.Errorf("%w: %q", ErrUnsupportedAsset, g.Asset)
		}
		if tx.Get(bucketGroupIDs, g.ID[:]) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateGroupID, g.ID)
		}

		if err := saveGroup(tx, g); err != nil {
			return err
		}
		if err := tx.Put(bucketGroupIDs, g.ID[:], present); err != nil {
			return fmt.Errorf("ledger: reserve group id: %w", err)
		}
		ids, err := loadIndex(tx)
		if err != nil {
			return err
		}
		if err := saveIndex(tx, append(ids, g.ID)); err != nil {
			return err
		}
		return appendRecord(tx, &revshare.PaymentRecord{
			Kind:      revshare.KindCreation,
			GroupID:   g.ID,
			Sender:    g.Creator,
			Asset:     g.Asset,
			Timestamp: g.CreatedAt,
		})
	})
	if err != nil {
		return nil, l.reject(opCreate, err)
	}

	l.metrics.groupCreated()
	l.log.Info("group created", "group", g.ID, "creator", g.Creator, "members", len(g.Members), "asset", g.Asset)
	return g, nil
}

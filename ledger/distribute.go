package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

const opDistribute = "distribute"

// DistributeOpts holds options for the Distribute operation.
type DistributeOpts struct {
	GroupID revshare.GroupID
	Asset   string
	Amount  int64
	Sender  auth.Address
}

// Digest returns the message the sender signs to authorize Distribute with
// the sender's current nonce.
func (o *DistributeOpts) Digest(nonce uint64) []byte {
	return auth.Digest(opDistribute,
		o.GroupID[:],
		[]byte(o.Asset),
		binary.BigEndian.AppendUint64(nil, uint64(o.Amount)),
		o.Sender[:],
		nonceArg(nonce),
	)
}

// Distribute takes Amount of Asset from the sender and pays it out to the
// group's members in proportion to their percentages. The returned shares
// sum to exactly Amount.
func (l *Ledger) Distribute(opts *DistributeOpts, proof *auth.Proof) ([]revshare.Distribution, error) {
	if opts == nil {
		return nil, l.reject(opDistribute, ErrNilParam)
	}
	var shares []revshare.Distribution
	err := l.store.Update(func(tx storage.Tx) error {
		if err := authorize(tx, opts.Sender, proof, opts.Digest); err != nil {
			return err
		}
		if err := requireNotPaused(tx); err != nil {
			return err
		}
		g, err := loadGroup(tx, opts.GroupID)
		if err != nil {
			return err
		}
		if !g.Active {
			return fmt.Errorf("%w: %s", ErrGroupInactive, g.ID)
		}
		if opts.Asset != g.Asset {
			return fmt.Errorf("%w: group takes %q, got %q", ErrAssetMismatch, g.Asset, opts.Asset)
		}
		if opts.Amount <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAmount, opts.Amount)
		}

		if err := l.assets.Transfer(tx, g.Asset, opts.Sender, l.custody, opts.Amount); err != nil {
			return err
		}

		shares, err = revshare.SplitPayment(opts.Amount, g.Members)
		if err != nil {
			return err
		}
		if err := revshare.ValidateShareConservation(shares, opts.Amount); err != nil {
			return err
		}
		if err := revshare.ValidateDistribution(shares, g.Members, opts.Amount); err != nil {
			return err
		}
		for _, s := range shares {
			if err := creditEarnings(tx, g.ID, s.Address, s.Amount); err != nil {
				return err
			}
			if err := l.assets.Transfer(tx, g.Asset, l.custody, s.Address, s.Amount); err != nil {
				return err
			}
		}

		if err := appendRecord(tx, &revshare.PaymentRecord{
			Kind:      revshare.KindDistribution,
			GroupID:   g.ID,
			Sender:    opts.Sender,
			Asset:     g.Asset,
			Amount:    opts.Amount,
			Timestamp: l.now().Unix(),
		}); err != nil {
			return err
		}

		campaign, err := loadFundraising(tx, g.ID)
		if err != nil {
			return err
		}
		if !campaign.IsActive {
			return nil
		}
		campaign, err = campaign.Contribute(opts.Amount)
		if err != nil {
			return err
		}
		return saveFundraising(tx, g.ID, campaign)
	})
	if err != nil {
		return nil, l.reject(opDistribute, err)
	}

	l.metrics.distributed(opts.Asset, opts.Amount)
	l.log.Info("distributed", "group", opts.GroupID, "sender", opts.Sender, "asset", opts.Asset, "amount", opts.Amount, "members", len(shares))
	return shares, nil
}

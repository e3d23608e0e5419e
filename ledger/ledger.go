// Package ledger implements the group payment-splitting ledger: the group
// registry, usage quotas, the distribution engine, earnings and payment
// history, pagination, and the admin and fundraising records around them.
//
// Every exported call runs in exactly one storage transaction, so a call
// either commits all of its writes or none of them.
package ledger

import (
	"log/slog"
	"time"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"

	"github.com/bitfsorg/libsplit-go/asset"
	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/storage"
)

const (
	// DefaultUsageQuota is the number of uses a new group starts with.
	DefaultUsageQuota = 10

	// DefaultMaxPageSize caps GetGroupsPaginated's limit.
	DefaultMaxPageSize = 20
)

// DefaultCustody is the account that receives payments before they are
// paid out to members.
var DefaultCustody = custodyAddress()

func custodyAddress() auth.Address {
	var a auth.Address
	copy(a[:], bsvhash.Hash160([]byte("libsplit/custody")))
	return a
}

// Options configures a Ledger. Zero fields take their defaults.
type Options struct {
	UsageQuota  uint32
	MaxPageSize uint32
	Custody     auth.Address
	Logger      *slog.Logger
	Metrics     *Metrics
	Now         func() time.Time
}

// Ledger is the entry point for every group operation.
type Ledger struct {
	store       storage.Store
	assets      asset.Ledger
	usageQuota  uint32
	maxPageSize uint32
	custody     auth.Address
	log         *slog.Logger
	metrics     *Metrics
	now         func() time.Time
}

// New creates a Ledger over store, moving funds with assets.
func New(store storage.Store, assets asset.Ledger, opts *Options) (*Ledger, error) {
	if store == nil {
		return nil, ErrNilParam
	}
	if assets == nil {
		assets = asset.KVLedger{}
	}
	if opts == nil {
		opts = &Options{}
	}

	l := &Ledger{
		store:       store,
		assets:      assets,
		usageQuota:  opts.UsageQuota,
		maxPageSize: opts.MaxPageSize,
		custody:     opts.Custody,
		log:         opts.Logger,
		metrics:     opts.Metrics,
		now:         opts.Now,
	}
	if l.usageQuota == 0 {
		l.usageQuota = DefaultUsageQuota
	}
	if l.maxPageSize == 0 {
		l.maxPageSize = DefaultMaxPageSize
	}
	if l.custody.IsZero() {
		l.custody = DefaultCustody
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l, nil
}

// Custody returns the account payments pass through.
func (l *Ledger) Custody() auth.Address { return l.custody }

// UsageQuota returns the quota assigned to new groups.
func (l *Ledger) UsageQuota() uint32 { return l.usageQuota }

// reject records a failed mutation and returns err unchanged.
func (l *Ledger) reject(op string, err error) error {
	l.metrics.rejected(op)
	l.log.Debug("ledger call rejected", "op", op, "error", err)
	return err
}

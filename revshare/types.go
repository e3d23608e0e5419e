package revshare

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/bitfsorg/libsplit-go/auth"
)

const (
	// GroupIDSize is the length of a group identifier.
	GroupIDSize = 32

	// PercentTotal is the required sum of member percentages.
	PercentTotal = 100

	// MaxMembers bounds the roster size of a single group.
	MaxMembers = 255

	// MaxNameLen bounds the group name in bytes.
	MaxNameLen = 64
)

// GroupID identifies a group. Ids are chosen by the creator and never reused.
type GroupID [GroupIDSize]byte

// String returns the hex encoding of the id.
func (id GroupID) String() string { return hex.EncodeToString(id[:]) }

// ParseGroupID decodes a 64-character hex id.
func ParseGroupID(s string) (GroupID, error) {
	var id GroupID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("%w: %w", ErrInvalidGroupID, err)
	}
	if len(b) != GroupIDSize {
		return id, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidGroupID, GroupIDSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// GroupMember is one participant and its share of every distribution.
type GroupMember struct {
	Address    auth.Address
	Percentage uint32 // 0..100
}

// Group is a payment-splitting roster. Members and their percentages are
// fixed at creation.
type Group struct {
	ID              GroupID
	Creator         auth.Address
	Name            string
	Members         []GroupMember
	FeePerUse       int64
	Asset           string
	Active          bool
	RemainingUsages uint32
	CreatedAt       int64 // unix seconds
}

// RecordKind tells a creation marker apart from a real payment.
type RecordKind uint8

const (
	KindCreation     RecordKind = 1
	KindDistribution RecordKind = 2
)

func (k RecordKind) String() string {
	switch k {
	case KindCreation:
		return "creation"
	case KindDistribution:
		return "distribution"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// PaymentRecord is one entry of a group's or a sender's payment history.
type PaymentRecord struct {
	ID        uuid.UUID
	Kind      RecordKind
	GroupID   GroupID
	Sender    auth.Address
	Asset     string
	Amount    int64
	Timestamp int64 // unix seconds
}

// FundraisingConfig tracks a group's fundraising campaign. The zero value
// means no campaign.
type FundraisingConfig struct {
	TargetAmount int64
	TotalRaised  int64
	IsActive     bool
}

// Page is a bounded window over the live group index.
type Page struct {
	Groups []*Group
	Total  uint32
	Offset uint32
	Limit  uint32 // effective limit after clamping
}

// Distribution represents a single member's share of one payment.
type Distribution struct {
	Address auth.Address
	Amount  int64
}

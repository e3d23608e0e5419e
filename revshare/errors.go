package revshare

import "errors"

var (
	// ErrInvalidGroupData indicates a stored group record is malformed.
	ErrInvalidGroupData = errors.New("revshare: invalid group data")

	// ErrInvalidIndexData indicates the stored group index is malformed.
	ErrInvalidIndexData = errors.New("revshare: invalid group index data")

	// ErrInvalidRecordData indicates a stored payment record is malformed.
	ErrInvalidRecordData = errors.New("revshare: invalid payment record data")

	// ErrInvalidFundraisingData indicates a stored fundraising record is malformed.
	ErrInvalidFundraisingData = errors.New("revshare: invalid fundraising data")

	// ErrInvalidGroupID indicates a group id string is not 64 hex characters.
	ErrInvalidGroupID = errors.New("revshare: invalid group id")

	// ErrShareConservationViolation indicates shares do not add up to the payment.
	ErrShareConservationViolation = errors.New("revshare: share conservation violated")

	// ErrInsufficientPayment indicates the payment is too small to distribute.
	ErrInsufficientPayment = errors.New("revshare: insufficient payment for distribution")

	// ErrNoMembers indicates the group has no members.
	ErrNoMembers = errors.New("revshare: no members")

	// ErrTooManyMembers indicates the roster exceeds MaxMembers.
	ErrTooManyMembers = errors.New("revshare: too many members")

	// ErrInvalidPercentageSum indicates member percentages do not sum to 100.
	ErrInvalidPercentageSum = errors.New("revshare: member percentages must sum to 100")

	// ErrDuplicateMember indicates an address appears twice in the roster.
	ErrDuplicateMember = errors.New("revshare: duplicate member")

	// ErrZeroAddress indicates a member with the all-zero address.
	ErrZeroAddress = errors.New("revshare: zero member address")

	// ErrAmountOverflow indicates an accumulated amount would overflow int64.
	ErrAmountOverflow = errors.New("revshare: amount overflow")
)

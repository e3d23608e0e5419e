package ledger

import (
	"errors"

	"github.com/bitfsorg/libsplit-go/asset"
	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
)

var (
	// ErrNotFound indicates the group does not exist (or has been deleted).
	ErrNotFound = errors.New("ledger: not found")

	// ErrDuplicateGroupID indicates the id is, or once was, in use.
	ErrDuplicateGroupID = errors.New("ledger: duplicate group id")

	// ErrInvalidAmount indicates a non-positive amount.
	ErrInvalidAmount = errors.New("ledger: invalid amount")

	// ErrInvalidFee indicates a negative fee per use.
	ErrInvalidFee = errors.New("ledger: invalid fee per use")

	// ErrInvalidName indicates an empty or oversized group name.
	ErrInvalidName = errors.New("ledger: invalid group name")

	// ErrGroupNotDeactivated indicates deletion of a group that is still active.
	ErrGroupNotDeactivated = errors.New("ledger: group not deactivated")

	// ErrGroupInactive indicates the group has been deactivated.
	ErrGroupInactive = errors.New("ledger: group is inactive")

	// ErrContractPaused indicates the admin has paused all mutations.
	ErrContractPaused = errors.New("ledger: contract paused")

	// ErrAssetMismatch indicates a payment in an asset other than the group's.
	ErrAssetMismatch = errors.New("ledger: asset does not match group")

	// ErrUnsupportedAsset indicates the asset is not on the allow-list.
	ErrUnsupportedAsset = errors.New("ledger: unsupported asset")

	// ErrAlreadyInitialized indicates the admin has already been set.
	ErrAlreadyInitialized = errors.New("ledger: admin already initialized")

	// ErrAdminNotSet indicates an admin-only call before InitializeAdmin.
	ErrAdminNotSet = errors.New("ledger: admin not initialized")

	// ErrFundraisingActive indicates the group already runs a campaign.
	ErrFundraisingActive = errors.New("ledger: fundraising already active")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("ledger: required parameter is nil")

	// ErrCorruptState indicates a stored value could not be decoded.
	ErrCorruptState = errors.New("ledger: corrupt stored state")
)

// Errors surfaced unchanged from collaborating packages.
var (
	ErrUnauthorized         = auth.ErrUnauthorized
	ErrInsufficientBalance  = asset.ErrInsufficientBalance
	ErrInvalidPercentageSum = revshare.ErrInvalidPercentageSum
	ErrDuplicateMember      = revshare.ErrDuplicateMember
	ErrNoMembers            = revshare.ErrNoMembers
)

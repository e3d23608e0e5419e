package asset

import "errors"

var (
	// ErrInsufficientBalance indicates the payer holds less than the amount.
	ErrInsufficientBalance = errors.New("asset: insufficient balance")

	// ErrInvalidAsset indicates an empty or oversized asset id.
	ErrInvalidAsset = errors.New("asset: invalid asset id")

	// ErrNegativeAmount indicates a negative mint or transfer amount.
	ErrNegativeAmount = errors.New("asset: negative amount")

	// ErrBalanceOverflow indicates a credit would overflow the balance.
	ErrBalanceOverflow = errors.New("asset: balance overflow")

	// ErrCorruptBalance indicates a stored balance is not 8 bytes.
	ErrCorruptBalance = errors.New("asset: corrupt balance record")
)

package storage

import "errors"

var (
	// ErrReadOnly indicates a write was attempted inside a View transaction.
	ErrReadOnly = errors.New("storage: transaction is read-only")

	// ErrEmptyKey indicates a zero-length bucket name or key.
	ErrEmptyKey = errors.New("storage: empty bucket or key")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("storage: store is closed")

	// ErrNilValue indicates a nil value was passed to Put.
	ErrNilValue = errors.New("storage: nil value")
)

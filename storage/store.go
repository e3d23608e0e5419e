// Package storage provides the transactional key-value store the ledger
// persists into. Every ledger call runs inside exactly one Update or View;
// a non-nil error from the callback discards every write made in it.
package storage

// Tx is a read/write view of the store scoped to one transaction.
// Values returned by Get are copies and stay valid after the transaction ends.
type Tx interface {
	// Get returns the value for key in bucket, or nil if absent.
	Get(bucket, key []byte) []byte

	// Put stores value under key in bucket, creating the bucket if needed.
	Put(bucket, key, value []byte) error

	// Delete removes key from bucket. Deleting an absent key is a no-op.
	Delete(bucket, key []byte) error

	// Scan calls fn for every key in bucket starting with prefix, in
	// ascending key order. A non-nil error from fn stops the scan.
	// fn must not write to bucket.
	Scan(bucket, prefix []byte, fn func(key, value []byte) error) error

	// Writable reports whether Put and Delete are permitted.
	Writable() bool
}

// Store runs transactions with all-or-nothing commit.
type Store interface {
	// Update runs fn in a read-write transaction. The transaction commits
	// only if fn returns nil.
	Update(fn func(tx Tx) error) error

	// View runs fn in a read-only transaction.
	View(fn func(tx Tx) error) error

	// Close releases the store's resources.
	Close() error
}

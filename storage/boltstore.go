package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// openTimeout bounds how long OpenBoltStore waits for the file lock held by
// another process.
const openTimeout = 2 * time.Second

// BoltStore is a Store backed by a single bbolt database file.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt db: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Path returns the database file path.
func (s *BoltStore) Path() string { return s.db.Path() }

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Update runs fn in a bbolt read-write transaction.
func (s *BoltStore) Update(fn func(tx Tx) error) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

// View runs fn in a bbolt read-only transaction.
func (s *BoltStore) View(fn func(tx Tx) error) error {
	return s.db.View(func(btx *bbolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

// boltTx adapts *bbolt.Tx to Tx. Buckets are created lazily on first write.
type boltTx struct {
	tx *bbolt.Tx
}

func (t *boltTx) Writable() bool { return t.tx.Writable() }

func (t *boltTx) Get(bucket, key []byte) []byte {
	b := t.tx.Bucket(bucket)
	if b == nil {
		return nil
	}
	v := b.Get(key)
	if v == nil {
		return nil
	}
	// bbolt values are only valid for the life of the transaction.
	return bytes.Clone(v)
}

func (t *boltTx) Put(bucket, key, value []byte) error {
	if !t.tx.Writable() {
		return ErrReadOnly
	}
	if len(bucket) == 0 || len(key) == 0 {
		return ErrEmptyKey
	}
	if value == nil {
		return ErrNilValue
	}
	b, err := t.tx.CreateBucketIfNotExists(bucket)
	if err != nil {
		return fmt.Errorf("storage: create bucket %q: %w", bucket, err)
	}
	if err := b.Put(key, value); err != nil {
		return fmt.Errorf("storage: put %q: %w", bucket, err)
	}
	return nil
}

func (t *boltTx) Delete(bucket, key []byte) error {
	if !t.tx.Writable() {
		return ErrReadOnly
	}
	if len(bucket) == 0 || len(key) == 0 {
		return ErrEmptyKey
	}
	b := t.tx.Bucket(bucket)
	if b == nil {
		return nil
	}
	if err := b.Delete(key); err != nil {
		return fmt.Errorf("storage: delete %q: %w", bucket, err)
	}
	return nil
}

func (t *boltTx) Scan(bucket, prefix []byte, fn func(key, value []byte) error) error {
	b := t.tx.Bucket(bucket)
	if b == nil {
		return nil
	}
	c := b.Cursor()
	k, v := c.First()
	if len(prefix) > 0 {
		k, v = c.Seek(prefix)
	}
	for ; k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if err := fn(bytes.Clone(k), bytes.Clone(v)); err != nil {
			return err
		}
	}
	return nil
}

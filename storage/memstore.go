package storage

import (
	"bytes"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory Store. Writes made inside Update are buffered and
// applied only when the callback returns nil.
type MemStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
	closed  bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{buckets: make(map[string]map[string][]byte)}
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// Update runs fn in a read-write transaction.
func (s *MemStore) Update(fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	tx := &memTx{base: s.buckets, pending: make(map[string]map[string]pendingValue), writable: true}
	if err := fn(tx); err != nil {
		return err
	}

	for bucket, writes := range tx.pending {
		b, ok := s.buckets[bucket]
		if !ok {
			b = make(map[string][]byte)
			s.buckets[bucket] = b
		}
		for k, pv := range writes {
			if pv.deleted {
				delete(b, k)
				continue
			}
			b[k] = pv.value
		}
	}
	return nil
}

// View runs fn in a read-only transaction.
func (s *MemStore) View(fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return fn(&memTx{base: s.buckets})
}

// Close marks the store closed. Subsequent transactions fail with ErrClosed.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type pendingValue struct {
	value   []byte
	deleted bool
}

// memTx overlays buffered writes on the committed buckets.
type memTx struct {
	base     map[string]map[string][]byte
	pending  map[string]map[string]pendingValue
	writable bool
}

func (tx *memTx) Writable() bool { return tx.writable }

func (tx *memTx) lookup(bucket, key string) ([]byte, bool) {
	if writes, ok := tx.pending[bucket]; ok {
		if pv, ok := writes[key]; ok {
			if pv.deleted {
				return nil, false
			}
			return pv.value, true
		}
	}
	v, ok := tx.base[bucket][key]
	return v, ok
}

func (tx *memTx) Get(bucket, key []byte) []byte {
	v, ok := tx.lookup(string(bucket), string(key))
	if !ok {
		return nil
	}
	return bytes.Clone(v)
}

func (tx *memTx) stage(bucket, key []byte, pv pendingValue) error {
	if !tx.writable {
		return ErrReadOnly
	}
	if len(bucket) == 0 || len(key) == 0 {
		return ErrEmptyKey
	}
	writes, ok := tx.pending[string(bucket)]
	if !ok {
		writes = make(map[string]pendingValue)
		tx.pending[string(bucket)] = writes
	}
	writes[string(key)] = pv
	return nil
}

func (tx *memTx) Put(bucket, key, value []byte) error {
	if value == nil {
		return ErrNilValue
	}
	return tx.stage(bucket, key, pendingValue{value: bytes.Clone(value)})
}

func (tx *memTx) Delete(bucket, key []byte) error {
	return tx.stage(bucket, key, pendingValue{deleted: true})
}

func (tx *memTx) Scan(bucket, prefix []byte, fn func(key, value []byte) error) error {
	name := string(bucket)
	p := string(prefix)

	seen := make(map[string]struct{})
	for k := range tx.base[name] {
		if strings.HasPrefix(k, p) {
			seen[k] = struct{}{}
		}
	}
	for k := range tx.pending[name] {
		if strings.HasPrefix(k, p) {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, ok := tx.lookup(name, k)
		if !ok {
			continue
		}
		if err := fn([]byte(k), bytes.Clone(v)); err != nil {
			return err
		}
	}
	return nil
}

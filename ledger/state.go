package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

// Group records and their history live in separate buckets, so deleting a
// group never touches earnings, history or counters.
var (
	bucketGroups       = []byte("groups")
	bucketGroupIDs     = []byte("group_ids")
	bucketMeta         = []byte("meta")
	bucketAssets       = []byte("assets")
	bucketEarnings     = []byte("earnings")
	bucketGroupHistory = []byte("group_history")
	bucketUserHistory  = []byte("user_history")
	bucketCounters     = []byte("counters")
	bucketFundraising  = []byte("fundraising")

	keyIndex  = []byte("index")
	keyAdmin  = []byte("admin")
	keyPaused = []byte("paused")

	present = []byte{0x01}
)

func earningsKey(id revshare.GroupID, member auth.Address) []byte {
	k := make([]byte, 0, revshare.GroupIDSize+auth.AddressSize)
	k = append(k, id[:]...)
	return append(k, member[:]...)
}

// seqKey appends a big-endian sequence number so prefix scans return
// entries in append order.
func seqKey(prefix []byte, seq uint64) []byte {
	k := make([]byte, 0, len(prefix)+8)
	k = append(k, prefix...)
	return binary.BigEndian.AppendUint64(k, seq)
}

func groupCounterKey(id revshare.GroupID) []byte { return append([]byte{'g'}, id[:]...) }

func userCounterKey(addr auth.Address) []byte { return append([]byte{'u'}, addr[:]...) }

func nonceKey(addr auth.Address) []byte { return append([]byte{'n'}, addr[:]...) }

// --- groups ---

func loadGroup(tx storage.Tx, id revshare.GroupID) (*revshare.Group, error) {
	data := tx.Get(bucketGroups, id[:])
	if data == nil {
		return nil, fmt.Errorf("%w: group %s", ErrNotFound, id)
	}
	g, err := revshare.DeserializeGroup(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return g, nil
}

func saveGroup(tx storage.Tx, g *revshare.Group) error {
	data, err := revshare.SerializeGroup(g)
	if err != nil {
		return err
	}
	if err := tx.Put(bucketGroups, g.ID[:], data); err != nil {
		return fmt.Errorf("ledger: save group: %w", err)
	}
	return nil
}

// --- index ---

func loadIndex(tx storage.Tx) ([]revshare.GroupID, error) {
	data := tx.Get(bucketMeta, keyIndex)
	if data == nil {
		return nil, nil
	}
	ids, err := revshare.DeserializeIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return ids, nil
}

func saveIndex(tx storage.Tx, ids []revshare.GroupID) error {
	data, err := revshare.SerializeIndex(ids)
	if err != nil {
		return err
	}
	if err := tx.Put(bucketMeta, keyIndex, data); err != nil {
		return fmt.Errorf("ledger: save index: %w", err)
	}
	return nil
}

// removeFromIndex drops id and keeps the relative order of the rest.
func removeFromIndex(ids []revshare.GroupID, id revshare.GroupID) []revshare.GroupID {
	out := ids[:0]
	for _, cur := range ids {
		if cur != id {
			out = append(out, cur)
		}
	}
	return out
}

func loadGroups(tx storage.Tx, ids []revshare.GroupID) ([]*revshare.Group, error) {
	groups := make([]*revshare.Group, 0, len(ids))
	for _, id := range ids {
		g, err := loadGroup(tx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// --- admin and pause flag ---

func loadAdmin(tx storage.Tx) (auth.Address, bool) {
	var admin auth.Address
	data := tx.Get(bucketMeta, keyAdmin)
	if len(data) != auth.AddressSize {
		return admin, false
	}
	copy(admin[:], data)
	return admin, true
}

func isPaused(tx storage.Tx) bool {
	data := tx.Get(bucketMeta, keyPaused)
	return len(data) == 1 && data[0] == 1
}

func requireNotPaused(tx storage.Tx) error {
	if isPaused(tx) {
		return ErrContractPaused
	}
	return nil
}

// requireCreatorOrAdmin checks the caller's role on g. The caller's proof
// has already been verified.
func requireCreatorOrAdmin(tx storage.Tx, g *revshare.Group, caller auth.Address) error {
	if caller == g.Creator {
		return nil
	}
	if admin, ok := loadAdmin(tx); ok && caller == admin {
		return nil
	}
	return fmt.Errorf("%w: %s is neither creator nor admin of %s", ErrUnauthorized, caller, g.ID)
}

// --- authorization ---

func loadNonce(tx storage.Tx, addr auth.Address) uint64 {
	if data := tx.Get(bucketCounters, nonceKey(addr)); len(data) == 8 {
		return binary.BigEndian.Uint64(data)
	}
	return 0
}

// authorize checks that proof signs digest(n), where n is caller's current
// nonce, and consumes n. It must run in the same transaction as the call it
// authorizes so that a failed call leaves the nonce unspent.
func authorize(tx storage.Tx, caller auth.Address, proof *auth.Proof, digest func(nonce uint64) []byte) error {
	n := loadNonce(tx, caller)
	if err := auth.Verify(proof, caller, digest(n)); err != nil {
		return err
	}
	if err := tx.Put(bucketCounters, nonceKey(caller), binary.BigEndian.AppendUint64(nil, n+1)); err != nil {
		return fmt.Errorf("ledger: bump nonce: %w", err)
	}
	return nil
}

// --- counters and history ---

func nextSeq(tx storage.Tx, key []byte) (uint64, error) {
	var seq uint64
	if data := tx.Get(bucketCounters, key); len(data) == 8 {
		seq = binary.BigEndian.Uint64(data)
	}
	if err := tx.Put(bucketCounters, key, binary.BigEndian.AppendUint64(nil, seq+1)); err != nil {
		return 0, fmt.Errorf("ledger: bump counter: %w", err)
	}
	return seq, nil
}

// appendRecord writes rec to the group's and the sender's history. The
// record id is derived from its position in the group history.
func appendRecord(tx storage.Tx, rec *revshare.PaymentRecord) error {
	gseq, err := nextSeq(tx, groupCounterKey(rec.GroupID))
	if err != nil {
		return err
	}
	useq, err := nextSeq(tx, userCounterKey(rec.Sender))
	if err != nil {
		return err
	}
	rec.ID = revshare.RecordID(rec.GroupID, gseq)

	data, err := revshare.SerializeRecord(rec)
	if err != nil {
		return err
	}
	if err := tx.Put(bucketGroupHistory, seqKey(rec.GroupID[:], gseq), data); err != nil {
		return fmt.Errorf("ledger: append group history: %w", err)
	}
	if err := tx.Put(bucketUserHistory, seqKey(rec.Sender[:], useq), data); err != nil {
		return fmt.Errorf("ledger: append user history: %w", err)
	}
	return nil
}

func scanRecords(tx storage.Tx, bucket, prefix []byte) ([]*revshare.PaymentRecord, error) {
	var records []*revshare.PaymentRecord
	err := tx.Scan(bucket, prefix, func(k, v []byte) error {
		// Guard against a longer key that merely shares the prefix.
		if len(k) != len(prefix)+8 {
			return nil
		}
		rec, err := revshare.DeserializeRecord(v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptState, err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// --- earnings ---

func readEarnings(tx storage.Tx, id revshare.GroupID, member auth.Address) (int64, error) {
	data := tx.Get(bucketEarnings, earningsKey(id, member))
	if data == nil {
		return 0, nil
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: earnings record is %d bytes", ErrCorruptState, len(data))
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

func creditEarnings(tx storage.Tx, id revshare.GroupID, member auth.Address, amount int64) error {
	cur, err := readEarnings(tx, id, member)
	if err != nil {
		return err
	}
	next, err := revshare.AddAmount(cur, amount)
	if err != nil {
		return err
	}
	if err := tx.Put(bucketEarnings, earningsKey(id, member), binary.BigEndian.AppendUint64(nil, uint64(next))); err != nil {
		return fmt.Errorf("ledger: credit earnings: %w", err)
	}
	return nil
}

// --- fundraising ---

func loadFundraising(tx storage.Tx, id revshare.GroupID) (revshare.FundraisingConfig, error) {
	data := tx.Get(bucketFundraising, id[:])
	if data == nil {
		return revshare.FundraisingConfig{}, nil
	}
	cfg, err := revshare.DeserializeFundraising(data)
	if err != nil {
		return revshare.FundraisingConfig{}, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return *cfg, nil
}

func saveFundraising(tx storage.Tx, id revshare.GroupID, cfg revshare.FundraisingConfig) error {
	if err := tx.Put(bucketFundraising, id[:], revshare.SerializeFundraising(&cfg)); err != nil {
		return fmt.Errorf("ledger: save fundraising: %w", err)
	}
	return nil
}

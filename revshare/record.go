package revshare

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// id(16) + kind(1) + group_id(32) + sender(20) + amount(8) + timestamp(8) + asset_len(1)
const recordFixedSize = 86

// recordNamespace scopes the name-based UUIDs of payment records.
var recordNamespace = uuid.MustParse("5b1d0a52-8a4e-4c55-9f0e-2d6c3e7a1b90")

// RecordID derives the deterministic id of the seq-th entry in a group's
// history. The same id is stored in the sender's history.
func RecordID(groupID GroupID, seq uint64) uuid.UUID {
	name := make([]byte, 0, GroupIDSize+8)
	name = append(name, groupID[:]...)
	name = binary.BigEndian.AppendUint64(name, seq)
	return uuid.NewSHA1(recordNamespace, name)
}

// SerializeRecord encodes a PaymentRecord to binary format.
func SerializeRecord(rec *PaymentRecord) ([]byte, error) {
	if len(rec.Asset) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: asset is %d bytes", ErrInvalidRecordData, len(rec.Asset))
	}
	buf := make([]byte, 0, recordFixedSize+len(rec.Asset))
	buf = append(buf, rec.ID[:]...)
	buf = append(buf, byte(rec.Kind))
	buf = append(buf, rec.GroupID[:]...)
	buf = append(buf, rec.Sender[:]...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(rec.Amount))
	buf = binary.BigEndian.AppendUint64(buf, uint64(rec.Timestamp))
	buf = append(buf, byte(len(rec.Asset)))
	buf = append(buf, rec.Asset...)
	return buf, nil
}

// DeserializeRecord decodes binary data into a PaymentRecord.
func DeserializeRecord(data []byte) (*PaymentRecord, error) {
	if len(data) < recordFixedSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidRecordData, len(data))
	}
	r := &reader{data: data, err: ErrInvalidRecordData}

	rec := &PaymentRecord{}
	r.read(rec.ID[:])
	rec.Kind = RecordKind(r.u8())
	r.read(rec.GroupID[:])
	r.read(rec.Sender[:])
	rec.Amount = int64(r.u64())
	rec.Timestamp = int64(r.u64())
	rec.Asset = string(r.take(int(r.u8())))
	if r.failed() {
		return nil, r.failure()
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidRecordData, r.remaining())
	}
	if rec.Kind != KindCreation && rec.Kind != KindDistribution {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidRecordData, rec.Kind)
	}
	return rec, nil
}

package revshare

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// id(32) + creator(20) + name_len(2) + fee(8) + asset_len(1) + flags(1) +
	// remaining(4) + created_at(8) + num_members(4)
	groupFixedSize  = 80
	groupMemberSize = 24 // address(20) + percentage(4)

	groupFlagActive = 0x01
)

// SerializeGroup serializes a Group to binary format.
func SerializeGroup(g *Group) ([]byte, error) {
	if len(g.Name) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: name is %d bytes", ErrInvalidGroupData, len(g.Name))
	}
	if len(g.Asset) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: asset is %d bytes", ErrInvalidGroupData, len(g.Asset))
	}
	if len(g.Members) > MaxMembers {
		return nil, fmt.Errorf("%w: %d members", ErrTooManyMembers, len(g.Members))
	}

	size := groupFixedSize + len(g.Name) + len(g.Asset) + groupMemberSize*len(g.Members)
	buf := make([]byte, 0, size)

	buf = append(buf, g.ID[:]...)
	buf = append(buf, g.Creator[:]...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(g.Name)))
	buf = append(buf, g.Name...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(g.FeePerUse))
	buf = append(buf, byte(len(g.Asset)))
	buf = append(buf, g.Asset...)

	var flags byte
	if g.Active {
		flags |= groupFlagActive
	}
	buf = append(buf, flags)
	buf = binary.BigEndian.AppendUint32(buf, g.RemainingUsages)
	buf = binary.BigEndian.AppendUint64(buf, uint64(g.CreatedAt))

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(g.Members)))
	for _, m := range g.Members {
		buf = append(buf, m.Address[:]...)
		buf = binary.BigEndian.AppendUint32(buf, m.Percentage)
	}
	return buf, nil
}

// DeserializeGroup deserializes binary data into a Group.
func DeserializeGroup(data []byte) (*Group, error) {
	if len(data) < groupFixedSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidGroupData, len(data))
	}
	r := &reader{data: data, err: ErrInvalidGroupData}

	g := &Group{}
	r.read(g.ID[:])
	r.read(g.Creator[:])
	g.Name = string(r.take(int(r.u16())))
	g.FeePerUse = int64(r.u64())
	g.Asset = string(r.take(int(r.u8())))
	g.Active = r.u8()&groupFlagActive != 0
	g.RemainingUsages = r.u32()
	g.CreatedAt = int64(r.u64())

	numMembers := int(r.u32())
	if r.failed() {
		return nil, r.failure()
	}
	if numMembers > MaxMembers || r.remaining() != groupMemberSize*numMembers {
		return nil, fmt.Errorf("%w: expected %d bytes for %d members, got %d",
			ErrInvalidGroupData, groupMemberSize*numMembers, numMembers, r.remaining())
	}

	g.Members = make([]GroupMember, numMembers)
	for i := range g.Members {
		r.read(g.Members[i].Address[:])
		g.Members[i].Percentage = r.u32()
	}
	if r.failed() {
		return nil, r.failure()
	}
	return g, nil
}

// SerializeIndex encodes the ordered list of live group ids.
func SerializeIndex(ids []GroupID) ([]byte, error) {
	if len(ids) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d ids", ErrInvalidIndexData, len(ids))
	}
	buf := make([]byte, 0, 4+GroupIDSize*len(ids))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(ids)))
	for _, id := range ids {
		buf = append(buf, id[:]...)
	}
	return buf, nil
}

// DeserializeIndex decodes the ordered list of live group ids.
func DeserializeIndex(data []byte) ([]GroupID, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidIndexData, len(data))
	}
	n := int(binary.BigEndian.Uint32(data[:4]))
	if len(data)-4 != GroupIDSize*n {
		return nil, fmt.Errorf("%w: expected %d bytes for %d ids, got %d",
			ErrInvalidIndexData, GroupIDSize*n, n, len(data)-4)
	}
	ids := make([]GroupID, n)
	for i := range ids {
		copy(ids[i][:], data[4+i*GroupIDSize:])
	}
	return ids, nil
}

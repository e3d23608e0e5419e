package revshare

import (
	"encoding/binary"
	"fmt"
)

// reader walks a big-endian record. The first out-of-bounds read latches
// a failure and every later read returns zero values.
type reader struct {
	data []byte
	off  int
	err  error // sentinel reported on failure
	bad  bool
}

func (r *reader) take(n int) []byte {
	if r.bad || n < 0 || r.off+n > len(r.data) {
		r.bad = true
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) read(dst []byte) { copy(dst, r.take(len(dst))) }

func (r *reader) u8() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (r *reader) remaining() int { return len(r.data) - r.off }

func (r *reader) failed() bool { return r.bad }

func (r *reader) failure() error {
	return fmt.Errorf("%w: truncated at offset %d of %d", r.err, r.off, len(r.data))
}

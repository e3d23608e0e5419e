package revshare

import (
	"encoding/binary"
	"fmt"
)

const (
	fundraisingSize = 17 // target(8) + raised(8) + flags(1)

	fundraisingFlagActive = 0x01
)

// SerializeFundraising encodes FundraisingConfig to binary format.
func SerializeFundraising(cfg *FundraisingConfig) []byte {
	buf := make([]byte, fundraisingSize)
	binary.BigEndian.PutUint64(buf[0:8], uint64(cfg.TargetAmount))
	binary.BigEndian.PutUint64(buf[8:16], uint64(cfg.TotalRaised))
	if cfg.IsActive {
		buf[16] = fundraisingFlagActive
	}
	return buf
}

// DeserializeFundraising decodes binary data into FundraisingConfig.
func DeserializeFundraising(data []byte) (*FundraisingConfig, error) {
	if len(data) != fundraisingSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidFundraisingData, fundraisingSize, len(data))
	}
	return &FundraisingConfig{
		TargetAmount: int64(binary.BigEndian.Uint64(data[0:8])),
		TotalRaised:  int64(binary.BigEndian.Uint64(data[8:16])),
		IsActive:     data[16]&fundraisingFlagActive != 0,
	}, nil
}

// Contribute adds amount to an active campaign and closes it once the
// target is reached. Inactive campaigns are returned unchanged.
func (cfg FundraisingConfig) Contribute(amount int64) (FundraisingConfig, error) {
	if !cfg.IsActive {
		return cfg, nil
	}
	raised, err := AddAmount(cfg.TotalRaised, amount)
	if err != nil {
		return cfg, err
	}
	cfg.TotalRaised = raised
	if cfg.TotalRaised >= cfg.TargetAmount {
		cfg.IsActive = false
	}
	return cfg, nil
}

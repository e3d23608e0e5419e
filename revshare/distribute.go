package revshare

import "math/bits"

// SplitPayment calculates per-member shares of amount in roster order.
// Every member but the last gets floor(amount * percentage / 100); the last
// member gets the remainder, so the shares always sum to exactly amount.
func SplitPayment(amount int64, members []GroupMember) ([]Distribution, error) {
	if amount <= 0 {
		return nil, ErrInsufficientPayment
	}
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	var sum uint64
	for _, m := range members {
		sum += uint64(m.Percentage)
	}
	if sum != PercentTotal {
		return nil, ErrInvalidPercentageSum
	}

	distributions := make([]Distribution, len(members))
	var distributed int64

	for i, m := range members {
		distributions[i].Address = m.Address
		if i == len(members)-1 {
			// Last member gets remainder
			distributions[i].Amount = amount - distributed
		} else {
			share := percentOf(amount, m.Percentage)
			distributions[i].Amount = share
			distributed += share
		}
	}

	return distributions, nil
}

// percentOf returns floor(amount * pct / 100) using a 128-bit product, so
// no amount representable in int64 can overflow. pct must be <= 100.
func percentOf(amount int64, pct uint32) int64 {
	hi, lo := bits.Mul64(uint64(amount), uint64(pct))
	q, _ := bits.Div64(hi, lo, PercentTotal)
	return int64(q)
}

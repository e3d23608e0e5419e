package revshare

import (
	"fmt"
	"math"

	"github.com/bitfsorg/libsplit-go/auth"
)

// ValidateMembers checks a roster before a group is created: at least one
// member, no more than MaxMembers, no zero or repeated addresses, and
// percentages summing to exactly PercentTotal.
func ValidateMembers(members []GroupMember) error {
	if len(members) == 0 {
		return ErrNoMembers
	}
	if len(members) > MaxMembers {
		return fmt.Errorf("%w: %d > %d", ErrTooManyMembers, len(members), MaxMembers)
	}

	seen := make(map[auth.Address]struct{}, len(members))
	var sum uint64
	for i, m := range members {
		if m.Address.IsZero() {
			return fmt.Errorf("%w: member %d", ErrZeroAddress, i)
		}
		if _, dup := seen[m.Address]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateMember, m.Address)
		}
		seen[m.Address] = struct{}{}
		sum += uint64(m.Percentage)
	}
	if sum != PercentTotal {
		return fmt.Errorf("%w: got %d", ErrInvalidPercentageSum, sum)
	}
	return nil
}

// ValidateShareConservation checks that the distributed shares add up to
// exactly the payment amount.
func ValidateShareConservation(distributions []Distribution, amount int64) error {
	var total int64
	for _, d := range distributions {
		if d.Amount < 0 || total > math.MaxInt64-d.Amount {
			return fmt.Errorf("%w: bad share %d", ErrShareConservationViolation, d.Amount)
		}
		total += d.Amount
	}
	if total != amount {
		return fmt.Errorf("%w: input=%d output=%d", ErrShareConservationViolation, amount, total)
	}
	return nil
}

// ValidateDistribution checks that distribution amounts match the roster's
// proportions for the given payment.
func ValidateDistribution(distributions []Distribution, members []GroupMember, amount int64) error {
	if len(distributions) != len(members) {
		return fmt.Errorf("distribution count %d != member count %d", len(distributions), len(members))
	}

	expected, err := SplitPayment(amount, members)
	if err != nil {
		return err
	}

	for i := range distributions {
		if distributions[i].Address != expected[i].Address {
			return fmt.Errorf("member %d: address mismatch", i)
		}
		if distributions[i].Amount != expected[i].Amount {
			return fmt.Errorf("member %d: amount %d != expected %d", i, distributions[i].Amount, expected[i].Amount)
		}
	}
	return nil
}

// AddAmount returns a+b, failing instead of wrapping around.
func AddAmount(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, fmt.Errorf("%w: %d + %d", ErrAmountOverflow, a, b)
	}
	return a + b, nil
}

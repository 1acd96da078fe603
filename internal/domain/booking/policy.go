package booking

import (
	"errors"
	"sort"
	"time"

	"resortly/internal/pkg/money"
)

var (
	ErrInvalidRefundPercent = errors.New("refund percentage must be between 0 and 100")
	ErrInvalidTierThreshold = errors.New("tier threshold cannot be negative")
	ErrEmptyPolicy          = errors.New("cancellation policy needs at least one tier")
)

// Tier is one step of a cancellation policy: cancel at least
// HoursBeforeCheckIn hours out and RefundPercent of the charged amount
// comes back.
type Tier struct {
	HoursBeforeCheckIn float64
	RefundPercent      int
}

// Policy is the refund step function over time-to-check-in. Input tiers
// may arrive in any order; construction normalizes them to descending
// thresholds, and duplicate thresholds collapse to the tier with the
// higher refund so the outcome never depends on input order.
type Policy struct {
	tiers []Tier
}

func NewPolicy(tiers []Tier) (Policy, error) {
	if len(tiers) == 0 {
		return Policy{}, ErrEmptyPolicy
	}

	byThreshold := make(map[float64]int, len(tiers))
	for _, t := range tiers {
		if t.HoursBeforeCheckIn < 0 {
			return Policy{}, ErrInvalidTierThreshold
		}
		if t.RefundPercent < 0 || t.RefundPercent > 100 {
			return Policy{}, ErrInvalidRefundPercent
		}
		if pct, ok := byThreshold[t.HoursBeforeCheckIn]; !ok || t.RefundPercent > pct {
			byThreshold[t.HoursBeforeCheckIn] = t.RefundPercent
		}
	}

	normalized := make([]Tier, 0, len(byThreshold))
	for hours, pct := range byThreshold {
		normalized = append(normalized, Tier{HoursBeforeCheckIn: hours, RefundPercent: pct})
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].HoursBeforeCheckIn > normalized[j].HoursBeforeCheckIn
	})

	return Policy{tiers: normalized}, nil
}

// Tiers returns the normalized tiers, descending by threshold.
func (p Policy) Tiers() []Tier {
	out := make([]Tier, len(p.tiers))
	copy(out, p.tiers)
	return out
}

// RefundPercentAt selects the first tier whose threshold is within
// hoursRemaining. Inside the tightest window, or after check-in
// (negative hours), nothing is refunded.
func (p Policy) RefundPercentAt(hoursRemaining float64) int {
	for _, t := range p.tiers {
		if t.HoursBeforeCheckIn <= hoursRemaining {
			return t.RefundPercent
		}
	}
	return 0
}

// RefundDecision is the outcome of a cancellation request.
type RefundDecision struct {
	Eligible      bool
	RefundPercent int
	RefundAmount  float64
}

// Decide computes the refund for cancelling a booking charged amount
// with check-in at checkIn, evaluated at one now snapshot.
func (p Policy) Decide(amount float64, checkIn, now time.Time) RefundDecision {
	hoursRemaining := checkIn.Sub(now).Hours()
	pct := p.RefundPercentAt(hoursRemaining)
	return RefundDecision{
		Eligible:      pct > 0,
		RefundPercent: pct,
		RefundAmount:  money.Round2(amount * float64(pct) / 100),
	}
}

package booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RefundBand grants Percent of the paid amount when cancellation happens at
// least MinLead before the appointment start.
type RefundBand struct {
	MinLead time.Duration
	Percent int64 // 0..100
}

// RefundPolicy is an ordered band schedule, longest lead first. It is a
// tenant-configurable business rule; the calculator only requires it to be
// total, deterministic, and bounded.
type RefundPolicy []RefundBand

// DefaultRefundPolicy: cancel 24h+ ahead refunds 90%, 2h+ ahead 80%,
// anything later nothing.
func DefaultRefundPolicy() RefundPolicy {
	return RefundPolicy{
		{MinLead: 24 * time.Hour, Percent: 90},
		{MinLead: 2 * time.Hour, Percent: 80},
	}
}

// Validate checks that every percent is within [0,100] and that the refund
// fraction never increases as the lead time shrinks.
func (p RefundPolicy) Validate() error {
	if !sort.SliceIsSorted(p, func(i, j int) bool { return p[i].MinLead > p[j].MinLead }) {
		return fmt.Errorf("refund bands must be ordered by decreasing lead time")
	}
	prev := int64(100)
	for _, band := range p {
		if band.Percent < 0 || band.Percent > 100 {
			return fmt.Errorf("refund percent %d out of range", band.Percent)
		}
		if band.Percent > prev {
			return fmt.Errorf("refund percent must not increase as lead time shrinks")
		}
		if band.MinLead < 0 {
			return fmt.Errorf("refund lead time must not be negative")
		}
		prev = band.Percent
	}
	return nil
}

// CalculateRefund computes the amount returned when a paid appointment
// starting at startAt is cancelled at cancelledAt. Total over all inputs and
// bounded to [0, paid].
func (p RefundPolicy) CalculateRefund(startAt, cancelledAt time.Time, paid decimal.Decimal) decimal.Decimal {
	if paid.Sign() <= 0 {
		return decimal.Zero
	}
	lead := startAt.Sub(cancelledAt)
	for _, band := range p {
		if lead >= band.MinLead {
			return paid.Mul(decimal.NewFromInt(band.Percent)).Div(decimal.NewFromInt(100)).Round(2)
		}
	}
	return decimal.Zero
}

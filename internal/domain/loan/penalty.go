package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"prestoras-backend/pkg/money"
)

// CalculatePenalty returns the accrued penalty for l as of today. Zero while
// the loan is COMPLETED/CANCELLED or not yet past its end date. Pure: the
// caller persists the result into PenaltyApplied, overwriting the previous
// value — repeated calls on the same day never double-accrue.
func CalculatePenalty(l *Loan, today time.Time) decimal.Decimal {
	if l.Status == StatusCompleted || l.Status == StatusCancelled {
		return money.Zero
	}
	end := dateOnly(l.EndDate)
	now := dateOnly(today)
	if !now.After(end) {
		return money.Zero
	}
	daysOverdue := int(now.Sub(end).Hours() / 24)

	switch l.PenaltyType {
	case PenaltyFixed:
		return money.Times(l.PenaltyAmount, daysOverdue)
	case PenaltyPercentage:
		// percentage applies per day to the current pending balance, not the
		// original principal
		daily := money.Percent(l.PendingAmount, l.PenaltyPercentage)
		return money.Times(daily, daysOverdue)
	default:
		return money.Zero
	}
}

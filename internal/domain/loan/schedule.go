package loan

import (
	"fmt"
	"time"

	"prestoras-backend/pkg/money"
)

// GenerateInstallments builds the full schedule for l: equal capital/interest
// splits at 2 decimal places, due dates walking forward from StartDate by the
// periodicity interval. The last installment is forced onto EndDate and
// absorbs all rounding remainder, so the installment totals always sum to the
// loan total to the cent.
func GenerateInstallments(l *Loan) ([]*Installment, error) {
	n := l.NumberOfInstallments
	if n < 1 {
		return nil, fmt.Errorf("%w: number of installments must be >= 1", ErrValidation)
	}
	if !l.StartDate.Before(l.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", ErrValidation)
	}

	capitalPer := money.Split(l.InitialAmount, n)
	totalInterest := money.Percent(l.InitialAmount, l.InterestRate)
	interestPer := money.Split(totalInterest, n)

	interval, err := dueDateInterval(l)
	if err != nil {
		return nil, err
	}

	out := make([]*Installment, 0, n)
	due := dateOnly(l.StartDate)
	for i := 1; i <= n; i++ {
		capital, interest := capitalPer, interestPer
		if i == n {
			// last installment: lands exactly on EndDate and carries whatever
			// cents the equal split left over
			due = dateOnly(l.EndDate)
			capital = l.InitialAmount.Sub(money.Times(capitalPer, n-1))
			interest = totalInterest.Sub(money.Times(interestPer, n-1))
		}
		out = append(out, &Installment{
			LoanID:            l.ID,
			InstallmentNumber: i,
			DueDate:           due,
			CapitalAmount:     capital,
			InterestAmount:    interest,
			TotalAmount:       capital.Add(interest),
			PaidAmount:        money.Zero,
			Status:            InstallmentPending,
		})
		due = due.AddDate(0, 0, interval)
	}
	return out, nil
}

func dueDateInterval(l *Loan) (int, error) {
	switch l.Periodicity {
	case PeriodicityDaily:
		return 1, nil
	case PeriodicityWeekly:
		return 7, nil
	case PeriodicityBiweekly:
		return 14, nil
	case PeriodicityMonthly:
		return 30, nil
	case PeriodicityQuarterly:
		return 90, nil
	case PeriodicityCustom:
		days := int(dateOnly(l.EndDate).Sub(dateOnly(l.StartDate)).Hours() / 24)
		return days / l.NumberOfInstallments, nil
	default:
		return 0, fmt.Errorf("%w: invalid periodicity %q", ErrValidation, l.Periodicity)
	}
}

// CheckScheduleSum verifies the schedule sum invariant. Callers treat a
// failure as a defect, not a recoverable condition.
func CheckScheduleSum(l *Loan, installments []*Installment) error {
	sum := money.Zero
	for _, ins := range installments {
		sum = sum.Add(ins.TotalAmount)
	}
	if !sum.Equal(l.TotalAmount) {
		return fmt.Errorf("%w: installments sum %s != loan total %s",
			ErrInvariant, sum, l.TotalAmount)
	}
	return nil
}

// PeriodDays is the day count of the loan term.
func PeriodDays(start, end time.Time) int {
	return int(dateOnly(end).Sub(dateOnly(start)).Hours() / 24)
}

package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	clientDomain "prestoras-backend/internal/domain/client"
	loanDomain "prestoras-backend/internal/domain/loan"
	domain "prestoras-backend/internal/domain/payment"
	"prestoras-backend/internal/domain/uow"
	"prestoras-backend/pkg/id"
	"prestoras-backend/pkg/money"
)

type Usecase struct {
	payments domain.Repository
	loans    loanDomain.Repository
	uow      uow.UnitOfWork

	now func() time.Time
}

func NewUsecase(payments domain.Repository, loans loanDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		payments: payments,
		loans:    loans,
		uow:      tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register records a COMPLETED payment and allocates it in one locked
// transaction: penalty first, then pending installments oldest-first, excess
// spilling into the next ones. Any failure rolls the whole payment back.
func (u *Usecase) Register(ctx context.Context, in RegisterPaymentInput) (*PaymentDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", loanDomain.ErrValidation)
	}
	if !domain.ValidMethod(domain.Method(in.PaymentMethod)) {
		return nil, fmt.Errorf("%w: invalid payment method %q", loanDomain.ErrValidation, in.PaymentMethod)
	}
	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = u.now()
	}

	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.CompanyID, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		today := u.now()

		// refresh accrued penalty so the bound check and allocation see the
		// current mora, not a stale figure
		l.PenaltyApplied = loanDomain.CalculatePenalty(l, today)

		maxAllowed := l.PendingAmount.Add(l.PenaltyApplied)
		if in.Amount.GreaterThan(maxAllowed) {
			return fmt.Errorf("%w: payment %s exceeds owed balance plus penalty %s",
				loanDomain.ErrValidation, in.Amount, maxAllowed)
		}

		ref := in.ReferenceNumber
		if ref == "" {
			ref = uuid.NewString()
		}
		p := &domain.Payment{
			PaymentID:       id.NewID32(),
			CompanyID:       in.CompanyID,
			LoanID:          l.ID,
			ClientID:        l.ClientID,
			Amount:          in.Amount,
			PaymentDate:     paymentDate.UTC(),
			PaymentMethod:   domain.Method(in.PaymentMethod),
			CollectorID:     in.CollectorID,
			Status:          domain.StatusCompleted,
			ReferenceNumber: ref,
			Observations:    in.Observations,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		// 1) penalty first
		appliedToPenalty := money.Min(in.Amount, l.PenaltyApplied)
		l.PenaltyApplied = l.PenaltyApplied.Sub(appliedToPenalty)
		remaining := in.Amount.Sub(appliedToPenalty)

		// 2) strict FIFO across pending/overdue/partial installments; the
		// loop running while remaining > 0 is what makes overpayment spill
		// into later installments
		var applied []AppliedInstallmentDTO
		if remaining.IsPositive() {
			installments, err := r.Installments.ListPayable(ctx, l.ID)
			if err != nil {
				return err
			}
			for i := range installments {
				if !remaining.IsPositive() {
					break
				}
				ins := &installments[i]
				need := ins.Outstanding()
				apply := money.Min(remaining, need)
				if !apply.IsPositive() {
					continue
				}
				if err := r.Payments.CreatePaymentInstallment(ctx, &domain.PaymentInstallment{
					PaymentID:     p.ID,
					InstallmentID: ins.ID,
					AmountApplied: apply,
				}); err != nil {
					return err
				}
				ins.PaidAmount = ins.PaidAmount.Add(apply)
				ins.RecomputeStatus(today)
				if err := r.Installments.Save(ctx, ins); err != nil {
					return err
				}
				remaining = remaining.Sub(apply)
				applied = append(applied, AppliedInstallmentDTO{
					InstallmentNumber: ins.InstallmentNumber,
					AmountApplied:     apply,
					InstallmentStatus: string(ins.Status),
				})
			}
		}

		// 3) aggregates: the full payment counts toward paid_amount, penalty
		// portion included
		l.PaidAmount = l.PaidAmount.Add(in.Amount)
		l.CalculateTotals()
		l.RefreshStatus(today)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		// 4) classification refresh
		cl, err := r.Clients.GetByClientID(ctx, l.CompanyID, l.ClientID)
		if err != nil {
			return err
		}
		loans, err := r.Loans.ListByClientID(ctx, l.CompanyID, l.ClientID)
		if err != nil {
			return err
		}
		if err := r.Clients.SaveClassification(ctx, cl, clientDomain.Classify(loans)); err != nil {
			return err
		}

		dto = &PaymentDTO{
			PaymentID:         p.PaymentID,
			LoanID:            l.LoanID,
			ClientID:          l.ClientID,
			Amount:            p.Amount,
			PaymentDate:       p.PaymentDate,
			PaymentMethod:     string(p.PaymentMethod),
			CollectorID:       p.CollectorID,
			Status:            string(p.Status),
			ReferenceNumber:   p.ReferenceNumber,
			AppliedToPenalty:  appliedToPenalty,
			Installments:      applied,
			LoanPaidAmount:    l.PaidAmount,
			LoanPendingAmount: l.PendingAmount,
			LoanStatus:        string(l.Status),
			CreatedAt:         p.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get rebuilds a payment voucher: the payment plus how it was applied across
// installments.
func (u *Usecase) Get(ctx context.Context, companyID, paymentID string) (*PaymentDTO, error) {
	p, err := u.payments.GetByPaymentID(ctx, companyID, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := u.payments.ListPaymentInstallments(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	dto := &PaymentDTO{
		PaymentID:       p.PaymentID,
		ClientID:        p.ClientID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		PaymentMethod:   string(p.PaymentMethod),
		CollectorID:     p.CollectorID,
		Status:          string(p.Status),
		ReferenceNumber: p.ReferenceNumber,
		CreatedAt:       p.CreatedAt,
	}
	for _, row := range rows {
		dto.Installments = append(dto.Installments, AppliedInstallmentDTO{
			AmountApplied: row.AmountApplied,
		})
	}
	return dto, nil
}

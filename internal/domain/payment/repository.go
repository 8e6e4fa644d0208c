package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, companyID, paymentID string) (*Payment, error)
	// CountByLoanID backs the loan deletion guard.
	CountByLoanID(ctx context.Context, loanID uint64) (int64, error)

	CreatePaymentInstallment(ctx context.Context, pi *PaymentInstallment) error
	ListPaymentInstallments(ctx context.Context, paymentID uint64) ([]PaymentInstallment, error)

	CreatePenaltyAdjustment(ctx context.Context, a *PenaltyAdjustment) error
	ListPenaltyAdjustments(ctx context.Context, loanID uint64) ([]PenaltyAdjustment, error)
}

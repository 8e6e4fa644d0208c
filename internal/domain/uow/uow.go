package uow

import (
	"context"

	"prestoras-backend/internal/domain/client"
	"prestoras-backend/internal/domain/loan"
	"prestoras-backend/internal/domain/payment"
)

type Repos struct {
	Loans        loan.Repository
	Installments loan.InstallmentRepository
	Payments     payment.Repository
	Clients      client.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. Serializes
	// concurrent mutations of the same loan.
	WithinLoanTx(ctx context.Context, companyID, loanID string, fn func(r Repos, l *loan.Loan) error) error
}

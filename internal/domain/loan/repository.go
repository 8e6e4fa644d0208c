package loan

import "context"

// Repository reads and writes loans. Every method is tenant-scoped: a loanID
// outside companyID resolves to ErrNotFound (gorm.ErrRecordNotFound at the
// adapter layer).
type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, companyID, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the rest of the transaction.
	GetByLoanIDForUpdate(ctx context.Context, companyID, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	ListByClientID(ctx context.Context, companyID, clientID string) ([]Loan, error)
	// Delete removes the loan and cascades its installments. The zero-payment
	// guard lives in the usecase.
	Delete(ctx context.Context, l *Loan) error

	CreateRefinancing(ctx context.Context, r *Refinancing) error
}

// InstallmentRepository manages the schedule rows of a loan.
type InstallmentRepository interface {
	BulkCreate(ctx context.Context, installments []*Installment) error
	// ListPayable returns PENDING/OVERDUE/PARTIALLY_PAID installments ordered
	// by ascending installment_number. The allocator depends on this order.
	ListPayable(ctx context.Context, loanID uint64) ([]Installment, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Installment, error)
	Save(ctx context.Context, i *Installment) error
	DeleteByLoanID(ctx context.Context, loanID uint64) error
}

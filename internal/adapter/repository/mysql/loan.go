package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "prestoras-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, companyID, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("company_id = ? AND loan_id = ?", companyID, loanID).
		First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate takes a row lock so concurrent payments against the
// same loan serialize instead of double-allocating.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, companyID, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND loan_id = ?", companyID, loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByClientID(ctx context.Context, companyID, clientID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("company_id = ? AND client_id = ?", companyID, clientID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

// Delete hard-removes the loan and its installments. The zero-payment guard
// runs in the usecase before this is reached.
func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("loan_id = ?", l.ID).Delete(&loanDomain.Installment{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(l).Error
}

func (r *LoanRepository) CreateRefinancing(ctx context.Context, ref *loanDomain.Refinancing) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

package mysql

import (
	"context"

	"gorm.io/gorm"

	loanDomain "prestoras-backend/internal/domain/loan"
)

type InstallmentRepository struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) BulkCreate(ctx context.Context, installments []*loanDomain.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(installments).Error
}

// ListPayable returns the installments a payment can land on, strictly
// oldest-first. The allocator's FIFO guarantee rests on this ORDER BY.
func (r *InstallmentRepository) ListPayable(ctx context.Context, loanID uint64) ([]loanDomain.Installment, error) {
	var out []loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND status IN ?", loanID, []loanDomain.InstallmentStatus{
			loanDomain.InstallmentPending,
			loanDomain.InstallmentOverdue,
			loanDomain.InstallmentPartiallyPaid,
		}).
		Order("installment_number ASC").
		Find(&out)
	return out, res.Error
}

func (r *InstallmentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]loanDomain.Installment, error) {
	var out []loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_number ASC").
		Find(&out)
	return out, res.Error
}

func (r *InstallmentRepository) Save(ctx context.Context, i *loanDomain.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InstallmentRepository) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Delete(&loanDomain.Installment{}).Error
}

package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "prestoras-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, companyID, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("company_id = ? AND payment_id = ?", companyID, paymentID).
		First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("loan_id = ?", loanID).
		Count(&n)
	return n, res.Error
}

func (r *PaymentRepository) CreatePaymentInstallment(ctx context.Context, pi *paymentDomain.PaymentInstallment) error {
	return r.db.WithContext(ctx).Create(pi).Error
}

func (r *PaymentRepository) ListPaymentInstallments(ctx context.Context, paymentID uint64) ([]paymentDomain.PaymentInstallment, error) {
	var out []paymentDomain.PaymentInstallment
	res := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) CreatePenaltyAdjustment(ctx context.Context, a *paymentDomain.PenaltyAdjustment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *PaymentRepository) ListPenaltyAdjustments(ctx context.Context, loanID uint64) ([]paymentDomain.PenaltyAdjustment, error) {
	var out []paymentDomain.PenaltyAdjustment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

package paymentmock

import (
	"context"
	"errors"

	domain "prestoras-backend/internal/domain/payment"
)

var errUnimplemented = errors.New("paymentmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn           func(ctx context.Context, companyID, paymentID string) (*domain.Payment, error)
	CountByLoanIDFn            func(ctx context.Context, loanID uint64) (int64, error)
	CreatePaymentInstallmentFn func(ctx context.Context, pi *domain.PaymentInstallment) error
	ListPaymentInstallmentsFn  func(ctx context.Context, paymentID uint64) ([]domain.PaymentInstallment, error)
	CreatePenaltyAdjustmentFn  func(ctx context.Context, a *domain.PenaltyAdjustment) error
	ListPenaltyAdjustmentsFn   func(ctx context.Context, loanID uint64) ([]domain.PenaltyAdjustment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, companyID, paymentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountByLoanIDFn != nil {
		return m.CountByLoanIDFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) CreatePaymentInstallment(ctx context.Context, pi *domain.PaymentInstallment) error {
	if m.CreatePaymentInstallmentFn != nil {
		return m.CreatePaymentInstallmentFn(ctx, pi)
	}
	return nil
}

func (m *Repo) ListPaymentInstallments(ctx context.Context, paymentID uint64) ([]domain.PaymentInstallment, error) {
	if m.ListPaymentInstallmentsFn != nil {
		return m.ListPaymentInstallmentsFn(ctx, paymentID)
	}
	return nil, nil
}

func (m *Repo) CreatePenaltyAdjustment(ctx context.Context, a *domain.PenaltyAdjustment) error {
	if m.CreatePenaltyAdjustmentFn != nil {
		return m.CreatePenaltyAdjustmentFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListPenaltyAdjustments(ctx context.Context, loanID uint64) ([]domain.PenaltyAdjustment, error) {
	if m.ListPenaltyAdjustmentsFn != nil {
		return m.ListPenaltyAdjustmentsFn(ctx, loanID)
	}
	return nil, nil
}

package loanmock

import (
	"context"
	"errors"

	domain "prestoras-backend/internal/domain/loan"
)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters fail loudly.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, companyID, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, companyID, loanID string) (*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	ListByClientIDFn       func(ctx context.Context, companyID, clientID string) ([]domain.Loan, error)
	DeleteFn               func(ctx context.Context, l *domain.Loan) error
	CreateRefinancingFn    func(ctx context.Context, r *domain.Refinancing) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, companyID, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, companyID, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, companyID, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, companyID, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) ListByClientID(ctx context.Context, companyID, clientID string) ([]domain.Loan, error) {
	if m.ListByClientIDFn != nil {
		return m.ListByClientIDFn(ctx, companyID, clientID)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, l *domain.Loan) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l)
	}
	return nil
}

func (m *Repo) CreateRefinancing(ctx context.Context, r *domain.Refinancing) error {
	if m.CreateRefinancingFn != nil {
		return m.CreateRefinancingFn(ctx, r)
	}
	return nil
}

// InstallmentRepo mocks domain.InstallmentRepository the same way.
type InstallmentRepo struct {
	BulkCreateFn     func(ctx context.Context, installments []*domain.Installment) error
	ListPayableFn    func(ctx context.Context, loanID uint64) ([]domain.Installment, error)
	ListByLoanIDFn   func(ctx context.Context, loanID uint64) ([]domain.Installment, error)
	SaveFn           func(ctx context.Context, i *domain.Installment) error
	DeleteByLoanIDFn func(ctx context.Context, loanID uint64) error
}

func (m *InstallmentRepo) BulkCreate(ctx context.Context, installments []*domain.Installment) error {
	if m.BulkCreateFn != nil {
		return m.BulkCreateFn(ctx, installments)
	}
	return nil
}

func (m *InstallmentRepo) ListPayable(ctx context.Context, loanID uint64) ([]domain.Installment, error) {
	if m.ListPayableFn != nil {
		return m.ListPayableFn(ctx, loanID)
	}
	return nil, nil
}

func (m *InstallmentRepo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Installment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *InstallmentRepo) Save(ctx context.Context, i *domain.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}

func (m *InstallmentRepo) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	if m.DeleteByLoanIDFn != nil {
		return m.DeleteByLoanIDFn(ctx, loanID)
	}
	return nil
}

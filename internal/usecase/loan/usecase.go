package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	clientDomain "prestoras-backend/internal/domain/client"
	domain "prestoras-backend/internal/domain/loan"
	paymentDomain "prestoras-backend/internal/domain/payment"
	"prestoras-backend/internal/domain/uow"
	"prestoras-backend/pkg/id"
	"prestoras-backend/pkg/money"
)

type Usecase struct {
	loans        domain.Repository
	installments domain.InstallmentRepository
	clients      clientDomain.Repository
	uow          uow.UnitOfWork

	now func() time.Time
}

// NewUsecase: read repos for lookups, a UoW for tx flows.
func NewUsecase(loans domain.Repository, installments domain.InstallmentRepository, clients clientDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		loans:        loans,
		installments: installments,
		clients:      clients,
		uow:          tx,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if err := validateTerms(in.InitialAmount, in.InterestRate, in.NumberOfInstallments,
		domain.Periodicity(in.Periodicity), in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := validatePenaltyConfig(in.PenaltyType, in.PenaltyAmount, in.PenaltyPercentage); err != nil {
		return nil, err
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cl, err := r.Clients.GetByClientID(ctx, in.CompanyID, in.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return clientDomain.ErrNotFound
			}
			return err
		}
		if !cl.IsActive {
			return fmt.Errorf("%w: client %s is inactive", domain.ErrValidation, in.ClientID)
		}

		l := &domain.Loan{
			LoanID:               id.NewID32(),
			CompanyID:            in.CompanyID,
			ClientID:             in.ClientID,
			InitialAmount:        in.InitialAmount,
			InterestRate:         in.InterestRate,
			NumberOfInstallments: in.NumberOfInstallments,
			Periodicity:          domain.Periodicity(in.Periodicity),
			StartDate:            in.StartDate,
			EndDate:              in.EndDate,
			PaidAmount:           money.Zero,
			PenaltyType:          domain.PenaltyType(in.PenaltyType),
			PenaltyAmount:        in.PenaltyAmount,
			PenaltyPercentage:    in.PenaltyPercentage,
			PenaltyApplied:       money.Zero,
			Status:               domain.StatusActive,
			Observations:         in.Observations,
			CreatedBy:            in.CreatedBy,
		}
		l.CalculateTotals()

		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		installments, err := domain.GenerateInstallments(l)
		if err != nil {
			return err
		}
		if err := domain.CheckScheduleSum(l, installments); err != nil {
			return err
		}
		if err := r.Installments.BulkCreate(ctx, installments); err != nil {
			return err
		}

		if err := u.reclassify(ctx, r, cl); err != nil {
			return err
		}

		dto = toLoanDTO(l, installments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, companyID, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, companyID, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	installments, err := u.installments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*domain.Installment, len(installments))
	for i := range installments {
		ptrs[i] = &installments[i]
	}
	return toLoanDTO(l, ptrs), nil
}

// Update applies partial edits. Changing the installment count regenerates the
// schedule and is rejected once any payment has been registered.
func (u *Usecase) Update(ctx context.Context, in UpdateLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.CompanyID, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if in.InterestRate != nil {
			if in.InterestRate.IsNegative() {
				return fmt.Errorf("%w: interest rate must not be negative", domain.ErrValidation)
			}
			l.InterestRate = *in.InterestRate
		}
		if in.Periodicity != nil {
			if !domain.ValidPeriodicity(domain.Periodicity(*in.Periodicity)) {
				return fmt.Errorf("%w: invalid periodicity %q", domain.ErrValidation, *in.Periodicity)
			}
			l.Periodicity = domain.Periodicity(*in.Periodicity)
		}
		if in.StartDate != nil {
			l.StartDate = *in.StartDate
		}
		if in.EndDate != nil {
			l.EndDate = *in.EndDate
		}
		if !l.StartDate.Before(l.EndDate) {
			return fmt.Errorf("%w: start date must be before end date", domain.ErrValidation)
		}
		if in.PenaltyType != nil {
			if pt := domain.PenaltyType(*in.PenaltyType); pt != domain.PenaltyFixed && pt != domain.PenaltyPercentage {
				return fmt.Errorf("%w: penalty type must be FIXED or PERCENTAGE", domain.ErrValidation)
			}
			l.PenaltyType = domain.PenaltyType(*in.PenaltyType)
		}
		if in.PenaltyAmount != nil {
			l.PenaltyAmount = *in.PenaltyAmount
		}
		if in.PenaltyPercentage != nil {
			l.PenaltyPercentage = *in.PenaltyPercentage
		}
		if in.Observations != nil {
			l.Observations = *in.Observations
		}
		if in.Status != nil {
			s := domain.Status(*in.Status)
			switch s {
			case domain.StatusActive, domain.StatusCompleted, domain.StatusDefaulting,
				domain.StatusRefinanced, domain.StatusCancelled:
				l.Status = s
			default:
				return fmt.Errorf("%w: invalid status %q", domain.ErrValidation, *in.Status)
			}
		}

		l.CalculateTotals()

		if in.NumberOfInstallments != nil {
			if l.PaidAmount.IsPositive() {
				return fmt.Errorf("%w: cannot change installment count after payments exist", domain.ErrValidation)
			}
			if *in.NumberOfInstallments < 1 {
				return fmt.Errorf("%w: number of installments must be >= 1", domain.ErrValidation)
			}
			l.NumberOfInstallments = *in.NumberOfInstallments
			if err := r.Installments.DeleteByLoanID(ctx, l.ID); err != nil {
				return err
			}
			installments, err := domain.GenerateInstallments(l)
			if err != nil {
				return err
			}
			if err := domain.CheckScheduleSum(l, installments); err != nil {
				return err
			}
			if err := r.Installments.BulkCreate(ctx, installments); err != nil {
				return err
			}
		}

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		installments, err := r.Installments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		ptrs := make([]*domain.Installment, len(installments))
		for i := range installments {
			ptrs[i] = &installments[i]
		}
		dto = toLoanDTO(l, ptrs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// AdjustPenalty overrides penalty_applied (0 forgives mora entirely) and
// writes one immutable PenaltyAdjustment audit row.
func (u *Usecase) AdjustPenalty(ctx context.Context, in AdjustPenaltyInput) (*LoanDTO, error) {
	if in.NewPenalty.IsNegative() {
		return nil, fmt.Errorf("%w: penalty must not be negative", domain.ErrValidation)
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.CompanyID, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		previous := l.PenaltyApplied
		reason := in.Reason
		if reason == "" {
			reason = fmt.Sprintf("manual adjustment: %s to %s", previous, in.NewPenalty)
		}

		adj := &paymentDomain.PenaltyAdjustment{
			LoanID:          l.ID,
			AdjustmentType:  paymentDomain.ClassifyAdjustment(previous, in.NewPenalty),
			PreviousPenalty: previous,
			NewPenalty:      in.NewPenalty,
			Reason:          reason,
			AdjustedBy:      in.AdjustedBy,
		}
		if err := r.Payments.CreatePenaltyAdjustment(ctx, adj); err != nil {
			return err
		}

		l.PenaltyApplied = in.NewPenalty
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toLoanDTO(l, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// RecalculatePenalty recomputes the accrued penalty from the current pending
// balance and overwrites penalty_applied. Safe to call repeatedly.
func (u *Usecase) RecalculatePenalty(ctx context.Context, companyID, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, companyID, loanID, func(r uow.Repos, l *domain.Loan) error {
		l.PenaltyApplied = domain.CalculatePenalty(l, u.now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toLoanDTO(l, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Refinance closes the original loan into a new one carrying the outstanding
// balance (or part of it) under new terms. The original's installments stay
// untouched as historical record.
func (u *Usecase) Refinance(ctx context.Context, in RefinanceInput) (*LoanDTO, error) {
	if err := validateTerms(in.CapitalAmount, in.InterestRate, in.NumberOfInstallments,
		domain.Periodicity(in.Periodicity), in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.CompanyID, in.LoanID, func(r uow.Repos, original *domain.Loan) error {
		if !original.PendingAmount.IsPositive() {
			return fmt.Errorf("%w: loan is already fully paid", domain.ErrValidation)
		}
		if in.CapitalAmount.GreaterThan(original.PendingAmount) {
			return fmt.Errorf("%w: refinanced capital %s exceeds pending balance %s",
				domain.ErrValidation, in.CapitalAmount, original.PendingAmount)
		}

		outstanding := original.PendingAmount

		newLoan := &domain.Loan{
			LoanID:               id.NewID32(),
			CompanyID:            original.CompanyID,
			ClientID:             original.ClientID,
			InitialAmount:        in.CapitalAmount,
			InterestRate:         in.InterestRate,
			NumberOfInstallments: in.NumberOfInstallments,
			Periodicity:          domain.Periodicity(in.Periodicity),
			StartDate:            in.StartDate,
			EndDate:              in.EndDate,
			PaidAmount:           money.Zero,
			PenaltyType:          original.PenaltyType,
			PenaltyAmount:        original.PenaltyAmount,
			PenaltyPercentage:    original.PenaltyPercentage,
			PenaltyApplied:       money.Zero,
			Status:               domain.StatusActive,
			OriginalLoanID:       &original.ID,
			IsRefinanced:         true,
			Observations:         in.Reason,
			CreatedBy:            in.CreatedBy,
		}
		newLoan.CalculateTotals()

		if err := r.Loans.Create(ctx, newLoan); err != nil {
			return err
		}

		installments, err := domain.GenerateInstallments(newLoan)
		if err != nil {
			return err
		}
		if err := domain.CheckScheduleSum(newLoan, installments); err != nil {
			return err
		}
		if err := r.Installments.BulkCreate(ctx, installments); err != nil {
			return err
		}

		original.Status = domain.StatusRefinanced
		if err := r.Loans.Save(ctx, original); err != nil {
			return err
		}

		ref := &domain.Refinancing{
			OriginalLoanID:     original.ID,
			NewLoanID:          newLoan.ID,
			OutstandingBalance: outstanding,
			RefinancedAmount:   in.CapitalAmount,
			InterestRate:       in.InterestRate,
			NewPeriodDays:      domain.PeriodDays(in.StartDate, in.EndDate),
			Reason:             in.Reason,
			Status:             domain.RefinancingApproved,
			CreatedBy:          in.CreatedBy,
		}
		if err := r.Loans.CreateRefinancing(ctx, ref); err != nil {
			return err
		}

		cl, err := r.Clients.GetByClientID(ctx, original.CompanyID, original.ClientID)
		if err != nil {
			return err
		}
		if err := u.reclassify(ctx, r, cl); err != nil {
			return err
		}

		dto = toLoanDTO(newLoan, installments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes a loan and its installments. Permitted only while no payment
// has ever been registered against it.
func (u *Usecase) Delete(ctx context.Context, companyID, loanID string) error {
	return u.uow.WithinLoanTx(ctx, companyID, loanID, func(r uow.Repos, l *domain.Loan) error {
		n, err := r.Payments.CountByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: loan has %d registered payments", domain.ErrValidation, n)
		}
		return r.Loans.Delete(ctx, l)
	})
}

// reclassify recomputes and writes back the client's classification from their
// full loan history. Invoked by the orchestrating transaction, never hidden in
// a persistence callback.
func (u *Usecase) reclassify(ctx context.Context, r uow.Repos, cl *clientDomain.Client) error {
	loans, err := r.Loans.ListByClientID(ctx, cl.CompanyID, cl.ClientID)
	if err != nil {
		return err
	}
	return r.Clients.SaveClassification(ctx, cl, clientDomain.Classify(loans))
}

func validateTerms(principal, rate decimal.Decimal, n int, p domain.Periodicity, start, end time.Time) error {
	if !principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive", domain.ErrValidation)
	}
	if rate.IsNegative() {
		return fmt.Errorf("%w: interest rate must not be negative", domain.ErrValidation)
	}
	if n < 1 {
		return fmt.Errorf("%w: number of installments must be >= 1", domain.ErrValidation)
	}
	if !domain.ValidPeriodicity(p) {
		return fmt.Errorf("%w: invalid periodicity %q", domain.ErrValidation, p)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start date must be before end date", domain.ErrValidation)
	}
	return nil
}

// validatePenaltyConfig: FIXED needs a positive fixed amount, PERCENTAGE a
// positive percentage. An empty type means no penalty policy.
func validatePenaltyConfig(penaltyType string, amount, percentage decimal.Decimal) error {
	switch domain.PenaltyType(penaltyType) {
	case "":
		return nil
	case domain.PenaltyFixed:
		if !amount.IsPositive() {
			return fmt.Errorf("%w: penalty_amount required for FIXED penalty", domain.ErrValidation)
		}
	case domain.PenaltyPercentage:
		if !percentage.IsPositive() {
			return fmt.Errorf("%w: penalty_percentage required for PERCENTAGE penalty", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: penalty type must be FIXED or PERCENTAGE", domain.ErrValidation)
	}
	return nil
}

func toLoanDTO(l *domain.Loan, installments []*domain.Installment) *LoanDTO {
	dto := &LoanDTO{
		LoanID:               l.LoanID,
		ClientID:             l.ClientID,
		InitialAmount:        l.InitialAmount,
		InterestRate:         l.InterestRate,
		NumberOfInstallments: l.NumberOfInstallments,
		Periodicity:          string(l.Periodicity),
		StartDate:            l.StartDate,
		EndDate:              l.EndDate,
		TotalAmount:          l.TotalAmount,
		PaidAmount:           l.PaidAmount,
		PendingAmount:        l.PendingAmount,
		PenaltyType:          string(l.PenaltyType),
		PenaltyAmount:        l.PenaltyAmount,
		PenaltyPercentage:    l.PenaltyPercentage,
		PenaltyApplied:       l.PenaltyApplied,
		Status:               string(l.Status),
		IsRefinanced:         l.IsRefinanced,
		CreatedAt:            l.CreatedAt,
	}
	for _, ins := range installments {
		dto.Installments = append(dto.Installments, InstallmentDTO{
			InstallmentNumber: ins.InstallmentNumber,
			DueDate:           ins.DueDate,
			CapitalAmount:     ins.CapitalAmount,
			InterestAmount:    ins.InterestAmount,
			TotalAmount:       ins.TotalAmount,
			PaidAmount:        ins.PaidAmount,
			Status:            string(ins.Status),
		})
	}
	return dto
}

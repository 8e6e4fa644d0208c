package loan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	clientDomain "prestoras-backend/internal/domain/client"
	domain "prestoras-backend/internal/domain/loan"
	paymentDomain "prestoras-backend/internal/domain/payment"
	"prestoras-backend/internal/domain/uow"
	"prestoras-backend/internal/testutil/clientmock"
	"prestoras-backend/internal/testutil/loanmock"
	"prestoras-backend/internal/testutil/paymentmock"
	"prestoras-backend/internal/testutil/uowmock"
	"prestoras-backend/pkg/money"
)

const (
	companyID = "cccccccccccccccccccccccccccccccc"
	clientID  = "dddddddddddddddddddddddddddddddd"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return money.MustFromString(s) }

func activeClient() *clientDomain.Client {
	return &clientDomain.Client{
		ClientID:  clientID,
		CompanyID: companyID,
		IsActive:  true,
	}
}

func validCreateInput() CreateLoanInput {
	return CreateLoanInput{
		CompanyID:            companyID,
		ClientID:             clientID,
		InitialAmount:        dec("1000.00"),
		InterestRate:         dec("20"),
		NumberOfInstallments: 4,
		Periodicity:          "WEEKLY",
		StartDate:            date(2026, 1, 5),
		EndDate:              date(2026, 2, 2),
	}
}

// newCreateFixture wires a usecase whose repos capture what gets persisted.
func newCreateFixture(t *testing.T) (*Usecase, *struct {
	loan         *domain.Loan
	installments []*domain.Installment
	saved        clientDomain.Classification
}) {
	t.Helper()
	captured := &struct {
		loan         *domain.Loan
		installments []*domain.Installment
		saved        clientDomain.Classification
	}{}

	loans := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			l.ID = 1
			captured.loan = l
			return nil
		},
		ListByClientIDFn: func(ctx context.Context, cmp, cl string) ([]domain.Loan, error) {
			if captured.loan == nil {
				return nil, nil
			}
			return []domain.Loan{*captured.loan}, nil
		},
	}
	installments := &loanmock.InstallmentRepo{
		BulkCreateFn: func(ctx context.Context, ins []*domain.Installment) error {
			captured.installments = ins
			return nil
		},
	}
	clients := &clientmock.Repo{
		GetByClientIDFn: func(ctx context.Context, cmp, cl string) (*clientDomain.Client, error) {
			if cmp != companyID || cl != clientID {
				return nil, clientDomain.ErrNotFound
			}
			return activeClient(), nil
		},
		SaveClassificationFn: func(ctx context.Context, c *clientDomain.Client, cls clientDomain.Classification) error {
			captured.saved = cls
			return nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{
		Loans:        loans,
		Installments: installments,
		Payments:     &paymentmock.Repo{},
		Clients:      clients,
	})
	return NewUsecase(loans, installments, clients, tx), captured
}

func TestCreate_Success(t *testing.T) {
	uc, captured := newCreateFixture(t)

	dto, err := uc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if len(dto.LoanID) != 32 {
		t.Fatalf("LoanID length: %d", len(dto.LoanID))
	}
	// 1000 + 20% = 1200
	if !dto.TotalAmount.Equal(dec("1200.00")) {
		t.Fatalf("total=%s", dto.TotalAmount)
	}
	if !dto.PendingAmount.Equal(dec("1200.00")) || !dto.PaidAmount.IsZero() {
		t.Fatalf("pending=%s paid=%s", dto.PendingAmount, dto.PaidAmount)
	}
	if dto.Status != string(domain.StatusActive) {
		t.Fatalf("status=%s", dto.Status)
	}
	if len(captured.installments) != 4 {
		t.Fatalf("installments=%d", len(captured.installments))
	}
	sum := money.Zero
	for _, ins := range captured.installments {
		sum = sum.Add(ins.TotalAmount)
	}
	if !sum.Equal(dto.TotalAmount) {
		t.Fatalf("schedule sum %s != total %s", sum, dto.TotalAmount)
	}
	if captured.saved == "" {
		t.Fatal("classification was not refreshed")
	}
}

func TestCreate_Rejects_InactiveClient(t *testing.T) {
	loans := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			t.Fatal("Create must not be called for inactive client")
			return nil
		},
	}
	clients := &clientmock.Repo{
		GetByClientIDFn: func(ctx context.Context, cmp, cl string) (*clientDomain.Client, error) {
			c := activeClient()
			c.IsActive = false
			return c, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{
		Loans: loans, Installments: &loanmock.InstallmentRepo{},
		Payments: &paymentmock.Repo{}, Clients: clients,
	})
	uc := NewUsecase(loans, &loanmock.InstallmentRepo{}, clients, tx)

	_, err := uc.Create(context.Background(), validCreateInput())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "inactive") {
		t.Fatalf("error %q should mention inactive client", err)
	}
}

func TestCreate_InvalidTerms(t *testing.T) {
	uc, _ := newCreateFixture(t)

	cases := []struct {
		name   string
		mutate func(*CreateLoanInput)
	}{
		{"zero principal", func(in *CreateLoanInput) { in.InitialAmount = money.Zero }},
		{"negative rate", func(in *CreateLoanInput) { in.InterestRate = dec("-1") }},
		{"zero installments", func(in *CreateLoanInput) { in.NumberOfInstallments = 0 }},
		{"bad periodicity", func(in *CreateLoanInput) { in.Periodicity = "FORTNIGHTLY" }},
		{"start after end", func(in *CreateLoanInput) {
			in.StartDate = date(2026, 3, 1)
			in.EndDate = date(2026, 2, 1)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("want ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreate_PenaltyConfig(t *testing.T) {
	uc, _ := newCreateFixture(t)

	// FIXED without amount
	in := validCreateInput()
	in.PenaltyType = "FIXED"
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("FIXED without amount: want ErrValidation, got %v", err)
	}

	// PERCENTAGE without percentage
	in = validCreateInput()
	in.PenaltyType = "PERCENTAGE"
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("PERCENTAGE without pct: want ErrValidation, got %v", err)
	}

	// unknown type
	in = validCreateInput()
	in.PenaltyType = "DAILY_FEE"
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown type: want ErrValidation, got %v", err)
	}

	// valid FIXED
	in = validCreateInput()
	in.PenaltyType = "FIXED"
	in.PenaltyAmount = dec("5.00")
	dto, err := uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("valid FIXED: %v", err)
	}
	if dto.PenaltyType != "FIXED" {
		t.Fatalf("penalty type=%s", dto.PenaltyType)
	}
}

// lockedLoanFixture returns a usecase whose WithinLoanTx resolves the given
// loan, plus the repos so tests can hook persistence.
func lockedLoanFixture(l *domain.Loan, loans *loanmock.Repo, payments *paymentmock.Repo) (*Usecase, *loanmock.InstallmentRepo) {
	if loans.GetByLoanIDForUpdateFn == nil {
		loans.GetByLoanIDForUpdateFn = func(ctx context.Context, cmp, id string) (*domain.Loan, error) {
			if cmp != l.CompanyID || id != l.LoanID {
				return nil, domain.ErrNotFound
			}
			return l, nil
		}
	}
	installments := &loanmock.InstallmentRepo{}
	clients := &clientmock.Repo{
		GetByClientIDFn: func(ctx context.Context, cmp, cl string) (*clientDomain.Client, error) {
			return activeClient(), nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{
		Loans: loans, Installments: installments, Payments: payments, Clients: clients,
	})
	return NewUsecase(loans, installments, clients, tx), installments
}

func activeLoan() *domain.Loan {
	l := &domain.Loan{
		ID:                   7,
		LoanID:               "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		CompanyID:            companyID,
		ClientID:             clientID,
		InitialAmount:        dec("1000.00"),
		InterestRate:         dec("20"),
		NumberOfInstallments: 4,
		Periodicity:          domain.PeriodicityWeekly,
		StartDate:            date(2026, 1, 5),
		EndDate:              date(2026, 2, 2),
		PaidAmount:           money.Zero,
		PenaltyApplied:       money.Zero,
		Status:               domain.StatusActive,
	}
	l.CalculateTotals()
	return l
}

func TestAdjustPenalty_WritesAuditAndOverwrites(t *testing.T) {
	l := activeLoan()
	l.PenaltyApplied = dec("30.00")

	var gotType string
	uc, _ := lockedLoanFixture(l, &loanmock.Repo{}, &paymentmock.Repo{
		CreatePenaltyAdjustmentFn: func(ctx context.Context, a *paymentDomain.PenaltyAdjustment) error {
			gotType = string(a.AdjustmentType)
			if !a.PreviousPenalty.Equal(dec("30.00")) || !a.NewPenalty.Equal(dec("10.00")) {
				t.Fatalf("audit row %s -> %s", a.PreviousPenalty, a.NewPenalty)
			}
			return nil
		},
	})

	dto, err := uc.AdjustPenalty(context.Background(), AdjustPenaltyInput{
		CompanyID: companyID, LoanID: l.LoanID, NewPenalty: dec("10.00"),
	})
	if err != nil {
		t.Fatalf("AdjustPenalty err: %v", err)
	}
	if gotType != "REDUCE" {
		t.Fatalf("adjustment type=%s", gotType)
	}
	if !dto.PenaltyApplied.Equal(dec("10.00")) {
		t.Fatalf("penalty_applied=%s", dto.PenaltyApplied)
	}
}

func TestRefinance_RejectsCapitalAbovePending(t *testing.T) {
	l := activeLoan()
	l.PaidAmount = dec("700.00")
	l.CalculateTotals() // pending 500

	loans := &loanmock.Repo{
		CreateFn: func(ctx context.Context, nl *domain.Loan) error {
			t.Fatal("no new loan must be created when ceiling is exceeded")
			return nil
		},
	}
	uc, _ := lockedLoanFixture(l, loans, &paymentmock.Repo{})

	_, err := uc.Refinance(context.Background(), RefinanceInput{
		CompanyID: companyID, LoanID: l.LoanID,
		CapitalAmount:        dec("500.01"),
		InterestRate:         dec("15"),
		NumberOfInstallments: 2,
		Periodicity:          "WEEKLY",
		StartDate:            date(2026, 3, 1),
		EndDate:              date(2026, 3, 15),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if l.Status != domain.StatusActive {
		t.Fatalf("original loan status changed: %s", l.Status)
	}
}

func TestRefinance_Success(t *testing.T) {
	l := activeLoan()
	l.PaidAmount = dec("700.00")
	l.CalculateTotals() // pending 500

	var newLoan *domain.Loan
	var ref *domain.Refinancing
	loans := &loanmock.Repo{
		CreateFn: func(ctx context.Context, nl *domain.Loan) error {
			nl.ID = 8
			newLoan = nl
			return nil
		},
		CreateRefinancingFn: func(ctx context.Context, r *domain.Refinancing) error {
			ref = r
			return nil
		},
		ListByClientIDFn: func(ctx context.Context, cmp, cl string) ([]domain.Loan, error) {
			return []domain.Loan{*l}, nil
		},
	}
	uc, _ := lockedLoanFixture(l, loans, &paymentmock.Repo{})

	dto, err := uc.Refinance(context.Background(), RefinanceInput{
		CompanyID: companyID, LoanID: l.LoanID,
		CapitalAmount:        dec("500.00"),
		InterestRate:         dec("10"),
		NumberOfInstallments: 2,
		Periodicity:          "WEEKLY",
		StartDate:            date(2026, 3, 1),
		EndDate:              date(2026, 3, 15),
	})
	if err != nil {
		t.Fatalf("Refinance err: %v", err)
	}
	if l.Status != domain.StatusRefinanced {
		t.Fatalf("original status=%s", l.Status)
	}
	if newLoan == nil || !newLoan.IsRefinanced || newLoan.OriginalLoanID == nil || *newLoan.OriginalLoanID != l.ID {
		t.Fatalf("new loan not linked to original: %+v", newLoan)
	}
	// 500 + 10% = 550
	if !dto.TotalAmount.Equal(dec("550.00")) {
		t.Fatalf("new total=%s", dto.TotalAmount)
	}
	if ref == nil {
		t.Fatal("no refinancing audit row")
	}
	if !ref.OutstandingBalance.Equal(dec("500.00")) || !ref.RefinancedAmount.Equal(dec("500.00")) {
		t.Fatalf("audit row outstanding=%s refinanced=%s", ref.OutstandingBalance, ref.RefinancedAmount)
	}
	if ref.Status != domain.RefinancingApproved {
		t.Fatalf("refinancing status=%s", ref.Status)
	}
}

func TestDelete_RejectedWhenPaymentsExist(t *testing.T) {
	l := activeLoan()
	loans := &loanmock.Repo{
		DeleteFn: func(ctx context.Context, dl *domain.Loan) error {
			t.Fatal("Delete must not be called when payments exist")
			return nil
		},
	}
	payments := &paymentmock.Repo{
		CountByLoanIDFn: func(ctx context.Context, loanID uint64) (int64, error) { return 2, nil },
	}
	uc, _ := lockedLoanFixture(l, loans, payments)

	err := uc.Delete(context.Background(), companyID, l.LoanID)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	l := activeLoan()
	deleted := false
	loans := &loanmock.Repo{
		DeleteFn: func(ctx context.Context, dl *domain.Loan) error {
			deleted = true
			return nil
		},
	}
	uc, _ := lockedLoanFixture(l, loans, &paymentmock.Repo{})

	if err := uc.Delete(context.Background(), companyID, l.LoanID); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if !deleted {
		t.Fatal("repo Delete was not called")
	}
}

func TestUpdate_CountChangeRejectedAfterPayments(t *testing.T) {
	l := activeLoan()
	l.PaidAmount = dec("100.00")
	l.CalculateTotals()

	uc, installments := lockedLoanFixture(l, &loanmock.Repo{}, &paymentmock.Repo{})
	installments.DeleteByLoanIDFn = func(ctx context.Context, loanID uint64) error {
		t.Fatal("schedule must not be regenerated once payments exist")
		return nil
	}

	n := 6
	_, err := uc.Update(context.Background(), UpdateLoanInput{
		CompanyID: companyID, LoanID: l.LoanID, NumberOfInstallments: &n,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestUpdate_RegeneratesScheduleBeforePayments(t *testing.T) {
	l := activeLoan()

	var regenerated []*domain.Installment
	uc, installments := lockedLoanFixture(l, &loanmock.Repo{}, &paymentmock.Repo{})
	installments.BulkCreateFn = func(ctx context.Context, ins []*domain.Installment) error {
		regenerated = ins
		return nil
	}

	n := 6
	dto, err := uc.Update(context.Background(), UpdateLoanInput{
		CompanyID: companyID, LoanID: l.LoanID, NumberOfInstallments: &n,
	})
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if dto.NumberOfInstallments != 6 {
		t.Fatalf("count=%d", dto.NumberOfInstallments)
	}
	if len(regenerated) != 6 {
		t.Fatalf("regenerated=%d", len(regenerated))
	}
}

func TestRecalculatePenalty_Overwrites(t *testing.T) {
	l := activeLoan()
	l.PenaltyType = domain.PenaltyFixed
	l.PenaltyAmount = dec("5.00")
	l.EndDate = date(2026, 2, 2)

	uc, _ := lockedLoanFixture(l, &loanmock.Repo{}, &paymentmock.Repo{})
	uc.now = func() time.Time { return date(2026, 2, 5) } // 3 days overdue

	dto, err := uc.RecalculatePenalty(context.Background(), companyID, l.LoanID)
	if err != nil {
		t.Fatalf("RecalculatePenalty err: %v", err)
	}
	if !dto.PenaltyApplied.Equal(dec("15.00")) {
		t.Fatalf("penalty_applied=%s", dto.PenaltyApplied)
	}

	// repeat run lands on the same figure
	dto, err = uc.RecalculatePenalty(context.Background(), companyID, l.LoanID)
	if err != nil {
		t.Fatalf("RecalculatePenalty rerun err: %v", err)
	}
	if !dto.PenaltyApplied.Equal(dec("15.00")) {
		t.Fatalf("rerun penalty_applied=%s", dto.PenaltyApplied)
	}
}

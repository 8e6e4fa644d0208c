package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prestoras-backend/pkg/money"
)

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusCompleted  Status = "COMPLETED"
	StatusDefaulting Status = "DEFAULTING"
	StatusRefinanced Status = "REFINANCED"
	StatusCancelled  Status = "CANCELLED"
)

type InstallmentStatus string

const (
	InstallmentPending       InstallmentStatus = "PENDING"
	InstallmentPaid          InstallmentStatus = "PAID"
	InstallmentOverdue       InstallmentStatus = "OVERDUE"
	InstallmentPartiallyPaid InstallmentStatus = "PARTIALLY_PAID"
	InstallmentCancelled     InstallmentStatus = "CANCELLED"
)

type Periodicity string

const (
	PeriodicityDaily     Periodicity = "DAILY"
	PeriodicityWeekly    Periodicity = "WEEKLY"
	PeriodicityBiweekly  Periodicity = "BIWEEKLY"
	PeriodicityMonthly   Periodicity = "MONTHLY"
	PeriodicityQuarterly Periodicity = "QUARTERLY"
	PeriodicityCustom    Periodicity = "CUSTOM"
)

// ValidPeriodicity reports whether p is one of the allowed cadences.
func ValidPeriodicity(p Periodicity) bool {
	switch p {
	case PeriodicityDaily, PeriodicityWeekly, PeriodicityBiweekly,
		PeriodicityMonthly, PeriodicityQuarterly, PeriodicityCustom:
		return true
	}
	return false
}

type PenaltyType string

const (
	PenaltyFixed      PenaltyType = "FIXED"
	PenaltyPercentage PenaltyType = "PERCENTAGE"
)

type RefinancingStatus string

const (
	RefinancingPending   RefinancingStatus = "PENDING"
	RefinancingApproved  RefinancingStatus = "APPROVED"
	RefinancingRejected  RefinancingStatus = "REJECTED"
	RefinancingCancelled RefinancingStatus = "CANCELLED"
)

// Loan is a tenant-scoped financial agreement. Every read and write is scoped
// by CompanyID; a loan id from another tenant behaves as not found.
type Loan struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID    string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	CompanyID string `gorm:"size:32;index:idx_loans_company_client" json:"company_id"`
	ClientID  string `gorm:"size:32;index:idx_loans_company_client" json:"client_id"`

	InitialAmount        decimal.Decimal `gorm:"type:decimal(15,2)" json:"initial_amount"`
	InterestRate         decimal.Decimal `gorm:"type:decimal(5,2)" json:"interest_rate"`
	NumberOfInstallments int             `gorm:"column:number_of_installments" json:"number_of_installments"`
	Periodicity          Periodicity     `gorm:"size:20" json:"periodicity"`
	StartDate            time.Time       `gorm:"type:date" json:"start_date"`
	EndDate              time.Time       `gorm:"type:date" json:"end_date"`

	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2)" json:"paid_amount"`
	PendingAmount decimal.Decimal `gorm:"type:decimal(15,2)" json:"pending_amount"`

	PenaltyType       PenaltyType     `gorm:"size:20" json:"penalty_type,omitempty"`
	PenaltyAmount     decimal.Decimal `gorm:"type:decimal(15,2)" json:"penalty_amount"`
	PenaltyPercentage decimal.Decimal `gorm:"type:decimal(5,2)" json:"penalty_percentage"`
	PenaltyApplied    decimal.Decimal `gorm:"type:decimal(15,2)" json:"penalty_applied"`

	Status       Status `gorm:"size:20;index:idx_loans_status_end" json:"status"`
	Observations string `gorm:"type:text" json:"observations,omitempty"`

	OriginalLoanID *uint64 `gorm:"column:original_loan_id;index" json:"-"`
	IsRefinanced   bool    `gorm:"column:is_refinanced" json:"is_refinanced"`

	CreatedBy string         `gorm:"size:32" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// CalculateTotals derives TotalAmount and PendingAmount from principal, rate
// and what has been paid. Must run after every mutation of those fields.
func (l *Loan) CalculateTotals() {
	interest := money.Percent(l.InitialAmount, l.InterestRate)
	l.TotalAmount = l.InitialAmount.Add(interest)
	l.PendingAmount = l.TotalAmount.Sub(l.PaidAmount)
}

// RefreshStatus moves the loan to COMPLETED or DEFAULTING based on balance and
// maturity. Terminal states (REFINANCED, CANCELLED) are never overwritten here.
func (l *Loan) RefreshStatus(today time.Time) {
	if l.Status == StatusRefinanced || l.Status == StatusCancelled {
		return
	}
	switch {
	case !l.PendingAmount.IsPositive():
		l.Status = StatusCompleted
	case dateOnly(l.EndDate).Before(dateOnly(today)):
		l.Status = StatusDefaulting
	}
}

// Installment is one scheduled payment obligation. installment_number runs
// 1..N with no gaps and is unique per loan.
type Installment struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID uint64 `gorm:"column:loan_id;uniqueIndex:ux_installments_loan_number" json:"-"`

	InstallmentNumber int             `gorm:"column:installment_number;uniqueIndex:ux_installments_loan_number" json:"installment_number"`
	DueDate           time.Time       `gorm:"type:date" json:"due_date"`
	CapitalAmount     decimal.Decimal `gorm:"type:decimal(15,2)" json:"capital_amount"`
	InterestAmount    decimal.Decimal `gorm:"type:decimal(15,2)" json:"interest_amount"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_amount"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(15,2)" json:"paid_amount"`

	Status InstallmentStatus `gorm:"size:20;index:idx_installments_loan_status" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Installment) TableName() string { return "installments" }

// Outstanding is how much this installment still needs.
func (i *Installment) Outstanding() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// RecomputeStatus sets Status as a pure function of paid vs total and today vs
// due date. CANCELLED is sticky.
func (i *Installment) RecomputeStatus(today time.Time) {
	if i.Status == InstallmentCancelled {
		return
	}
	switch {
	case i.PaidAmount.GreaterThanOrEqual(i.TotalAmount):
		i.Status = InstallmentPaid
	case i.PaidAmount.IsPositive():
		i.Status = InstallmentPartiallyPaid
	case dateOnly(today).After(dateOnly(i.DueDate)):
		i.Status = InstallmentOverdue
	default:
		i.Status = InstallmentPending
	}
}

// Refinancing links an original loan to the loan that replaced it, capturing
// the outstanding balance at refinance time. Append-only audit record.
type Refinancing struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"-"`
	OriginalLoanID uint64 `gorm:"column:original_loan_id;index" json:"-"`
	NewLoanID      uint64 `gorm:"column:new_loan_id;uniqueIndex" json:"-"`

	OutstandingBalance decimal.Decimal   `gorm:"type:decimal(15,2)" json:"outstanding_balance"`
	RefinancedAmount   decimal.Decimal   `gorm:"type:decimal(15,2)" json:"refinanced_amount"`
	InterestRate       decimal.Decimal   `gorm:"type:decimal(5,2)" json:"interest_rate"`
	NewPeriodDays      int               `gorm:"column:new_period_days" json:"new_period_days"`
	Reason             string            `gorm:"type:text" json:"reason,omitempty"`
	Status             RefinancingStatus `gorm:"size:20;index" json:"status"`

	CreatedBy string    `gorm:"size:32" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Refinancing) TableName() string { return "refinancings" }

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

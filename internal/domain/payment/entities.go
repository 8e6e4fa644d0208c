package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("payment not found")

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type Method string

const (
	MethodCash     Method = "CASH"
	MethodYape     Method = "YAPE"
	MethodPlin     Method = "PLIN"
	MethodCard     Method = "CARD"
	MethodDeposit  Method = "DAP"
	MethodTransfer Method = "TRANSFER"
)

// ValidMethod reports whether m is an accepted payment method.
func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodYape, MethodPlin, MethodCard, MethodDeposit, MethodTransfer:
		return true
	}
	return false
}

type AdjustmentType string

const (
	AdjustmentReduce    AdjustmentType = "REDUCE"
	AdjustmentEliminate AdjustmentType = "ELIMINATE"
	AdjustmentModify    AdjustmentType = "MODIFY"
)

// Payment is an immutable record of money received against one loan. Only
// COMPLETED payments trigger allocation, and allocation fires exactly once,
// at creation time.
type Payment struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string `gorm:"size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	CompanyID string `gorm:"size:32;index:idx_payments_company_client" json:"company_id"`
	LoanID    uint64 `gorm:"column:loan_id;index:idx_payments_loan" json:"-"`
	ClientID  string `gorm:"size:32;index:idx_payments_company_client" json:"client_id"`

	Amount        decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	PaymentDate   time.Time       `gorm:"column:payment_date" json:"payment_date"`
	PaymentMethod Method          `gorm:"size:20" json:"payment_method"`

	CollectorID     string `gorm:"size:32;index" json:"collector_id"`
	Status          Status `gorm:"size:20;index:idx_payments_loan" json:"status"`
	ReferenceNumber string `gorm:"size:100" json:"reference_number,omitempty"`
	Observations    string `gorm:"type:text" json:"observations,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Payment) TableName() string { return "payments" }

// PaymentInstallment records how much of one payment landed on one
// installment. Unique per (payment, installment); vouchers are rebuilt from
// these rows.
type PaymentInstallment struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID     uint64          `gorm:"column:payment_id;uniqueIndex:ux_payment_installment" json:"-"`
	InstallmentID uint64          `gorm:"column:installment_id;uniqueIndex:ux_payment_installment" json:"-"`
	AmountApplied decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_applied"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentInstallment) TableName() string { return "payment_installments" }

// PenaltyAdjustment is the append-only audit trail of manual penalty
// overrides. Never mutated after creation.
type PenaltyAdjustment struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID uint64 `gorm:"column:loan_id;index:idx_penalty_adjustments_loan" json:"-"`

	AdjustmentType  AdjustmentType  `gorm:"size:20" json:"adjustment_type"`
	PreviousPenalty decimal.Decimal `gorm:"type:decimal(15,2)" json:"previous_penalty"`
	NewPenalty      decimal.Decimal `gorm:"type:decimal(15,2)" json:"new_penalty"`
	Reason          string          `gorm:"type:text" json:"reason"`
	AdjustedBy      string          `gorm:"size:32" json:"adjusted_by"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_penalty_adjustments_loan" json:"created_at"`
}

func (PenaltyAdjustment) TableName() string { return "penalty_adjustments" }

// ClassifyAdjustment types an override relative to the previous value:
// ELIMINATE when forgiven to zero, REDUCE when lowered, MODIFY otherwise.
func ClassifyAdjustment(previous, next decimal.Decimal) AdjustmentType {
	switch {
	case next.IsZero():
		return AdjustmentEliminate
	case next.LessThan(previous):
		return AdjustmentReduce
	default:
		return AdjustmentModify
	}
}

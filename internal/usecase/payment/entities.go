package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterPaymentInput struct {
	CompanyID   string `json:"-"`
	CollectorID string `json:"-"`

	LoanID          string          `json:"loan_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Observations    string          `json:"observations,omitempty"`
}

// AppliedInstallmentDTO is one line of the voucher: how much of the payment
// landed on which installment.
type AppliedInstallmentDTO struct {
	InstallmentNumber int             `json:"installment_number"`
	AmountApplied     decimal.Decimal `json:"amount_applied"`
	InstallmentStatus string          `json:"installment_status"`
}

type PaymentDTO struct {
	PaymentID string `json:"payment_id"`
	LoanID    string `json:"loan_id"`
	ClientID  string `json:"client_id"`

	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method"`
	CollectorID     string          `json:"collector_id"`
	Status          string          `json:"status"`
	ReferenceNumber string          `json:"reference_number,omitempty"`

	AppliedToPenalty decimal.Decimal         `json:"applied_to_penalty"`
	Installments     []AppliedInstallmentDTO `json:"installments,omitempty"`

	LoanPaidAmount    decimal.Decimal `json:"loan_paid_amount"`
	LoanPendingAmount decimal.Decimal `json:"loan_pending_amount"`
	LoanStatus        string          `json:"loan_status"`

	CreatedAt time.Time `json:"created_at"`
}

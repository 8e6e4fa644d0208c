package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	CompanyID string `json:"-"`
	ClientID  string `json:"client_id"`
	CreatedBy string `json:"-"`

	InitialAmount        decimal.Decimal `json:"initial_amount"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	NumberOfInstallments int             `json:"number_of_installments"`
	Periodicity          string          `json:"periodicity"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`

	PenaltyType       string          `json:"penalty_type,omitempty"`
	PenaltyAmount     decimal.Decimal `json:"penalty_amount"`
	PenaltyPercentage decimal.Decimal `json:"penalty_percentage"`

	Observations string `json:"observations,omitempty"`
}

// UpdateLoanInput carries optional field edits; nil means "leave unchanged".
type UpdateLoanInput struct {
	CompanyID string `json:"-"`
	LoanID    string `json:"-"`

	InterestRate         *decimal.Decimal `json:"interest_rate,omitempty"`
	NumberOfInstallments *int             `json:"number_of_installments,omitempty"`
	Periodicity          *string          `json:"periodicity,omitempty"`
	StartDate            *time.Time       `json:"start_date,omitempty"`
	EndDate              *time.Time       `json:"end_date,omitempty"`
	PenaltyType          *string          `json:"penalty_type,omitempty"`
	PenaltyAmount        *decimal.Decimal `json:"penalty_amount,omitempty"`
	PenaltyPercentage    *decimal.Decimal `json:"penalty_percentage,omitempty"`
	Observations         *string          `json:"observations,omitempty"`
	Status               *string          `json:"status,omitempty"`
}

type AdjustPenaltyInput struct {
	CompanyID  string `json:"-"`
	LoanID     string `json:"-"`
	AdjustedBy string `json:"-"`

	NewPenalty decimal.Decimal `json:"new_penalty"`
	Reason     string          `json:"reason,omitempty"`
}

type RefinanceInput struct {
	CompanyID string `json:"-"`
	LoanID    string `json:"-"`
	CreatedBy string `json:"-"`

	CapitalAmount        decimal.Decimal `json:"capital_amount"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	NumberOfInstallments int             `json:"number_of_installments"`
	Periodicity          string          `json:"periodicity"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	Reason               string          `json:"reason,omitempty"`
}

type InstallmentDTO struct {
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	CapitalAmount     decimal.Decimal `json:"capital_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	Status            string          `json:"status"`
}

type LoanDTO struct {
	LoanID   string `json:"loan_id"`
	ClientID string `json:"client_id"`

	InitialAmount        decimal.Decimal `json:"initial_amount"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	NumberOfInstallments int             `json:"number_of_installments"`
	Periodicity          string          `json:"periodicity"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`

	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`

	PenaltyType       string          `json:"penalty_type,omitempty"`
	PenaltyAmount     decimal.Decimal `json:"penalty_amount"`
	PenaltyPercentage decimal.Decimal `json:"penalty_percentage"`
	PenaltyApplied    decimal.Decimal `json:"penalty_applied"`

	Status       string `json:"status"`
	IsRefinanced bool   `json:"is_refinanced"`

	Installments []InstallmentDTO `json:"installments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

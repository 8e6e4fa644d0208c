package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	loanUC "prestoras-backend/internal/usecase/loan"
)

type LoanHandler struct {
	uc *loanUC.Usecase
	cv *CustomValidator
}

func NewLoanHandler(uc *loanUC.Usecase, cv *CustomValidator) *LoanHandler {
	return &LoanHandler{uc: uc, cv: cv}
}

type createLoanReq struct {
	ClientID             string          `json:"client_id" validate:"required,hex32"`
	InitialAmount        decimal.Decimal `json:"initial_amount" validate:"required,gt=0"`
	InterestRate         decimal.Decimal `json:"interest_rate" validate:"gte=0"`
	NumberOfInstallments int             `json:"number_of_installments" validate:"required,gte=1"`
	Periodicity          string          `json:"periodicity" validate:"required"`
	StartDate            string          `json:"start_date" validate:"required"`
	EndDate              string          `json:"end_date" validate:"required"`
	PenaltyType          string          `json:"penalty_type,omitempty"`
	PenaltyAmount        decimal.Decimal `json:"penalty_amount"`
	PenaltyPercentage    decimal.Decimal `json:"penalty_percentage"`
	Observations         string          `json:"observations,omitempty"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
	}

	dto, err := h.uc.Create(c.Request().Context(), loanUC.CreateLoanInput{
		CompanyID:            companyID(c),
		ClientID:             req.ClientID,
		CreatedBy:            actorID(c),
		InitialAmount:        req.InitialAmount,
		InterestRate:         req.InterestRate,
		NumberOfInstallments: req.NumberOfInstallments,
		Periodicity:          req.Periodicity,
		StartDate:            start,
		EndDate:              end,
		PenaltyType:          req.PenaltyType,
		PenaltyAmount:        req.PenaltyAmount,
		PenaltyPercentage:    req.PenaltyPercentage,
		Observations:         req.Observations,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), companyID(c), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateLoanReq struct {
	InterestRate         *decimal.Decimal `json:"interest_rate,omitempty"`
	NumberOfInstallments *int             `json:"number_of_installments,omitempty"`
	Periodicity          *string          `json:"periodicity,omitempty"`
	StartDate            *string          `json:"start_date,omitempty"`
	EndDate              *string          `json:"end_date,omitempty"`
	PenaltyType          *string          `json:"penalty_type,omitempty"`
	PenaltyAmount        *decimal.Decimal `json:"penalty_amount,omitempty"`
	PenaltyPercentage    *decimal.Decimal `json:"penalty_percentage,omitempty"`
	Observations         *string          `json:"observations,omitempty"`
	Status               *string          `json:"status,omitempty"`
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := loanUC.UpdateLoanInput{
		CompanyID:            companyID(c),
		LoanID:               c.Param("loan_id"),
		InterestRate:         req.InterestRate,
		NumberOfInstallments: req.NumberOfInstallments,
		Periodicity:          req.Periodicity,
		PenaltyType:          req.PenaltyType,
		PenaltyAmount:        req.PenaltyAmount,
		PenaltyPercentage:    req.PenaltyPercentage,
		Observations:         req.Observations,
		Status:               req.Status,
	}
	var err error
	if in.StartDate, err = parseDatePtr(req.StartDate); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
	}
	if in.EndDate, err = parseDatePtr(req.EndDate); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
	}

	dto, err := h.uc.Update(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type adjustPenaltyReq struct {
	NewPenalty decimal.Decimal `json:"new_penalty" validate:"gte=0"`
	Reason     string          `json:"reason,omitempty"`
}

func (h *LoanHandler) AdjustPenalty(c echo.Context) error {
	var req adjustPenaltyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.AdjustPenalty(c.Request().Context(), loanUC.AdjustPenaltyInput{
		CompanyID:  companyID(c),
		LoanID:     c.Param("loan_id"),
		AdjustedBy: actorID(c),
		NewPenalty: req.NewPenalty,
		Reason:     req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RecalculatePenalty(c echo.Context) error {
	dto, err := h.uc.RecalculatePenalty(c.Request().Context(), companyID(c), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type refinanceReq struct {
	CapitalAmount        decimal.Decimal `json:"capital_amount" validate:"required,gt=0"`
	InterestRate         decimal.Decimal `json:"interest_rate" validate:"gte=0"`
	NumberOfInstallments int             `json:"number_of_installments" validate:"required,gte=1"`
	Periodicity          string          `json:"periodicity" validate:"required"`
	StartDate            string          `json:"start_date" validate:"required"`
	EndDate              string          `json:"end_date" validate:"required"`
	Reason               string          `json:"reason,omitempty"`
}

func (h *LoanHandler) RefinanceLoan(c echo.Context) error {
	var req refinanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
	}

	dto, err := h.uc.Refinance(c.Request().Context(), loanUC.RefinanceInput{
		CompanyID:            companyID(c),
		LoanID:               c.Param("loan_id"),
		CreatedBy:            actorID(c),
		CapitalAmount:        req.CapitalAmount,
		InterestRate:         req.InterestRate,
		NumberOfInstallments: req.NumberOfInstallments,
		Periodicity:          req.Periodicity,
		StartDate:            start,
		EndDate:              end,
		Reason:               req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), companyID(c), c.Param("loan_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

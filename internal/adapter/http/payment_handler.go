package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	paymentUC "prestoras-backend/internal/usecase/payment"
)

type PaymentHandler struct {
	uc *paymentUC.Usecase
	cv *CustomValidator
}

func NewPaymentHandler(uc *paymentUC.Usecase, cv *CustomValidator) *PaymentHandler {
	return &PaymentHandler{uc: uc, cv: cv}
}

type registerPaymentReq struct {
	LoanID          string          `json:"loan_id" validate:"required,hex32"`
	Amount          decimal.Decimal `json:"amount" validate:"required,gt=0"`
	PaymentDate     string          `json:"payment_date,omitempty"`
	PaymentMethod   string          `json:"payment_method" validate:"required"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Observations    string          `json:"observations,omitempty"`
}

func (h *PaymentHandler) RegisterPayment(c echo.Context) error {
	var req registerPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	var paymentDate time.Time
	if req.PaymentDate != "" {
		t, err := time.Parse(time.RFC3339, req.PaymentDate)
		if err != nil {
			// date-only is fine for field collections
			t, err = parseDate(req.PaymentDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "payment_date must be RFC3339 or YYYY-MM-DD"})
			}
		}
		paymentDate = t
	}

	collector := strings.TrimSpace(c.Request().Header.Get("Ax-Collector-Id"))
	if collector == "" {
		collector = actorID(c)
	}

	dto, err := h.uc.Register(c.Request().Context(), paymentUC.RegisterPaymentInput{
		CompanyID:       companyID(c),
		CollectorID:     collector,
		LoanID:          req.LoanID,
		Amount:          req.Amount,
		PaymentDate:     paymentDate,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Observations:    req.Observations,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), companyID(c), c.Param("payment_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

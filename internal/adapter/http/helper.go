package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	clientDomain "prestoras-backend/internal/domain/client"
	loanDomain "prestoras-backend/internal/domain/loan"
	paymentDomain "prestoras-backend/internal/domain/payment"
)

// ---- helpers ----

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// companyID reads the tenant id stashed by the tenancy middleware.
func companyID(c echo.Context) string {
	v, _ := c.Get("company_id").(string)
	return v
}

func actorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("Ax-User-Id"))
}

// writeError maps the domain error taxonomy onto HTTP codes.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, paymentDomain.ErrNotFound),
		errors.Is(err, clientDomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, loanDomain.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

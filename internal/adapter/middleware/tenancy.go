package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TenancyMiddleware validates Ax-Company-Id and stashes it in the echo
// context so handlers can scope every query to the caller's company.
func TenancyMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			companyID := strings.TrimSpace(c.Request().Header.Get("Ax-Company-Id"))
			if companyID == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing Ax-Company-Id"})
			}
			if !reHex32.MatchString(companyID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid Ax-Company-Id"})
			}
			c.Set("company_id", companyID)
			return next(c)
		}
	}
}

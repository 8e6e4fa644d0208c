package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	clientUC "prestoras-backend/internal/usecase/client"
)

type ClientHandler struct{ uc *clientUC.Usecase }

func NewClientHandler(uc *clientUC.Usecase) *ClientHandler { return &ClientHandler{uc: uc} }

func (h *ClientHandler) GetClassification(c echo.Context) error {
	dto, err := h.uc.GetClassification(c.Request().Context(), companyID(c), c.Param("client_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

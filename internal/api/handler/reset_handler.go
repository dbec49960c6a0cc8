package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirepipe/ats/internal/api/metrics"
	"github.com/hirepipe/ats/internal/core/ports"
)

type ResetHandler struct {
	service ports.ResetService
}

func NewResetHandler(service ports.ResetService) *ResetHandler {
	return &ResetHandler{service: service}
}

// Reset deletes all candidates, jobs and users.
//
// @Summary      Reset all data
// @Tags         admin
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /reset [post]
func (h *ResetHandler) Reset(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Reset(c.Request().Context(), actor); err != nil {
		return err
	}

	metrics.ResetsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "All data has been cleared"})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/despachos-api/internal/application/analytics"
	"github.com/jhoicas/despachos-api/internal/application/dto"
	"github.com/jhoicas/despachos-api/internal/domain"
)

// DashboardHandler maneja los endpoints del panel de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de despachos
// @Description  Totales por estado, proveedor y cliente, más las últimas pasadas.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/resumen [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		if domain.IsFetchError(err) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "FETCH_FAILED", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Taller-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve las tarjetas del dashboard.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_sales_revenue, completed_service_revenue,
// total_revenue, client_count, open_service_orders, generated_at).
// El resultado se reutiliza durante unos segundos; generated_at indica cuándo se calculó.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

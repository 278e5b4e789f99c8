package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// AIHandler maneja el asistente de diagnóstico de reparaciones.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// SuggestRepairSolutions godoc
// @Summary      Sugerir soluciones de reparación con IA
// @Description  Analiza el modelo del aparato y el problema relatado y devuelve soluciones posibles,
//               piezas necesarias y tiempo estimado. Requiere autenticación. Timeout interno de 20 s.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RepairDiagnosticsRequest  true  "phone_model y problem_description (obligatorios)"
// @Success      200   {object}  dto.RepairDiagnosticsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/ai/repair-diagnostics [post]
func (h *AIHandler) SuggestRepairSolutions(c *fiber.Ctx) error {
	var req dto.RepairDiagnosticsRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.uc.SuggestRepairSolutions(c.Context(), req)
	if err != nil {
		// Timeout del contexto → 408; proveedor sin API key → 503 (ver errorMappings).
		return respondError(c, err)
	}
	return c.JSON(result)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// ExpenseHandler maneja las despesas (gastos) del taller.
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar gasto
// @Description  status por defecto Pendente. Con status Pago y sin payment_date se usa la fecha actual.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	expense, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// List GET /api/expenses?q=  (vencimiento descendente)
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var q dto.SearchQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.List(c.Context(), q.Q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// GetByID GET /api/expenses/:id
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	expense, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if expense == nil {
		return notFound(c, "gasto")
	}
	return c.JSON(expense)
}

// Update PUT /api/expenses/:id
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	expense, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expense)
}

// ToggleStatus godoc
// @Summary      Alternar Pendente ↔ Pago
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true   "ID del gasto"
// @Param        body  body  dto.ToggleExpenseStatusRequest  false  "payment_date opcional (YYYY-MM-DD)"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id}/status [patch]
func (h *ExpenseHandler) ToggleStatus(c *fiber.Ctx) error {
	var in dto.ToggleExpenseStatusRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	expense, err := h.uc.ToggleStatus(c.Context(), c.Params("id"), in.PaymentDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expense)
}

// Delete DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

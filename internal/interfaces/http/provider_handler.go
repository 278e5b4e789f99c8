package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// ProviderHandler maneja el cadastro de proveedores.
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// Create POST /api/providers
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.ProviderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	provider, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(provider)
}

// List GET /api/providers?q=
func (h *ProviderHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/providers/:id
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	provider, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if provider == nil {
		return notFound(c, "proveedor")
	}
	return c.JSON(provider)
}

// Update PUT /api/providers/:id
func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	var in dto.ProviderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	provider, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(provider)
}

// Delete DELETE /api/providers/:id
func (h *ProviderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

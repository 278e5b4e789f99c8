package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/serviceorder"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ServiceOrderHandler maneja las ordens de serviço (OS).
type ServiceOrderHandler struct {
	uc *serviceorder.UseCase
}

// NewServiceOrderHandler construye el handler.
func NewServiceOrderHandler(uc *serviceorder.UseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir OS
// @Description  El número sale del contador "service-order" (el primero tras el offset 200 es 201).
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ServiceOrderRequest  true  "datos de la OS"
// @Success      201   {object}  dto.ServiceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/service-orders [post]
func (h *ServiceOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.ServiceOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List godoc
// @Summary      Listar OS
// @Description  Sin filtros: número descendente. Con filtros: fecha de apertura descendente.
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "YYYY-MM-DD"
// @Param        to          query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        status      query  string  false  "Aberta, Em andamento, Aguardando peça, Concluída, Entregue, Cancelada"
// @Param        technician  query  string  false  "parte del nombre del técnico"
// @Success      200         {object}  dto.ListResponse[dto.ServiceOrderResponse]
// @Router       /api/service-orders [get]
func (h *ServiceOrderHandler) List(c *fiber.Ctx) error {
	q := dto.ServiceOrderFilter{
		DateRangeQuery: dto.DateRangeQuery{From: c.Query("from"), To: c.Query("to")},
		Status:         c.Query("status"),
		Technician:     c.Query("technician"),
	}
	if err := validateStruct(q); err != nil {
		return respondError(c, err)
	}
	if q == (dto.ServiceOrderFilter{}) {
		list, err := h.uc.List(c.Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.NewListResponse(list))
	}

	from, to, err := bounds(q.DateRangeQuery)
	if err != nil {
		return respondError(c, err)
	}
	orders, err := h.uc.ListFiltered(c.Context(), serviceorder.Filter{
		From:       from,
		To:         to,
		Status:     q.Status,
		Technician: q.Technician,
	})
	if err != nil {
		return respondError(c, err)
	}
	list := lo.Map(orders, func(o *entity.ServiceOrder, _ int) dto.ServiceOrderResponse {
		return *serviceorder.ToResponse(o)
	})
	return c.JSON(dto.NewListResponse(list))
}

// GetByID GET /api/service-orders/:id
func (h *ServiceOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return notFound(c, "OS")
	}
	return c.JSON(order)
}

// Update PUT /api/service-orders/:id (número y fecha de apertura no cambian)
func (h *ServiceOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.ServiceOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Delete DELETE /api/service-orders/:id
func (h *ServiceOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

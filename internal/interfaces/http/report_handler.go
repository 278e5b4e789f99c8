package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/report"
)

// ReportHandler genera los relatórios.
type ReportHandler struct {
	svc *report.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type reportQuery struct {
	dto.DateRangeQuery
	Format        string `query:"format" validate:"omitempty,oneof=json csv pdf"`
	PaymentMethod string `query:"payment_method"`
	Status        string `query:"status"`
	Technician    string `query:"technician"`
	Stock         string `query:"stock" validate:"omitempty,oneof=all low out"`
}

// Generate godoc
// @Summary      Generar relatório
// @Description  Tipos: sales, service-orders, financial, inventory. format=csv|pdf devuelve un archivo adjunto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      text/csv
// @Produce      application/pdf
// @Param        type            path   string  true   "sales | service-orders | financial | inventory"
// @Param        format          query  string  false  "json | csv | pdf"
// @Param        from            query  string  false  "YYYY-MM-DD"
// @Param        to              query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        payment_method  query  string  false  "solo sales"
// @Param        status          query  string  false  "solo service-orders"
// @Param        technician      query  string  false  "solo service-orders"
// @Param        stock           query  string  false  "solo inventory: all | low | out"
// @Success      200  {object}  report.SalesReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{type} [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	q := reportQuery{
		DateRangeQuery: dto.DateRangeQuery{From: c.Query("from"), To: c.Query("to")},
		Format:         c.Query("format"),
		PaymentMethod:  c.Query("payment_method"),
		Status:         c.Query("status"),
		Technician:     c.Query("technician"),
		Stock:          c.Query("stock"),
	}
	if err := validateStruct(q); err != nil {
		return respondError(c, err)
	}
	from, to, err := bounds(q.DateRangeQuery)
	if err != nil {
		return respondError(c, err)
	}

	out, err := h.svc.Generate(c.Context(), report.Request{
		Type:          c.Params("type"),
		Format:        q.Format,
		From:          from,
		To:            to,
		PaymentMethod: q.PaymentMethod,
		Status:        q.Status,
		Technician:    q.Technician,
		Stock:         q.Stock,
	})
	if err != nil {
		return respondError(c, err)
	}
	if out.Body == nil {
		return c.JSON(out.Data)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	return c.Send(out.Body)
}

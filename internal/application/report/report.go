// Package report genera los reportes de ventas, OS, financiero e inventario
// en JSON, CSV o PDF.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/application/serviceorder"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Tipos de reporte.
const (
	TypeSales         = "sales"
	TypeServiceOrders = "service-orders"
	TypeFinancial     = "financial"
	TypeInventory     = "inventory"
)

// Formatos de salida.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Fuentes de datos (implementadas por los casos de uso de cada módulo).
type (
	SalesSource interface {
		ListByDateRange(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error)
	}
	ServiceOrderSource interface {
		ListFiltered(ctx context.Context, f serviceorder.Filter) ([]*entity.ServiceOrder, error)
	}
	ExpenseSource interface {
		ListByDateRange(ctx context.Context, from, to *time.Time) ([]*entity.Expense, error)
	}
	ProductSource interface {
		ListEntities(ctx context.Context, stock string) ([]*entity.Product, error)
	}
	EstablishmentSource interface {
		GetEstablishment(ctx context.Context) (*dto.EstablishmentResponse, error)
	}
)

// Request parámetros de un reporte. Los filtros que no aplican al tipo se ignoran.
type Request struct {
	Type          string
	Format        string
	From          *time.Time
	To            *time.Time
	PaymentMethod string
	Status        string
	Technician    string
	Stock         string
}

// Output resultado listo para responder. Data solo se completa en JSON; Body en CSV y PDF.
type Output struct {
	ContentType string
	Filename    string
	Data        any
	Body        []byte
}

// Service arma los reportes.
type Service struct {
	sales         SalesSource
	orders        ServiceOrderSource
	expenses      ExpenseSource
	products      ProductSource
	establishment EstablishmentSource
	renderer      ports.ReportRenderer
}

// NewService construye el servicio. renderer nil deshabilita el formato PDF.
func NewService(
	sales SalesSource,
	orders ServiceOrderSource,
	expenses ExpenseSource,
	products ProductSource,
	establishment EstablishmentSource,
	renderer ports.ReportRenderer,
) *Service {
	return &Service{
		sales:         sales,
		orders:        orders,
		expenses:      expenses,
		products:      products,
		establishment: establishment,
		renderer:      renderer,
	}
}

// built es un reporte ya calculado en sus tres representaciones.
type built struct {
	data  any
	rows  any // slice de structs con tags csv
	table ports.ReportTable
}

// Generate calcula el reporte pedido y lo codifica en el formato indicado.
func (s *Service) Generate(ctx context.Context, req Request) (*Output, error) {
	format := req.Format
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatCSV && format != FormatPDF {
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, req.Format)
	}

	var (
		b   *built
		err error
	)
	switch req.Type {
	case TypeSales:
		b, err = s.salesReport(ctx, req)
	case TypeServiceOrders:
		b, err = s.serviceOrdersReport(ctx, req)
	case TypeFinancial:
		b, err = s.financialReport(ctx, req)
	case TypeInventory:
		b, err = s.inventoryReport(ctx, req)
	default:
		return nil, fmt.Errorf("%w: tipo de reporte %q", domain.ErrInvalidInput, req.Type)
	}
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("relatorio-%s-%s", req.Type, time.Now().Format("20060102-150405"))
	switch format {
	case FormatCSV:
		var buf bytes.Buffer
		if err := gocsv.Marshal(b.rows, &buf); err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		return &Output{ContentType: "text/csv; charset=utf-8", Filename: filename + ".csv", Body: buf.Bytes()}, nil
	case FormatPDF:
		if s.renderer == nil {
			return nil, fmt.Errorf("%w: PDF no disponible", domain.ErrInvalidInput)
		}
		b.table.Subtitle = s.subtitle(ctx, req)
		body, err := s.renderer.RenderPDF(ctx, b.table)
		if err != nil {
			return nil, fmt.Errorf("pdf: %w", err)
		}
		return &Output{ContentType: "application/pdf", Filename: filename + ".pdf", Body: body}, nil
	default:
		return &Output{ContentType: "application/json", Data: b.data}, nil
	}
}

// subtitle: nombre del establecimiento y período.
func (s *Service) subtitle(ctx context.Context, req Request) string {
	out := periodLabel(req.From, req.To)
	if s.establishment == nil {
		return out
	}
	est, err := s.establishment.GetEstablishment(ctx)
	if err != nil || est == nil || est.BusinessName == "" {
		return out
	}
	if out == "" {
		return est.BusinessName
	}
	return est.BusinessName + " · " + out
}

func periodLabel(from, to *time.Time) string {
	const layout = "02/01/2006"
	switch {
	case from != nil && to != nil:
		return from.Format(layout) + " a " + to.Format(layout)
	case from != nil:
		return "desde " + from.Format(layout)
	case to != nil:
		return "até " + to.Format(layout)
	}
	return ""
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dto.DateLayout)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

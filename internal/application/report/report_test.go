package report_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/application/report"
	"github.com/jhoicas/Taller-api/internal/application/sales"
	"github.com/jhoicas/Taller-api/internal/application/serviceorder"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// fakeRenderer guarda la última tabla recibida.
type fakeRenderer struct {
	last ports.ReportTable
}

func (f *fakeRenderer) RenderPDF(_ context.Context, table ports.ReportTable) ([]byte, error) {
	f.last = table
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	svc      *report.Service
	renderer *fakeRenderer
}

func day(d int) time.Time { return time.Date(2024, 6, d, 10, 0, 0, 0, time.Local) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewDocumentStore()

	saleRepo := docrepo.NewSaleRepository(store)
	client := "Ana"
	for _, s := range []*entity.Sale{
		{ID: "s1", SaleNumber: 150, ClientName: &client, PaymentMethod: entity.PaymentPix, TotalAmount: decimal.NewFromInt(100), Status: entity.SaleStatusCompleted, CreatedAt: day(3)},
		{ID: "s2", SaleNumber: 151, PaymentMethod: entity.PaymentCash, TotalAmount: decimal.NewFromInt(50), Status: entity.SaleStatusCompleted, CreatedAt: day(4)},
		{ID: "s3", SaleNumber: 152, PaymentMethod: entity.PaymentPix, TotalAmount: decimal.NewFromInt(70), Status: entity.SaleStatusCancelled, CreatedAt: day(5)},
		{ID: "s4", SaleNumber: 153, PaymentMethod: entity.PaymentPix, TotalAmount: decimal.NewFromInt(999), Status: entity.SaleStatusCompleted, CreatedAt: day(25)},
	} {
		require.NoError(t, saleRepo.Create(ctx, s))
	}

	osRepo := docrepo.NewServiceOrderRepository(store)
	tech := "Carlos"
	for _, o := range []*entity.ServiceOrder{
		{ID: "o1", OSNumber: 201, OpeningDate: day(2), Status: entity.OSStatusCompleted, ClientName: "Pedro", DeviceBrandModel: "A52", ResponsibleTechnician: &tech, GrandTotalValue: decimal.NewFromInt(190)},
		{ID: "o2", OSNumber: 202, OpeningDate: day(6), Status: entity.OSStatusOpen, ClientName: "Luiza", DeviceBrandModel: "iPhone 11", GrandTotalValue: decimal.NewFromInt(80)},
	} {
		require.NoError(t, osRepo.Create(ctx, o))
	}

	expRepo := docrepo.NewExpenseRepository(store)
	paidAt := day(9)
	for _, e := range []*entity.Expense{
		{ID: "e1", Description: "Aluguel", Category: "Fixas", Amount: decimal.NewFromInt(60), DueDate: day(10), Status: entity.ExpenseStatusPaid, PaymentDate: &paidAt},
		{ID: "e2", Description: "Luz", Category: "Fixas", Amount: decimal.NewFromInt(40), DueDate: day(12), Status: entity.ExpenseStatusPending},
	} {
		require.NoError(t, expRepo.Create(ctx, e))
	}

	prodRepo := docrepo.NewProductRepository(store)
	for _, p := range []*entity.Product{
		{ID: "p1", Name: "Capinha", Price: decimal.NewFromInt(20), Stock: 10},
		{ID: "p2", Name: "Cabo", Price: decimal.NewFromInt(15), Stock: 2},
		{ID: "p3", Name: "Fone", Price: decimal.NewFromInt(50), Stock: 0},
	} {
		require.NoError(t, prodRepo.Create(ctx, p))
	}

	settings := usecase.NewSettingsUseCase(docrepo.NewSettingsRepository(store))
	_, err := settings.SaveEstablishment(ctx, dto.EstablishmentRequest{BusinessName: "Cell Fix"})
	require.NoError(t, err)

	renderer := &fakeRenderer{}
	svc := report.NewService(
		sales.NewUseCase(saleRepo, nil, nil),
		serviceorder.NewUseCase(osRepo, nil, nil),
		usecase.NewExpenseUseCase(expRepo),
		usecase.NewProductUseCase(prodRepo),
		settings,
		renderer,
	)
	return &fixture{svc: svc, renderer: renderer}
}

func june(t *testing.T) (from, to *time.Time) {
	t.Helper()
	from, to, err := dto.DateRangeQuery{From: "2024-06-01", To: "2024-06-20"}.Bounds()
	require.NoError(t, err)
	return from, to
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesReport_JSON(t *testing.T) {
	f := newFixture(t)
	from, to := june(t)

	out, err := f.svc.Generate(context.Background(), report.Request{Type: report.TypeSales, From: from, To: to})
	require.NoError(t, err)
	rep, ok := out.Data.(report.SalesReport)
	require.True(t, ok)
	require.Len(t, rep.Sales, 3)
	assert.Equal(t, int64(152), rep.Sales[0].SaleNumber)
	assert.Equal(t, 2, rep.CompletedCount)
	assert.Equal(t, 1, rep.CancelledCount)
	assert.True(t, decimal.NewFromInt(150).Equal(rep.Total), rep.Total.String())
}

func TestSalesReport_FiltroFormaDePagoEnCSV(t *testing.T) {
	f := newFixture(t)
	from, to := june(t)

	out, err := f.svc.Generate(context.Background(), report.Request{
		Type: report.TypeSales, Format: report.FormatCSV, From: from, To: to, PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", out.ContentType)
	assert.True(t, strings.HasSuffix(out.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(out.Body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "numero,data,cliente,pagamento,status,valor", lines[0])
	assert.Equal(t, "152,2024-06-05,,Pix,Cancelada,70.00", lines[1])
	assert.Equal(t, "150,2024-06-03,Ana,Pix,Concluída,100.00", lines[2])
}

func TestSalesReport_FormaDePagoInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Generate(context.Background(), report.Request{Type: report.TypeSales, PaymentMethod: "Boleto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// OS, financiero, inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceOrdersReport_PDFConEstablecimiento(t *testing.T) {
	f := newFixture(t)
	from, to := june(t)

	out, err := f.svc.Generate(context.Background(), report.Request{
		Type: report.TypeServiceOrders, Format: report.FormatPDF, From: from, To: to, Technician: "carlos",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, []byte("%PDF-fake"), out.Body)

	table := f.renderer.last
	assert.Equal(t, "Relatório de Ordens de Serviço", table.Title)
	assert.Equal(t, "Cell Fix · 01/06/2024 a 20/06/2024", table.Subtitle)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "#201", table.Rows[0][0])
	assert.Equal(t, [2]string{"Valor total das O.S.", "190.00"}, table.Summary[1])
}

func TestFinancialReport(t *testing.T) {
	f := newFixture(t)
	from, to := june(t)

	out, err := f.svc.Generate(context.Background(), report.Request{Type: report.TypeFinancial, From: from, To: to})
	require.NoError(t, err)
	rep := out.Data.(report.FinancialReport)
	assert.True(t, decimal.NewFromInt(150).Equal(rep.SalesRevenue))
	assert.True(t, decimal.NewFromInt(60).Equal(rep.PaidExpenses))
	assert.True(t, decimal.NewFromInt(90).Equal(rep.GrossProfit))
	assert.Equal(t, 2, rep.SalesCount)
	require.Len(t, rep.Expenses, 1)
	assert.Equal(t, "Aluguel", rep.Expenses[0].Description)
}

func TestInventoryReport_Filtros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.svc.Generate(ctx, report.Request{Type: report.TypeInventory})
	require.NoError(t, err)
	all := out.Data.(report.InventoryReport)
	require.Len(t, all.Products, 3)
	assert.Equal(t, int64(12), all.TotalUnits)
	assert.True(t, decimal.NewFromInt(230).Equal(all.TotalValue), all.TotalValue.String())

	out, err = f.svc.Generate(ctx, report.Request{Type: report.TypeInventory, Stock: "low"})
	require.NoError(t, err)
	low := out.Data.(report.InventoryReport)
	require.Len(t, low.Products, 1)
	assert.Equal(t, "Cabo", low.Products[0].Name)

	out, err = f.svc.Generate(ctx, report.Request{Type: report.TypeInventory, Stock: "out"})
	require.NoError(t, err)
	zero := out.Data.(report.InventoryReport)
	require.Len(t, zero.Products, 1)
	assert.Equal(t, "Fone", zero.Products[0].Name)
}

func TestGenerate_TipoYFormatoInvalidos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, report.Request{Type: "lucros"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Generate(ctx, report.Request{Type: report.TypeSales, Format: "xlsx"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

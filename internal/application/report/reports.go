package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/application/serviceorder"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

// SalesReport ventas del período; Total suma solo las concluidas.
type SalesReport struct {
	Sales          []SaleLine      `json:"sales"`
	CompletedCount int             `json:"completed_count"`
	CancelledCount int             `json:"cancelled_count"`
	Total          decimal.Decimal `json:"total"`
}

// SaleLine una venta del reporte.
type SaleLine struct {
	SaleNumber    int64           `json:"sale_number"`
	Date          time.Time       `json:"date"`
	ClientName    string          `json:"client_name"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
}

// SaleCSV fila CSV de ventas.
type SaleCSV struct {
	SaleNumber    string `csv:"numero"`
	Date          string `csv:"data"`
	ClientName    string `csv:"cliente"`
	PaymentMethod string `csv:"pagamento"`
	Status        string `csv:"status"`
	Total         string `csv:"valor"`
}

func (s *Service) salesReport(ctx context.Context, req Request) (*built, error) {
	if req.PaymentMethod != "" && !entity.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: forma de pago %q", domain.ErrInvalidInput, req.PaymentMethod)
	}
	sales, err := s.sales.ListByDateRange(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}

	rep := SalesReport{Sales: []SaleLine{}, Total: decimal.Zero}
	var rows []*SaleCSV
	table := ports.ReportTable{
		Title:   "Relatório de Vendas",
		Headers: []string{"Nº Venda", "Data", "Cliente", "Pagamento", "Status", "Valor"},
	}
	for _, sale := range sales {
		if req.PaymentMethod != "" && sale.PaymentMethod != req.PaymentMethod {
			continue
		}
		line := SaleLine{
			SaleNumber:    sale.SaleNumber,
			Date:          sale.CreatedAt,
			ClientName:    deref(sale.ClientName),
			PaymentMethod: sale.PaymentMethod,
			Status:        sale.Status,
			Total:         sale.TotalAmount,
		}
		rep.Sales = append(rep.Sales, line)
		if sale.Status == entity.SaleStatusCompleted {
			rep.CompletedCount++
			rep.Total = rep.Total.Add(sale.TotalAmount)
		} else {
			rep.CancelledCount++
		}
		row := &SaleCSV{
			SaleNumber:    itoa(line.SaleNumber),
			Date:          formatDate(line.Date),
			ClientName:    line.ClientName,
			PaymentMethod: line.PaymentMethod,
			Status:        line.Status,
			Total:         money(line.Total),
		}
		rows = append(rows, row)
		table.Rows = append(table.Rows, []string{
			"#" + row.SaleNumber, row.Date, row.ClientName, row.PaymentMethod, row.Status, row.Total,
		})
	}
	table.Summary = [][2]string{
		{"Vendas concluídas", itoa(int64(rep.CompletedCount))},
		{"Vendas canceladas", itoa(int64(rep.CancelledCount))},
		{"Total de vendas", money(rep.Total)},
	}
	return &built{data: rep, rows: nonNil(rows), table: table}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de servicio
// ──────────────────────────────────────────────────────────────────────────────

// ServiceOrdersReport OS del período con su valor total.
type ServiceOrdersReport struct {
	Orders []ServiceOrderLine `json:"orders"`
	Count  int                `json:"count"`
	Total  decimal.Decimal    `json:"total"`
}

// ServiceOrderLine una OS del reporte.
type ServiceOrderLine struct {
	OSNumber    int64           `json:"os_number"`
	OpeningDate time.Time       `json:"opening_date"`
	ClientName  string          `json:"client_name"`
	Device      string          `json:"device"`
	Technician  string          `json:"technician"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
}

// ServiceOrderCSV fila CSV de OS.
type ServiceOrderCSV struct {
	OSNumber    string `csv:"numero_os"`
	OpeningDate string `csv:"abertura"`
	ClientName  string `csv:"cliente"`
	Device      string `csv:"aparelho"`
	Technician  string `csv:"tecnico"`
	Status      string `csv:"status"`
	Total       string `csv:"valor_total"`
}

func (s *Service) serviceOrdersReport(ctx context.Context, req Request) (*built, error) {
	orders, err := s.orders.ListFiltered(ctx, serviceorder.Filter{
		From:       req.From,
		To:         req.To,
		Status:     req.Status,
		Technician: req.Technician,
	})
	if err != nil {
		return nil, err
	}

	rep := ServiceOrdersReport{Orders: []ServiceOrderLine{}, Total: decimal.Zero}
	var rows []*ServiceOrderCSV
	table := ports.ReportTable{
		Title:   "Relatório de Ordens de Serviço",
		Headers: []string{"Nº O.S.", "Abertura", "Cliente", "Aparelho", "Técnico", "Status", "Valor Total"},
	}
	for _, o := range orders {
		line := ServiceOrderLine{
			OSNumber:    o.OSNumber,
			OpeningDate: o.OpeningDate,
			ClientName:  o.ClientName,
			Device:      o.DeviceBrandModel,
			Technician:  deref(o.ResponsibleTechnician),
			Status:      o.Status,
			Total:       o.GrandTotalValue,
		}
		rep.Orders = append(rep.Orders, line)
		rep.Total = rep.Total.Add(o.GrandTotalValue)
		row := &ServiceOrderCSV{
			OSNumber:    itoa(line.OSNumber),
			OpeningDate: formatDate(line.OpeningDate),
			ClientName:  line.ClientName,
			Device:      line.Device,
			Technician:  line.Technician,
			Status:      line.Status,
			Total:       money(line.Total),
		}
		rows = append(rows, row)
		table.Rows = append(table.Rows, []string{
			"#" + row.OSNumber, row.OpeningDate, row.ClientName, row.Device, row.Technician, row.Status, row.Total,
		})
	}
	rep.Count = len(rep.Orders)
	table.Summary = [][2]string{
		{"Quantidade de O.S.", itoa(int64(rep.Count))},
		{"Valor total das O.S.", money(rep.Total)},
	}
	return &built{data: rep, rows: nonNil(rows), table: table}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Financiero
// ──────────────────────────────────────────────────────────────────────────────

// FinancialReport ventas concluidas contra gastos pagos del período.
type FinancialReport struct {
	SalesRevenue decimal.Decimal `json:"sales_revenue"`
	PaidExpenses decimal.Decimal `json:"paid_expenses"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	SalesCount   int             `json:"sales_count"`
	Expenses     []ExpenseLine   `json:"expenses"`
}

// ExpenseLine un gasto pagado.
type ExpenseLine struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	DueDate     time.Time       `json:"due_date"`
	PaymentDate *time.Time      `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
}

// FinancialCSV fila CSV: movimientos del período (entradas y salidas).
type FinancialCSV struct {
	Kind        string `csv:"tipo"`
	Date        string `csv:"data"`
	Description string `csv:"descricao"`
	Category    string `csv:"categoria"`
	Amount      string `csv:"valor"`
}

func (s *Service) financialReport(ctx context.Context, req Request) (*built, error) {
	sales, err := s.sales.ListByDateRange(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByDateRange(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}

	rep := FinancialReport{SalesRevenue: decimal.Zero, PaidExpenses: decimal.Zero, Expenses: []ExpenseLine{}}
	var rows []*FinancialCSV
	for _, sale := range sales {
		if sale.Status != entity.SaleStatusCompleted {
			continue
		}
		rep.SalesCount++
		rep.SalesRevenue = rep.SalesRevenue.Add(sale.TotalAmount)
		rows = append(rows, &FinancialCSV{
			Kind:        "entrada",
			Date:        formatDate(sale.CreatedAt),
			Description: fmt.Sprintf("Venda #%d", sale.SaleNumber),
			Category:    sale.PaymentMethod,
			Amount:      money(sale.TotalAmount),
		})
	}

	table := ports.ReportTable{
		Title:   "Relatório Financeiro",
		Headers: []string{"Descrição", "Categoria", "Vencimento", "Pagamento", "Valor"},
	}
	for _, e := range expenses {
		if e.Status != entity.ExpenseStatusPaid {
			continue
		}
		rep.PaidExpenses = rep.PaidExpenses.Add(e.Amount)
		rep.Expenses = append(rep.Expenses, ExpenseLine{
			Description: e.Description,
			Category:    e.Category,
			DueDate:     e.DueDate,
			PaymentDate: e.PaymentDate,
			Amount:      e.Amount,
		})
		paid := ""
		if e.PaymentDate != nil {
			paid = formatDate(*e.PaymentDate)
		}
		rows = append(rows, &FinancialCSV{
			Kind:        "saida",
			Date:        formatDate(e.DueDate),
			Description: e.Description,
			Category:    e.Category,
			Amount:      money(e.Amount.Neg()),
		})
		table.Rows = append(table.Rows, []string{e.Description, e.Category, formatDate(e.DueDate), paid, money(e.Amount)})
	}
	rep.GrossProfit = rep.SalesRevenue.Sub(rep.PaidExpenses)
	table.Summary = [][2]string{
		{"Total de entradas (vendas)", money(rep.SalesRevenue)},
		{"Total de saídas (despesas)", money(rep.PaidExpenses)},
		{"Lucro bruto", money(rep.GrossProfit)},
	}
	return &built{data: rep, rows: nonNil(rows), table: table}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

// InventoryReport productos según el filtro de stock.
type InventoryReport struct {
	Filter     string          `json:"filter"`
	Products   []InventoryLine `json:"products"`
	TotalUnits int64           `json:"total_units"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// InventoryLine un producto con el valor de su stock.
type InventoryLine struct {
	Name       string          `json:"name"`
	Stock      int64           `json:"stock"`
	Price      decimal.Decimal `json:"price"`
	StockValue decimal.Decimal `json:"stock_value"`
}

// InventoryCSV fila CSV de inventario.
type InventoryCSV struct {
	Name       string `csv:"produto"`
	Stock      string `csv:"estoque"`
	Price      string `csv:"preco"`
	StockValue string `csv:"valor_em_estoque"`
}

func (s *Service) inventoryReport(ctx context.Context, req Request) (*built, error) {
	filter := req.Stock
	if filter == "" {
		filter = "all"
	}
	products, err := s.products.ListEntities(ctx, filter)
	if err != nil {
		return nil, err
	}

	rep := InventoryReport{Filter: filter, Products: []InventoryLine{}, TotalValue: decimal.Zero}
	var rows []*InventoryCSV
	table := ports.ReportTable{
		Title:   "Relatório de Estoque",
		Headers: []string{"Produto", "Estoque", "Preço de Venda", "Valor em Estoque"},
	}
	for _, p := range products {
		units := p.Stock
		if units < 0 {
			units = 0
		}
		value := p.Price.Mul(decimal.NewFromInt(units))
		rep.Products = append(rep.Products, InventoryLine{Name: p.Name, Stock: p.Stock, Price: p.Price, StockValue: value})
		rep.TotalUnits += units
		rep.TotalValue = rep.TotalValue.Add(value)
		row := &InventoryCSV{Name: p.Name, Stock: itoa(p.Stock), Price: money(p.Price), StockValue: money(value)}
		rows = append(rows, row)
		table.Rows = append(table.Rows, []string{row.Name, row.Stock, row.Price, row.StockValue})
	}
	table.Summary = [][2]string{
		{"Unidades em estoque", itoa(rep.TotalUnits)},
		{"Valor total em estoque", money(rep.TotalValue)},
	}
	return &built{data: rep, rows: nonNil(rows), table: table}, nil
}

// nonNil evita que gocsv reciba un slice nil (solo encabezados).
func nonNil[T any](rows []*T) []*T {
	if rows == nil {
		return []*T{}
	}
	return rows
}

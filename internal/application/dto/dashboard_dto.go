package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO tarjetas del dashboard.
type DashboardSummaryDTO struct {
	TotalSalesRevenue       decimal.Decimal `json:"total_sales_revenue"`
	CompletedServiceRevenue decimal.Decimal `json:"completed_service_revenue"`
	TotalRevenue            decimal.Decimal `json:"total_revenue"`
	ClientCount             int             `json:"client_count"`
	OpenServiceOrders       int             `json:"open_service_orders"`
	GeneratedAt             time.Time       `json:"generated_at"`
}

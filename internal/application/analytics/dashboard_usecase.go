// Package analytics arma el resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Taller-api/internal/application/dto"
)

// DefaultSummaryTTL tiempo que se reutiliza un resumen ya calculado.
const DefaultSummaryTTL = 30 * time.Second

const summaryKey = "summary"

// SalesRevenue ingresos de ventas concluidas (sales.UseCase).
type SalesRevenue interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

// ServiceOrderStats agregados de OS (serviceorder.UseCase).
type ServiceOrderStats interface {
	CompletedRevenue(ctx context.Context) (decimal.Decimal, error)
	CountOpen(ctx context.Context) (int, error)
}

// ClientCounter total de clientes (usecase.ClientUseCase).
type ClientCounter interface {
	Count(ctx context.Context) (int, error)
}

// DashboardUseCase genera el resumen de tarjetas del dashboard.
type DashboardUseCase struct {
	sales   SalesRevenue
	orders  ServiceOrderStats
	clients ClientCounter
	cache   *gocache.Cache
}

// NewDashboardUseCase construye el caso de uso; ttl <= 0 usa DefaultSummaryTTL.
func NewDashboardUseCase(sales SalesRevenue, orders ServiceOrderStats, clients ClientCounter, ttl time.Duration) *DashboardUseCase {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &DashboardUseCase{
		sales:   sales,
		orders:  orders,
		clients: clients,
		cache:   gocache.New(ttl, 2*ttl),
	}
}

// GetSummary devuelve el resumen, desde caché si todavía es válido.
//
// Cuatro consultas en paralelo:
//  1. TotalRevenue       → TotalSalesRevenue
//  2. CompletedRevenue   → CompletedServiceRevenue
//  3. Count (clientes)   → ClientCount
//  4. CountOpen          → OpenServiceOrders
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if cached, ok := uc.cache.Get(summaryKey); ok {
		s := cached.(dto.DashboardSummaryDTO)
		return &s, nil
	}

	var out dto.DashboardSummaryDTO
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.sales.TotalRevenue(gctx)
		if err != nil {
			return fmt.Errorf("ingresos de ventas: %w", err)
		}
		out.TotalSalesRevenue = v
		return nil
	})
	g.Go(func() error {
		v, err := uc.orders.CompletedRevenue(gctx)
		if err != nil {
			return fmt.Errorf("ingresos de OS: %w", err)
		}
		out.CompletedServiceRevenue = v
		return nil
	})
	g.Go(func() error {
		n, err := uc.clients.Count(gctx)
		if err != nil {
			return fmt.Errorf("conteo de clientes: %w", err)
		}
		out.ClientCount = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.orders.CountOpen(gctx)
		if err != nil {
			return fmt.Errorf("OS abiertas: %w", err)
		}
		out.OpenServiceOrders = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.TotalRevenue = out.TotalSalesRevenue.Add(out.CompletedServiceRevenue)
	out.GeneratedAt = time.Now()
	uc.cache.SetDefault(summaryKey, out)
	return &out, nil
}

// Invalidate descarta el resumen en caché (después de un restore).
func (uc *DashboardUseCase) Invalidate() {
	uc.cache.Delete(summaryKey)
}

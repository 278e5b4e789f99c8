package analytics_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/analytics"
)

type fakeSources struct {
	calls   atomic.Int32
	salesRv decimal.Decimal
	osRv    decimal.Decimal
	open    int
	clients int
	err     error
}

func (f *fakeSources) TotalRevenue(context.Context) (decimal.Decimal, error) {
	f.calls.Add(1)
	return f.salesRv, f.err
}

func (f *fakeSources) CompletedRevenue(context.Context) (decimal.Decimal, error) {
	return f.osRv, nil
}

func (f *fakeSources) CountOpen(context.Context) (int, error) { return f.open, nil }

func (f *fakeSources) Count(context.Context) (int, error) { return f.clients, nil }

func TestGetSummary_SumaYCachea(t *testing.T) {
	ctx := context.Background()
	src := &fakeSources{
		salesRv: decimal.RequireFromString("100.50"),
		osRv:    decimal.RequireFromString("200"),
		open:    3,
		clients: 7,
	}
	uc := analytics.NewDashboardUseCase(src, src, src, time.Minute)

	s, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("300.50").Equal(s.TotalRevenue))
	assert.Equal(t, 3, s.OpenServiceOrders)
	assert.Equal(t, 7, s.ClientCount)

	_, err = uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load(), "la segunda llamada sale de la caché")

	uc.Invalidate()
	_, err = uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestGetSummary_PropagaErrores(t *testing.T) {
	boom := errors.New("db caída")
	src := &fakeSources{err: boom}
	uc := analytics.NewDashboardUseCase(src, src, src, 0)

	_, err := uc.GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}

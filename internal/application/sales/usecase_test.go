package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/sales"
	"github.com/jhoicas/Taller-api/internal/application/sequence"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// brokenIssuer simula un contador que no puede confirmar.
type brokenIssuer struct{}

func (brokenIssuer) Next(_ context.Context, name string) (int64, error) {
	return 0, &domain.SequenceError{Sequence: name, Err: errors.New("timeout")}
}

func newUseCase(t *testing.T) (*sales.UseCase, *docrepo.Repository[entity.Sale]) {
	t.Helper()
	store := memory.NewDocumentStore()
	repo := docrepo.NewSaleRepository(store)
	counter := sequence.NewCounter(store, sequence.DefaultConfig(), nil, nil)
	return sales.NewUseCase(repo, counter, nil), repo
}

func cart() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		ClientName: "Maria",
		Items: []dto.SaleItemRequest{
			{Name: "Capinha", Quantity: 2, Price: decimal.RequireFromString("25.50")},
			{Name: "Película", Quantity: 1, Price: decimal.RequireFromString("15")},
		},
		PaymentMethod: entity.PaymentPix,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NumeraYCalculaTotal(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	first, err := uc.Create(ctx, cart())
	require.NoError(t, err)
	assert.Equal(t, int64(150), first.SaleNumber)
	assert.True(t, decimal.RequireFromString("66").Equal(first.TotalAmount))
	assert.Equal(t, entity.SaleStatusCompleted, first.Status)
	require.NotNil(t, first.ClientName)
	assert.Equal(t, "Maria", *first.ClientName)
	assert.True(t, decimal.RequireFromString("51").Equal(first.Items[0].Subtotal))

	second, err := uc.Create(ctx, cart())
	require.NoError(t, err)
	assert.Equal(t, int64(151), second.SaleNumber)
}

func TestCreate_SinClienteQuedaNil(t *testing.T) {
	uc, _ := newUseCase(t)
	in := cart()
	in.ClientName = "  "
	s, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, s.ClientName)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCase(t)

	empty := cart()
	empty.Items = nil
	_, err := uc.Create(ctx, empty)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zeroQty := cart()
	zeroQty.Items[0].Quantity = 0
	_, err = uc.Create(ctx, zeroQty)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badPayment := cart()
	badPayment.PaymentMethod = "Cheque"
	_, err = uc.Create(ctx, badPayment)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreate_FallaDelContadorNoPersiste(t *testing.T) {
	ctx := context.Background()
	repo := docrepo.NewSaleRepository(memory.NewDocumentStore())
	uc := sales.NewUseCase(repo, brokenIssuer{}, nil)

	_, err := uc.Create(ctx, cart())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSequenceUnavailable)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado, cancelación e ingresos
// ──────────────────────────────────────────────────────────────────────────────

func TestList_NumeroDescendente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)
	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, cart())
		require.NoError(t, err)
	}
	list, err := uc.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{152, 151, 150}, []int64{list[0].SaleNumber, list[1].SaleNumber, list[2].SaleNumber})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)
	s, err := uc.Create(ctx, cart())
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, s.ID, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cancelled, err := uc.Cancel(ctx, s.ID, "cliente desistiu")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "cliente desistiu", *cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = uc.Cancel(ctx, s.ID, "de novo")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Cancel(ctx, "nope", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTotalRevenue_SoloConcluidas(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)
	a, err := uc.Create(ctx, cart())
	require.NoError(t, err)
	_, err = uc.Create(ctx, cart())
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, a.ID, "erro de digitação")
	require.NoError(t, err)

	total, err := uc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("66").Equal(total), total.String())
}

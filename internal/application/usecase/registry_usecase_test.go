package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestClientUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClientUseCase(docrepo.NewClientRepository(memory.NewDocumentStore()))

	created, err := uc.Create(ctx, dto.ClientRequest{Name: "  João Conceição ", Phone: "11 9999"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "João Conceição", created.Name)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "11 9999", got.Phone)

	updated, err := uc.Update(ctx, created.ID, dto.ClientRequest{Name: "João C.", Email: "joao@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "joao@x.com", updated.Email)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, uc.Delete(ctx, created.ID))
	got, err = uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientUseCase_NombreObligatorio(t *testing.T) {
	uc := usecase.NewClientUseCase(docrepo.NewClientRepository(memory.NewDocumentStore()))
	_, err := uc.Create(context.Background(), dto.ClientRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientUseCase_UpdateInexistente(t *testing.T) {
	uc := usecase.NewClientUseCase(docrepo.NewClientRepository(memory.NewDocumentStore()))
	_, err := uc.Update(context.Background(), "nope", dto.ClientRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUseCase_ListOrdenadoYBusquedaSinAcentos(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClientUseCase(docrepo.NewClientRepository(memory.NewDocumentStore()))
	for _, name := range []string{"Zélia", "ana", "Conceição Lima"} {
		_, err := uc.Create(ctx, dto.ClientRequest{Name: name})
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"ana", "Conceição Lima", "Zélia"}, []string{all[0].Name, all[1].Name, all[2].Name})

	found, err := uc.List(ctx, "CONCEICAO")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Conceição Lima", found[0].Name)

	n, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUseCase_FiltrosDeStock(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(docrepo.NewProductRepository(memory.NewDocumentStore()))
	for name, stock := range map[string]int64{"Película": 0, "Cabo USB": 3, "Capinha": 5, "Fone": 6} {
		_, err := uc.Create(ctx, dto.ProductRequest{Name: name, Price: decimal.NewFromInt(10), Stock: stock})
		require.NoError(t, err)
	}

	names := func(list []dto.ProductResponse) []string {
		out := make([]string, 0, len(list))
		for _, p := range list {
			out = append(out, p.Name)
		}
		return out
	}

	all, err := uc.List(ctx, "", usecase.StockFilterAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cabo USB", "Capinha", "Fone", "Película"}, names(all))

	low, err := uc.List(ctx, "", usecase.StockFilterLow)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cabo USB", "Capinha"}, names(low))

	out, err := uc.List(ctx, "", usecase.StockFilterOut)
	require.NoError(t, err)
	assert.Equal(t, []string{"Película"}, names(out))
	assert.True(t, out[0].OutOfStock)

	_, err = uc.List(ctx, "", "raro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(docrepo.NewProductRepository(memory.NewDocumentStore()))

	_, err := uc.Create(ctx, dto.ProductRequest{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.ProductRequest{Name: "X", Stock: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "nope", dto.ProductRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestProviderUseCase_BusquedaPorContacto(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProviderUseCase(docrepo.NewProviderRepository(memory.NewDocumentStore()))
	_, err := uc.Create(ctx, dto.ProviderRequest{Name: "Distribuidora Sul", ContactPerson: "Márcia"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.ProviderRequest{Name: "Peças Norte"})
	require.NoError(t, err)

	found, err := uc.List(ctx, "marcia")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Distribuidora Sul", found[0].Name)

	upd, err := uc.Update(ctx, found[0].ID, dto.ProviderRequest{Name: "Distribuidora Sul Ltda"})
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Sul Ltda", upd.Name)
	assert.Empty(t, upd.ContactPerson)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gastos
// ──────────────────────────────────────────────────────────────────────────────

func newExpenseUseCase() *usecase.ExpenseUseCase {
	return usecase.NewExpenseUseCase(docrepo.NewExpenseRepository(memory.NewDocumentStore()))
}

func TestExpenseUseCase_EstadoPorDefectoPendente(t *testing.T) {
	uc := newExpenseUseCase()
	e, err := uc.Create(context.Background(), dto.ExpenseRequest{
		Description: "Aluguel", Amount: decimal.NewFromInt(1200), Category: "Fixas", DueDate: "2024-06-10",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpenseStatusPending, e.Status)
	assert.Nil(t, e.PaymentDate)
}

func TestExpenseUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newExpenseUseCase()
	base := dto.ExpenseRequest{Description: "Luz", Amount: decimal.NewFromInt(90), Category: "Fixas", DueDate: "2024-06-10"}

	bad := base
	bad.Amount = decimal.Zero
	_, err := uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = base
	bad.DueDate = "10/06/2024"
	_, err = uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = base
	bad.Status = "Atrasado"
	_, err = uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpenseUseCase_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	uc := newExpenseUseCase()
	e, err := uc.Create(ctx, dto.ExpenseRequest{
		Description: "Internet", Amount: decimal.NewFromInt(100), Category: "Fixas", DueDate: "2024-06-05",
	})
	require.NoError(t, err)

	paid, err := uc.ToggleStatus(ctx, e.ID, "2024-06-04")
	require.NoError(t, err)
	assert.Equal(t, entity.ExpenseStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2024-06-04", paid.PaymentDate.Format(dto.DateLayout))

	pending, err := uc.ToggleStatus(ctx, e.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.ExpenseStatusPending, pending.Status)
	assert.Nil(t, pending.PaymentDate)

	// Sin fecha se usa el instante actual.
	paidNow, err := uc.ToggleStatus(ctx, e.ID, "")
	require.NoError(t, err)
	require.NotNil(t, paidNow.PaymentDate)
	assert.WithinDuration(t, time.Now(), *paidNow.PaymentDate, time.Minute)

	_, err = uc.ToggleStatus(ctx, "nope", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpenseUseCase_ListByDateRangeOrdenDescendente(t *testing.T) {
	ctx := context.Background()
	uc := newExpenseUseCase()
	for _, due := range []string{"2024-05-31", "2024-06-01", "2024-06-30", "2024-07-01"} {
		_, err := uc.Create(ctx, dto.ExpenseRequest{
			Description: "Conta " + due, Amount: decimal.NewFromInt(1), Category: "Geral", DueDate: due,
		})
		require.NoError(t, err)
	}

	from, to, err := dto.DateRangeQuery{From: "2024-06-01", To: "2024-06-30"}.Bounds()
	require.NoError(t, err)
	got, err := uc.ListByDateRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-06-30", got[0].DueDate.Format(dto.DateLayout))
	assert.Equal(t, "2024-06-01", got[1].DueDate.Format(dto.DateLayout))

	all, err := uc.List(ctx, "conta 2024-07")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Establecimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestSettingsUseCase_GuardarYLeer(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSettingsUseCase(docrepo.NewSettingsRepository(memory.NewDocumentStore()))

	empty, err := uc.GetEstablishment(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.BusinessName)
	assert.Nil(t, empty.UpdatedAt)

	_, err = uc.SaveEstablishment(ctx, dto.EstablishmentRequest{BusinessName: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SaveEstablishment(ctx, dto.EstablishmentRequest{BusinessName: "Cell Fix", BusinessPhone: "1133"})
	require.NoError(t, err)
	got, err := uc.GetEstablishment(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cell Fix", got.BusinessName)
	assert.Equal(t, "1133", got.BusinessPhone)
	assert.NotNil(t, got.UpdatedAt)
}

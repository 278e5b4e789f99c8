package serviceorder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/sequence"
	"github.com/jhoicas/Taller-api/internal/application/serviceorder"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

type brokenIssuer struct{}

func (brokenIssuer) Next(_ context.Context, name string) (int64, error) {
	return 0, &domain.SequenceError{Sequence: name, Err: errors.New("abortada")}
}

func newUseCase(t *testing.T) (*serviceorder.UseCase, *docrepo.Repository[entity.ServiceOrder]) {
	t.Helper()
	store := memory.NewDocumentStore()
	repo := docrepo.NewServiceOrderRepository(store)
	counter := sequence.NewCounter(store, sequence.DefaultConfig(), nil, nil)
	return serviceorder.NewUseCase(repo, counter, nil), repo
}

func request() dto.ServiceOrderRequest {
	return dto.ServiceOrderRequest{
		Status:                    entity.OSStatusOpen,
		ResponsibleTechnicianName: "Carlos Silva",
		ClientName:                "Pedro",
		ClientPhone:               "11 98888",
		DeviceType:                entity.DeviceCellphone,
		DeviceBrandModel:          "Samsung A52",
		ProblemReportedByClient:   "Tela trincada",
		ServiceManualValue:        decimal.RequireFromString("150"),
		AdditionalSoldProducts: []dto.SoldProductItemRequest{
			{Name: "Película", Quantity: 2, UnitPrice: decimal.RequireFromString("20")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y edición
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NumeraDesde201YCalculaTotal(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	o, err := uc.Create(ctx, request())
	require.NoError(t, err)
	assert.Equal(t, int64(201), o.OSNumber)
	assert.True(t, decimal.RequireFromString("190").Equal(o.GrandTotalValue), o.GrandTotalValue.String())
	require.Len(t, o.AdditionalSoldProducts, 1)
	assert.True(t, decimal.RequireFromString("40").Equal(o.AdditionalSoldProducts[0].TotalPrice))
	assert.Nil(t, o.ClientEmail)
	require.NotNil(t, o.ClientPhone)

	next, err := uc.Create(ctx, request())
	require.NoError(t, err)
	assert.Equal(t, int64(202), next.OSNumber)
}

func TestCreate_FallaDelContadorNoPersiste(t *testing.T) {
	ctx := context.Background()
	repo := docrepo.NewServiceOrderRepository(memory.NewDocumentStore())
	uc := serviceorder.NewUseCase(repo, brokenIssuer{}, nil)

	_, err := uc.Create(ctx, request())
	assert.ErrorIs(t, err, domain.ErrSequenceUnavailable)
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	cases := map[string]func(*dto.ServiceOrderRequest){
		"sin cliente":      func(r *dto.ServiceOrderRequest) { r.ClientName = " " },
		"sin aparato":      func(r *dto.ServiceOrderRequest) { r.DeviceBrandModel = "" },
		"sin problema":     func(r *dto.ServiceOrderRequest) { r.ProblemReportedByClient = "" },
		"estado inválido":  func(r *dto.ServiceOrderRequest) { r.Status = "Perdida" },
		"tipo inválido":    func(r *dto.ServiceOrderRequest) { r.DeviceType = "Drone" },
		"fecha inválida":   func(r *dto.ServiceOrderRequest) { r.DeliveryForecastDate = "amanhã" },
		"producto sin qty": func(r *dto.ServiceOrderRequest) { r.AdditionalSoldProducts[0].Quantity = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := request()
			mutate(&in)
			_, err := uc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdate_NumeroYAperturaInmutables(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)
	o, err := uc.Create(ctx, request())
	require.NoError(t, err)

	in := request()
	in.Status = entity.OSStatusCompleted
	in.TechnicalDiagnosis = "Display danificado"
	in.AdditionalSoldProducts = nil
	upd, err := uc.Update(ctx, o.ID, in)
	require.NoError(t, err)

	assert.Equal(t, o.OSNumber, upd.OSNumber)
	assert.True(t, o.OpeningDate.Equal(upd.OpeningDate))
	assert.Equal(t, entity.OSStatusCompleted, upd.Status)
	require.NotNil(t, upd.TechnicalDiagnosis)
	assert.True(t, decimal.RequireFromString("150").Equal(upd.GrandTotalValue))

	_, err = uc.Update(ctx, "nope", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados y agregados
// ──────────────────────────────────────────────────────────────────────────────

func TestList_NumeroDescendente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)
	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, request())
		require.NoError(t, err)
	}
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(203), list[0].OSNumber)
	assert.Equal(t, int64(201), list[2].OSNumber)
}

func TestListFiltered(t *testing.T) {
	ctx := context.Background()
	_, repo := newUseCase(t)
	uc := serviceorder.NewUseCase(repo, brokenIssuer{}, nil)

	day := func(d int) time.Time { return time.Date(2024, 6, d, 12, 0, 0, 0, time.Local) }
	tech := "Carlos"
	seed := []*entity.ServiceOrder{
		{ID: "a", OSNumber: 201, OpeningDate: day(1), Status: entity.OSStatusOpen, ResponsibleTechnician: &tech},
		{ID: "b", OSNumber: 202, OpeningDate: day(10), Status: entity.OSStatusCompleted, ResponsibleTechnician: &tech},
		{ID: "c", OSNumber: 203, OpeningDate: day(20), Status: entity.OSStatusCompleted},
	}
	for _, o := range seed {
		require.NoError(t, repo.Create(ctx, o))
	}

	from, to, err := dto.DateRangeQuery{From: "2024-06-05", To: "2024-06-20"}.Bounds()
	require.NoError(t, err)
	got, err := uc.ListFiltered(ctx, serviceorder.Filter{From: from, To: to})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	got, err = uc.ListFiltered(ctx, serviceorder.Filter{Status: entity.OSStatusCompleted, Technician: "carlos"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	_, err = uc.ListFiltered(ctx, serviceorder.Filter{Status: "Sumida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCountOpenYCompletedRevenue(t *testing.T) {
	ctx := context.Background()
	_, repo := newUseCase(t)
	uc := serviceorder.NewUseCase(repo, brokenIssuer{}, nil)

	statuses := map[string]string{
		"a": entity.OSStatusOpen,
		"b": entity.OSStatusInProgress,
		"c": entity.OSStatusWaitingPart,
		"d": entity.OSStatusCompleted,
		"e": entity.OSStatusDelivered,
		"f": entity.OSStatusCancelled,
	}
	for id, st := range statuses {
		require.NoError(t, repo.Create(ctx, &entity.ServiceOrder{
			ID: id, Status: st, GrandTotalValue: decimal.NewFromInt(100),
		}))
	}

	open, err := uc.CountOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, open)

	revenue, err := uc.CompletedRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(revenue), revenue.String())
}

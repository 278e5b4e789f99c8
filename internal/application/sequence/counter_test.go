package sequence_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/sequence"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
)

// failingStore simula un almacén cuya transacción nunca confirma.
type failingStore struct {
	*memory.DocumentStore
	err error
}

func (f *failingStore) RunTransaction(context.Context, func(repository.Transaction) error) error {
	return f.err
}

func newCounter(store repository.DocumentStore) *sequence.Counter {
	return sequence.NewCounter(store, sequence.DefaultConfig(), nil, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión secuencial
// ──────────────────────────────────────────────────────────────────────────────

func TestNext_PrimeraLlamadaDevuelveStartMasUno(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	c := newCounter(store)

	n, err := c.Next(ctx, sequence.Sale)
	require.NoError(t, err)
	assert.Equal(t, int64(150), n)

	n, err = c.Next(ctx, sequence.Sale)
	require.NoError(t, err)
	assert.Equal(t, int64(151), n)

	doc, err := store.Get(ctx, "systemSettings", "salesCounter")
	require.NoError(t, err)
	assert.Equal(t, int64(151), doc["lastSaleNumber"])
}

func TestNext_SecuenciasIndependientes(t *testing.T) {
	ctx := context.Background()
	c := newCounter(memory.NewDocumentStore())

	sale, err := c.Next(ctx, sequence.Sale)
	require.NoError(t, err)
	os, err := c.Next(ctx, sequence.ServiceOrder)
	require.NoError(t, err)
	sale2, err := c.Next(ctx, sequence.Sale)
	require.NoError(t, err)

	assert.Equal(t, int64(150), sale)
	assert.Equal(t, int64(201), os)
	assert.Equal(t, int64(151), sale2)
}

func TestNext_ConservaOtrosCamposDelDocumento(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	require.NoError(t, store.Set(ctx, "systemSettings", "salesCounter", document.Document{
		"lastSaleNumber": int64(500),
		"note":           "migrado",
	}))

	n, err := newCounter(store).Next(ctx, sequence.Sale)
	require.NoError(t, err)
	assert.Equal(t, int64(501), n)

	doc, _ := store.Get(ctx, "systemSettings", "salesCounter")
	assert.Equal(t, "migrado", doc["note"])
}

// Contadores restaurados desde un backup llegan como float64 si el JSON traía "150.0".
func TestNext_AceptaContadorFloatEntero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	require.NoError(t, store.Set(ctx, "systemSettings", "serviceOrdersCounter", document.Document{
		"lastOsNumber": float64(300),
	}))

	n, err := newCounter(store).Next(ctx, sequence.ServiceOrder)
	require.NoError(t, err)
	assert.Equal(t, int64(301), n)
}

func TestNext_OffsetConfigurable(t *testing.T) {
	cfg := sequence.DefaultConfig().WithStarts(999, 0)
	c := sequence.NewCounter(memory.NewDocumentStore(), cfg, nil, nil)

	n, err := c.Next(context.Background(), sequence.Sale)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), n)

	n, err = c.Next(context.Background(), sequence.ServiceOrder)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, int64(149), sequence.DefaultConfig().Sequences[sequence.Sale].Start,
		"WithStarts no debe modificar la configuración original")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestNext_ConcurrenteSinDuplicadosNiHuecos(t *testing.T) {
	ctx := context.Background()
	c := newCounter(memory.NewDocumentStore())
	const n = 50

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values []int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Next(ctx, sequence.Sale)
			assert.NoError(t, err)
			mu.Lock()
			values = append(values, v)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	require.Len(t, values, n)
	for i, v := range values {
		assert.Equal(t, int64(150+i), v)
	}
}

// Escenario: contador en 150, dos llamadas concurrentes → {151, 152} y queda en 152.
func TestNext_DosConcurrentesDesde150(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	require.NoError(t, store.Set(ctx, "systemSettings", "salesCounter", document.Document{"lastSaleNumber": int64(150)}))
	c := newCounter(store)

	var wg sync.WaitGroup
	got := make([]int64, 2)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Next(ctx, sequence.Sale)
			assert.NoError(t, err)
			got[i] = v
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int64{151, 152}, got)
	doc, _ := store.Get(ctx, "systemSettings", "salesCounter")
	assert.Equal(t, int64(152), doc["lastSaleNumber"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestNext_FallaDeTransaccionEsSequenceUnavailable(t *testing.T) {
	cause := errors.New("conexión perdida")
	store := &failingStore{DocumentStore: memory.NewDocumentStore(), err: cause}

	_, err := newCounter(store).Next(context.Background(), sequence.ServiceOrder)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSequenceUnavailable)
	assert.ErrorIs(t, err, cause)

	var seqErr *domain.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, sequence.ServiceOrder, seqErr.Sequence)

	doc, _ := store.Get(context.Background(), "systemSettings", "serviceOrdersCounter")
	assert.Nil(t, doc, "no debe quedar estado parcial")
}

func TestNext_SecuenciaDesconocida(t *testing.T) {
	_, err := newCounter(memory.NewDocumentStore()).Next(context.Background(), "invoice")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrSequenceUnavailable)
}

func TestNext_ContadorCorruptoFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	require.NoError(t, store.Set(ctx, "systemSettings", "salesCounter", document.Document{"lastSaleNumber": "abc"}))

	_, err := newCounter(store).Next(ctx, sequence.Sale)
	assert.ErrorIs(t, err, domain.ErrSequenceUnavailable)
}

// Package backup exporta e importa el conjunto completo de colecciones en el formato
// JSON de backup (timestamps etiquetados con __datatype__).
package backup

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// MaxBatchSize es el límite de operaciones por batch del almacén de origen de los datos.
const MaxBatchSize = 500

// Config define qué se respalda y cómo se restaura.
type Config struct {
	// Collections es la lista permitida, en el orden en que se borran y escriben.
	Collections []string
	// LegacyFields se eliminan de todos los objetos al restaurar.
	LegacyFields []string
	BatchSize    int
}

// DefaultConfig devuelve las colecciones de la aplicación.
func DefaultConfig() Config {
	return Config{
		Collections: []string{
			"clients", "products", "providers", "sales",
			"serviceOrders", "expenses", "systemSettings", "users",
		},
		LegacyFields: []string{"userId"},
		BatchSize:    MaxBatchSize,
	}
}

// Known indica si name está en la lista permitida.
func (c Config) Known(name string) bool {
	return lo.Contains(c.Collections, name)
}

// Engine ejecuta export e import sobre el almacén de documentos.
// No protege contra restores concurrentes; eso es responsabilidad del llamador.
type Engine struct {
	store    repository.DocumentStore
	cfg      Config
	log      *logger.Logger
	metrics  ports.Metrics
	observer Observer
}

// Option configura el Engine.
type Option func(*Engine)

// WithObserver registra un observador de las transiciones del restore.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// NewEngine construye el motor. log y metrics pueden ser nil.
func NewEngine(store repository.DocumentStore, cfg Config, log *logger.Logger, metrics ports.Metrics, opts ...Option) *Engine {
	if cfg.BatchSize <= 0 || cfg.BatchSize > MaxBatchSize {
		cfg.BatchSize = MaxBatchSize
	}
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	e := &Engine{store: store, cfg: cfg, log: log, metrics: metrics}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config devuelve la configuración efectiva.
func (e *Engine) Config() Config { return e.cfg }

// ──────────────────────────────────────────────────────────────────────────────
// Export
// ──────────────────────────────────────────────────────────────────────────────

// Export lee todas las colecciones permitidas y devuelve el bundle serializado.
// Si falla la lectura de una colección devuelve *domain.BackupError y ningún bundle.
func (e *Engine) Export(ctx context.Context) (document.Bundle, error) {
	start := time.Now()
	collections := make([]document.Collection, len(e.cfg.Collections))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range e.cfg.Collections {
		g.Go(func() error {
			snaps, err := e.store.List(gctx, name)
			if err != nil {
				return &domain.BackupError{Collection: name, Err: err}
			}
			docs := make(document.Collection, len(snaps))
			for _, s := range snaps {
				docs[s.ID] = document.EncodeDocument(s.Data)
			}
			collections[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.metrics.BackupExported(false, 0, time.Since(start))
		e.log.Error().Err(err).Msg("backup falló")
		return nil, err
	}

	bundle := make(document.Bundle, len(collections))
	total := 0
	for i, name := range e.cfg.Collections {
		bundle[name] = collections[i]
		total += len(collections[i])
	}
	e.metrics.BackupExported(true, total, time.Since(start))
	e.log.Info().Int("documents", total).Dur("elapsed", time.Since(start)).Msg("backup generado")
	return bundle, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Inspect
// ──────────────────────────────────────────────────────────────────────────────

// Summary describe un bundle validado sin tocar el almacén.
type Summary struct {
	Counts  map[string]int // documentos por colección conocida presente
	Unknown []string       // colecciones que se ignorarían
}

// Inspect valida el bundle igual que Import pero sin mutar nada.
func (e *Engine) Inspect(b document.Bundle) (*Summary, error) {
	prepared, unknown, err := e.prepare(b)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(prepared))
	for name, docs := range prepared {
		counts[name] = len(docs)
	}
	return &Summary{Counts: counts, Unknown: unknown}, nil
}

// prepare valida y deserializa todos los documentos de colecciones conocidas.
// Un bundle sin colecciones conocidas o con un timestamp inválido es ErrInvalidBackupFormat.
func (e *Engine) prepare(b document.Bundle) (map[string]document.Collection, []string, error) {
	var unknown []string
	known := 0
	for name := range b {
		if e.cfg.Known(name) {
			known++
		} else {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	if known == 0 {
		return nil, unknown, fmt.Errorf("%w: ninguna colección reconocida", domain.ErrInvalidBackupFormat)
	}

	opts := document.DecodeOptions{DropFields: e.cfg.LegacyFields}
	prepared := make(map[string]document.Collection, known)
	for _, name := range e.cfg.Collections {
		docs, ok := b[name]
		if !ok {
			continue
		}
		out := make(document.Collection, len(docs))
		for id, body := range docs {
			if body == nil {
				return nil, unknown, fmt.Errorf("%w: %s/%s: cuerpo null", domain.ErrInvalidBackupFormat, name, id)
			}
			decoded, err := document.DecodeDocument(body, opts)
			if err != nil {
				return nil, unknown, fmt.Errorf("%w: %s/%s: %v", domain.ErrInvalidBackupFormat, name, id, err)
			}
			out[id] = decoded
		}
		prepared[name] = out
	}
	return prepared, unknown, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Import
// ──────────────────────────────────────────────────────────────────────────────

// Import reemplaza el contenido de todas las colecciones permitidas por el del bundle.
// Fase 1 borra todas las colecciones permitidas (aunque falten en el bundle); fase 2
// escribe las presentes. No hay transacción global: los batches confirmados no se
// revierten si algo falla después.
func (e *Engine) Import(ctx context.Context, b document.Bundle) error {
	r := &restoreRun{engine: e, state: StateIdle}

	r.enter(Transition{State: StateValidating})
	prepared, unknown, err := e.prepare(b)
	if err != nil {
		return r.fail("", err)
	}

	for _, name := range e.cfg.Collections {
		ids, err := e.store.ListIDs(ctx, name)
		if err != nil {
			return r.fail(name, &domain.RestoreError{Collection: name, Phase: domain.RestorePhaseDelete, Err: err})
		}
		r.enter(Transition{State: StateDeleting, Collection: name, Documents: len(ids)})
		for _, chunk := range lo.Chunk(ids, e.cfg.BatchSize) {
			batch := e.store.NewBatch()
			for _, id := range chunk {
				batch.Delete(name, id)
			}
			if err := batch.Commit(ctx); err != nil {
				return r.fail(name, &domain.RestoreError{Collection: name, Phase: domain.RestorePhaseDelete, Err: err})
			}
		}
	}

	for _, name := range unknown {
		e.log.Warn().Str("collection", name).Msg("colección desconocida en el backup, se ignora")
	}

	for _, name := range e.cfg.Collections {
		docs, ok := prepared[name]
		if !ok {
			continue
		}
		ids := lo.Keys(docs)
		sort.Strings(ids)
		r.enter(Transition{State: StateWriting, Collection: name, Documents: len(ids)})
		for _, chunk := range lo.Chunk(ids, e.cfg.BatchSize) {
			batch := e.store.NewBatch()
			for _, id := range chunk {
				batch.Set(name, id, docs[id])
			}
			if err := batch.Commit(ctx); err != nil {
				return r.fail(name, &domain.RestoreError{Collection: name, Phase: domain.RestorePhaseWrite, Err: err})
			}
		}
	}

	r.enter(Transition{State: StateDone})
	return nil
}

// restoreRun lleva el estado de una ejecución de Import y lo publica.
type restoreRun struct {
	engine *Engine
	state  State
}

func (r *restoreRun) enter(t Transition) {
	if !canTransition(r.state, t.State) {
		r.engine.log.Error().Str("from", string(r.state)).Str("to", string(t.State)).Msg("transición de restore inválida")
		return
	}
	r.state = t.State
	r.publish(t)
}

func (r *restoreRun) fail(collection string, err error) error {
	r.enter(Transition{State: StateFailed, Collection: collection, Err: err})
	return err
}

func (r *restoreRun) publish(t Transition) {
	e := r.engine
	e.metrics.RestoreState(string(t.State), t.Collection)

	switch t.State {
	case StateFailed:
		e.log.Error().Err(t.Err).Str("collection", t.Collection).Msg("restore falló")
	case StateDone:
		e.log.Info().Msg("restore completado")
	default:
		e.log.Info().Str("state", string(t.State)).Str("collection", t.Collection).Int("documents", t.Documents).Msg("restore")
	}

	if e.observer != nil {
		e.observer.OnTransition(t)
	}
}

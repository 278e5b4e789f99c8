// Package sequence emite los números correlativos de ventas y órdenes de servicio.
package sequence

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Nombres de las secuencias conocidas.
const (
	Sale         = "sale"
	ServiceOrder = "service-order"
)

// Sequence ubica el contador de una secuencia: documento, campo entero y offset inicial.
// El primer número emitido es Start+1.
type Sequence struct {
	DocID string
	Field string
	Start int64
}

// Config describe la colección de contadores y las secuencias disponibles.
type Config struct {
	Collection string
	Sequences  map[string]Sequence
}

// DefaultConfig reproduce los documentos de contador existentes en los datos.
func DefaultConfig() Config {
	return Config{
		Collection: "systemSettings",
		Sequences: map[string]Sequence{
			Sale:         {DocID: "salesCounter", Field: "lastSaleNumber", Start: 149},
			ServiceOrder: {DocID: "serviceOrdersCounter", Field: "lastOsNumber", Start: 200},
		},
	}
}

// WithStarts devuelve una copia con los offsets iniciales reemplazados.
func (c Config) WithStarts(saleStart, serviceOrderStart int64) Config {
	out := Config{Collection: c.Collection, Sequences: make(map[string]Sequence, len(c.Sequences))}
	for name, seq := range c.Sequences {
		out.Sequences[name] = seq
	}
	if seq, ok := out.Sequences[Sale]; ok {
		seq.Start = saleStart
		out.Sequences[Sale] = seq
	}
	if seq, ok := out.Sequences[ServiceOrder]; ok {
		seq.Start = serviceOrderStart
		out.Sequences[ServiceOrder] = seq
	}
	return out
}

// Counter emite valores estrictamente crecientes por secuencia usando una transacción
// de lectura-modificación-escritura sobre el documento contador.
type Counter struct {
	store   repository.DocumentStore
	cfg     Config
	log     *logger.Logger
	metrics ports.Metrics
}

// NewCounter construye el contador. log y metrics pueden ser nil.
func NewCounter(store repository.DocumentStore, cfg Config, log *logger.Logger, metrics ports.Metrics) *Counter {
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Counter{store: store, cfg: cfg, log: log, metrics: metrics}
}

// Next devuelve el siguiente número de la secuencia. Si la transacción no confirma,
// devuelve *domain.SequenceError y el llamador no debe persistir el registro dependiente.
func (c *Counter) Next(ctx context.Context, name string) (int64, error) {
	seq, ok := c.cfg.Sequences[name]
	if !ok {
		return 0, fmt.Errorf("%w: secuencia desconocida %q", domain.ErrInvalidInput, name)
	}

	var next int64
	err := c.store.RunTransaction(ctx, func(tx repository.Transaction) error {
		doc, err := tx.Get(ctx, c.cfg.Collection, seq.DocID)
		if err != nil {
			return err
		}
		if doc == nil {
			next = seq.Start + 1
			return tx.Create(ctx, c.cfg.Collection, seq.DocID, document.Document{seq.Field: next})
		}
		current := seq.Start
		if raw, present := doc[seq.Field]; present && raw != nil {
			n, ok := document.AsInt(raw)
			if !ok {
				return fmt.Errorf("campo %s no es entero: %v", seq.Field, raw)
			}
			current = n
		}
		next = current + 1
		doc[seq.Field] = next
		return tx.Set(ctx, c.cfg.Collection, seq.DocID, doc)
	})
	if err != nil {
		c.metrics.SequenceIssued(name, false)
		c.log.Error().Err(err).Str("sequence", name).Msg("no se pudo emitir el número")
		return 0, &domain.SequenceError{Sequence: name, Err: err}
	}

	c.metrics.SequenceIssued(name, true)
	c.log.Debug().Str("sequence", name).Int64("value", next).Msg("número emitido")
	return next, nil
}

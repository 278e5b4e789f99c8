package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// RunTransaction ejecuta fn dentro de una transacción y la reintenta con backoff exponencial
// ante contención (40001, 40P01, 23505). Cualquier otro error aborta sin reintentar.
func (s *DocumentStore) RunTransaction(ctx context.Context, fn func(tx repository.Transaction) error) error {
	attempt := 0
	op := func() error {
		attempt++
		err := s.runOnce(ctx, fn)
		if err == nil || isRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		s.log.Debug().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("reintentando transacción")
	}
	return backoff.RetryNotify(op, s.newBackOff(ctx), notify)
}

func (s *DocumentStore) newBackOff(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 10 * time.Millisecond
	eb.MaxInterval = 500 * time.Millisecond
	eb.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(eb, s.maxRetries), ctx)
}

func (s *DocumentStore) runOnce(ctx context.Context, fn func(tx repository.Transaction) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&transaction{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// transaction adapta pgx.Tx al puerto repository.Transaction.
type transaction struct {
	tx pgx.Tx
}

// Get bloquea la fila (FOR UPDATE) hasta el fin de la transacción.
func (t *transaction) Get(ctx context.Context, collection, id string) (document.Document, error) {
	return getDocument(ctx, t.tx, collection, id, true)
}

// Create usa un INSERT simple: si otra transacción creó el documento primero, el 23505
// hace que RunTransaction reintente y la relectura ya ve la fila.
func (t *transaction) Create(ctx context.Context, collection, id string, doc document.Document) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx,
		`INSERT INTO documents (collection, id, data, updated_at) VALUES ($1, $2, $3::jsonb, now())`,
		collection, id, data)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		}
		return fmt.Errorf("create %s/%s: %w", collection, id, err)
	}
	return nil
}

func (t *transaction) Set(ctx context.Context, collection, id string, doc document.Document) error {
	return setDocument(ctx, t.tx, collection, id, doc)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// NewBatch crea un batch que se envía como un único pgx.Batch dentro de una transacción.
func (s *DocumentStore) NewBatch() repository.WriteBatch {
	return &writeBatch{store: s}
}

type batchOp struct {
	collection string
	id         string
	doc        document.Document
	delete     bool
}

type writeBatch struct {
	store *DocumentStore
	ops   []batchOp
}

func (b *writeBatch) Set(collection, id string, doc document.Document) {
	b.ops = append(b.ops, batchOp{collection: collection, id: id, doc: document.Clone(doc)})
}

func (b *writeBatch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{collection: collection, id: id, delete: true})
}

func (b *writeBatch) Len() int { return len(b.ops) }

// Commit aplica todas las operaciones o ninguna.
func (b *writeBatch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, op := range b.ops {
		if op.delete {
			batch.Queue(`DELETE FROM documents WHERE collection = $1 AND id = $2`, op.collection, op.id)
			continue
		}
		data, err := marshalDocument(op.doc)
		if err != nil {
			return fmt.Errorf("batch %s/%s: %w", op.collection, op.id, err)
		}
		batch.Queue(upsertSQL, op.collection, op.id, data)
	}

	tx, err := b.store.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("enviar batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	b.ops = nil
	return nil
}

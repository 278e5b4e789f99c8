// Package docrepo implementa los puertos de persistencia de entidades sobre el almacén
// de documentos. Los nombres de campo son los de los backups existentes.
package docrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Colecciones del almacén.
const (
	CollectionClients        = "clients"
	CollectionProducts       = "products"
	CollectionProviders      = "providers"
	CollectionSales          = "sales"
	CollectionServiceOrders  = "serviceOrders"
	CollectionExpenses       = "expenses"
	CollectionSystemSettings = "systemSettings"
	CollectionUsers          = "users"
	// CollectionAuthAccounts guarda credenciales; no forma parte del backup.
	CollectionAuthAccounts = "authAccounts"
)

// mapper traduce una entidad a documento y de vuelta.
type mapper[T any] struct {
	id      func(*T) string
	toDoc   func(*T) document.Document
	fromDoc func(id string, d document.Document) *T
}

// Repository es el CRUD genérico de una colección.
type Repository[T any] struct {
	store      repository.DocumentStore
	collection string
	m          mapper[T]
}

func newRepository[T any](store repository.DocumentStore, collection string, m mapper[T]) *Repository[T] {
	return &Repository[T]{store: store, collection: collection, m: m}
}

// Create persiste un documento nuevo; domain.ErrDuplicate si el ID ya existe.
func (r *Repository[T]) Create(ctx context.Context, item *T) error {
	id := r.m.id(item)
	if id == "" {
		return fmt.Errorf("%w: id vacío", domain.ErrInvalidInput)
	}
	err := r.store.RunTransaction(ctx, func(tx repository.Transaction) error {
		return tx.Create(ctx, r.collection, id, r.m.toDoc(item))
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", r.collection, err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	doc, err := r.store.Get(ctx, r.collection, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.collection, err)
	}
	if doc == nil {
		return nil, nil
	}
	return r.m.fromDoc(id, doc), nil
}

// List devuelve todos los documentos ordenados por ID; el orden de negocio lo aplica el caso de uso.
func (r *Repository[T]) List(ctx context.Context) ([]*T, error) {
	snaps, err := r.store.List(ctx, r.collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.collection, err)
	}
	out := make([]*T, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, r.m.fromDoc(s.ID, s.Data))
	}
	return out, nil
}

// Update reemplaza el documento; domain.ErrNotFound si no existe.
func (r *Repository[T]) Update(ctx context.Context, item *T) error {
	id := r.m.id(item)
	err := r.store.RunTransaction(ctx, func(tx repository.Transaction) error {
		current, err := tx.Get(ctx, r.collection, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		return tx.Set(ctx, r.collection, id, r.m.toDoc(item))
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update %s: %w", r.collection, err)
	}
	return nil
}

// Delete elimina el documento; domain.ErrNotFound si no existe.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	doc, err := r.store.Get(ctx, r.collection, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.collection, err)
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if err := r.store.Delete(ctx, r.collection, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.collection, err)
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/document"
)

// DocumentStore es el puerto del almacén de documentos (colección → id → cuerpo).
// Lo implementan el adaptador PostgreSQL (JSONB) y el adaptador en memoria.
type DocumentStore interface {
	// Get devuelve nil, nil si el documento no existe.
	Get(ctx context.Context, collection, id string) (document.Document, error)
	// List lee todos los documentos de la colección, ordenados por ID.
	List(ctx context.Context, collection string) ([]document.Snapshot, error)
	// ListIDs lee solo los IDs de la colección, ordenados.
	ListIDs(ctx context.Context, collection string) ([]string, error)
	// Set crea o reemplaza el documento completo.
	Set(ctx context.Context, collection, id string, doc document.Document) error
	// Update mezcla los campos de primer nivel; domain.ErrNotFound si no existe.
	Update(ctx context.Context, collection, id string, fields document.Document) error
	// Delete elimina el documento; no falla si no existe.
	Delete(ctx context.Context, collection, id string) error

	// RunTransaction ejecuta fn en una transacción aislada. Si fn devuelve error no se
	// persiste nada. Los reintentos por contención son internos del adaptador.
	RunTransaction(ctx context.Context, fn func(tx Transaction) error) error
	// NewBatch crea un grupo de escrituras que se confirma de forma atómica.
	NewBatch() WriteBatch
}

// Transaction expone las operaciones de lectura-modificación-escritura dentro de RunTransaction.
type Transaction interface {
	// Get lee y bloquea el documento hasta el fin de la transacción; nil si no existe.
	Get(ctx context.Context, collection, id string) (document.Document, error)
	// Create falla con domain.ErrConflict si el documento ya existe.
	Create(ctx context.Context, collection, id string, doc document.Document) error
	// Set crea o reemplaza el documento.
	Set(ctx context.Context, collection, id string, doc document.Document) error
}

// WriteBatch acumula escrituras; Commit las aplica todas o ninguna.
type WriteBatch interface {
	Set(collection, id string, doc document.Document)
	Delete(collection, id string)
	Len() int
	Commit(ctx context.Context) error
}

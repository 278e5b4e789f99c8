// Package memory implementa el almacén de documentos en memoria (STORAGE_DRIVER=memory y tests).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore guarda copias profundas de los documentos; nunca comparte mapas con el llamador.
// Las transacciones se serializan con un único mutex.
type DocumentStore struct {
	mu   sync.Mutex
	data map[string]map[string]document.Document
}

// NewDocumentStore crea un almacén vacío.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{data: make(map[string]map[string]document.Document)}
}

// Get devuelve nil, nil si el documento no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return document.Clone(s.data[collection][id]), nil
}

// List devuelve los documentos ordenados por ID.
func (s *DocumentStore) List(ctx context.Context, collection string) ([]document.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.data[collection]
	out := make([]document.Snapshot, 0, len(docs))
	for _, id := range sortedIDs(docs) {
		out = append(out, document.Snapshot{ID: id, Data: document.Clone(docs[id])})
	}
	return out, nil
}

// ListIDs devuelve los IDs ordenados.
func (s *DocumentStore) ListIDs(ctx context.Context, collection string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.data[collection]), nil
}

// Set crea o reemplaza el documento.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, doc document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, doc)
	return nil
}

// Update mezcla los campos de primer nivel.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.data[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range document.Clone(fields) {
		current[k] = v
	}
	return nil
}

// Delete elimina el documento si existe.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[collection], id)
	return nil
}

// RunTransaction mantiene el lock durante fn y aplica las escrituras solo si fn no falla.
// fn no debe llamar a otros métodos del almacén.
func (s *DocumentStore) RunTransaction(ctx context.Context, fn func(tx repository.Transaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{store: s, writes: make(map[docKey]document.Document)}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for k, doc := range tx.writes {
		s.put(k.collection, k.id, doc)
	}
	return nil
}

// NewBatch crea un batch vacío.
func (s *DocumentStore) NewBatch() repository.WriteBatch {
	return &writeBatch{store: s}
}

func (s *DocumentStore) put(collection, id string, doc document.Document) {
	docs, ok := s.data[collection]
	if !ok {
		docs = make(map[string]document.Document)
		s.data[collection] = docs
	}
	if doc == nil {
		doc = document.Document{}
	}
	docs[id] = document.Clone(doc)
}

func sortedIDs(docs map[string]document.Document) []string {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type docKey struct {
	collection string
	id         string
}

type transaction struct {
	store  *DocumentStore
	writes map[docKey]document.Document
}

func (t *transaction) lookup(collection, id string) (document.Document, bool) {
	if doc, ok := t.writes[docKey{collection, id}]; ok {
		return doc, true
	}
	doc, ok := t.store.data[collection][id]
	return doc, ok
}

func (t *transaction) Get(ctx context.Context, collection, id string) (document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, _ := t.lookup(collection, id)
	return document.Clone(doc), nil
}

func (t *transaction) Create(ctx context.Context, collection, id string, doc document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := t.lookup(collection, id); exists {
		return domain.ErrConflict
	}
	t.writes[docKey{collection, id}] = document.Clone(doc)
	return nil
}

func (t *transaction) Set(ctx context.Context, collection, id string, doc document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.writes[docKey{collection, id}] = document.Clone(doc)
	return nil
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

func (b *writeBatch) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	for _, op := range b.ops {
		if op.delete {
			delete(b.store.data[op.collection], op.id)
			continue
		}
		b.store.put(op.collection, op.id, op.doc)
	}
	b.ops = nil
	return nil
}

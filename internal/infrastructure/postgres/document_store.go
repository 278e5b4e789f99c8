package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
)`

// DocumentStore implementa el almacén de documentos sobre una tabla JSONB.
// Los timestamps se guardan etiquetados con el mismo códec del formato de backup.
type DocumentStore struct {
	pool       *pgxpool.Pool
	maxRetries uint64
	log        *logger.Logger
}

// NewDocumentStore construye el adaptador. maxRetries acota los reintentos por contención.
func NewDocumentStore(pool *pgxpool.Pool, maxRetries int, log *logger.Logger) *DocumentStore {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentStore{pool: pool, maxRetries: uint64(maxRetries), log: log}
}

// Migrate crea la tabla de documentos si no existe.
func (s *DocumentStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrar documents: %w", err)
	}
	return nil
}

// Get devuelve nil, nil si el documento no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (document.Document, error) {
	return getDocument(ctx, s.pool, collection, id, false)
}

// List lee la colección completa ordenada por ID.
func (s *DocumentStore) List(ctx context.Context, collection string) ([]document.Snapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var out []document.Snapshot
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		doc, err := unmarshalDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("documento %s/%s: %w", collection, id, err)
		}
		out = append(out, document.Snapshot{ID: id, Data: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return out, nil
}

// ListIDs lee solo los IDs de la colección.
func (s *DocumentStore) ListIDs(ctx context.Context, collection string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM documents WHERE collection = $1 ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("list ids %s: %w", collection, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list ids %s: %w", collection, err)
	}
	return ids, nil
}

// Set crea o reemplaza el documento.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, doc document.Document) error {
	return setDocument(ctx, s.pool, collection, id, doc)
}

// Update mezcla los campos de primer nivel (operador || de JSONB).
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields document.Document) error {
	data, err := marshalDocument(fields)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = now()
		 WHERE collection = $1 AND id = $2`, collection, id, data)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el documento si existe.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos por pool y tx
// ──────────────────────────────────────────────────────────────────────────────

func getDocument(ctx context.Context, q Querier, collection, id string, forUpdate bool) (document.Document, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var raw []byte
	err := q.QueryRow(ctx, query, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	doc, err := unmarshalDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("documento %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

const upsertSQL = `
	INSERT INTO documents (collection, id, data, updated_at)
	VALUES ($1, $2, $3::jsonb, now())
	ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

func setDocument(ctx context.Context, q Querier, collection, id string, doc document.Document) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, upsertSQL, collection, id, data); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func marshalDocument(doc document.Document) (string, error) {
	if doc == nil {
		doc = document.Document{}
	}
	b, err := json.Marshal(document.EncodeDocument(doc))
	if err != nil {
		return "", fmt.Errorf("serializar documento: %w", err)
	}
	return string(b), nil
}

func unmarshalDocument(raw []byte) (document.Document, error) {
	var doc document.Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return document.DecodeDocument(doc, document.DecodeOptions{})
}

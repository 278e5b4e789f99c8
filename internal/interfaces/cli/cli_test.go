package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/backup"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/application/sequence"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/infrastructure/archive"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	store       *memory.DocumentStore
	setups      int
	closed      int
	afterImport int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewDocumentStore()
	require.NoError(t, store.Set(ctx, "clients", "c1", document.Document{"nome": "Ana", "telefone": "11999990000"}))
	require.NoError(t, store.Set(ctx, "products", "p1", document.Document{"nome": "Tela", "estoque": int64(3)}))
	_, err := sequence.NewCounter(store, sequence.DefaultConfig(), logger.Nop(), nil).Next(ctx, sequence.Sale)
	require.NoError(t, err)
	return &testEnv{store: store}
}

func (e *testEnv) setup(ctx context.Context) (*Env, error) {
	e.setups++
	return &Env{
		Engine: backup.NewEngine(e.store, backup.DefaultConfig(), logger.Nop(), nil),
		Archive: func(ctx context.Context, dir string, s3 bool) (ports.BackupArchive, error) {
			if s3 {
				return nil, errors.New("S3 no configurado")
			}
			return archive.NewLocalArchive(dir), nil
		},
		AfterImport: func(ctx context.Context) error {
			e.afterImport++
			return nil
		},
		Close: func() { e.closed++ },
	}, nil
}

func run(t *testing.T, env *testEnv, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand(env.setup)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeBackup(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ──────────────────────────────────────────────────────────────────────────────
// export
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_EscribeArchivoLocal(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	out, err := run(t, env, "export", "--out", dir, "--format", "json")
	require.NoError(t, err)

	var res Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "exportado", res.Action)
	assert.Equal(t, 1, res.Counts["clients"])
	assert.Equal(t, 1, res.Counts["products"])
	assert.Equal(t, 1, res.Counts["systemSettings"])
	assert.Equal(t, 1, env.closed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^backup-taller-\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.json$`, entries[0].Name())

	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	defer f.Close()
	bundle, err := document.ParseBundle(f)
	require.NoError(t, err)
	assert.Len(t, bundle["clients"], 1)
}

func TestExport_ErrorDeDestino(t *testing.T) {
	env := newTestEnv(t)

	_, err := run(t, env, "export", "--s3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3")
}

func TestRoot_FormatoInvalido(t *testing.T) {
	env := newTestEnv(t)

	_, err := run(t, env, "export", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, 0, env.setups)
}

// ──────────────────────────────────────────────────────────────────────────────
// inspect
// ──────────────────────────────────────────────────────────────────────────────

func TestInspect_ResumenTexto(t *testing.T) {
	env := newTestEnv(t)
	path := writeBackup(t, `{"clients":{"a":{"nome":"X"},"b":{"nome":"Y"}},"logs":{"l1":{}}}`)

	out, err := run(t, env, "inspect", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "válido: "+path)
	assert.Regexp(t, `clients\s+2`, out)
	assert.Contains(t, out, "ignorada: logs")

	// inspect no modifica el almacén
	docs, err := env.store.List(context.Background(), "clients")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestInspect_ArchivoInvalido(t *testing.T) {
	env := newTestEnv(t)
	path := writeBackup(t, `no es json`)

	_, err := run(t, env, "inspect", "--file", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidBackupFormat)
	assert.Equal(t, 0, env.setups)
}

func TestInspect_SinArchivo(t *testing.T) {
	env := newTestEnv(t)

	_, err := run(t, env, "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file")
}

// ──────────────────────────────────────────────────────────────────────────────
// import
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_ExigeConfirmacion(t *testing.T) {
	env := newTestEnv(t)
	path := writeBackup(t, `{"clients":{}}`)

	_, err := run(t, env, "import", "--file", path)
	require.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, 0, env.setups)
}

func TestImport_ReemplazaColecciones(t *testing.T) {
	env := newTestEnv(t)
	path := writeBackup(t, `{"clients":{"n1":{"nome":"Nova"},"n2":{"nome":"Outra"}},"audit":{}}`)

	out, err := run(t, env, "import", "--file", path, "--yes", "--format", "json")
	require.NoError(t, err)

	var res Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "restaurado", res.Action)
	assert.Equal(t, map[string]int{"clients": 2}, res.Counts)
	assert.Equal(t, []string{"audit"}, res.Ignored)
	assert.Equal(t, 1, env.afterImport)

	ids, err := env.store.ListIDs(context.Background(), "clients")
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n2"}, ids)

	// las colecciones permitidas ausentes del archivo quedan vacías
	products, err := env.store.ListIDs(context.Background(), "products")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestImport_BundleInvalidoNoLlamaAfterImport(t *testing.T) {
	env := newTestEnv(t)
	path := writeBackup(t, `{"logs":{"x":{}}}`)

	_, err := run(t, env, "import", "--file", path, "--yes")
	require.ErrorIs(t, err, domain.ErrInvalidBackupFormat)
	assert.Equal(t, 0, env.afterImport)
}

func TestWriteResult_TotalEnTexto(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, writeResult(buf, FormatText, Result{
		Action:   "exportado",
		Location: "/tmp/x.json",
		Counts:   map[string]int{"sales": 2, "clients": 3},
	}))
	assert.Contains(t, buf.String(), "exportado: /tmp/x.json")
	assert.Regexp(t, `total\s+5`, buf.String())
}

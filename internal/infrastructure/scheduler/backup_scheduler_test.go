package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain/document"
)

type stubExporter struct {
	bundle document.Bundle
	err    error
	calls  int
}

func (s *stubExporter) Export(context.Context) (document.Bundle, error) {
	s.calls++
	return s.bundle, s.err
}

type memArchive struct {
	stored map[string][]byte
	err    error
}

func (m *memArchive) Store(_ context.Context, name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.stored == nil {
		m.stored = map[string][]byte{}
	}
	m.stored[name] = data
	return "mem://" + name, nil
}

// ─── Construcción ────────────────────────────────────────────────────────────

func TestNewBackupScheduler_ExpresionInvalida(t *testing.T) {
	_, err := NewBackupScheduler("cada tanto", &stubExporter{}, &memArchive{}, nil)
	assert.Error(t, err)
}

func TestNewBackupScheduler_Descriptor(t *testing.T) {
	s, err := NewBackupScheduler("@daily", &stubExporter{}, &memArchive{}, nil)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1)
}

// ─── RunOnce ─────────────────────────────────────────────────────────────────

func TestRunOnce_ExportaYArchiva(t *testing.T) {
	exp := &stubExporter{bundle: document.Bundle{"clients": {"c1": {"name": "Ana"}}}}
	arch := &memArchive{}
	s, err := NewBackupScheduler("0 3 * * *", exp, arch, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 3, 0, 0, 0, time.Local) }

	loc, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mem://backup-taller-2024-06-01_03-00-00.json", loc)

	var got map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(arch.stored["backup-taller-2024-06-01_03-00-00.json"], &got))
	assert.Equal(t, "Ana", got["clients"]["c1"]["name"])
}

func TestRunOnce_ErrorDeExportNoArchiva(t *testing.T) {
	boom := errors.New("sin conexión")
	arch := &memArchive{}
	s, err := NewBackupScheduler("@hourly", &stubExporter{err: boom}, arch, nil)
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, arch.stored)
}

func TestRunOnce_ErrorDeArchivo(t *testing.T) {
	boom := errors.New("disco lleno")
	s, err := NewBackupScheduler("@hourly", &stubExporter{bundle: document.Bundle{}}, &memArchive{err: boom}, nil)
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRunOnce_OmiteSiHayEjecucionEnCurso(t *testing.T) {
	exp := &stubExporter{bundle: document.Bundle{}}
	s, err := NewBackupScheduler("@hourly", exp, &memArchive{}, nil)
	require.NoError(t, err)
	s.running = true

	loc, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loc)
	assert.Zero(t, exp.calls)
}

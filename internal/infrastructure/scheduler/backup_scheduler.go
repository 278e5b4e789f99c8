// Package scheduler ejecuta el backup periódico con una expresión cron.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Taller-api/internal/application/backup"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// DefaultRunTimeout limita cada ejecución programada.
const DefaultRunTimeout = 5 * time.Minute

// Exporter genera el bundle completo (backup.Engine).
type Exporter interface {
	Export(ctx context.Context) (document.Bundle, error)
}

// BackupScheduler exporta y archiva según la expresión cron configurada.
type BackupScheduler struct {
	cron     *cron.Cron
	exporter Exporter
	archive  ports.BackupArchive
	log      *logger.Logger
	timeout  time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
}

// NewBackupScheduler valida la expresión (formato estándar de 5 campos o descriptores
// como @daily) y registra el job. No arranca hasta Start.
func NewBackupScheduler(spec string, exporter Exporter, archive ports.BackupArchive, log *logger.Logger) (*BackupScheduler, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &BackupScheduler{
		exporter: exporter,
		archive:  archive,
		log:      log.Component("backup-scheduler"),
		timeout:  DefaultRunTimeout,
		now:      time.Now,
	}
	s.cron = cron.New(cron.WithLocation(time.Local))
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("scheduler: expresión cron inválida %q: %w", spec, err)
	}
	return s, nil
}

// Start arranca el cron en segundo plano.
func (s *BackupScheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Info().Time("next", e.Next).Msg("backup programado")
	}
}

// Stop detiene el cron y espera a que termine la ejecución en curso o a que venza ctx.
func (s *BackupScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn().Msg("backup en curso no terminó antes del apagado")
	}
}

func (s *BackupScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error().Err(err).Msg("backup programado falló")
	}
}

// RunOnce exporta y archiva una vez. Si ya hay una ejecución en curso no hace nada
// y devuelve ubicación vacía.
func (s *BackupScheduler) RunOnce(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Warn().Msg("backup anterior aún en curso, se omite")
		return "", nil
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	bundle, err := s.exporter.Export(ctx)
	if err != nil {
		return "", err
	}
	data, err := backup.Marshal(bundle)
	if err != nil {
		return "", err
	}
	location, err := s.archive.Store(ctx, backup.FileName(s.now()), data)
	if err != nil {
		return location, fmt.Errorf("scheduler: archivar backup: %w", err)
	}
	s.log.Info().Str("location", location).Int("bytes", len(data)).Msg("backup archivado")
	return location, nil
}

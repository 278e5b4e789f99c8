// backupctl exporta, inspecciona e importa backups del taller directo contra el almacén.
//
// Uso:
//
//	backupctl export [--out ./backups] [--s3]
//	backupctl inspect --file backup-taller-2024-06-01_03-00-00.json
//	backupctl import --file backup-taller-2024-06-01_03-00-00.json --yes
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/backup"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/infrastructure/archive"
	"github.com/jhoicas/Taller-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Taller-api/internal/infrastructure/storage"
	"github.com/jhoicas/Taller-api/internal/interfaces/cli"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

var errS3NotConfigured = errors.New("--s3 requiere S3_BUCKET")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(setup).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setup(ctx context.Context) (*cli.Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// Logs a stderr; stdout queda para el resultado del comando.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	backupCfg := backup.DefaultConfig()
	backupCfg.BatchSize = cfg.Backup.BatchSize
	engine := backup.NewEngine(store, backupCfg, log.Component("backup"), nil)

	authUC := auth.NewAuthUseCase(
		docrepo.NewUserRepository(store),
		docrepo.NewAuthAccountRepository(store),
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		log.Component("auth"),
	)

	return &cli.Env{
		Engine: engine,
		Archive: func(ctx context.Context, dir string, s3 bool) (ports.BackupArchive, error) {
			targets := archive.Multi{archive.NewLocalArchive(dir)}
			if !s3 {
				return targets, nil
			}
			if !cfg.S3.Enabled() {
				return nil, errS3NotConfigured
			}
			s3Archive, err := archive.NewS3Archive(ctx, cfg.S3)
			if err != nil {
				return nil, err
			}
			return append(targets, s3Archive), nil
		},
		AfterImport: func(ctx context.Context) error {
			_, err := authUC.EnsureAdmin(ctx, auth.AdminSeed{
				Name:     cfg.Admin.Name,
				Email:    cfg.Admin.Email,
				Password: cfg.Admin.Password,
			})
			return err
		},
		Close: closeStore,
	}, nil
}

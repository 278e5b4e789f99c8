package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/Taller-api/internal/application/analytics"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/backup"
	"github.com/jhoicas/Taller-api/internal/application/report"
	"github.com/jhoicas/Taller-api/internal/application/sales"
	"github.com/jhoicas/Taller-api/internal/application/sequence"
	"github.com/jhoicas/Taller-api/internal/application/serviceorder"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	infraai "github.com/jhoicas/Taller-api/internal/infrastructure/ai"
	"github.com/jhoicas/Taller-api/internal/infrastructure/archive"
	"github.com/jhoicas/Taller-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/Taller-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Taller-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"

	_ "github.com/jhoicas/Taller-api/docs"
)

// @title                       Taller API
// @version                     1.0
// @description                 API de la asistencia técnica: ventas, órdenes de servicio, cadastros, reportes y backup.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de documentos")
	}
	defer closeStore()

	prom := metrics.New()

	// Núcleo: contador secuencial y motor de backup.
	counter := sequence.NewCounter(
		store,
		sequence.DefaultConfig().WithStarts(cfg.Sequence.SaleStart, cfg.Sequence.ServiceOrderStart),
		log.Component("sequence"),
		prom,
	)
	backupCfg := backup.DefaultConfig()
	backupCfg.BatchSize = cfg.Backup.BatchSize
	engine := backup.NewEngine(store, backupCfg, log.Component("backup"), prom)

	clientUC := usecase.NewClientUseCase(docrepo.NewClientRepository(store))
	productUC := usecase.NewProductUseCase(docrepo.NewProductRepository(store))
	providerUC := usecase.NewProviderUseCase(docrepo.NewProviderRepository(store))
	expenseUC := usecase.NewExpenseUseCase(docrepo.NewExpenseRepository(store))
	settingsUC := usecase.NewSettingsUseCase(docrepo.NewSettingsRepository(store))
	salesUC := sales.NewUseCase(docrepo.NewSaleRepository(store), counter, log.Component("sales"))
	ordersUC := serviceorder.NewUseCase(docrepo.NewServiceOrderRepository(store), counter, log.Component("service-orders"))
	dashboardUC := appanalytics.NewDashboardUseCase(salesUC, ordersUC, clientUC, appanalytics.DefaultSummaryTTL)

	// PDF de los relatórios
	reportSvc := report.NewService(salesUC, ordersUC, expenseUC, productUC, settingsUC, infrapdf.NewMarotoReportRenderer())

	llm, err := infraai.New(cfg.AI, log.Component("ai"))
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de IA")
	}
	aiUC := usecase.NewAIUseCase(llm, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)

	authUC := auth.NewAuthUseCase(
		docrepo.NewUserRepository(store),
		docrepo.NewAuthAccountRepository(store),
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		log.Component("auth"),
	)
	adminSeed := auth.AdminSeed{Name: cfg.Admin.Name, Email: cfg.Admin.Email, Password: cfg.Admin.Password}
	if _, err := authUC.EnsureAdmin(ctx, adminSeed); err != nil {
		log.Fatal().Err(err).Msg("administrador inicial")
	}

	// Backup programado (BACKUP_SCHEDULE vacío = desactivado)
	var backupScheduler *scheduler.BackupScheduler
	if cfg.Backup.Schedule != "" {
		targets := archive.Multi{archive.NewLocalArchive(cfg.Backup.Dir)}
		if cfg.S3.Enabled() {
			s3Archive, err := archive.NewS3Archive(ctx, cfg.S3)
			if err != nil {
				log.Fatal().Err(err).Msg("archivo S3")
			}
			targets = append(targets, s3Archive)
		}
		backupScheduler, err = scheduler.NewBackupScheduler(cfg.Backup.Schedule, engine, targets, log)
		if err != nil {
			log.Fatal().Err(err).Msg("backup programado")
		}
		backupScheduler.Start()
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		BodyLimitMB: cfg.HTTP.BodyLimitMB,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: "./docs/swagger.json",
		Metrics:     prom,
	}, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ClientUC:       clientUC,
		ProductUC:      productUC,
		ProviderUC:     providerUC,
		ExpenseUC:      expenseUC,
		SettingsUC:     settingsUC,
		SalesUC:        salesUC,
		ServiceOrderUC: ordersUC,
		DashboardUC:    dashboardUC,
		Reports:        reportSvc,
		AIUC:           aiUC,
		BackupEngine:   engine,
		// Un backup sin administradores dejaría la API sin acceso a /api/users.
		OnRestore: func(ctx context.Context) {
			if _, err := authUC.EnsureAdmin(ctx, adminSeed); err != nil {
				log.Error().Err(err).Msg("restablecer administrador tras restore")
			}
		},
		Log:       log,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if backupScheduler != nil {
		backupScheduler.Stop(shutdownCtx)
	}

	log.Info().Msg("aplicación detenida")
}

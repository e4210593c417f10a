package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/insumos-api/internal/application/audit"
	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/guard"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
	"github.com/jhoicas/insumos-api/internal/domain/stock"
	"github.com/jhoicas/insumos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/insumos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/insumos-api/internal/interfaces/http"
	"github.com/jhoicas/insumos-api/migrations"
	"github.com/jhoicas/insumos-api/pkg/config"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// runMigrations aplica las migraciones SQL embebidas con goose.
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	goose.SetBaseFS(migrations.FS)
	return goose.Up(sqlDB, ".")
}

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
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	usageRepo := postgres.NewUsageRecordRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	typeRepo := postgres.NewMaterialTypeRepository(pool)
	physicianRepo := postgres.NewPhysicianRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	dataLogRepo := postgres.NewDataLogRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockCfg := stock.Config{
		LowStockThreshold: cfg.Stock.LowStockThreshold,
		ExpiryWindowDays:  cfg.Stock.ExpiryWindowDays,
	}

	permGuard := guard.New(userRepo)
	auditLogger := audit.New(dataLogRepo, log, metrics.AuditAppendFailures)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	materialUC := usecase.NewMaterialUseCase(materialRepo, brandRepo, typeRepo, permGuard, auditLogger, stockCfg)
	batchUC := usecase.NewBatchUseCase(batchRepo, materialRepo, vendorRepo, documentRepo, permGuard, auditLogger)
	usageUC := usecase.NewUsageUseCase(txRunner, usageRepo, permGuard, auditLogger)
	vendorUC := usecase.NewVendorUseCase(vendorRepo, permGuard, auditLogger)
	brandUC := usecase.NewBrandUseCase(brandRepo, permGuard, auditLogger)
	typeUC := usecase.NewMaterialTypeUseCase(typeRepo, permGuard, auditLogger)
	physicianUC := usecase.NewPhysicianUseCase(physicianRepo, permGuard, auditLogger)
	documentUC := usecase.NewDocumentUseCase(documentRepo, permGuard, auditLogger)
	dataLogUC := usecase.NewDataLogUseCase(dataLogRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo, dataLogRepo, stockCfg)
	reportUC := usecase.NewReportUseCase(materialRepo, stockCfg)
	userUC := usecase.NewUserUseCase(userRepo, permGuard, auditLogger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Insumos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		MaterialUC:     materialUC,
		BatchUC:        batchUC,
		UsageUC:        usageUC,
		VendorUC:       vendorUC,
		BrandUC:        brandUC,
		MaterialTypeUC: typeUC,
		PhysicianUC:    physicianUC,
		DocumentUC:     documentUC,
		DataLogUC:      dataLogUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		UserUC:         userUC,
		JWTSecret:      cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/application/project"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("storage_driver", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Base de datos: repos de lectura + runner de transacciones sobre el mismo driver.
	var (
		repos    repository.Set
		txRunner ports.TxRunner
		closeDB  func()
	)
	switch cfg.DB.Driver {
	case config.DBDriverSQLite:
		db, err := sqlite.Open(cfg.DB.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DB.SQLitePath).Msg("apertura de SQLite")
		}
		repos, txRunner = sqlite.NewRepositorySet(db), sqlite.NewTxRunner(db)
		closeDB = func() { _ = sqlite.Close(db) }
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		repos, txRunner = postgres.NewRepositorySet(pool), postgres.NewTxRunner(pool)
		closeDB = pool.Close
	}
	defer closeDB()

	// Almacén de documentos.
	var store ports.DocumentStore
	switch cfg.Storage.Driver {
	case config.StorageDriverGCS:
		gcs, err := storage.NewGCSStore(ctx, cfg.Storage.GCSBucket, cfg.Storage.GCSPrefix)
		if err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Storage.GCSBucket).Msg("cliente GCS")
		}
		defer gcs.Close()
		store = gcs
	default:
		local, err := storage.NewLocalStore(cfg.Storage.Root)
		if err != nil {
			log.Fatal().Err(err).Str("root", cfg.Storage.Root).Msg("directorio de documentos")
		}
		store = local
	}

	customerUC := usecase.NewCustomerUseCase(repos.Customers, txRunner)
	projectUC := project.NewProjectUseCase(repos, txRunner, store, log.Component("projecten"))
	documentUC := project.NewDocumentUseCase(repos, txRunner, store, log.Component("documenten"))
	// PDF: werkbon para los installateurs
	workOrderUC := project.NewWorkOrderUseCase(repos, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimit(),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el fichero generado por swag)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Back-office API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		ProjectUC:   projectUC,
		DocumentUC:  documentUC,
		WorkOrderUC: workOrderUC,
		Log:         log,
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

package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	"github.com/jhoicas/catalogo-erp/internal/application/catalog"
	"github.com/jhoicas/catalogo-erp/internal/application/importer"
	"github.com/jhoicas/catalogo-erp/internal/application/inventory"
	infrapdf "github.com/jhoicas/catalogo-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-erp/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/catalogo-erp/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/catalogo-erp/internal/interfaces/http"
	"github.com/jhoicas/catalogo-erp/pkg/config"
	"github.com/jhoicas/catalogo-erp/pkg/logger"
)

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

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	colorRepo := postgres.NewColorCodeRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Importación: parser → identidad → categorías → imágenes → libro
	imageStore := storage.NewImageStore(afero.NewOsFs(), cfg.Storage)
	poster := importer.NewLedgerPoster(txRunner, cfg.Import.BatchSize)
	pipeline := importer.NewPipeline(
		importer.NewIdentityResolver(colorRepo, itemRepo),
		importer.NewCatalogReconciler(categoryRepo),
		importer.NewImageExtractor(imageStore),
		poster,
		log,
	)
	importSvc := importer.NewImporter(importer.DefaultShapes(), spreadsheet.NewOpener(), pipeline)

	registerMovementUC := inventory.NewRegisterMovementUseCase(poster, ledgerRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo, itemRepo)
	labelUC := catalog.NewLabelUseCase(ledgerRepo, itemRepo, infrapdf.NewLabelSheetGenerator())

	maxUpload := int64(cfg.Import.MaxUploadMB) << 20
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(maxUpload) + 1<<20,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 120,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catálogo ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Imágenes importadas bajo la ruta del prefijo público (ej. /erp/sku/...).
	var imagePath string
	if u, err := url.Parse(cfg.Storage.URLPrefix); err == nil && u.Path != "/" {
		imagePath = strings.TrimRight(u.Path, "/")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Importer:       importSvc,
		Movements:      registerMovementUC,
		Categories:     categoryUC,
		Labels:         labelUC,
		Images:         imageStore,
		ImagePath:      imagePath,
		JWTSecret:      cfg.JWT.Secret,
		TempDir:        cfg.Import.TempDir,
		MaxUploadBytes: maxUpload,
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

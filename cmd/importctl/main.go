package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"

	"github.com/jhoicas/catalogo-erp/internal/application/catalog"
	"github.com/jhoicas/catalogo-erp/internal/application/importer"
	infrapdf "github.com/jhoicas/catalogo-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-erp/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/catalogo-erp/internal/infrastructure/storage"
	"github.com/jhoicas/catalogo-erp/internal/interfaces/cli"
	"github.com/jhoicas/catalogo-erp/pkg/config"
	"github.com/jhoicas/catalogo-erp/pkg/jwt"
	"github.com/jhoicas/catalogo-erp/pkg/logger"
)

// backend reúne importador y etiquetas sobre un pool propio.
type backend struct {
	*importer.Importer
	*catalog.LabelUseCase
	pool *pgxpool.Pool
}

func (b *backend) Close() { b.pool.Close() }

func connect(ctx context.Context) (cli.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	itemRepo := postgres.NewItemRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	pipeline := importer.NewPipeline(
		importer.NewIdentityResolver(postgres.NewColorCodeRepository(pool), itemRepo),
		importer.NewCatalogReconciler(postgres.NewCategoryRepository(pool)),
		importer.NewImageExtractor(storage.NewImageStore(afero.NewOsFs(), cfg.Storage)),
		importer.NewLedgerPoster(postgres.NewTxRunner(pool), cfg.Import.BatchSize),
		log,
	)
	return &backend{
		Importer:     importer.NewImporter(importer.DefaultShapes(), spreadsheet.NewOpener(), pipeline),
		LabelUseCase: catalog.NewLabelUseCase(ledgerRepo, itemRepo, infrapdf.NewLabelSheetGenerator()),
		pool:         pool,
	}, nil
}

func issueToken(accountID int64, role string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return jwt.Generate(cfg.JWT.Secret, accountID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
}

func main() {
	if err := cli.NewRootCommand(importer.DefaultShapes(), connect, issueToken).Execute(); err != nil {
		os.Exit(1)
	}
}

package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/pkg/logger"
)

// State etapa de una ejecución de importación.
type State string

const (
	StateParsingRows        State = "parsing_rows"
	StateValidatingRecords  State = "validating_records"
	StateReconcilingCatalog State = "reconciling_catalog"
	StateResolvingImages    State = "resolving_images"
	StatePostingLedger      State = "posting_ledger"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// RunInput entrada de una ejecución.
type RunInput struct {
	Grid    Grid
	Shape   *SheetShape
	ActorID int64
}

// RunResult resultado de una ejecución. En error, State es StateFailed y FailedAt la etapa
// donde ocurrió.
type RunResult struct {
	RunID     string
	State     State
	FailedAt  State
	Records   int
	BucketID  int64
	NewMajors int
	NewMinors int
	NewColors int
	Err       error
}

// Pipeline orquesta una importación como una tarea secuencial:
// ParsingRows → ValidatingRecords → ReconcilingCatalog → ResolvingImages → PostingLedger → Done.
// Nada se escribe antes de ReconcilingCatalog.
type Pipeline struct {
	identity *IdentityResolver
	catalog  *CatalogReconciler
	images   *ImageExtractor
	poster   *LedgerPoster
	log      *logger.Logger
}

// NewPipeline construye el orquestador. log nil usa un logger nulo.
func NewPipeline(
	identity *IdentityResolver,
	catalog *CatalogReconciler,
	images *ImageExtractor,
	poster *LedgerPoster,
	log *logger.Logger,
) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{identity: identity, catalog: catalog, images: images, poster: poster, log: log}
}

// Run ejecuta la importación completa. Falla en el primer error sin reintentos;
// los errores de validación no dejan escrituras.
func (p *Pipeline) Run(ctx context.Context, in RunInput) (RunResult, error) {
	res := RunResult{RunID: uuid.NewString()}
	log := p.log.WithRun(res.RunID)

	enter := func(s State) {
		res.State = s
		log.Debug().Str("state", string(s)).Int("records", res.Records).Msg("importación: cambio de estado")
	}
	fail := func(err error) (RunResult, error) {
		res.FailedAt = res.State
		res.State = StateFailed
		res.Err = err
		log.Warn().Err(err).Str("failed_at", string(res.FailedAt)).Msg("importación fallida")
		return res, err
	}

	if in.Shape == nil || in.Grid == nil {
		return fail(&domain.ImportError{Kind: domain.KindInvalidStructure, Message: "hoja o formato no indicado"})
	}
	log.Info().Str("shape", in.Shape.Name).Int64("actor_id", in.ActorID).Int("rows", in.Grid.Rows()).
		Msg("importación iniciada")

	enter(StateParsingRows)
	records, err := NewParser(in.Shape).Parse(in.Grid)
	if err != nil {
		return fail(err)
	}
	res.Records = len(records)
	if len(records) == 0 {
		enter(StateDone)
		log.Info().Msg("importación sin filas")
		return res, nil
	}

	enter(StateValidatingRecords)
	plan, err := p.validate(ctx, in.Shape, records)
	if err != nil {
		return fail(err)
	}

	enter(StateReconcilingCatalog)
	if err := p.identity.Commit(ctx, plan); err != nil {
		return fail(err)
	}
	res.NewColors = len(plan.New)
	rec, err := p.catalog.Reconcile(ctx, in.Shape, records)
	if err != nil {
		return fail(err)
	}
	res.NewMajors, res.NewMinors = rec.NewMajors, rec.NewMinors

	enter(StateResolvingImages)
	if err := p.images.Persist(in.Shape, records); err != nil {
		return fail(err)
	}
	for _, r := range records {
		if !r.Ready(in.Shape.HasImages()) {
			return fail(domain.NewRowError(domain.KindUnresolvedReference, r.Row, "",
				"el registro no quedó completo (categoría, imágenes o código de barras)"))
		}
	}

	enter(StatePostingLedger)
	bucketID, err := p.poster.Post(ctx, records, in.ActorID, entity.ChannelExcel)
	if err != nil {
		return fail(err)
	}
	res.BucketID = bucketID

	enter(StateDone)
	log.Info().Int64("bucket_id", bucketID).Int("records", res.Records).
		Int("new_majors", res.NewMajors).Int("new_minors", res.NewMinors).Int("new_colors", res.NewColors).
		Msg("importación completada")
	return res, nil
}

// validate es la fase de sólo lectura: imágenes, colores, códigos de barras y categorías.
func (p *Pipeline) validate(ctx context.Context, shape *SheetShape, records []entity.SheetRecord) (*ColorPlan, error) {
	if err := p.images.Collect(shape, records); err != nil {
		return nil, err
	}
	plan, err := p.identity.ResolveColorCodes(ctx, records)
	if err != nil {
		return nil, err
	}
	if err := p.identity.AssignBarcodes(ctx, records); err != nil {
		return nil, err
	}
	if _, err := p.catalog.Plan(shape, records); err != nil {
		return nil, err
	}
	return plan, nil
}

// String resume el resultado para logs y CLI.
func (r RunResult) String() string {
	if r.State == StateFailed {
		return fmt.Sprintf("ejecución %s fallida en %s: %v", r.RunID, r.FailedAt, r.Err)
	}
	return fmt.Sprintf("ejecución %s: %d registros, movimiento %d", r.RunID, r.Records, r.BucketID)
}

package importer

import (
	"context"
	"io"

	"github.com/jhoicas/catalogo-erp/internal/domain"
)

// Importer punto de entrada para importar un archivo del disco (HTTP y CLI).
type Importer struct {
	shapes   *ShapeRegistry
	opener   GridOpener
	pipeline *Pipeline
}

// NewImporter construye el importador.
func NewImporter(shapes *ShapeRegistry, opener GridOpener, pipeline *Pipeline) *Importer {
	return &Importer{shapes: shapes, opener: opener, pipeline: pipeline}
}

// Shapes devuelve los formatos aceptados.
func (i *Importer) Shapes() []*SheetShape { return i.shapes.List() }

// ImportFile abre la hoja del formato indicado (nombre o código) y ejecuta la importación.
func (i *Importer) ImportFile(ctx context.Context, path, shapeKey string, actorID int64) (RunResult, error) {
	shape, ok := i.shapes.Lookup(shapeKey)
	if !ok {
		err := &domain.ImportError{Kind: domain.KindInvalidStructure, Message: "tipo de hoja desconocido: " + shapeKey}
		return RunResult{State: StateFailed, FailedAt: StateParsingRows, Err: err}, err
	}
	grid, err := i.opener.Open(path, shape.SheetIndex)
	if err != nil {
		if _, ok := domain.AsImportError(err); !ok {
			err = &domain.ImportError{Kind: domain.KindInvalidStructure, Message: "no se pudo abrir el archivo", Err: err}
		}
		return RunResult{State: StateFailed, FailedAt: StateParsingRows, Err: err}, err
	}
	if c, ok := grid.(io.Closer); ok {
		defer c.Close()
	}
	return i.pipeline.Run(ctx, RunInput{Grid: grid, Shape: shape, ActorID: actorID})
}

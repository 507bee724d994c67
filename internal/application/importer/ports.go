package importer

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

// Grid es la vista de sólo lectura de una hoja. Coordenadas 1-based.
type Grid interface {
	Rows() int
	Cell(row, col int) string
	Images(row, col int) ([]entity.RawImage, error)
}

// GridOpener abre la hoja indicada de un libro en disco.
// Si la hoja no existe devuelve un *domain.ImportError de tipo InvalidStructure.
type GridOpener interface {
	Open(path string, sheetIndex int) (Grid, error)
}

// ImageStore persiste imágenes y devuelve la URL pública correspondiente.
type ImageStore interface {
	Save(folder, name string, data []byte) (string, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cabecera y líneas del libro se crean juntas o no se crean.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

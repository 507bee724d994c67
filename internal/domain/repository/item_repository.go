package repository

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para productos del catálogo (DIP).
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	FindByBarcodes(ctx context.Context, barcodes []string) ([]*entity.Item, error)
	// InsertBatch inserta todos los productos en una sola sentencia y asigna los IDs generados.
	InsertBatch(ctx context.Context, items []*entity.Item) error
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LedgerRepository define el puerto del libro de inventario. Sólo inserta: cabeceras y líneas
// son inmutables.
type LedgerRepository interface {
	InsertBucket(ctx context.Context, bucket *entity.LedgerBucket) error
	InsertLines(ctx context.Context, lines []*entity.LedgerLine) error
	GetBucket(ctx context.Context, id int64) (*entity.LedgerBucket, error)
	ListLines(ctx context.Context, bucketID int64) ([]*entity.LedgerLine, error)
	// Balance devuelve la suma de cantidades de un producto.
	Balance(ctx context.Context, itemID int64) (decimal.Decimal, error)
}

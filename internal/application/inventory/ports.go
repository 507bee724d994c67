package inventory

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/application/importer"
	"github.com/shopspring/decimal"
)

// MovementPoster registra ajustes manuales en el libro (lo implementa importer.LedgerPoster).
type MovementPoster interface {
	PostMovement(ctx context.Context, in importer.MovementInput) (int64, error)
}

// BalanceReader consulta el saldo derivado de un producto.
type BalanceReader interface {
	Balance(ctx context.Context, itemID int64) (decimal.Decimal, error)
}

package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-erp/internal/application/importer"
	"github.com/jhoicas/catalogo-erp/internal/domain"
)

// RegisterMovementUseCase registra ajustes manuales de un producto y consulta saldos.
// No valida existencias suficientes: el saldo es la suma del libro y puede quedar negativo.
type RegisterMovementUseCase struct {
	poster   MovementPoster
	balances BalanceReader
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(poster MovementPoster, balances BalanceReader) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{poster: poster, balances: balances}
}

// RegisterMovement registra una entrada o salida; devuelve el id de la cabecera.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in importer.MovementInput) (int64, error) {
	if in.ActorID <= 0 {
		return 0, domain.ErrUnauthorized
	}
	return uc.poster.PostMovement(ctx, in)
}

// Balance devuelve el saldo actual del producto.
func (uc *RegisterMovementUseCase) Balance(ctx context.Context, itemID int64) (decimal.Decimal, error) {
	if itemID <= 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return uc.balances.Balance(ctx, itemID)
}

package inventory

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/application/dto"
	"github.com/jhoicas/catalogo-erp/internal/application/importer"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, accountID int64, in dto.RegisterMovementRequest) (int64, error) {
	return uc.RegisterMovement(ctx, importer.MovementInput{
		ActorID:   accountID,
		ItemID:    in.ItemID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Channel:   in.Channel,
	})
}

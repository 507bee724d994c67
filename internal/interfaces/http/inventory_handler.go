package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-erp/internal/application/dto"
)

// MovementService ajustes manuales y saldos (implementado por inventory.RegisterMovementUseCase).
type MovementService interface {
	RegisterMovementFromRequest(ctx context.Context, accountID int64, in dto.RegisterMovementRequest) (int64, error)
	Balance(ctx context.Context, itemID int64) (decimal.Decimal, error)
}

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario (protegido).
type InventoryHandler struct {
	svc MovementService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc MovementService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, direction (in|out), quantity, channel"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == 0 {
		return unauthorized(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	bucketID, err := h.svc.RegisterMovementFromRequest(c.Context(), accountID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{BucketID: bucketID})
}

// Balance godoc
// @Summary      Saldo de un producto
// @Description  Suma de todas las líneas del libro del producto.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/balance [get]
func (h *InventoryHandler) Balance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	bal, err := h.svc.Balance(c.Context(), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ItemID: int64(id), Balance: bal})
}

package inventory

import (
	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
)

// SignedQuantity convierte una cantidad positiva en el delta del libro según la dirección:
// las salidas se registran negativas.
func SignedQuantity(direction string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	switch direction {
	case entity.DirectionIn:
		return quantity, nil
	case entity.DirectionOut:
		return -quantity, nil
	}
	return 0, domain.ErrInvalidInput
}

// LineTotal calcula el total extendido de una línea: costo unitario × cantidad.
func LineTotal(unitCost, quantity int64) int64 {
	return unitCost * quantity
}

// NewLine arma una línea del libro con el costo capturado en el momento del registro.
func NewLine(itemID, quantity, unitCost int64) *entity.LedgerLine {
	return &entity.LedgerLine{
		ItemID:   itemID,
		Quantity: quantity,
		UnitCost: unitCost,
		Total:    LineTotal(unitCost, quantity),
	}
}

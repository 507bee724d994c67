package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ItemID    int64  `json:"item_id"`
	Direction string `json:"direction"` // "in" | "out"
	Quantity  int64  `json:"quantity"`
	Channel   string `json:"channel,omitempty"`
}

// RegisterMovementResponse respuesta del registro manual.
type RegisterMovementResponse struct {
	BucketID int64 `json:"bucket_id"`
}

// BalanceResponse saldo derivado de un producto.
type BalanceResponse struct {
	ItemID  int64           `json:"item_id"`
	Balance decimal.Decimal `json:"balance"`
}

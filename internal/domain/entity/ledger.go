package entity

import "time"

// Direcciones de un movimiento de inventario.
const (
	DirectionIn  = "in"  // entrada
	DirectionOut = "out" // salida
)

// Canales de origen de un movimiento.
const (
	ChannelExcel = "excel" // importación masiva
	ChannelForm  = "form"  // ajuste manual de un producto
)

// LedgerBucket es la cabecera de un movimiento atómico: agrupa una o más líneas.
// Inmutable una vez creado.
type LedgerBucket struct {
	ID        int64
	AccountID int64
	Direction string
	Channel   string
	CreatedAt time.Time
}

// LedgerLine es una línea del libro: delta de cantidad de un producto con el costo
// unitario vigente al momento del registro (no se relee del catálogo después).
type LedgerLine struct {
	ID       int64
	BucketID int64
	ItemID   int64
	Quantity int64 // positivo entrada, negativo salida
	UnitCost int64
	Total    int64 // UnitCost * Quantity
}

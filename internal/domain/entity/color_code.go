package entity

import "time"

// ColorCode asocia un color normalizado a un código entero pequeño, asignado
// de forma monótona la primera vez que aparece. Se usa al derivar códigos de barras.
type ColorCode struct {
	ID        int64
	Color     string
	Value     int
	CreatedAt time.Time
}

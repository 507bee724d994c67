package entity

import "time"

// Item representa un producto almacenable del catálogo.
// Barcode es la identidad del producto: única e inmutable una vez asignada.
// El stock no se guarda aquí; se deriva sumando las líneas del libro de inventario.
type Item struct {
	ID        int64
	Images    []string
	Name      string
	Size      string
	Color     string
	MajorID   int64
	MinorID   int64
	Unit      string
	Price     int64 // unidades monetarias menores (centavos)
	Cost      int64 // unidades monetarias menores (centavos)
	Notes     string
	Number    string
	Barcode   string
	CreatedAt time.Time
}

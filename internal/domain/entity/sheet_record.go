package entity

// RawImage es una imagen embebida en la hoja, aún sin persistir.
type RawImage struct {
	Data      []byte
	Extension string
}

// SheetRecord es el borrador de una fila importada. Vive sólo durante una ejecución.
type SheetRecord struct {
	Row            int    // fila de la hoja (1-based)
	GroupKey       string // agrupa filas del mismo producto (imágenes, categorías)
	RawImages      []RawImage
	Images         []string // URLs una vez persistidas
	Name           string
	Color          string
	ColorCode      int
	Size           string
	Unit           string
	Major          string
	Minor          string
	MajorID        int64
	MinorID        int64
	Number         string
	Barcode        string
	BarcodeDerived bool
	Cost           int64
	Price          int64
	Notes          string
	Quantity       int64
}

// Ready indica si el registro puede importarse: categorías resueltas, identidad asignada
// e imágenes resueltas (cuando la hoja las exige).
func (r *SheetRecord) Ready(needsImages bool) bool {
	if r.MajorID == 0 || r.MinorID == 0 || r.Barcode == "" {
		return false
	}
	return !needsImages || len(r.Images) > 0
}

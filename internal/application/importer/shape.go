package importer

import (
	"fmt"
	"sort"
	"strings"
)

// Field identifica el campo de SheetRecord que alimenta una columna.
type Field string

const (
	FieldImages   Field = "images"
	FieldNumber   Field = "number"
	FieldSize     Field = "size"
	FieldName     Field = "name"
	FieldMajor    Field = "major"
	FieldMinor    Field = "minor"
	FieldColor    Field = "color"
	FieldBarcode  Field = "barcode"
	FieldQuantity Field = "quantity"
	FieldUnit     Field = "unit"
	FieldCost     Field = "cost"
	FieldPrice    Field = "price"
	FieldNotes    Field = "notes"
)

// ColumnSpec describe una columna de la hoja (índices 1-based).
type ColumnSpec struct {
	Index        int
	Field        Field
	Label        string
	Required     bool
	CarryForward bool  // celdas combinadas: hereda el valor de la fila anterior si está vacía
	Scale        int64 // columnas numéricas: factor de escala a entero (0 = texto)
}

// SheetShape es la descripción declarativa de un formato de hoja de proveedor.
// Es un valor inmutable: el parser no guarda estado en ella.
type SheetShape struct {
	Name        string
	Code        string // discriminador heredado del formulario de carga ("0", "1", ...)
	Description string
	SheetIndex  int // hoja del libro (0-based)
	FirstRow    int // primera fila de datos (1-based)
	Columns     []ColumnSpec
	// Discriminators son los campos cuyo vacío/cero simultáneo marca el fin de los datos.
	Discriminators []Field
	QuantityField  Field
	ImageColumn    int    // 0 si el formato no trae imágenes
	ImageFolder    string // carpeta de almacenamiento de las imágenes
	GroupBy        Field
	// EndOnAnyDiscriminator adelanta el fin de datos al primer discriminador vacío o en cero.
	EndOnAnyDiscriminator bool
	// HarmonizeCategories unifica las categorías de un grupo con el par más frecuente.
	HarmonizeCategories bool
	// BarcodeFromNumber usa el número de producto como código de barras explícito.
	BarcodeFromNumber bool
	DefaultMajor      string
	DefaultMinor      string
}

// HasImages indica si el formato exige imágenes.
func (s *SheetShape) HasImages() bool { return s.ImageColumn > 0 }

// Column devuelve la especificación de la columna que alimenta el campo.
func (s *SheetShape) Column(f Field) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.Field == f {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Label devuelve la etiqueta legible de la columna del campo, con su letra: "Color (H)".
func (s *SheetShape) Label(f Field) string {
	c, ok := s.Column(f)
	if !ok {
		return string(f)
	}
	return fmt.Sprintf("%s (%s)", c.Label, ColumnLetter(c.Index))
}

// ColumnLetter convierte un índice 1-based en la letra de columna de hoja de cálculo.
func ColumnLetter(idx int) string {
	var b []byte
	for idx > 0 {
		idx--
		b = append([]byte{byte('A' + idx%26)}, b...)
		idx /= 26
	}
	return string(b)
}

// ShapeRegistry resuelve formatos por nombre o por código heredado.
type ShapeRegistry struct {
	byName map[string]*SheetShape
	byCode map[string]*SheetShape
}

// NewShapeRegistry crea un registro vacío.
func NewShapeRegistry() *ShapeRegistry {
	return &ShapeRegistry{byName: map[string]*SheetShape{}, byCode: map[string]*SheetShape{}}
}

// Register agrega un formato. Registrar dos veces el mismo nombre o código es un error de programación.
func (r *ShapeRegistry) Register(s *SheetShape) {
	if _, dup := r.byName[s.Name]; dup {
		panic("importer: formato duplicado " + s.Name)
	}
	if _, dup := r.byCode[s.Code]; dup && s.Code != "" {
		panic("importer: código de formato duplicado " + s.Code)
	}
	r.byName[s.Name] = s
	if s.Code != "" {
		r.byCode[s.Code] = s
	}
}

// Lookup busca por nombre (sin distinguir mayúsculas) o por código.
func (r *ShapeRegistry) Lookup(key string) (*SheetShape, bool) {
	key = strings.TrimSpace(key)
	if s, ok := r.byName[strings.ToLower(key)]; ok {
		return s, true
	}
	s, ok := r.byCode[key]
	return s, ok
}

// List devuelve los formatos ordenados por código.
func (r *ShapeRegistry) List() []*SheetShape {
	out := make([]*SheetShape, 0, len(r.byName))
	for _, s := range r.byName {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// DefaultShapes registra los formatos de proveedor conocidos.
func DefaultShapes() *ShapeRegistry {
	r := NewShapeRegistry()
	r.Register(ItemsShape())
	r.Register(EmbryoShape())
	r.Register(OrdersShape())
	return r
}

// ItemsShape: catálogo completo de productos terminados. Datos desde la fila 7,
// cantidades en décimas (×10), dinero en centavos (×100).
func ItemsShape() *SheetShape {
	return &SheetShape{
		Name:        "items",
		Code:        "0",
		Description: "productos terminados con imágenes y categorías",
		FirstRow:    7,
		Columns: []ColumnSpec{
			{Index: 2, Field: FieldNumber, Label: "Número", Required: true, CarryForward: true},
			{Index: 3, Field: FieldImages, Label: "Imágenes"},
			{Index: 4, Field: FieldSize, Label: "Talla", CarryForward: true},
			{Index: 5, Field: FieldName, Label: "Nombre", Required: true, CarryForward: true},
			{Index: 6, Field: FieldMajor, Label: "Categoría"},
			{Index: 7, Field: FieldMinor, Label: "Subcategoría"},
			{Index: 8, Field: FieldColor, Label: "Color", Required: true},
			{Index: 9, Field: FieldBarcode, Label: "Código de barras"},
			{Index: 10, Field: FieldQuantity, Label: "Cantidad", Required: true, Scale: 10},
			{Index: 11, Field: FieldUnit, Label: "Unidad", Required: true},
			{Index: 12, Field: FieldCost, Label: "Costo", Scale: 100},
			{Index: 13, Field: FieldPrice, Label: "Precio", Required: true, Scale: 100},
			{Index: 15, Field: FieldNotes, Label: "Notas"},
		},
		Discriminators:      []Field{FieldColor, FieldNumber, FieldCost, FieldPrice},
		QuantityField:       FieldQuantity,
		ImageColumn:         3,
		ImageFolder:         "sku",
		GroupBy:             FieldNumber,
		HarmonizeCategories: true,
	}
}

// EmbryoShape: existencias de semielaborados. Datos desde la fila 2, el número de
// producto es la identidad y cada fila trae su imagen.
func EmbryoShape() *SheetShape {
	return &SheetShape{
		Name:        "embryo",
		Code:        "1",
		Description: "semielaborados identificados por número",
		FirstRow:    2,
		Columns: []ColumnSpec{
			{Index: 1, Field: FieldImages, Label: "Imágenes"},
			{Index: 2, Field: FieldNumber, Label: "Número", Required: true},
			{Index: 3, Field: FieldName, Label: "Nombre", Required: true},
			{Index: 4, Field: FieldColor, Label: "Color", Required: true},
			{Index: 5, Field: FieldUnit, Label: "Unidad", Required: true},
			{Index: 6, Field: FieldQuantity, Label: "Cantidad", Required: true, Scale: 1},
		},
		Discriminators:    []Field{FieldNumber, FieldColor},
		QuantityField:     FieldQuantity,
		ImageColumn:       1,
		ImageFolder:       "embryo",
		GroupBy:           FieldNumber,
		BarcodeFromNumber: true,
		DefaultMajor:      "Semielaborados",
		DefaultMinor:      "General",
	}
}

// OrdersShape: pedido de cliente. Datos desde la fila 4; el número se hereda de la fila
// anterior (celdas combinadas), cantidades en décimas (×10) y precio en centavos (×100).
// Los datos terminan en la primera fila con cantidad o precio vacío o en cero.
func OrdersShape() *SheetShape {
	return &SheetShape{
		Name:        "orders",
		Code:        "2",
		Description: "pedido de cliente sin categorías ni imágenes",
		FirstRow:    4,
		Columns: []ColumnSpec{
			{Index: 2, Field: FieldNumber, Label: "Número", Required: true, CarryForward: true},
			{Index: 4, Field: FieldSize, Label: "Talla", Required: true},
			{Index: 5, Field: FieldName, Label: "Nombre", Required: true},
			{Index: 6, Field: FieldColor, Label: "Color", Required: true},
			{Index: 7, Field: FieldQuantity, Label: "Cantidad", Required: true, Scale: 10},
			{Index: 8, Field: FieldUnit, Label: "Unidad", Required: true},
			{Index: 9, Field: FieldPrice, Label: "Precio", Required: true, Scale: 100},
			{Index: 11, Field: FieldNotes, Label: "Notas"},
		},
		Discriminators:        []Field{FieldQuantity, FieldPrice},
		EndOnAnyDiscriminator: true,
		QuantityField:         FieldQuantity,
		GroupBy:               FieldNumber,
		DefaultMajor:          "Pedidos",
		DefaultMinor:          "General",
	}
}

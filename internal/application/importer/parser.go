package importer

import (
	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/identity"
)

// rowCells son los valores de texto de una fila, ya limpios, indexados por campo.
type rowCells map[Field]string

// Parser convierte las filas de una hoja en borradores de SheetRecord según un SheetShape.
type Parser struct {
	shape *SheetShape
}

// NewParser construye el parser para un formato.
func NewParser(shape *SheetShape) *Parser {
	return &Parser{shape: shape}
}

// Parse recorre la hoja desde FirstRow hasta la primera fila cuyos discriminadores estén
// todos vacíos o en cero (o alguno, con EndOnAnyDiscriminator) o hasta el final de la
// hoja. Falla en el primer error de validación sin devolver registros parciales.
func (p *Parser) Parse(grid Grid) ([]entity.SheetRecord, error) {
	var (
		records []entity.SheetRecord
		carry   rowCells
	)
	for row := p.shape.FirstRow; row <= grid.Rows(); row++ {
		own := p.readRow(grid, row)
		if p.endOfData(own) {
			break
		}
		rec, next, err := p.parseRow(grid, row, own, carry)
		if err != nil {
			return nil, err
		}
		carry = next
		records = append(records, rec)
	}
	if p.shape.HarmonizeCategories {
		harmonizeCategories(records)
	}
	return records, nil
}

func (p *Parser) readRow(grid Grid, row int) rowCells {
	cells := make(rowCells, len(p.shape.Columns))
	for _, c := range p.shape.Columns {
		if c.Field == FieldImages {
			continue
		}
		cells[c.Field] = cleanCell(grid.Cell(row, c.Index))
	}
	return cells
}

// endOfData evalúa sólo las celdas propias de la fila, antes de heredar valores.
func (p *Parser) endOfData(own rowCells) bool {
	blanks := 0
	for _, f := range p.shape.Discriminators {
		if p.blank(own, f) {
			blanks++
		}
	}
	if p.shape.EndOnAnyDiscriminator {
		return blanks > 0
	}
	return blanks == len(p.shape.Discriminators)
}

// blank: celda vacía, o en cero si la columna es numérica.
func (p *Parser) blank(own rowCells, f Field) bool {
	col, _ := p.shape.Column(f)
	if col.Scale > 0 {
		return parseScaled(own[f], col.Scale) == 0
	}
	return own[f] == ""
}

// parseRow arma el borrador de una fila a partir de sus celdas y del acumulador de la fila
// anterior; devuelve el acumulador para la siguiente.
func (p *Parser) parseRow(grid Grid, row int, own, carry rowCells) (entity.SheetRecord, rowCells, error) {
	cells := make(rowCells, len(own))
	for f, v := range own {
		cells[f] = v
	}
	for _, c := range p.shape.Columns {
		if c.CarryForward && cells[c.Field] == "" && carry != nil {
			cells[c.Field] = carry[c.Field]
		}
	}
	for _, c := range p.shape.Columns {
		if c.Required && c.Field != FieldImages && cells[c.Field] == "" {
			return entity.SheetRecord{}, nil, domain.NewRowError(domain.KindMissingRequiredField,
				row, p.shape.Label(c.Field), "campo obligatorio vacío")
		}
	}

	rec := entity.SheetRecord{
		Row:      row,
		Number:   cells[FieldNumber],
		Name:     cells[FieldName],
		Size:     cells[FieldSize],
		Unit:     cells[FieldUnit],
		Color:    identity.NormalizeColor(cells[FieldColor]),
		Major:    cells[FieldMajor],
		Minor:    cells[FieldMinor],
		Barcode:  cells[FieldBarcode],
		Notes:    cells[FieldNotes],
		GroupKey: cells[p.shape.GroupBy],
	}
	rec.Cost = p.scaled(cells, FieldCost)
	rec.Price = p.scaled(cells, FieldPrice)
	rec.Quantity = p.scaled(cells, p.shape.QuantityField)
	if rec.Quantity == 0 {
		return entity.SheetRecord{}, nil, domain.NewRowError(domain.KindInvalidStructure,
			row, p.shape.Label(p.shape.QuantityField), "cantidad vacía o cero")
	}

	if rec.Major == "" && rec.Minor == "" {
		rec.Major, rec.Minor = p.shape.DefaultMajor, p.shape.DefaultMinor
	}
	if p.shape.BarcodeFromNumber && rec.Barcode == "" {
		rec.Barcode = rec.Number
	}
	if rec.GroupKey == "" {
		rec.GroupKey = rec.Number
	}

	if p.shape.HasImages() {
		imgs, err := grid.Images(row, p.shape.ImageColumn)
		if err != nil {
			return entity.SheetRecord{}, nil, &domain.ImportError{
				Kind: domain.KindInvalidStructure, Row: row, Column: p.shape.Label(FieldImages),
				Message: "no se pudieron leer las imágenes", Err: err,
			}
		}
		rec.RawImages = imgs
	}
	return rec, cells, nil
}

func (p *Parser) scaled(cells rowCells, f Field) int64 {
	col, ok := p.shape.Column(f)
	if !ok {
		return 0
	}
	return parseScaled(cells[f], col.Scale)
}

// harmonizeCategories asigna a cada grupo el par (categoría, subcategoría) más frecuente;
// en empate gana el primero visto. Un grupo sin categorías queda en blanco.
func harmonizeCategories(records []entity.SheetRecord) {
	type pair struct{ major, minor string }
	counts := map[string]map[pair]int{}
	order := map[string][]pair{}
	for _, r := range records {
		if r.Major == "" && r.Minor == "" {
			continue
		}
		k := pair{r.Major, r.Minor}
		if counts[r.GroupKey] == nil {
			counts[r.GroupKey] = map[pair]int{}
		}
		if counts[r.GroupKey][k] == 0 {
			order[r.GroupKey] = append(order[r.GroupKey], k)
		}
		counts[r.GroupKey][k]++
	}
	best := make(map[string]pair, len(order))
	for g, pairs := range order {
		winner := pairs[0]
		for _, k := range pairs[1:] {
			if counts[g][k] > counts[g][winner] {
				winner = k
			}
		}
		best[g] = winner
	}
	for i := range records {
		if w, ok := best[records[i].GroupKey]; ok {
			records[i].Major, records[i].Minor = w.major, w.minor
		}
	}
}

package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/catalogo-erp/internal/application/importer"
	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
)

var (
	_ importer.Grid       = (*Sheet)(nil)
	_ importer.GridOpener = (*Opener)(nil)
)

// Opener abre libros .xlsx con excelize.
type Opener struct{}

// NewOpener construye el adaptador.
func NewOpener() *Opener { return &Opener{} }

// Open carga la hoja sheetIndex (0-based). Las celdas se leen sin formato de número
// para que los importes lleguen como "3200" y no como "$3,200.00".
func (o *Opener) Open(path string, sheetIndex int) (importer.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &domain.ImportError{Kind: domain.KindInvalidStructure, Message: "el archivo no es un libro xlsx válido", Err: err}
	}
	sheets := f.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(sheets) {
		_ = f.Close()
		return nil, &domain.ImportError{
			Kind:    domain.KindInvalidStructure,
			Message: fmt.Sprintf("el libro no tiene la hoja %d (tiene %d)", sheetIndex+1, len(sheets)),
		}
	}
	name := sheets[sheetIndex]
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		_ = f.Close()
		return nil, &domain.ImportError{Kind: domain.KindInvalidStructure, Message: "no se pudo leer la hoja " + name, Err: err}
	}
	return &Sheet{file: f, name: name, rows: rows}, nil
}

// Sheet hoja abierta. Las filas se leen una vez al abrir; las imágenes bajo demanda.
type Sheet struct {
	file *excelize.File
	name string
	rows [][]string
}

// Name nombre de la hoja en el libro.
func (s *Sheet) Name() string { return s.name }

// Rows última fila con contenido.
func (s *Sheet) Rows() int { return len(s.rows) }

// Cell texto de la celda (1-based); vacío fuera de rango.
func (s *Sheet) Cell(row, col int) string {
	if row < 1 || row > len(s.rows) || col < 1 {
		return ""
	}
	cells := s.rows[row-1]
	if col > len(cells) {
		return ""
	}
	return cells[col-1]
}

// Images imágenes ancladas en la celda, en el orden del libro.
func (s *Sheet) Images(row, col int) ([]entity.RawImage, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	pics, err := s.file.GetPictures(s.name, cell)
	if err != nil {
		return nil, fmt.Errorf("read pictures %s!%s: %w", s.name, cell, err)
	}
	out := make([]entity.RawImage, 0, len(pics))
	for _, p := range pics {
		out = append(out, entity.RawImage{Data: p.File, Extension: p.Extension})
	}
	return out, nil
}

// Close libera el libro.
func (s *Sheet) Close() error { return s.file.Close() }

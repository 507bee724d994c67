// Package pdf genera la hoja de etiquetas de código de barras de un movimiento de inventario.
//
// Layout de la página A4 (tres etiquetas por fila):
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: ENTRADA/SALIDA N° + canal + fecha    │
//	│  ───────────────────────────────────────────  │
//	│  ┌───────────┐  ┌───────────┐  ┌───────────┐  │
//	│  │  Nombre   │  │  Nombre   │  │  Nombre   │  │
//	│  │ N° · Color│  │ N° · Color│  │ N° · Color│  │
//	│  │ ||||||||| │  │ ||||||||| │  │ ||||||||| │  │
//	│  │  Código   │  │  Código   │  │  Código   │  │
//	│  │  Precio   │  │  Precio   │  │  Precio   │  │
//	│  └───────────┘  └───────────┘  └───────────┘  │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/catalogo-erp/internal/application/catalog"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
)

var _ catalog.LabelSheetGenerator = (*LabelSheetGenerator)(nil)

const labelsPerRow = 3

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// LabelSheetGenerator implementa catalog.LabelSheetGenerator usando Maroto v2.
type LabelSheetGenerator struct{}

// NewLabelSheetGenerator construye el generador.
func NewLabelSheetGenerator() *LabelSheetGenerator { return &LabelSheetGenerator{} }

// GenerateLabels genera el PDF y devuelve sus bytes.
func (g *LabelSheetGenerator) GenerateLabels(
	_ context.Context,
	bucket *entity.LedgerBucket,
	labels []catalog.Label,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(fmt.Sprintf("Etiquetas movimiento %d", bucket.ID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(bucket, len(labels)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(line.NewRow(3))
	for _, r := range labelRows(labels) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: número de movimiento (izq) y canal + fecha (der).
func headerRow(bucket *entity.LedgerBucket, count int) core.Row {
	kind := "ENTRADA"
	if bucket.Direction == entity.DirectionOut {
		kind = "SALIDA"
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New(fmt.Sprintf("%s N° %d", kind, bucket.ID), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d etiquetas", count), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Canal: "+bucket.Channel, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Fecha: "+bucket.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// labelRows: tres etiquetas por fila; la última fila se completa con columnas vacías.
func labelRows(labels []catalog.Label) []core.Row {
	var rows []core.Row
	for start := 0; start < len(labels); start += labelsPerRow {
		cols := make([]core.Col, 0, labelsPerRow)
		for i := start; i < start+labelsPerRow; i++ {
			if i < len(labels) {
				cols = append(cols, labelCol(labels[i]))
			} else {
				cols = append(cols, col.New(12/labelsPerRow))
			}
		}
		rows = append(rows, row.New(38).Add(cols...), line.NewRow(2))
	}
	return rows
}

func labelCol(l catalog.Label) core.Col {
	it := l.Item
	return col.New(12/labelsPerRow).Add(
		text.New(it.Name, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1,
		}),
		text.New(describe(it), props.Text{
			Size: 7, Align: align.Center, Top: 5, Color: colorGray,
		}),
		code.NewBar(it.Barcode, props.Barcode{
			Top: 10, Percent: 90, Proportion: props.Proportion{Width: 20, Height: 6}, Center: true,
		}),
		text.New(it.Barcode, props.Text{
			Size: 7, Align: align.Center, Top: 27,
		}),
		text.New("$"+formatMoney(it.Price), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 31, Color: colorPrimary,
		}),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// describe: número, color y talla, omitiendo los vacíos.
func describe(it *entity.Item) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{it.Number, it.Color, it.Size} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

// formatMoney muestra un importe en centavos con puntos de miles y dos decimales.
// Ej: 320000 → "3.200,00"
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	s := strconv.FormatInt(cents/100, 10)
	n := len(s)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return fmt.Sprintf("%s%s,%02d", sign, buf, cents%100)
}

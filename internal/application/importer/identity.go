package importer

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/identity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

// ColorPlan códigos de color de una ejecución: los existentes más los nuevos que se
// asignaron en memoria y aún no se han guardado.
type ColorPlan struct {
	Codes map[string]int
	New   []*entity.ColorCode
}

// IdentityResolver asigna códigos de color y códigos de barras a los registros.
type IdentityResolver struct {
	colors repository.ColorCodeRepository
	items  repository.ItemRepository
}

// NewIdentityResolver construye el resolvedor.
func NewIdentityResolver(colors repository.ColorCodeRepository, items repository.ItemRepository) *IdentityResolver {
	return &IdentityResolver{colors: colors, items: items}
}

// ResolveColorCodes lee el registro una sola vez y asigna a los colores nuevos max+1, max+2...
// en orden alfabético. Sólo lectura: los nuevos se guardan con Commit.
func (r *IdentityResolver) ResolveColorCodes(ctx context.Context, records []entity.SheetRecord) (*ColorPlan, error) {
	existing, err := r.colors.FindAll(ctx)
	if err != nil {
		return nil, domain.StorageFailure("no se pudo leer el registro de colores", err)
	}
	plan := &ColorPlan{Codes: make(map[string]int, len(existing))}
	last := 0
	for _, c := range existing {
		plan.Codes[c.Color] = c.Value
		if c.Value > last {
			last = c.Value
		}
	}

	var unseen []string
	for _, rec := range records {
		if rec.Color == "" {
			continue
		}
		if _, ok := plan.Codes[rec.Color]; !ok {
			plan.Codes[rec.Color] = 0
			unseen = append(unseen, rec.Color)
		}
	}
	sort.Strings(unseen)
	for _, color := range unseen {
		last++
		plan.Codes[color] = last
		plan.New = append(plan.New, &entity.ColorCode{Color: color, Value: last})
	}

	for i := range records {
		records[i].ColorCode = plan.Codes[records[i].Color]
	}
	return plan, nil
}

// Commit guarda los colores nuevos del plan. Si otro proceso los creó antes con otro
// código, los códigos de barras derivados ya no serían válidos y la ejecución falla.
func (r *IdentityResolver) Commit(ctx context.Context, plan *ColorPlan) error {
	if plan == nil || len(plan.New) == 0 {
		return nil
	}
	if err := r.colors.Insert(ctx, plan.New); err != nil {
		return domain.StorageFailure("no se pudieron registrar los colores", err)
	}
	stored, err := r.colors.FindAll(ctx)
	if err != nil {
		return domain.StorageFailure("no se pudo releer el registro de colores", err)
	}
	byColor := make(map[string]int, len(stored))
	for _, c := range stored {
		byColor[c.Color] = c.Value
	}
	for _, c := range plan.New {
		if byColor[c.Color] != c.Value {
			return &domain.ImportError{
				Kind:    domain.KindStorageFailure,
				Message: "registro de colores modificado concurrentemente, vuelva a cargar la hoja",
			}
		}
	}
	return nil
}

// AssignBarcodes deriva el código de barras de los registros que no lo traen y verifica
// colisiones de los derivados contra el resto del lote y contra el catálogo.
// Un código explícito repetido en el lote es el mismo producto y suma cantidades.
func (r *IdentityResolver) AssignBarcodes(ctx context.Context, records []entity.SheetRecord) error {
	rowsByCode := map[string][]int{}
	var derived []string
	for i := range records {
		rec := &records[i]
		if rec.Barcode == "" {
			rec.Barcode = identity.DeriveBarcode(rec.Number, rec.ColorCode, rec.Price)
			rec.BarcodeDerived = true
		}
		if rec.BarcodeDerived && len(rowsByCode[rec.Barcode]) == 0 {
			derived = append(derived, rec.Barcode)
		}
		rowsByCode[rec.Barcode] = append(rowsByCode[rec.Barcode], rec.Row)
	}

	var (
		dupCodes []string
		dupRows  []int
	)
	for _, code := range derived {
		if rows := rowsByCode[code]; len(rows) > 1 {
			dupCodes = append(dupCodes, code)
			dupRows = append(dupRows, rows...)
		}
	}
	if len(dupCodes) > 0 {
		sort.Ints(dupRows)
		return &domain.ImportError{
			Kind:    domain.KindDuplicateIdentity,
			Rows:    dupRows,
			Message: "código de barras derivado repetido en la hoja: " + strings.Join(dupCodes, ", "),
		}
	}
	if len(derived) == 0 {
		return nil
	}

	existing, err := r.items.FindByBarcodes(ctx, derived)
	if err != nil {
		return domain.StorageFailure("no se pudieron consultar los códigos de barras", err)
	}
	for _, it := range existing {
		for _, rec := range records {
			if rec.Barcode != it.Barcode || !rec.BarcodeDerived {
				continue
			}
			if rec.Number != it.Number || rec.Color != it.Color {
				return &domain.ImportError{
					Kind: domain.KindDuplicateIdentity,
					Row:  rec.Row,
					Message: "el código de barras " + it.Barcode + " ya pertenece al producto " +
						it.Number + " " + it.Color,
				}
			}
		}
	}
	return nil
}

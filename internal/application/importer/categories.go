package importer

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

// CategoryPair par (categoría, subcategoría) referenciado por el lote.
type CategoryPair struct {
	Major string
	Minor string
}

// ReconcileResult cuántas categorías creó la conciliación.
type ReconcileResult struct {
	NewMajors int
	NewMinors int
}

// CatalogReconciler resuelve la taxonomía de dos niveles y crea las categorías que falten.
type CatalogReconciler struct {
	categories repository.CategoryRepository
}

// NewCatalogReconciler construye el conciliador.
func NewCatalogReconciler(categories repository.CategoryRepository) *CatalogReconciler {
	return &CatalogReconciler{categories: categories}
}

// Plan valida en memoria las categorías del lote y devuelve los pares distintos en orden
// de aparición. Una subcategoría sin categoría es OrphanCategory.
func (c *CatalogReconciler) Plan(shape *SheetShape, records []entity.SheetRecord) ([]CategoryPair, error) {
	var pairs []CategoryPair
	seen := map[CategoryPair]bool{}
	for _, r := range records {
		switch {
		case r.Major == "" && r.Minor != "":
			return nil, domain.NewRowError(domain.KindOrphanCategory, r.Row, shape.Label(FieldMajor),
				"la subcategoría %q no tiene categoría", r.Minor)
		case r.Major == "":
			return nil, domain.NewRowError(domain.KindMissingRequiredField, r.Row, shape.Label(FieldMajor),
				"producto sin categoría")
		case r.Minor == "":
			return nil, domain.NewRowError(domain.KindMissingRequiredField, r.Row, shape.Label(FieldMinor),
				"producto sin subcategoría")
		}
		p := CategoryPair{Major: r.Major, Minor: r.Minor}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	return pairs, nil
}

// categoryIndex nombre de categoría → id, y por categoría, nombre de subcategoría → id.
type categoryIndex struct {
	majors map[string]int64
	minors map[int64]map[string]int64
}

func buildIndex(cats []*entity.Category) *categoryIndex {
	idx := &categoryIndex{majors: map[string]int64{}, minors: map[int64]map[string]int64{}}
	idx.merge(cats)
	return idx
}

func (idx *categoryIndex) merge(cats []*entity.Category) {
	for _, c := range cats {
		if c.IsMajor() {
			idx.majors[c.Name] = c.ID
			continue
		}
		if idx.minors[c.ParentID] == nil {
			idx.minors[c.ParentID] = map[string]int64{}
		}
		idx.minors[c.ParentID][c.Name] = c.ID
	}
}

func (idx *categoryIndex) minor(majorID int64, name string) int64 {
	return idx.minors[majorID][name]
}

// Reconcile carga las categorías una vez, crea por lotes las categorías y luego las
// subcategorías desconocidas, y asigna MajorID/MinorID a cada registro. Un conflicto de
// unicidad (otra ejecución las creó) se resuelve releyendo. Idempotente.
func (c *CatalogReconciler) Reconcile(ctx context.Context, shape *SheetShape, records []entity.SheetRecord) (ReconcileResult, error) {
	var res ReconcileResult
	pairs, err := c.Plan(shape, records)
	if err != nil {
		return res, err
	}
	existing, err := c.categories.FindAll(ctx)
	if err != nil {
		return res, domain.StorageFailure("no se pudieron leer las categorías", err)
	}
	idx := buildIndex(existing)

	var newMajors []string
	pending := map[string]bool{}
	for _, p := range pairs {
		if _, ok := idx.majors[p.Major]; !ok && !pending[p.Major] {
			pending[p.Major] = true
			newMajors = append(newMajors, p.Major)
		}
	}
	if len(newMajors) > 0 {
		inserted, err := c.categories.InsertMajors(ctx, newMajors)
		if err != nil {
			return res, domain.StorageFailure("no se pudieron crear las categorías", err)
		}
		res.NewMajors = len(inserted)
		idx.merge(inserted)
		if len(inserted) < len(newMajors) {
			if idx, err = c.reload(ctx); err != nil {
				return res, err
			}
		}
	}

	var newMinors []repository.MinorInsert
	pendingMinor := map[repository.MinorInsert]bool{}
	for _, p := range pairs {
		majorID := idx.majors[p.Major]
		if majorID == 0 {
			continue
		}
		m := repository.MinorInsert{Name: p.Minor, ParentID: majorID}
		if idx.minor(majorID, p.Minor) == 0 && !pendingMinor[m] {
			pendingMinor[m] = true
			newMinors = append(newMinors, m)
		}
	}
	if len(newMinors) > 0 {
		inserted, err := c.categories.InsertMinors(ctx, newMinors)
		if err != nil {
			return res, domain.StorageFailure("no se pudieron crear las subcategorías", err)
		}
		res.NewMinors = len(inserted)
		idx.merge(inserted)
		if len(inserted) < len(newMinors) {
			if idx, err = c.reload(ctx); err != nil {
				return res, err
			}
		}
	}

	for i := range records {
		r := &records[i]
		r.MajorID = idx.majors[r.Major]
		if r.MajorID == 0 {
			return res, domain.NewRowError(domain.KindUnresolvedReference, r.Row, shape.Label(FieldMajor),
				"no se pudo resolver la categoría %q", r.Major)
		}
		r.MinorID = idx.minor(r.MajorID, r.Minor)
		if r.MinorID == 0 {
			return res, domain.NewRowError(domain.KindUnresolvedReference, r.Row, shape.Label(FieldMinor),
				"no se pudo resolver la subcategoría %q", r.Minor)
		}
	}
	return res, nil
}

func (c *CatalogReconciler) reload(ctx context.Context) (*categoryIndex, error) {
	cats, err := c.categories.FindAll(ctx)
	if err != nil {
		return nil, domain.StorageFailure("no se pudieron releer las categorías", err)
	}
	return buildIndex(cats), nil
}

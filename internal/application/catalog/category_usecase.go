package catalog

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

// CategoryUseCase operaciones sobre la taxonomía que no pasan por la importación.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	items      repository.ItemRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository, items repository.ItemRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, items: items}
}

// Delete elimina una categoría sólo si ningún producto la usa (como categoría o
// subcategoría) y no tiene subcategorías colgando.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	cat, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	items, err := uc.items.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	children := 0
	if cat.IsMajor() {
		if children, err = uc.categories.CountChildren(ctx, id); err != nil {
			return err
		}
	}
	if items > 0 || children > 0 {
		return &domain.CategoryInUseError{CategoryID: id, ItemCount: items, ChildCount: children}
	}
	return uc.categories.Delete(ctx, id)
}

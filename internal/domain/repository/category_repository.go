package repository

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
)

// MinorInsert fila para crear una subcategoría bajo una principal ya resuelta.
type MinorInsert struct {
	Name     string
	ParentID int64
}

// CategoryRepository define el puerto de persistencia para la taxonomía de categorías (DIP).
// Las inserciones ignoran los nombres que ya existen: un conflicto de unicidad
// significa "ya creada" y el llamador vuelve a leer.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	InsertMajors(ctx context.Context, names []string) ([]*entity.Category, error)
	InsertMinors(ctx context.Context, rows []MinorInsert) ([]*entity.Category, error)
	CountChildren(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

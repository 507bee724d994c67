package repository

import (
	"context"

	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
)

// ColorCodeRepository define el puerto del registro de colores.
type ColorCodeRepository interface {
	FindAll(ctx context.Context) ([]*entity.ColorCode, error)
	// Insert persiste los colores nuevos; los que ya existan se omiten sin error.
	Insert(ctx context.Context, codes []*entity.ColorCode) error
}

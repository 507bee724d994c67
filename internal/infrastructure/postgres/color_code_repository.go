package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

var _ repository.ColorCodeRepository = (*ColorCodeRepo)(nil)

// ColorCodeRepo registro de colores sobre PostgreSQL.
type ColorCodeRepo struct {
	q Querier
}

// NewColorCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewColorCodeRepository(q Querier) *ColorCodeRepo {
	return &ColorCodeRepo{q: q}
}

// FindAll devuelve todo el registro.
func (r *ColorCodeRepo) FindAll(ctx context.Context) ([]*entity.ColorCode, error) {
	rows, err := r.q.Query(ctx, `SELECT id, color, value, created_at FROM color_codes ORDER BY value`)
	if err != nil {
		return nil, fmt.Errorf("list color codes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ColorCode
	for rows.Next() {
		var c entity.ColorCode
		if err := rows.Scan(&c.ID, &c.Color, &c.Value, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan color code: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Insert guarda los colores en una sentencia; los que choquen por color o valor se omiten.
func (r *ColorCodeRepo) Insert(ctx context.Context, codes []*entity.ColorCode) error {
	if len(codes) == 0 {
		return nil
	}
	colors := make([]string, len(codes))
	values := make([]int32, len(codes))
	for i, c := range codes {
		colors[i], values[i] = c.Color, int32(c.Value)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO color_codes (color, value)
		SELECT * FROM unnest($1::text[], $2::int[])
		ON CONFLICT DO NOTHING`, colors, values)
	if err != nil {
		return fmt.Errorf("insert color codes: %w", err)
	}
	return nil
}

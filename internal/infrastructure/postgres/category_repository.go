package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, idx, name, type, parent_id, created_at`

func scanCategories(rows pgx.Rows) ([]*entity.Category, error) {
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Index, &c.Name, &c.Type, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// FindAll carga toda la taxonomía (es pequeña y se indexa en memoria).
func (r *CategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY parent_id, idx, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return scanCategories(rows)
}

// GetByID obtiene una categoría por ID; nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Index, &c.Name, &c.Type, &c.ParentID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// InsertMajors crea categorías principales en una sola sentencia. Las que ya existan
// (creadas por otra ejecución) no se devuelven.
func (r *CategoryRepo) InsertMajors(ctx context.Context, names []string) ([]*entity.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query := `
		INSERT INTO categories (idx, name, type, parent_id)
		SELECT (SELECT COALESCE(MAX(idx), 0) FROM categories WHERE parent_id = 0) + n.ord, n.name, 'major', 0
		FROM unnest($1::text[]) WITH ORDINALITY AS n(name, ord)
		ON CONFLICT (name, parent_id) DO NOTHING
		RETURNING ` + categoryColumns
	rows, err := r.q.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("insert major categories: %w", err)
	}
	return scanCategories(rows)
}

// InsertMinors crea subcategorías bajo sus principales en una sola sentencia.
func (r *CategoryRepo) InsertMinors(ctx context.Context, minors []repository.MinorInsert) ([]*entity.Category, error) {
	if len(minors) == 0 {
		return nil, nil
	}
	names := make([]string, len(minors))
	parents := make([]int64, len(minors))
	for i, m := range minors {
		names[i], parents[i] = m.Name, m.ParentID
	}
	query := `
		INSERT INTO categories (idx, name, type, parent_id)
		SELECT (SELECT COALESCE(MAX(idx), 0) FROM categories WHERE parent_id = n.parent_id) + n.ord, n.name, 'minor', n.parent_id
		FROM unnest($1::text[], $2::bigint[]) WITH ORDINALITY AS n(name, parent_id, ord)
		ON CONFLICT (name, parent_id) DO NOTHING
		RETURNING ` + categoryColumns
	rows, err := r.q.Query(ctx, query, names, parents)
	if err != nil {
		return nil, fmt.Errorf("insert minor categories: %w", err)
	}
	return scanCategories(rows)
}

// CountChildren cuenta las subcategorías de una categoría.
func (r *CategoryRepo) CountChildren(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count child categories: %w", err)
	}
	return n, nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

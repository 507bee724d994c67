package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, images, name, size, color, major_id, minor_id, unit, price, cost, notes, number, barcode, created_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Images, &it.Name, &it.Size, &it.Color, &it.MajorID, &it.MinorID,
		&it.Unit, &it.Price, &it.Cost, &it.Notes, &it.Number, &it.Barcode, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// FindByBarcodes devuelve los productos existentes con alguno de los códigos.
func (r *ItemRepo) FindByBarcodes(ctx context.Context, barcodes []string) ([]*entity.Item, error) {
	if len(barcodes) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE barcode = ANY($1::text[])`, barcodes)
	if err != nil {
		return nil, fmt.Errorf("find items by barcode: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// InsertBatch inserta los productos en una sola sentencia y asigna los IDs generados.
// El llamador limita el tamaño del lote (13 parámetros por fila).
func (r *ItemRepo) InsertBatch(ctx context.Context, items []*entity.Item) error {
	if len(items) == 0 {
		return nil
	}
	const cols = 13
	var (
		b    strings.Builder
		args = make([]any, 0, len(items)*cols)
	)
	b.WriteString(`INSERT INTO items (images, name, size, color, major_id, minor_id, unit, price, cost, notes, number, barcode, created_at) VALUES `)
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := 1; c <= cols; c++ {
			if c > 1 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*cols+c)
		}
		b.WriteByte(')')
		images := it.Images
		if images == nil {
			images = []string{}
		}
		args = append(args, images, it.Name, it.Size, it.Color, it.MajorID, it.MinorID, it.Unit,
			it.Price, it.Cost, it.Notes, it.Number, it.Barcode, it.CreatedAt)
	}
	b.WriteString(` RETURNING id, barcode`)

	rows, err := r.q.Query(ctx, b.String(), args...)
	if err != nil {
		return fmt.Errorf("insert items: %w", err)
	}
	defer rows.Close()
	ids := make(map[string]int64, len(items))
	for rows.Next() {
		var (
			id      int64
			barcode string
		)
		if err := rows.Scan(&id, &barcode); err != nil {
			return fmt.Errorf("scan item id: %w", err)
		}
		ids[barcode] = id
	}
	if err := rows.Err(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert items: %w", err)
	}
	for _, it := range items {
		it.ID = ids[it.Barcode]
	}
	return nil
}

// CountByCategory cuenta los productos que usan la categoría como principal o subcategoría.
func (r *ItemRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE major_id = $1 OR minor_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return n, nil
}

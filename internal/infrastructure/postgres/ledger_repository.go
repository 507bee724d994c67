package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro de inventario sobre PostgreSQL (usable con pool o tx). Sólo inserta.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// InsertBucket persiste la cabecera y asigna su ID.
func (r *LedgerRepo) InsertBucket(ctx context.Context, b *entity.LedgerBucket) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO ledger_buckets (account_id, direction, channel, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		b.AccountID, b.Direction, b.Channel, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert ledger bucket: %w", err)
	}
	return nil
}

// InsertLines persiste las líneas en una sola sentencia.
func (r *LedgerRepo) InsertLines(ctx context.Context, lines []*entity.LedgerLine) error {
	if len(lines) == 0 {
		return nil
	}
	var bucketIDs, itemIDs, qtys, costs, totals []int64
	for _, l := range lines {
		bucketIDs = append(bucketIDs, l.BucketID)
		itemIDs = append(itemIDs, l.ItemID)
		qtys = append(qtys, l.Quantity)
		costs = append(costs, l.UnitCost)
		totals = append(totals, l.Total)
	}
	rows, err := r.q.Query(ctx, `
		INSERT INTO ledger_lines (bucket_id, item_id, quantity, unit_cost, total)
		SELECT * FROM unnest($1::bigint[], $2::bigint[], $3::bigint[], $4::bigint[], $5::bigint[])
		RETURNING id`,
		bucketIDs, itemIDs, qtys, costs, totals)
	if err != nil {
		return fmt.Errorf("insert ledger lines: %w", err)
	}
	defer rows.Close()
	i := 0
	for rows.Next() {
		if i < len(lines) {
			if err := rows.Scan(&lines[i].ID); err != nil {
				return fmt.Errorf("scan ledger line id: %w", err)
			}
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("insert ledger lines: %w", err)
	}
	return nil
}

// GetBucket obtiene una cabecera; nil si no existe.
func (r *LedgerRepo) GetBucket(ctx context.Context, id int64) (*entity.LedgerBucket, error) {
	var b entity.LedgerBucket
	err := r.q.QueryRow(ctx, `
		SELECT id, account_id, direction, channel, created_at FROM ledger_buckets WHERE id = $1`, id,
	).Scan(&b.ID, &b.AccountID, &b.Direction, &b.Channel, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger bucket: %w", err)
	}
	return &b, nil
}

// ListLines lista las líneas de una cabecera en orden de inserción.
func (r *LedgerRepo) ListLines(ctx context.Context, bucketID int64) ([]*entity.LedgerLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, bucket_id, item_id, quantity, unit_cost, total
		FROM ledger_lines WHERE bucket_id = $1 ORDER BY id`, bucketID)
	if err != nil {
		return nil, fmt.Errorf("list ledger lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerLine
	for rows.Next() {
		var l entity.LedgerLine
		if err := rows.Scan(&l.ID, &l.BucketID, &l.ItemID, &l.Quantity, &l.UnitCost, &l.Total); err != nil {
			return nil, fmt.Errorf("scan ledger line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Balance suma las cantidades del producto. SUM sobre BIGINT devuelve NUMERIC, que el
// codec registrado en el pool escanea a decimal.
func (r *LedgerRepo) Balance(ctx context.Context, itemID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM ledger_lines WHERE item_id = $1`, itemID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger balance: %w", err)
	}
	return sum, nil
}

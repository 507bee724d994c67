package importer

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/inventory"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

// DefaultBatchSize filas por sentencia de inserción de productos.
const DefaultBatchSize = 1000

// LedgerPoster registra lotes en el libro de inventario: crea los productos nuevos, una
// cabecera y una línea por producto, todo en una transacción.
type LedgerPoster struct {
	tx        TxRunner
	batchSize int
	now       func() time.Time
}

// NewLedgerPoster construye el poster. batchSize <= 0 usa DefaultBatchSize.
func NewLedgerPoster(tx TxRunner, batchSize int) *LedgerPoster {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &LedgerPoster{tx: tx, batchSize: batchSize, now: time.Now}
}

// posting cantidad acumulada por código de barras con el costo capturado en esta ejecución.
type posting struct {
	barcode  string
	first    int // índice del primer registro con este código
	quantity int64
	cost     int64
}

// aggregate agrupa por código de barras en orden de aparición; el costo es el del primer registro.
func aggregate(records []entity.SheetRecord) []*posting {
	var out []*posting
	pos := map[string]*posting{}
	for i, r := range records {
		p, ok := pos[r.Barcode]
		if !ok {
			p = &posting{barcode: r.Barcode, first: i, cost: r.Cost}
			pos[r.Barcode] = p
			out = append(out, p)
		}
		p.quantity += r.Quantity
	}
	return out
}

func itemFromRecord(r entity.SheetRecord, now time.Time) *entity.Item {
	return &entity.Item{
		Images:    r.Images,
		Name:      r.Name,
		Size:      r.Size,
		Color:     r.Color,
		MajorID:   r.MajorID,
		MinorID:   r.MinorID,
		Unit:      r.Unit,
		Price:     r.Price,
		Cost:      r.Cost,
		Notes:     r.Notes,
		Number:    r.Number,
		Barcode:   r.Barcode,
		CreatedAt: now,
	}
}

// Post registra una entrada por lote y devuelve el id de la cabecera.
func (p *LedgerPoster) Post(ctx context.Context, records []entity.SheetRecord, actorID int64, channel string) (int64, error) {
	if len(records) == 0 {
		return 0, domain.ErrInvalidInput
	}
	postings := aggregate(records)
	barcodes := make([]string, 0, len(postings))
	for _, ps := range postings {
		barcodes = append(barcodes, ps.barcode)
	}
	now := p.now()

	var bucketID int64
	err := p.tx.Run(ctx, func(itemRepo repository.ItemRepository, ledgerRepo repository.LedgerRepository) error {
		existing, err := itemRepo.FindByBarcodes(ctx, barcodes)
		if err != nil {
			return err
		}
		ids := make(map[string]int64, len(postings))
		for _, it := range existing {
			ids[it.Barcode] = it.ID
		}

		var fresh []*entity.Item
		for _, ps := range postings {
			if _, ok := ids[ps.barcode]; !ok {
				fresh = append(fresh, itemFromRecord(records[ps.first], now))
			}
		}
		for start := 0; start < len(fresh); start += p.batchSize {
			end := start + p.batchSize
			if end > len(fresh) {
				end = len(fresh)
			}
			if err := itemRepo.InsertBatch(ctx, fresh[start:end]); err != nil {
				return err
			}
		}
		for _, it := range fresh {
			ids[it.Barcode] = it.ID
		}

		bucket := &entity.LedgerBucket{
			AccountID: actorID,
			Direction: entity.DirectionIn,
			Channel:   channel,
			CreatedAt: now,
		}
		if err := ledgerRepo.InsertBucket(ctx, bucket); err != nil {
			return err
		}
		lines := make([]*entity.LedgerLine, 0, len(postings))
		for _, ps := range postings {
			l := inventory.NewLine(ids[ps.barcode], ps.quantity, ps.cost)
			l.BucketID = bucket.ID
			lines = append(lines, l)
		}
		if err := ledgerRepo.InsertLines(ctx, lines); err != nil {
			return err
		}
		bucketID = bucket.ID
		return nil
	})
	if err != nil {
		if _, ok := domain.AsImportError(err); ok {
			return 0, err
		}
		return 0, domain.StorageFailure("no se pudo registrar el movimiento de inventario", err)
	}
	return bucketID, nil
}

// MovementInput ajuste manual de un solo producto.
type MovementInput struct {
	ActorID   int64
	ItemID    int64
	Direction string // "in" | "out"
	Quantity  int64  // siempre positiva; las salidas se registran en negativo
	Channel   string // por defecto "form"
}

// PostMovement registra un ajuste manual con el costo vigente del producto.
func (p *LedgerPoster) PostMovement(ctx context.Context, in MovementInput) (int64, error) {
	qty, err := inventory.SignedQuantity(in.Direction, in.Quantity)
	if err != nil {
		return 0, err
	}
	if in.ItemID <= 0 {
		return 0, domain.ErrInvalidInput
	}
	channel := in.Channel
	if channel == "" {
		channel = entity.ChannelForm
	}

	var bucketID int64
	err = p.tx.Run(ctx, func(itemRepo repository.ItemRepository, ledgerRepo repository.LedgerRepository) error {
		item, err := itemRepo.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		bucket := &entity.LedgerBucket{
			AccountID: in.ActorID,
			Direction: in.Direction,
			Channel:   channel,
			CreatedAt: p.now(),
		}
		if err := ledgerRepo.InsertBucket(ctx, bucket); err != nil {
			return err
		}
		line := inventory.NewLine(item.ID, qty, item.Cost)
		line.BucketID = bucket.ID
		if err := ledgerRepo.InsertLines(ctx, []*entity.LedgerLine{line}); err != nil {
			return err
		}
		bucketID = bucket.ID
		return nil
	})
	return bucketID, err
}

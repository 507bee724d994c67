package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

// Label una etiqueta por línea del movimiento.
type Label struct {
	Item     *entity.Item
	Quantity int64
}

// LabelSheetGenerator genera el PDF de etiquetas (implementado en infrastructure/pdf).
type LabelSheetGenerator interface {
	GenerateLabels(ctx context.Context, bucket *entity.LedgerBucket, labels []Label) ([]byte, error)
}

// LabelUseCase arma la hoja de etiquetas de código de barras de un movimiento.
type LabelUseCase struct {
	ledger    repository.LedgerRepository
	items     repository.ItemRepository
	generator LabelSheetGenerator
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(ledger repository.LedgerRepository, items repository.ItemRepository, generator LabelSheetGenerator) *LabelUseCase {
	return &LabelUseCase{ledger: ledger, items: items, generator: generator}
}

// BucketLabels devuelve el PDF con una etiqueta por línea, en el orden del movimiento.
func (uc *LabelUseCase) BucketLabels(ctx context.Context, bucketID int64) ([]byte, error) {
	bucket, err := uc.ledger.GetBucket(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	if bucket == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.ledger.ListLines(ctx, bucketID)
	if err != nil {
		return nil, err
	}
	labels := make([]Label, 0, len(lines))
	for _, l := range lines {
		item, err := uc.items.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("línea %d: producto %d: %w", l.ID, l.ItemID, domain.ErrNotFound)
		}
		labels = append(labels, Label{Item: item, Quantity: l.Quantity})
	}
	return uc.generator.GenerateLabels(ctx, bucket, labels)
}

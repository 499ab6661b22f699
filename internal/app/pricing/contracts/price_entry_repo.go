package contracts

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PriceEntryRepository defines the interface for price entry persistence.
//
// FindBySKU returns domain.ErrPriceEntryNotFound when no entry exists for the SKU.
// Save persists the aggregate and its pending domain events, then calls
// MarkPersisted on it. FindAll returns entries ordered by SKU.
type PriceEntryRepository interface {
	FindBySKU(ctx context.Context, sku domain.SKU) (*domain.PriceEntry, error)
	Save(ctx context.Context, entry *domain.PriceEntry) error
	FindAll(ctx context.Context) ([]*domain.PriceEntry, error)
}

package contracts

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// AvailabilityProvider returns the current stock signal for a SKU.
// Implementations never fail: unknown SKUs and lookup errors resolve to OUT_OF_STOCK.
type AvailabilityProvider interface {
	GetAvailability(ctx context.Context, sku domain.SKU) domain.AvailabilitySignal
}

// AvailabilityWriter records stock levels pushed by the inventory feed.
type AvailabilityWriter interface {
	SetAvailability(ctx context.Context, sku domain.SKU, level domain.StockLevel) error
}

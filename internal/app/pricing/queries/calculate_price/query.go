package calculate_price

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

// Request contains the calculation inputs.
// A nil At means now; Quantity <= 0 means no quantity and skips bulk tiers.
type Request struct {
	SKU      string
	At       *time.Time
	Quantity int
}

// Query handles the calculate price query use case.
type Query struct {
	repo         contracts.PriceEntryRepository
	availability contracts.AvailabilityProvider
	clock        clock.Clock
	log          *logger.Logger
	metrics      *metrics.PricingMetrics
}

// NewQuery creates a new calculate price query.
func NewQuery(
	repo contracts.PriceEntryRepository,
	availability contracts.AvailabilityProvider,
	clock clock.Clock,
	log *logger.Logger,
	metrics *metrics.PricingMetrics,
) *Query {
	return &Query{
		repo:         repo,
		availability: availability,
		clock:        clock,
		log:          log,
		metrics:      metrics,
	}
}

// Execute calculates the final price of a SKU. found is false when the SKU has no entry.
func (q *Query) Execute(ctx context.Context, req *Request) (dto *contracts.CalculatedPriceDTO, found bool, err error) {
	sku, err := domain.NewSKU(req.SKU)
	if err != nil {
		return nil, false, err
	}

	entry, err := q.repo.FindBySKU(ctx, sku)
	if errors.Is(err, domain.ErrPriceEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load price entry: %w", err)
	}

	at := clock.AtOrNow(q.clock, req.At)
	quantity := max(req.Quantity, 0)

	availability := q.availability.GetAvailability(ctx, sku)
	result, err := entry.CalculatePrice(availability, at, quantity)
	if err != nil {
		return nil, false, fmt.Errorf("failed to calculate price: %w", err)
	}

	q.metrics.ObserveCalculation(string(availability.Level))
	for _, d := range result.AppliedDiscounts {
		if d.Reason == domain.ReasonReducedLowStock || d.Reason == domain.ReasonSuppressedOutOfStock {
			q.metrics.ObserveAdjustment(d.Reason.Code())
		}
	}

	q.log.Event(q.log.WithSKU(ctx, sku.String()), zerolog.DebugLevel).
		Str("availability", string(availability.Level)).
		Int("quantity", quantity).
		Int64("final_price_cents", result.FinalPrice.AmountInCents()).
		Int("discounts", len(result.AppliedDiscounts)).
		Msg("price calculated")

	return contracts.ToCalculatedPriceDTO(result, availability, quantity, at), true, nil
}

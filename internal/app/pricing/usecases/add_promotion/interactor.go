package add_promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/keylock"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

const commandName = "add_promotion"

// Request contains the data to attach a promotion to a SKU.
type Request struct {
	SKU                string
	Name               string
	Type               string
	DiscountPercentage float64
	ValidFrom          time.Time
	ValidUntil         time.Time
	Priority           int
}

// Interactor handles the add promotion use case.
type Interactor struct {
	repo    contracts.PriceEntryRepository
	clock   clock.Clock
	locks   *keylock.KeyLock
	log     *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewInteractor creates a new add promotion interactor.
func NewInteractor(
	repo contracts.PriceEntryRepository,
	clock clock.Clock,
	locks *keylock.KeyLock,
	log *logger.Logger,
	metrics *metrics.PricingMetrics,
) *Interactor {
	return &Interactor{
		repo:    repo,
		clock:   clock,
		locks:   locks,
		log:     log,
		metrics: metrics,
	}
}

// Execute creates the promotion and attaches it to an existing entry.
func (i *Interactor) Execute(ctx context.Context, req *Request) (dto *contracts.PriceEntryDTO, err error) {
	started := time.Now()
	defer func() { i.metrics.ObserveCommand(commandName, err, time.Since(started)) }()

	sku, err := domain.NewSKU(req.SKU)
	if err != nil {
		return nil, err
	}

	promotion, err := domain.NewPromotion(
		req.Name,
		domain.PromotionType(req.Type),
		req.DiscountPercentage,
		req.ValidFrom,
		req.ValidUntil,
		req.Priority,
	)
	if err != nil {
		return nil, err
	}

	ctx = i.log.WithSKU(ctx, sku.String())
	unlock := i.locks.Lock(sku.String())
	defer unlock()

	entry, err := i.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	if err := entry.AddPromotion(promotion, now); err != nil {
		return nil, err
	}

	if err := i.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save price entry: %w", err)
	}

	i.log.Event(ctx, zerolog.InfoLevel).
		Str("promotion", promotion.Name()).
		Str("type", string(promotion.Type())).
		Float64("discount_percentage", promotion.DiscountPercentage()).
		Int("priority", promotion.Priority()).
		Msg("promotion added")

	return contracts.ToPriceEntryDTO(entry, now), nil
}

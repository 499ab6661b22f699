package set_bulk_tiers

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

const commandName = "set_bulk_tiers"

// Tier is one quantity range. A nil MaxQuantity means open-ended.
type Tier struct {
	MinQuantity        int
	MaxQuantity        *int
	DiscountPercentage float64
}

// Request replaces the whole tier set of a SKU. An empty Tiers clears it.
type Request struct {
	SKU   string
	Tiers []Tier
}

// Interactor handles the set bulk tiers use case.
type Interactor struct {
	repo    contracts.PriceEntryRepository
	clock   clock.Clock
	locks   *keylock.KeyLock
	log     *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewInteractor creates a new set bulk tiers interactor.
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

// Execute validates every tier before touching the entry, then replaces the set.
func (i *Interactor) Execute(ctx context.Context, req *Request) (dto *contracts.PriceEntryDTO, err error) {
	started := time.Now()
	defer func() { i.metrics.ObserveCommand(commandName, err, time.Since(started)) }()

	sku, err := domain.NewSKU(req.SKU)
	if err != nil {
		return nil, err
	}

	tiers := make([]domain.BulkTier, 0, len(req.Tiers))
	for idx, t := range req.Tiers {
		tier, err := domain.NewBulkTier(t.MinQuantity, t.MaxQuantity, t.DiscountPercentage)
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", idx, err)
		}
		tiers = append(tiers, tier)
	}

	ctx = i.log.WithSKU(ctx, sku.String())
	unlock := i.locks.Lock(sku.String())
	defer unlock()

	entry, err := i.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	entry.SetBulkTiers(tiers, now)

	if err := i.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save price entry: %w", err)
	}

	i.log.Event(ctx, zerolog.InfoLevel).
		Int("tiers", len(tiers)).
		Msg("bulk tiers replaced")

	return contracts.ToPriceEntryDTO(entry, now), nil
}

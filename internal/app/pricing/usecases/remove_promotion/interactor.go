package remove_promotion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/keylock"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

const commandName = "remove_promotion"

// Request names the promotion to detach from a SKU.
type Request struct {
	SKU           string
	PromotionName string
}

// Interactor handles the remove promotion use case.
type Interactor struct {
	repo    contracts.PriceEntryRepository
	clock   clock.Clock
	locks   *keylock.KeyLock
	log     *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewInteractor creates a new remove promotion interactor.
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

// Execute removes every promotion carrying the given name.
func (i *Interactor) Execute(ctx context.Context, req *Request) (dto *contracts.PriceEntryDTO, err error) {
	started := time.Now()
	defer func() { i.metrics.ObserveCommand(commandName, err, time.Since(started)) }()

	sku, err := domain.NewSKU(req.SKU)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.PromotionName)
	if name == "" {
		return nil, domain.ErrEmptyPromotionName
	}

	ctx = i.log.WithSKU(ctx, sku.String())
	unlock := i.locks.Lock(sku.String())
	defer unlock()

	entry, err := i.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	if err := entry.RemovePromotion(name, now); err != nil {
		return nil, err
	}

	if err := i.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save price entry: %w", err)
	}

	i.log.Event(ctx, zerolog.InfoLevel).
		Str("promotion", name).
		Msg("promotion removed")

	return contracts.ToPriceEntryDTO(entry, now), nil
}

package schedule_base_price

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

const commandName = "schedule_base_price"

// Request contains the data to schedule a future base price.
// An empty Currency uses the entry's base price currency.
type Request struct {
	SKU           string
	PriceInCents  int64
	Currency      string
	EffectiveDate time.Time
}

// Interactor handles the schedule base price use case.
type Interactor struct {
	repo    contracts.PriceEntryRepository
	clock   clock.Clock
	locks   *keylock.KeyLock
	log     *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewInteractor creates a new schedule base price interactor.
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

// Execute appends a scheduled price to an existing entry.
func (i *Interactor) Execute(ctx context.Context, req *Request) (dto *contracts.PriceEntryDTO, err error) {
	started := time.Now()
	defer func() { i.metrics.ObserveCommand(commandName, err, time.Since(started)) }()

	sku, err := domain.NewSKU(req.SKU)
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

	currency := req.Currency
	if currency == "" {
		currency = entry.BasePrice().Currency()
	}
	price, err := domain.NewMoney(req.PriceInCents, currency)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	if err := entry.ScheduleBasePrice(price, req.EffectiveDate, now); err != nil {
		return nil, err
	}

	if err := i.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save price entry: %w", err)
	}

	i.log.Event(ctx, zerolog.InfoLevel).
		Int64("price_cents", price.AmountInCents()).
		Time("effective_date", req.EffectiveDate).
		Msg("base price scheduled")

	return contracts.ToPriceEntryDTO(entry, now), nil
}

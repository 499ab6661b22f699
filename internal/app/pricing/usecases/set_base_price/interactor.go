package set_base_price

import (
	"context"
	"errors"
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

const commandName = "set_base_price"

// Request contains the data to set a SKU's base price.
// An empty Currency keeps the entry's current currency, or uses the
// interactor's default for a new entry.
type Request struct {
	SKU          string
	PriceInCents int64
	Currency     string
}

// Interactor handles the set base price use case.
type Interactor struct {
	repo            contracts.PriceEntryRepository
	clock           clock.Clock
	locks           *keylock.KeyLock
	log             *logger.Logger
	metrics         *metrics.PricingMetrics
	defaultCurrency string
}

// NewInteractor creates a new set base price interactor.
func NewInteractor(
	repo contracts.PriceEntryRepository,
	clock clock.Clock,
	locks *keylock.KeyLock,
	log *logger.Logger,
	metrics *metrics.PricingMetrics,
	defaultCurrency string,
) *Interactor {
	return &Interactor{
		repo:            repo,
		clock:           clock,
		locks:           locks,
		log:             log,
		metrics:         metrics,
		defaultCurrency: defaultCurrency,
	}
}

// Execute sets the base price, creating the price entry when the SKU has none.
func (i *Interactor) Execute(ctx context.Context, req *Request) (dto *contracts.PriceEntryDTO, err error) {
	started := time.Now()
	defer func() { i.metrics.ObserveCommand(commandName, err, time.Since(started)) }()

	// 1. Validate input
	sku, err := domain.NewSKU(req.SKU)
	if err != nil {
		return nil, err
	}

	ctx = i.log.WithSKU(ctx, sku.String())
	unlock := i.locks.Lock(sku.String())
	defer unlock()

	// 2. Load or create aggregate
	now := i.clock.Now()
	entry, err := i.repo.FindBySKU(ctx, sku)
	switch {
	case errors.Is(err, domain.ErrPriceEntryNotFound):
		currency := req.Currency
		if currency == "" {
			currency = i.defaultCurrency
		}
		price, err := domain.NewMoney(req.PriceInCents, currency)
		if err != nil {
			return nil, err
		}
		entry, err = domain.NewPriceEntry(sku, price, now)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load price entry: %w", err)
	default:
		currency := req.Currency
		if currency == "" {
			currency = entry.BasePrice().Currency()
		}
		price, err := domain.NewMoney(req.PriceInCents, currency)
		if err != nil {
			return nil, err
		}
		if err := entry.SetBasePrice(price, now); err != nil {
			return nil, err
		}
	}

	// 3. Persist
	if err := i.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save price entry: %w", err)
	}

	i.log.Event(ctx, zerolog.InfoLevel).
		Int64("price_cents", entry.BasePrice().AmountInCents()).
		Str("currency", entry.BasePrice().Currency()).
		Int64("version", entry.Version()).
		Msg("base price set")

	return contracts.ToPriceEntryDTO(entry, now), nil
}

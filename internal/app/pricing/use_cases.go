// Package pricing bundles the price entry commands and queries behind one facade.
package pricing

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_savings_summary"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_price_entry"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_price_entries"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/add_promotion"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/remove_promotion"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/schedule_base_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_base_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_bulk_tiers"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/keylock"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

// Dependencies are the collaborators shared by every use case.
type Dependencies struct {
	Repo            contracts.PriceEntryRepository
	Availability    contracts.AvailabilityProvider
	AvailabilitySet contracts.AvailabilityWriter
	Events          contracts.OutboxReader
	Clock           clock.Clock
	Log             *logger.Logger
	Metrics         *metrics.PricingMetrics
	DefaultCurrency string
}

// PriceEntryUseCases is the entry point used by the transports.
type PriceEntryUseCases struct {
	setBasePrice      *set_base_price.Interactor
	scheduleBasePrice *schedule_base_price.Interactor
	setBulkTiers      *set_bulk_tiers.Interactor
	addPromotion      *add_promotion.Interactor
	removePromotion   *remove_promotion.Interactor

	getPriceEntry    *get_price_entry.Query
	listPriceEntries *list_price_entries.Query
	calculatePrice   *calculate_price.Query
	savingsSummary   *calculate_savings_summary.Query
	listEvents       *list_events.Query

	availability contracts.AvailabilityWriter
	log          *logger.Logger
}

// NewPriceEntryUseCases wires every interactor and query onto deps.
// Commands share one per-SKU lock.
func NewPriceEntryUseCases(deps Dependencies) *PriceEntryUseCases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	locks := keylock.New()

	return &PriceEntryUseCases{
		setBasePrice:      set_base_price.NewInteractor(deps.Repo, deps.Clock, locks, deps.Log, deps.Metrics, deps.DefaultCurrency),
		scheduleBasePrice: schedule_base_price.NewInteractor(deps.Repo, deps.Clock, locks, deps.Log, deps.Metrics),
		setBulkTiers:      set_bulk_tiers.NewInteractor(deps.Repo, deps.Clock, locks, deps.Log, deps.Metrics),
		addPromotion:      add_promotion.NewInteractor(deps.Repo, deps.Clock, locks, deps.Log, deps.Metrics),
		removePromotion:   remove_promotion.NewInteractor(deps.Repo, deps.Clock, locks, deps.Log, deps.Metrics),

		getPriceEntry:    get_price_entry.NewQuery(deps.Repo, deps.Clock),
		listPriceEntries: list_price_entries.NewQuery(deps.Repo, deps.Clock),
		calculatePrice:   calculate_price.NewQuery(deps.Repo, deps.Availability, deps.Clock, deps.Log, deps.Metrics),
		savingsSummary:   calculate_savings_summary.NewQuery(deps.Repo, deps.Availability, deps.Clock),
		listEvents:       list_events.NewQuery(deps.Events),

		availability: deps.AvailabilitySet,
		log:          deps.Log,
	}
}

func (u *PriceEntryUseCases) SetBasePrice(ctx context.Context, req *set_base_price.Request) (*contracts.PriceEntryDTO, error) {
	return u.setBasePrice.Execute(ctx, req)
}

func (u *PriceEntryUseCases) ScheduleBasePrice(ctx context.Context, req *schedule_base_price.Request) (*contracts.PriceEntryDTO, error) {
	return u.scheduleBasePrice.Execute(ctx, req)
}

func (u *PriceEntryUseCases) SetBulkTiers(ctx context.Context, req *set_bulk_tiers.Request) (*contracts.PriceEntryDTO, error) {
	return u.setBulkTiers.Execute(ctx, req)
}

func (u *PriceEntryUseCases) AddPromotion(ctx context.Context, req *add_promotion.Request) (*contracts.PriceEntryDTO, error) {
	return u.addPromotion.Execute(ctx, req)
}

func (u *PriceEntryUseCases) RemovePromotion(ctx context.Context, req *remove_promotion.Request) (*contracts.PriceEntryDTO, error) {
	return u.removePromotion.Execute(ctx, req)
}

// GetPriceEntry reports found=false when the SKU has no entry.
func (u *PriceEntryUseCases) GetPriceEntry(ctx context.Context, req *get_price_entry.Request) (*contracts.PriceEntryDTO, bool, error) {
	return u.getPriceEntry.Execute(ctx, req)
}

func (u *PriceEntryUseCases) ListPriceEntries(ctx context.Context) ([]*contracts.PriceEntryDTO, error) {
	return u.listPriceEntries.Execute(ctx)
}

// CalculatePrice reports found=false when the SKU has no entry.
func (u *PriceEntryUseCases) CalculatePrice(ctx context.Context, req *calculate_price.Request) (*contracts.CalculatedPriceDTO, bool, error) {
	return u.calculatePrice.Execute(ctx, req)
}

// CalculateSavingsSummary reports found=false when the SKU has no entry.
func (u *PriceEntryUseCases) CalculateSavingsSummary(ctx context.Context, req *calculate_savings_summary.Request) (*contracts.SavingsSummaryDTO, bool, error) {
	return u.savingsSummary.Execute(ctx, req)
}

// ListEvents returns recent outbox events and the total number matching the filter.
func (u *PriceEntryUseCases) ListEvents(ctx context.Context, req *list_events.Request) ([]contracts.OutboxEventDTO, int64, error) {
	return u.listEvents.Execute(ctx, req)
}

// SetAvailability records a stock level pushed by the inventory feed.
func (u *PriceEntryUseCases) SetAvailability(ctx context.Context, rawSKU, rawLevel string) (domain.AvailabilitySignal, error) {
	sku, err := domain.NewSKU(rawSKU)
	if err != nil {
		return domain.AvailabilitySignal{}, err
	}
	level, err := domain.ParseStockLevel(rawLevel)
	if err != nil {
		return domain.AvailabilitySignal{}, err
	}
	if err := u.availability.SetAvailability(ctx, sku, level); err != nil {
		return domain.AvailabilitySignal{}, err
	}
	u.log.Info(u.log.WithFields(ctx, map[string]any{"sku": sku.String(), "level": string(level)}), "availability updated")
	return domain.NewAvailabilitySignal(sku.String(), level), nil
}

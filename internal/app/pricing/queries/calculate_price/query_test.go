package calculate_price

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availmemory "github.com/light-bringer/pricing-service/internal/app/pricing/availability/memory"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx      context.Context
	repo     *memory.PriceEntryRepo
	stock    *availmemory.Provider
	registry *prometheus.Registry
	query    *Query
}

func setup(t *testing.T) *fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	f := &fixture{
		ctx:      context.Background(),
		repo:     memory.NewPriceEntryRepo(),
		stock:    availmemory.NewProvider(),
		registry: reg,
	}
	f.query = NewQuery(f.repo, f.stock, clock.NewMockClock(now), logger.Nop(), metrics.NewPricingMetrics(reg))
	return f
}

func (f *fixture) seed(t *testing.T, sku string, cents int64, mutate func(e *domain.PriceEntry)) {
	t.Helper()
	price, err := domain.NewMoney(cents, "USD")
	require.NoError(t, err)
	entry, err := domain.NewPriceEntry(domain.MustSKU(sku), price, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	if mutate != nil {
		mutate(entry)
	}
	require.NoError(t, f.repo.Save(f.ctx, entry))
}

func (f *fixture) stockLevel(t *testing.T, sku string, level domain.StockLevel) {
	t.Helper()
	require.NoError(t, f.stock.SetAvailability(f.ctx, domain.MustSKU(sku), level))
}

func addPromotion(t *testing.T, e *domain.PriceEntry, name string, pct float64) {
	t.Helper()
	p, err := domain.NewPromotion(name, domain.PromotionSeasonal, pct, now.Add(-time.Hour), now.Add(time.Hour), 0)
	require.NoError(t, err)
	require.NoError(t, e.AddPromotion(p, now))
}

func TestCalculatePrice_AvailabilityScenarios(t *testing.T) {
	tests := []struct {
		name       string
		level      domain.StockLevel
		wantFinal  int64
		wantPct    float64
		wantReason string
	}{
		{"high stock gets the full discount", domain.StockHigh, 800, 20, "Full discount applied"},
		{"low stock halves the discount", domain.StockLow, 900, 10, "Reduced discount: low stock"},
		{"out of stock suppresses the discount", domain.StockOutOfStock, 1000, 0, "No discount: item out of stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.seed(t, "SKU-A", 1000, func(e *domain.PriceEntry) { addPromotion(t, e, "Summer", 20) })
			f.stockLevel(t, "SKU-A", tt.level)

			dto, found, err := f.query.Execute(f.ctx, &Request{SKU: "SKU-A"})
			require.NoError(t, err)
			require.True(t, found)

			assert.Equal(t, int64(1000), dto.BasePrice.AmountInCents)
			assert.Equal(t, tt.wantFinal, dto.FinalPrice.AmountInCents)
			assert.Equal(t, string(tt.level), dto.Availability)
			require.Len(t, dto.AppliedDiscounts, 1)
			assert.Equal(t, 20.0, dto.AppliedDiscounts[0].OriginalPercentage)
			assert.Equal(t, tt.wantPct, dto.AppliedDiscounts[0].AppliedPercentage)
			assert.Equal(t, tt.wantReason, dto.AppliedDiscounts[0].Reason)
			assert.Equal(t, now, dto.CalculatedAt)
		})
	}
}

func TestCalculatePrice_UnknownAvailabilityIsOutOfStock(t *testing.T) {
	f := setup(t)
	f.seed(t, "SKU-A", 1000, func(e *domain.PriceEntry) { addPromotion(t, e, "Summer", 20) })

	dto, found, err := f.query.Execute(f.ctx, &Request{SKU: "SKU-A"})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "OUT_OF_STOCK", dto.Availability)
	assert.Equal(t, int64(1000), dto.FinalPrice.AmountInCents)
}

func TestCalculatePrice_ScheduledPricesAndAt(t *testing.T) {
	f := setup(t)
	f.seed(t, "SKU-D", 50000, func(e *domain.PriceEntry) {
		yesterday, err := domain.NewMoney(40000, "USD")
		require.NoError(t, err)
		tomorrow, err := domain.NewMoney(45000, "USD")
		require.NoError(t, err)
		require.NoError(t, e.ScheduleBasePrice(yesterday, now.Add(-24*time.Hour), now))
		require.NoError(t, e.ScheduleBasePrice(tomorrow, now.Add(24*time.Hour), now))
	})
	f.stockLevel(t, "SKU-D", domain.StockHigh)

	dto, _, err := f.query.Execute(f.ctx, &Request{SKU: "SKU-D"})
	require.NoError(t, err)
	assert.Equal(t, int64(40000), dto.BasePrice.AmountInCents)
	assert.Equal(t, int64(40000), dto.FinalPrice.AmountInCents)
	assert.Empty(t, dto.AppliedDiscounts)

	later := now.Add(48 * time.Hour)
	dto, _, err = f.query.Execute(f.ctx, &Request{SKU: "SKU-D", At: &later})
	require.NoError(t, err)
	assert.Equal(t, int64(45000), dto.BasePrice.AmountInCents)
	assert.Equal(t, later, dto.CalculatedAt)
}

func TestCalculatePrice_BulkTiersStackWithPromotions(t *testing.T) {
	f := setup(t)
	f.seed(t, "SKU-E", 1000, func(e *domain.PriceEntry) {
		nine, fortyNine := 9, 49
		var tiers []domain.BulkTier
		for _, tc := range []struct {
			minQty int
			maxQty *int
			pct    float64
		}{{1, &nine, 0}, {10, &fortyNine, 5}, {50, nil, 10}} {
			tier, err := domain.NewBulkTier(tc.minQty, tc.maxQty, tc.pct)
			require.NoError(t, err)
			tiers = append(tiers, tier)
		}
		e.SetBulkTiers(tiers, now)
		addPromotion(t, e, "Summer", 20)
	})
	f.stockLevel(t, "SKU-E", domain.StockHigh)

	dto, _, err := f.query.Execute(f.ctx, &Request{SKU: "SKU-E", Quantity: 50})
	require.NoError(t, err)
	require.Len(t, dto.AppliedDiscounts, 2)
	assert.Equal(t, "Bulk discount (50+ units)", dto.AppliedDiscounts[0].PromotionName)
	assert.Equal(t, 10.0, dto.AppliedDiscounts[0].AppliedPercentage)
	assert.Equal(t, "BULK_TIER", dto.AppliedDiscounts[0].ReasonCode)
	// 1000 -10% = 900, -20% = 720
	assert.Equal(t, int64(720), dto.FinalPrice.AmountInCents)
	assert.Equal(t, 28, dto.TotalDiscountPercentage)
	assert.Equal(t, 50, dto.Quantity)

	dto, _, err = f.query.Execute(f.ctx, &Request{SKU: "SKU-E", Quantity: -3})
	require.NoError(t, err)
	assert.Equal(t, 0, dto.Quantity)
	assert.Len(t, dto.AppliedDiscounts, 1, "no quantity means no bulk tier")
}

func TestCalculatePrice_AbsentAndInvalid(t *testing.T) {
	f := setup(t)

	dto, found, err := f.query.Execute(f.ctx, &Request{SKU: "NOPE-1"})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dto)

	_, _, err = f.query.Execute(f.ctx, &Request{SKU: ""})
	assert.ErrorIs(t, err, domain.ErrEmptySKU)
}

func TestCalculatePrice_RecordsMetrics(t *testing.T) {
	f := setup(t)
	f.seed(t, "SKU-M", 1000, func(e *domain.PriceEntry) {
		addPromotion(t, e, "Summer", 20)
		p, err := domain.NewPromotion("Clearance", domain.PromotionClearance, 10, now.Add(-time.Hour), now.Add(time.Hour), 0)
		require.NoError(t, err)
		require.NoError(t, e.AddPromotion(p, now))
	})
	f.stockLevel(t, "SKU-M", domain.StockLow)

	_, _, err := f.query.Execute(f.ctx, &Request{SKU: "SKU-M"})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(f.registry, "pricing_calculations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := f.registry.Gather()
	require.NoError(t, err)
	var adjusted float64
	for _, mf := range families {
		if mf.GetName() == "pricing_promotion_adjustments_total" {
			for _, m := range mf.GetMetric() {
				adjusted += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, adjusted)
}

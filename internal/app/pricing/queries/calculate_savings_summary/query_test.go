package calculate_savings_summary

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availmemory "github.com/light-bringer/pricing-service/internal/app/pricing/availability/memory"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func promotion(t *testing.T, name string, pct float64, priority int) domain.Promotion {
	t.Helper()
	p, err := domain.NewPromotion(name, domain.PromotionSeasonal, pct, now.Add(-time.Hour), now.Add(time.Hour), priority)
	require.NoError(t, err)
	return p
}

func setup(t *testing.T, cents int64, level domain.StockLevel, mutate func(e *domain.PriceEntry)) *Query {
	t.Helper()
	ctx := context.Background()
	repo := memory.NewPriceEntryRepo()
	stock := availmemory.NewProvider()

	price, err := domain.NewMoney(cents, "USD")
	require.NoError(t, err)
	entry, err := domain.NewPriceEntry(domain.MustSKU("SKU-S"), price, now.Add(-time.Hour))
	require.NoError(t, err)
	if mutate != nil {
		mutate(entry)
	}
	require.NoError(t, repo.Save(ctx, entry))
	require.NoError(t, stock.SetAvailability(ctx, domain.MustSKU("SKU-S"), level))

	return NewQuery(repo, stock, clock.NewMockClock(now))
}

func TestSavingsSummary_BreakdownSumsToTotal(t *testing.T) {
	query := setup(t, 999, domain.StockHigh, func(e *domain.PriceEntry) {
		tier, err := domain.NewBulkTier(10, nil, 5)
		require.NoError(t, err)
		e.SetBulkTiers([]domain.BulkTier{tier}, now)
		require.NoError(t, e.AddPromotion(promotion(t, "Big", 15, 2), now))
		require.NoError(t, e.AddPromotion(promotion(t, "Small", 7.5, 1), now))
	})

	dto, found, err := query.Execute(context.Background(), &Request{SKU: "SKU-S", Quantity: 12})
	require.NoError(t, err)
	require.True(t, found)

	require.Len(t, dto.Breakdown, 3)
	assert.Equal(t, "Bulk discount (10+ units)", dto.Breakdown[0].Label)
	assert.Equal(t, "Big", dto.Breakdown[1].Label)
	assert.Equal(t, "Small", dto.Breakdown[2].Label)

	// 999 -5% (50) = 949, -15% (142) = 807, -7.5% (61) = 746
	assert.Equal(t, int64(50), dto.Breakdown[0].Saved.AmountInCents)
	assert.Equal(t, int64(142), dto.Breakdown[1].Saved.AmountInCents)
	assert.Equal(t, int64(61), dto.Breakdown[2].Saved.AmountInCents)
	assert.Equal(t, int64(746), dto.FinalPrice.AmountInCents)

	var total int64
	for _, line := range dto.Breakdown {
		total += line.Saved.AmountInCents
	}
	assert.Equal(t, dto.TotalSavings.AmountInCents, total)
	assert.Equal(t, dto.BasePrice.AmountInCents-dto.FinalPrice.AmountInCents, total)
	assert.Equal(t, 25, dto.TotalDiscountPercentage)
}

func TestSavingsSummary_OutOfStockLinesSaveNothing(t *testing.T) {
	query := setup(t, 1000, domain.StockOutOfStock, func(e *domain.PriceEntry) {
		require.NoError(t, e.AddPromotion(promotion(t, "Summer", 20, 0), now))
	})

	dto, found, err := query.Execute(context.Background(), &Request{SKU: "SKU-S"})
	require.NoError(t, err)
	require.True(t, found)

	require.Len(t, dto.Breakdown, 1)
	assert.Equal(t, int64(0), dto.Breakdown[0].Saved.AmountInCents)
	assert.Equal(t, "No discount: item out of stock", dto.Breakdown[0].Reason)
	assert.Equal(t, int64(0), dto.TotalSavings.AmountInCents)
	assert.Equal(t, "OUT_OF_STOCK", dto.Availability)
}

func TestSavingsSummary_AbsentAndInvalid(t *testing.T) {
	query := setup(t, 1000, domain.StockHigh, nil)

	dto, found, err := query.Execute(context.Background(), &Request{SKU: "OTHER-1"})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dto)

	_, _, err = query.Execute(context.Background(), &Request{SKU: "bad sku"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestBreakdown_RejectsInconsistentResult(t *testing.T) {
	base, err := domain.NewMoney(1000, "USD")
	require.NoError(t, err)
	wrongFinal, err := domain.NewMoney(500, "USD")
	require.NoError(t, err)

	_, err = Breakdown(&domain.CalculatedPrice{
		SKU:        domain.MustSKU("X"),
		BasePrice:  base,
		FinalPrice: wrongFinal,
		AppliedDiscounts: []domain.AppliedDiscount{
			{PromotionName: "Half", OriginalPercentage: 10, AppliedPercentage: 10, Reason: domain.ReasonFull},
		},
	})
	assert.Error(t, err)
}

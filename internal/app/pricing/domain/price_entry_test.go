package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func usd(t *testing.T, cents int64) Money {
	t.Helper()
	m, err := NewMoney(cents, "USD")
	require.NoError(t, err)
	return m
}

func newTestEntry(t *testing.T, cents int64) *PriceEntry {
	t.Helper()
	e, err := NewPriceEntry(MustSKU("WIDGET-1"), usd(t, cents), testNow.Add(-48*time.Hour))
	require.NoError(t, err)
	return e
}

func activePromotion(t *testing.T, name string, pct float64, priority int) Promotion {
	t.Helper()
	p, err := NewPromotion(name, PromotionSeasonal, pct, testNow.Add(-time.Hour), testNow.Add(time.Hour), priority)
	require.NoError(t, err)
	return p
}

func tier(t *testing.T, minQty int, maxQty *int, pct float64) BulkTier {
	t.Helper()
	bt, err := NewBulkTier(minQty, maxQty, pct)
	require.NoError(t, err)
	return bt
}

func intPtr(i int) *int { return &i }

var (
	high       = NewAvailabilitySignal("WIDGET-1", StockHigh)
	medium     = NewAvailabilitySignal("WIDGET-1", StockMedium)
	low        = NewAvailabilitySignal("WIDGET-1", StockLow)
	outOfStock = NewAvailabilitySignal("WIDGET-1", StockOutOfStock)
)

func TestNewPriceEntry(t *testing.T) {
	t.Run("zero base price returns error", func(t *testing.T) {
		_, err := NewPriceEntry(MustSKU("A"), usd(t, 0), testNow)
		assert.ErrorIs(t, err, ErrZeroBasePrice)
	})

	t.Run("new entry is dirty and records creation event", func(t *testing.T) {
		e := newTestEntry(t, 1000)
		assert.True(t, e.Changes().Dirty(FieldBasePrice))
		require.Len(t, e.DomainEvents(), 1)
		assert.Equal(t, "price_entry.created", e.DomainEvents()[0].EventType())
		assert.Equal(t, "WIDGET-1", e.DomainEvents()[0].AggregateID())
	})
}

func TestPriceEntry_CalculatePrice_NoDiscounts(t *testing.T) {
	e := newTestEntry(t, 1000)

	result, err := e.CalculatePrice(high, testNow, 0)
	require.NoError(t, err)

	assert.True(t, result.FinalPrice.Equals(result.BasePrice))
	assert.Equal(t, int64(1000), result.FinalPrice.AmountInCents())
	assert.Empty(t, result.AppliedDiscounts)
	assert.Equal(t, 0, result.TotalDiscountPercentage())
}

func TestPriceEntry_CalculatePrice_Availability(t *testing.T) {
	tests := []struct {
		name         string
		availability AvailabilitySignal
		wantFinal    int64
		wantApplied  float64
		wantReason   DiscountReason
	}{
		{"high stock applies full discount", high, 800, 20, ReasonFull},
		{"medium stock applies full discount", medium, 800, 20, ReasonFull},
		{"low stock halves the discount", low, 900, 10, ReasonReducedLowStock},
		{"out of stock suppresses the discount", outOfStock, 1000, 0, ReasonSuppressedOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEntry(t, 1000)
			require.NoError(t, e.AddPromotion(activePromotion(t, "Summer", 20, 0), testNow))

			result, err := e.CalculatePrice(tt.availability, testNow, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFinal, result.FinalPrice.AmountInCents())
			require.Len(t, result.AppliedDiscounts, 1)
			d := result.AppliedDiscounts[0]
			assert.Equal(t, "Summer", d.PromotionName)
			assert.Equal(t, 20.0, d.OriginalPercentage)
			assert.Equal(t, tt.wantApplied, d.AppliedPercentage)
			assert.Equal(t, tt.wantReason, d.Reason)
		})
	}
}

func TestPriceEntry_CalculatePrice_OutOfStockSuppressesEveryPromotion(t *testing.T) {
	e := newTestEntry(t, 5000)
	require.NoError(t, e.AddPromotion(activePromotion(t, "A", 90, 2), testNow))
	require.NoError(t, e.AddPromotion(activePromotion(t, "B", 100, 1), testNow))
	require.NoError(t, e.AddPromotion(activePromotion(t, "C", 5, 0), testNow))

	result, err := e.CalculatePrice(outOfStock, testNow, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), result.FinalPrice.AmountInCents())
	require.Len(t, result.AppliedDiscounts, 3)
	for _, d := range result.AppliedDiscounts {
		assert.Zero(t, d.AppliedPercentage)
		assert.Equal(t, "No discount: item out of stock", d.Reason.String())
	}
}

func TestPriceEntry_CalculatePrice_CompoundsWithPerStepRounding(t *testing.T) {
	e := newTestEntry(t, 999)
	require.NoError(t, e.AddPromotion(activePromotion(t, "First", 15, 10), testNow))
	require.NoError(t, e.AddPromotion(activePromotion(t, "Second", 15, 5), testNow))

	t.Run("full stock", func(t *testing.T) {
		result, err := e.CalculatePrice(high, testNow, 0)
		require.NoError(t, err)
		// 999 - round(149.85)=150 -> 849; 849 - round(127.35)=127 -> 722
		assert.Equal(t, int64(722), result.FinalPrice.AmountInCents())
		assert.Equal(t, 28, result.TotalDiscountPercentage())
	})

	t.Run("low stock halves each step", func(t *testing.T) {
		result, err := e.CalculatePrice(low, testNow, 0)
		require.NoError(t, err)
		// 7.5% of 999 = 74.925 -> 75 -> 924; 7.5% of 924 = 69.3 -> 69 -> 855
		assert.Equal(t, int64(855), result.FinalPrice.AmountInCents())
		for _, d := range result.AppliedDiscounts {
			assert.Equal(t, 7.5, d.AppliedPercentage)
			assert.Equal(t, ReasonReducedLowStock, d.Reason)
		}
	})
}

func TestPriceEntry_CalculatePrice_PromotionWindowBoundaries(t *testing.T) {
	e := newTestEntry(t, 1000)

	endsNow, err := NewPromotion("Ends", PromotionClearance, 50, testNow.Add(-time.Hour), testNow, 0)
	require.NoError(t, err)
	startsNow, err := NewPromotion("Starts", PromotionClearance, 10, testNow, testNow.Add(time.Hour), 0)
	require.NoError(t, err)

	require.NoError(t, e.AddPromotion(endsNow, testNow))
	require.NoError(t, e.AddPromotion(startsNow, testNow))

	result, err := e.CalculatePrice(high, testNow, 0)
	require.NoError(t, err)

	require.Len(t, result.AppliedDiscounts, 1)
	assert.Equal(t, "Starts", result.AppliedDiscounts[0].PromotionName)
	assert.Equal(t, int64(900), result.FinalPrice.AmountInCents())
}

func TestPriceEntry_CalculatePrice_PriorityOrder(t *testing.T) {
	e := newTestEntry(t, 1000)
	require.NoError(t, e.AddPromotion(activePromotion(t, "Low", 10, 1), testNow))
	require.NoError(t, e.AddPromotion(activePromotion(t, "High", 50, 9), testNow))
	require.NoError(t, e.AddPromotion(activePromotion(t, "Mid", 20, 5), testNow))
	require.NoError(t, e.AddPromotion(activePromotion(t, "MidLater", 20, 5), testNow))

	names := make([]string, 0)
	for _, p := range e.Promotions() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"High", "Mid", "MidLater", "Low"}, names)

	result, err := e.CalculatePrice(high, testNow, 0)
	require.NoError(t, err)
	// 1000 -> 500 -> 400 -> 320 -> 288
	assert.Equal(t, int64(288), result.FinalPrice.AmountInCents())
	assert.Equal(t, "High", result.AppliedDiscounts[0].PromotionName)
}

func TestPriceEntry_ScheduledPrices(t *testing.T) {
	e := newTestEntry(t, 50000)
	require.NoError(t, e.ScheduleBasePrice(usd(t, 45000), testNow.Add(24*time.Hour), testNow))
	require.NoError(t, e.ScheduleBasePrice(usd(t, 40000), testNow.Add(-24*time.Hour), testNow))

	scheduled := e.ScheduledPrices()
	require.Len(t, scheduled, 2)
	assert.True(t, scheduled[0].EffectiveDate().Before(scheduled[1].EffectiveDate()))

	result, err := e.CalculatePrice(high, testNow, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), result.BasePrice.AmountInCents())
	assert.Equal(t, int64(40000), result.FinalPrice.AmountInCents())

	t.Run("later instant picks the most recent triggered schedule", func(t *testing.T) {
		result, err := e.CalculatePrice(high, testNow.Add(48*time.Hour), 0)
		require.NoError(t, err)
		assert.Equal(t, int64(45000), result.BasePrice.AmountInCents())
	})

	t.Run("schedule takes effect at its exact instant", func(t *testing.T) {
		assert.Equal(t, int64(45000), e.EffectiveBasePrice(testNow.Add(24*time.Hour)).AmountInCents())
	})

	t.Run("before any schedule the base price applies", func(t *testing.T) {
		assert.Equal(t, int64(50000), e.EffectiveBasePrice(testNow.Add(-72*time.Hour)).AmountInCents())
	})

	t.Run("duplicate schedules are kept", func(t *testing.T) {
		require.NoError(t, e.ScheduleBasePrice(usd(t, 40000), testNow.Add(-24*time.Hour), testNow))
		assert.Len(t, e.ScheduledPrices(), 3)
	})

	t.Run("zero effective date returns error", func(t *testing.T) {
		err := e.ScheduleBasePrice(usd(t, 100), time.Time{}, testNow)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestPriceEntry_BulkTiers(t *testing.T) {
	newTiered := func(t *testing.T) *PriceEntry {
		e := newTestEntry(t, 1000)
		// Deliberately unsorted to prove SetBulkTiers sorts.
		e.SetBulkTiers([]BulkTier{
			tier(t, 50, nil, 10),
			tier(t, 1, intPtr(9), 0),
			tier(t, 10, intPtr(49), 5),
		}, testNow)
		return e
	}

	t.Run("tiers are sorted ascending", func(t *testing.T) {
		e := newTiered(t)
		tiers := e.BulkTiers()
		require.Len(t, tiers, 3)
		assert.Equal(t, 1, tiers[0].MinQuantity())
		assert.Equal(t, 10, tiers[1].MinQuantity())
		assert.Equal(t, 50, tiers[2].MinQuantity())
	})

	t.Run("quantity 50 takes the 10% tier and stacks with a promotion", func(t *testing.T) {
		e := newTiered(t)
		require.NoError(t, e.AddPromotion(activePromotion(t, "Summer", 20, 0), testNow))

		result, err := e.CalculatePrice(high, testNow, 50)
		require.NoError(t, err)

		require.Len(t, result.AppliedDiscounts, 2)
		bulk := result.AppliedDiscounts[0]
		assert.Equal(t, "Bulk discount (50+ units)", bulk.PromotionName)
		assert.Equal(t, 10.0, bulk.AppliedPercentage)
		assert.Equal(t, ReasonBulkTier, bulk.Reason)
		// 1000 -> 900 -> 720
		assert.Equal(t, int64(720), result.FinalPrice.AmountInCents())
		assert.Equal(t, 28, result.TotalDiscountPercentage())
	})

	t.Run("zero percent tier records nothing", func(t *testing.T) {
		e := newTiered(t)
		result, err := e.CalculatePrice(high, testNow, 5)
		require.NoError(t, err)
		assert.Empty(t, result.AppliedDiscounts)
		assert.Equal(t, int64(1000), result.FinalPrice.AmountInCents())
	})

	t.Run("no quantity skips tiers", func(t *testing.T) {
		e := newTiered(t)
		result, err := e.CalculatePrice(high, testNow, 0)
		require.NoError(t, err)
		assert.Empty(t, result.AppliedDiscounts)
	})

	t.Run("bulk tier ignores availability", func(t *testing.T) {
		e := newTiered(t)
		result, err := e.CalculatePrice(outOfStock, testNow, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(950), result.FinalPrice.AmountInCents())
	})

	t.Run("overlapping tiers resolve to the last match", func(t *testing.T) {
		e := newTestEntry(t, 1000)
		e.SetBulkTiers([]BulkTier{
			tier(t, 1, nil, 2),
			tier(t, 5, intPtr(100), 7),
			tier(t, 20, intPtr(30), 3),
		}, testNow)

		bt, ok := e.ApplicableBulkTier(25)
		require.True(t, ok)
		assert.Equal(t, 20, bt.MinQuantity())

		bt, ok = e.ApplicableBulkTier(50)
		require.True(t, ok)
		assert.Equal(t, 5, bt.MinQuantity())
	})

	t.Run("set replaces wholesale", func(t *testing.T) {
		e := newTiered(t)
		e.SetBulkTiers(nil, testNow)
		assert.Empty(t, e.BulkTiers())
	})
}

func TestPriceEntry_AddRemovePromotion(t *testing.T) {
	e := newTestEntry(t, 1000)
	e.ClearEvents()

	require.NoError(t, e.AddPromotion(activePromotion(t, "Summer", 20, 0), testNow))

	t.Run("same name and type with different percentage is a duplicate", func(t *testing.T) {
		err := e.AddPromotion(activePromotion(t, "Summer", 35, 4), testNow)
		assert.ErrorIs(t, err, ErrAlreadyExists)
		assert.Len(t, e.Promotions(), 1)
	})

	t.Run("same name different type is accepted", func(t *testing.T) {
		p, err := NewPromotion("Summer", PromotionClearance, 5, testNow.Add(-time.Hour), testNow.Add(time.Hour), 0)
		require.NoError(t, err)
		require.NoError(t, e.AddPromotion(p, testNow))
		assert.Len(t, e.Promotions(), 2)
	})

	t.Run("remove by name removes all matches", func(t *testing.T) {
		require.NoError(t, e.RemovePromotion("Summer", testNow))
		assert.Empty(t, e.Promotions())
		assert.True(t, e.Changes().Dirty(FieldPromotions))
	})

	t.Run("remove unknown returns not found", func(t *testing.T) {
		err := e.RemovePromotion("Nope", testNow)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	types := make([]string, 0)
	for _, ev := range e.DomainEvents() {
		types = append(types, ev.EventType())
	}
	assert.Equal(t, []string{
		"price_entry.promotion.added",
		"price_entry.promotion.added",
		"price_entry.promotion.removed",
	}, types)
}

func TestPriceEntry_SetBasePrice(t *testing.T) {
	e := newTestEntry(t, 1000)

	require.NoError(t, e.SetBasePrice(usd(t, 1500), testNow))
	assert.Equal(t, int64(1500), e.BasePrice().AmountInCents())
	assert.Equal(t, testNow, e.UpdatedAt())

	err := e.SetBasePrice(usd(t, 0), testNow)
	assert.ErrorIs(t, err, ErrZeroBasePrice)
	assert.Equal(t, int64(1500), e.BasePrice().AmountInCents())
}

func TestPriceEntry_CloneIsIndependent(t *testing.T) {
	e := newTestEntry(t, 1000)
	require.NoError(t, e.AddPromotion(activePromotion(t, "Summer", 20, 0), testNow))

	c := e.Clone()
	require.NoError(t, c.RemovePromotion("Summer", testNow))
	require.NoError(t, c.SetBasePrice(usd(t, 10), testNow))

	assert.Len(t, e.Promotions(), 1)
	assert.Equal(t, int64(1000), e.BasePrice().AmountInCents())
}

func TestReconstructPriceEntry_SortsCollections(t *testing.T) {
	e := ReconstructPriceEntry(
		MustSKU("X"),
		usd(t, 100),
		[]Promotion{activePromotion(t, "a", 1, 1), activePromotion(t, "b", 1, 7)},
		nil,
		[]BulkTier{tier(t, 10, nil, 1), tier(t, 2, nil, 1)},
		3,
		testNow, testNow,
	)

	assert.Equal(t, "b", e.Promotions()[0].Name())
	assert.Equal(t, 2, e.BulkTiers()[0].MinQuantity())
	assert.Equal(t, int64(3), e.Version())
	assert.False(t, e.Changes().HasChanges())
	assert.Empty(t, e.DomainEvents())
}

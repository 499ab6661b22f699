package get_price_entry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestGetPriceEntry(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPriceEntryRepo()

	price, err := domain.NewMoney(2500, "USD")
	require.NoError(t, err)
	entry, err := domain.NewPriceEntry(domain.MustSKU("MUG-1"), price, now)
	require.NoError(t, err)
	cheaper, err := domain.NewMoney(2000, "USD")
	require.NoError(t, err)
	require.NoError(t, entry.ScheduleBasePrice(cheaper, now.Add(time.Hour), now))
	require.NoError(t, repo.Save(ctx, entry))

	mockClock := clock.NewMockClock(now)
	query := NewQuery(repo, mockClock)

	t.Run("found", func(t *testing.T) {
		dto, found, err := query.Execute(ctx, &Request{SKU: "mug-1"})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "MUG-1", dto.SKU)
		assert.Equal(t, int64(2500), dto.EffectiveBasePrice.AmountInCents)
		assert.Equal(t, "25.00 USD", dto.BasePrice.Display)
	})

	t.Run("effective base follows the clock", func(t *testing.T) {
		mockClock.Set(now.Add(2 * time.Hour))
		defer mockClock.Set(now)

		dto, found, err := query.Execute(ctx, &Request{SKU: "MUG-1"})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(2500), dto.BasePrice.AmountInCents)
		assert.Equal(t, int64(2000), dto.EffectiveBasePrice.AmountInCents)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		dto, found, err := query.Execute(ctx, &Request{SKU: "PLATE-1"})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, dto)
	})

	t.Run("malformed sku", func(t *testing.T) {
		_, _, err := query.Execute(ctx, &Request{SKU: "mug 1"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

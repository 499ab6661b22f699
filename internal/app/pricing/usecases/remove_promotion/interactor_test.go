package remove_promotion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/keylock"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Interactor, *memory.PriceEntryRepo) {
	t.Helper()
	repo := memory.NewPriceEntryRepo()

	price, err := domain.NewMoney(1000, "USD")
	require.NoError(t, err)
	entry, err := domain.NewPriceEntry(domain.MustSKU("LAMP-3"), price, now)
	require.NoError(t, err)

	for _, p := range []struct {
		name string
		typ  domain.PromotionType
	}{
		{"Summer", domain.PromotionSeasonal},
		{"Summer", domain.PromotionClearance},
		{"Winter", domain.PromotionSeasonal},
	} {
		promo, err := domain.NewPromotion(p.name, p.typ, 10, now, now.Add(time.Hour), 0)
		require.NoError(t, err)
		require.NoError(t, entry.AddPromotion(promo, now))
	}
	require.NoError(t, repo.Save(context.Background(), entry))

	return NewInteractor(repo, clock.NewMockClock(now), keylock.New(), logger.Nop(), nil), repo
}

func TestRemovePromotion_RemovesEveryPromotionWithTheName(t *testing.T) {
	interactor, repo := setup(t)
	ctx := context.Background()

	dto, err := interactor.Execute(ctx, &Request{SKU: "lamp-3", PromotionName: "Summer"})
	require.NoError(t, err)

	require.Len(t, dto.Promotions, 1)
	assert.Equal(t, "Winter", dto.Promotions[0].Name)

	stored, err := repo.FindBySKU(ctx, domain.MustSKU("LAMP-3"))
	require.NoError(t, err)
	assert.Len(t, stored.Promotions(), 1)
	assert.Equal(t, int64(2), stored.Version())
}

func TestRemovePromotion_Errors(t *testing.T) {
	interactor, repo := setup(t)
	ctx := context.Background()

	_, err := interactor.Execute(ctx, &Request{SKU: "LAMP-3", PromotionName: "Autumn"})
	assert.ErrorIs(t, err, domain.ErrPromotionNotFound)

	_, err = interactor.Execute(ctx, &Request{SKU: "LAMP-3", PromotionName: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = interactor.Execute(ctx, &Request{SKU: "DESK-1", PromotionName: "Summer"})
	assert.ErrorIs(t, err, domain.ErrPriceEntryNotFound)

	stored, err := repo.FindBySKU(ctx, domain.MustSKU("LAMP-3"))
	require.NoError(t, err)
	assert.Len(t, stored.Promotions(), 3)
}

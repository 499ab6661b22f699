package e2e

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingScenarios_Availability(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		wantFinal  int64
		wantReason string
	}{
		{"high stock applies the full promotion", "HIGH", 800, "FULL"},
		{"low stock halves the promotion", "LOW", 900, "REDUCED_LOW_STOCK"},
		{"out of stock suppresses the promotion", "OUT_OF_STOCK", 1000, "SUPPRESSED_OUT_OF_STOCK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suite, cleanup := setupTest(t)
			defer cleanup()

			status, _ := suite.Do(t, http.MethodPut, "/api/v1/price-entries/SHIRT-1/base-price", `{"priceInCents":1000}`)
			require.Equal(t, http.StatusOK, status)

			status, _ = suite.Do(t, http.MethodPost, "/api/v1/price-entries/SHIRT-1/promotions", NewPromotion("Summer").WithPercentage(20).JSON())
			require.Equal(t, http.StatusCreated, status)

			status, _ = suite.Do(t, http.MethodPut, "/api/v1/availability/SHIRT-1", `{"level":"`+tt.level+`"}`)
			require.Equal(t, http.StatusOK, status)

			status, price := suite.Do(t, http.MethodGet, "/api/v1/price-entries/SHIRT-1/price", "")
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.wantFinal, cents(t, price, "finalPrice"))

			discounts := price["appliedDiscounts"].([]any)
			require.Len(t, discounts, 1)
			assert.Equal(t, tt.wantReason, discounts[0].(map[string]any)["reasonCode"])
		})
	}
}

func TestPricingScenarios_UnknownAvailabilityIsOutOfStock(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	suite.Do(t, http.MethodPut, "/api/v1/price-entries/SHIRT-2/base-price", `{"priceInCents":1000}`)
	suite.Do(t, http.MethodPost, "/api/v1/price-entries/SHIRT-2/promotions", NewPromotion("Summer").WithPercentage(20).JSON())

	status, price := suite.Do(t, http.MethodGet, "/api/v1/price-entries/SHIRT-2/price", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1000), cents(t, price, "finalPrice"))
	assert.Equal(t, "OUT_OF_STOCK", price["availability"])
}

func TestPricingScenarios_ScheduledPrice(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	now := time.Now().UTC()
	suite.Do(t, http.MethodPut, "/api/v1/availability/TV-55", `{"level":"HIGH"}`)

	status, _ := suite.Do(t, http.MethodPut, "/api/v1/price-entries/TV-55/base-price", `{"priceInCents":50000}`)
	require.Equal(t, http.StatusOK, status)

	past := now.Add(-24 * time.Hour).Format(time.RFC3339)
	future := now.Add(24 * time.Hour).Format(time.RFC3339)

	status, _ = suite.Do(t, http.MethodPost, "/api/v1/price-entries/TV-55/scheduled-prices", `{"priceInCents":45000,"effectiveDate":"`+future+`"}`)
	require.Equal(t, http.StatusCreated, status)
	status, entry := suite.Do(t, http.MethodPost, "/api/v1/price-entries/TV-55/scheduled-prices", `{"priceInCents":40000,"effectiveDate":"`+past+`"}`)
	require.Equal(t, http.StatusCreated, status)

	scheduled := entry["scheduledPrices"].([]any)
	require.Len(t, scheduled, 2)
	assert.Equal(t, int64(40000), cents(t, scheduled[0].(map[string]any), "price"))

	status, price := suite.Do(t, http.MethodGet, "/api/v1/price-entries/TV-55/price", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(40000), cents(t, price, "basePrice"))

	later := url.QueryEscape(now.Add(48 * time.Hour).Format(time.RFC3339))
	status, price = suite.Do(t, http.MethodGet, "/api/v1/price-entries/TV-55/price?at="+later, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(45000), cents(t, price, "finalPrice"))
}

func TestPricingScenarios_BulkTiersAndSavings(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	suite.Do(t, http.MethodPut, "/api/v1/availability/PEN-9", `{"level":"MEDIUM"}`)
	suite.Do(t, http.MethodPut, "/api/v1/price-entries/PEN-9/base-price", `{"priceInCents":1000}`)

	status, entry := suite.Do(t, http.MethodPut, "/api/v1/price-entries/PEN-9/bulk-tiers", TiersJSON(
		Tier{MinQuantity: 50, DiscountPercentage: 10},
		Tier{MinQuantity: 1, MaxQuantity: upTo(9), DiscountPercentage: 0},
		Tier{MinQuantity: 10, MaxQuantity: upTo(49), DiscountPercentage: 5},
	))
	require.Equal(t, http.StatusOK, status)
	tiers := entry["bulkTiers"].([]any)
	require.Len(t, tiers, 3)
	assert.EqualValues(t, 1, tiers[0].(map[string]any)["minQuantity"])

	status, _ = suite.Do(t, http.MethodPost, "/api/v1/price-entries/PEN-9/promotions", NewPromotion("Summer").WithPercentage(20).JSON())
	require.Equal(t, http.StatusCreated, status)

	status, price := suite.Do(t, http.MethodGet, "/api/v1/price-entries/PEN-9/price?quantity=50", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(720), cents(t, price, "finalPrice"))
	assert.EqualValues(t, 28, price["totalDiscountPercentage"])

	status, savings := suite.Do(t, http.MethodGet, "/api/v1/price-entries/PEN-9/savings?quantity=50", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(280), cents(t, savings, "totalSavings"))

	var sum int64
	for _, line := range savings["breakdown"].([]any) {
		sum += cents(t, line.(map[string]any), "saved")
	}
	assert.Equal(t, int64(280), sum)
}

func TestPricingScenarios_PromotionRemoval(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	suite.Do(t, http.MethodPut, "/api/v1/availability/HAT-1", `{"level":"HIGH"}`)
	suite.Do(t, http.MethodPut, "/api/v1/price-entries/HAT-1/base-price", `{"priceInCents":2000}`)
	suite.Do(t, http.MethodPost, "/api/v1/price-entries/HAT-1/promotions", NewPromotion("Sale").WithPercentage(50).JSON())
	suite.Do(t, http.MethodPost, "/api/v1/price-entries/HAT-1/promotions", NewPromotion("Sale").WithType("CLEARANCE").WithPercentage(10).JSON())

	status, body := suite.Do(t, http.MethodPost, "/api/v1/price-entries/HAT-1/promotions", NewPromotion("Sale").WithPercentage(5).JSON())
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_EXISTS", body["code"])

	status, entry := suite.Do(t, http.MethodDelete, "/api/v1/price-entries/HAT-1/promotions/Sale", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, entry["promotions"])

	status, _ = suite.Do(t, http.MethodDelete, "/api/v1/price-entries/HAT-1/promotions/Sale", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, price := suite.Do(t, http.MethodGet, "/api/v1/price-entries/HAT-1/price", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2000), cents(t, price, "finalPrice"))
}

func TestPricingScenarios_MissingEntry(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	status, body := suite.Do(t, http.MethodGet, "/api/v1/price-entries/GHOST/price", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])

	status, _ = suite.Do(t, http.MethodPost, "/api/v1/price-entries/GHOST/promotions", NewPromotion("x").JSON())
	assert.Equal(t, http.StatusNotFound, status)
}

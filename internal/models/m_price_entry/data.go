package m_price_entry

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the price_entries table.
// The collection columns are JSON arrays.
type Data struct {
	SKU             string           `spanner:"sku"`
	BasePriceCents  int64            `spanner:"base_price_cents"`
	Currency        string           `spanner:"currency"`
	Promotions      spanner.NullJSON `spanner:"promotions"`
	ScheduledPrices spanner.NullJSON `spanner:"scheduled_prices"`
	BulkTiers       spanner.NullJSON `spanner:"bulk_tiers"`
	Version         int64            `spanner:"version"`
	CreatedAt       time.Time        `spanner:"created_at"`
	UpdatedAt       time.Time        `spanner:"updated_at"`
}

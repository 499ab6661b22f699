package m_price_entry

// Field name constants for the price_entries table.
const (
	TableName = "price_entries"

	SKU             = "sku"
	BasePriceCents  = "base_price_cents"
	Currency        = "currency"
	Promotions      = "promotions"
	ScheduledPrices = "scheduled_prices"
	BulkTiers       = "bulk_tiers"
	Version         = "version"
	CreatedAt       = "created_at"
	UpdatedAt       = "updated_at"
)

// Columns lists every column in Data field order.
func Columns() []string {
	return []string{
		SKU,
		BasePriceCents,
		Currency,
		Promotions,
		ScheduledPrices,
		BulkTiers,
		Version,
		CreatedAt,
		UpdatedAt,
	}
}

package m_price_entry

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the price_entries table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a new price entry.
// It fails at commit time if the SKU already exists.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns(),
		[]interface{}{
			data.SKU,
			data.BasePriceCents,
			data.Currency,
			data.Promotions,
			data.ScheduledPrices,
			data.BulkTiers,
			data.Version,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific columns of a price entry.
func (m *Model) UpdateMut(sku string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, SKU)
	values = append(values, sku)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a price entry.
func (m *Model) DeleteMut(sku string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{sku})
}

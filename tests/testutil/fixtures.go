package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/models/m_price_entry"
)

// CreateTestPriceEntry writes a bare price entry row at version 1, bypassing the aggregate.
func CreateTestPriceEntry(t *testing.T, client *spanner.Client, sku string, cents int64) {
	t.Helper()

	now := time.Now().UTC()
	data := &m_price_entry.Data{
		SKU:            sku,
		BasePriceCents: cents,
		Currency:       "USD",
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_price_entry.NewModel().InsertMut(data)})
	require.NoError(t, err, "failed to create test price entry")
}

// OutboxEventTypes returns the event types recorded for a SKU, oldest first.
func OutboxEventTypes(t *testing.T, client *spanner.Client, sku string) []string {
	t.Helper()

	stmt := spanner.Statement{
		SQL:    "SELECT event_type FROM " + m_outbox.TableName + " WHERE aggregate_id = @sku ORDER BY created_at ASC",
		Params: map[string]interface{}{"sku": sku},
	}

	types := make([]string, 0)
	err := client.Single().Query(context.Background(), stmt).Do(func(row *spanner.Row) error {
		var eventType string
		if err := row.Columns(&eventType); err != nil {
			return err
		}
		types = append(types, eventType)
		return nil
	})
	require.NoError(t, err, "failed to read outbox events")
	return types
}

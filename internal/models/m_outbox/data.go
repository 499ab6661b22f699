package m_outbox

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the outbox_events table.
type Data struct {
	EventID      string             `spanner:"event_id"`
	EventType    string             `spanner:"event_type"`
	AggregateID  string             `spanner:"aggregate_id"` // SKU
	Payload      spanner.NullJSON   `spanner:"payload"`
	Status       string             `spanner:"status"`
	CreatedAt    time.Time          `spanner:"created_at"`
	ProcessedAt  spanner.NullTime   `spanner:"processed_at"`
	RetryCount   int64              `spanner:"retry_count"`
	ErrorMessage spanner.NullString `spanner:"error_message"`
}

// JSONPayload wraps an already-serialized document so Spanner stores it as-is
// instead of encoding it as a JSON string.
func JSONPayload(raw string) spanner.NullJSON {
	if raw == "" {
		return spanner.NullJSON{}
	}
	return spanner.NullJSON{Value: json.RawMessage(raw), Valid: true}
}

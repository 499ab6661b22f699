package contracts

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
}

// OutboxRepository defines the interface for outbox event persistence.
type OutboxRepository interface {
	// InsertMut creates a mutation for inserting an outbox event
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EnrichEvent converts a domain event to an outbox event with metadata
	EnrichEvent(event domain.DomainEvent) (*OutboxEvent, error)
}

// EventFilter narrows an outbox listing. Empty strings match everything.
type EventFilter struct {
	EventType   string
	AggregateID string
	Status      string
	Limit       int
}

// OutboxEventDTO is an outbox row as exposed to operators.
type OutboxEventDTO struct {
	EventID     string          `json:"eventId"`
	EventType   string          `json:"eventType"`
	AggregateID string          `json:"aggregateId"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
}

// OutboxReader lists recorded domain events, newest first. total counts every
// matching event, not just the returned page.
type OutboxReader interface {
	ListEvents(ctx context.Context, filter EventFilter) (events []OutboxEventDTO, total int64, err error)
}

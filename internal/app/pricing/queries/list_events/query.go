package list_events

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType   string // e.g. "price_entry.promotion.added"
	AggregateID string // SKU
	Status      string // "pending", "completed", "failed"
	Limit       int
}

// Query handles the list events query use case.
type Query struct {
	reader contracts.OutboxReader
}

// NewQuery creates a new list events query.
func NewQuery(reader contracts.OutboxReader) *Query {
	return &Query{
		reader: reader,
	}
}

// Execute retrieves events newest first, with the total number of matches.
func (q *Query) Execute(ctx context.Context, req *Request) ([]contracts.OutboxEventDTO, int64, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	events, total, err := q.reader.ListEvents(ctx, contracts.EventFilter{
		EventType:   req.EventType,
		AggregateID: req.AggregateID,
		Status:      req.Status,
		Limit:       limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

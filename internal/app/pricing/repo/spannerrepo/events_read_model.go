package spannerrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// EventsReadModel lists outbox_events rows.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

var _ contracts.OutboxReader = (*EventsReadModel)(nil)

// EventsQuery builds the page and count statements for filter.
func EventsQuery(filter contracts.EventFilter) (page, count spanner.Statement) {
	q := query.From(m_outbox.TableName).Select(m_outbox.Columns()...)
	if filter.EventType != "" {
		q = q.Where(query.Eq(m_outbox.EventType, filter.EventType))
	}
	if filter.AggregateID != "" {
		q = q.Where(query.Eq(m_outbox.AggregateID, filter.AggregateID))
	}
	if filter.Status != "" {
		q = q.Where(query.Eq(m_outbox.Status, filter.Status))
	}

	paged := q.OrderBy(m_outbox.CreatedAt, query.Desc).OrderBy(m_outbox.EventID, query.Asc)
	if filter.Limit > 0 {
		paged = paged.Limit(int64(filter.Limit))
	}
	return paged.Build(), q.Count().Build()
}

// ListEvents returns matching events newest first, plus the total match count.
func (r *EventsReadModel) ListEvents(ctx context.Context, filter contracts.EventFilter) ([]contracts.OutboxEventDTO, int64, error) {
	pageStmt, countStmt := EventsQuery(filter)

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	var total int64
	err := txn.Query(ctx, countStmt).Do(func(row *spanner.Row) error {
		return row.Columns(&total)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	iter := txn.Query(ctx, pageStmt)
	defer iter.Stop()

	events := make([]contracts.OutboxEventDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
		}

		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, outboxDataToDTO(&data))
	}

	return events, total, nil
}

func outboxDataToDTO(data *m_outbox.Data) contracts.OutboxEventDTO {
	dto := contracts.OutboxEventDTO{
		EventID:     data.EventID,
		EventType:   data.EventType,
		AggregateID: data.AggregateID,
		Status:      data.Status,
		CreatedAt:   data.CreatedAt,
	}
	if data.Payload.Valid {
		if raw, err := json.Marshal(data.Payload.Value); err == nil {
			dto.Payload = raw
		}
	}
	if data.ProcessedAt.Valid {
		processed := data.ProcessedAt.Time
		dto.ProcessedAt = &processed
	}
	return dto
}

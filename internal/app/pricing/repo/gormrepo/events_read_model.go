package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
)

// EventsReadModel lists outbox_events rows.
type EventsReadModel struct {
	db *gorm.DB
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(db *gorm.DB) *EventsReadModel {
	return &EventsReadModel{db: db}
}

var _ contracts.OutboxReader = (*EventsReadModel)(nil)

// ListEvents returns matching events newest first, plus the total match count.
func (r *EventsReadModel) ListEvents(ctx context.Context, filter contracts.EventFilter) ([]contracts.OutboxEventDTO, int64, error) {
	q := r.db.WithContext(ctx).Model(&OutboxEventRow{})
	if filter.EventType != "" {
		q = q.Where("event_type = ?", filter.EventType)
	}
	if filter.AggregateID != "" {
		q = q.Where("aggregate_id = ?", filter.AggregateID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	page := q.Session(&gorm.Session{}).Order("created_at DESC").Order("event_id ASC")
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}
	var rows []OutboxEventRow
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]contracts.OutboxEventDTO, 0, len(rows))
	for _, row := range rows {
		dto := contracts.OutboxEventDTO{
			EventID:     row.EventID,
			EventType:   row.EventType,
			AggregateID: row.AggregateID,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt,
			ProcessedAt: row.ProcessedAt,
		}
		if row.Payload != "" {
			dto.Payload = json.RawMessage(row.Payload)
		}
		events = append(events, dto)
	}
	return events, total, nil
}

// Package memory is an in-process PriceEntryRepository.
package memory

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
)

// eventLogCapacity bounds the in-memory outbox; the oldest events are dropped first.
const eventLogCapacity = 1000

// PriceEntryRepo keeps deep copies of entries keyed by SKU, so callers can
// never mutate stored state without going through Save.
type PriceEntryRepo struct {
	mu      sync.RWMutex
	entries map[domain.SKU]*domain.PriceEntry
	events  []contracts.OutboxEventDTO
}

// NewPriceEntryRepo creates an empty repository.
func NewPriceEntryRepo() *PriceEntryRepo {
	return &PriceEntryRepo{entries: make(map[domain.SKU]*domain.PriceEntry)}
}

var (
	_ contracts.PriceEntryRepository = (*PriceEntryRepo)(nil)
	_ contracts.OutboxReader         = (*PriceEntryRepo)(nil)
)

// FindBySKU returns a copy of the stored entry.
func (r *PriceEntryRepo) FindBySKU(_ context.Context, sku domain.SKU) (*domain.PriceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.entries[sku]
	if !ok {
		return nil, domain.ErrPriceEntryNotFound
	}
	return stored.Clone(), nil
}

// Save stores a copy of entry. The entry's version must match the stored one.
// Pending domain events are appended to a bounded in-memory event log.
func (r *PriceEntryRepo) Save(_ context.Context, entry *domain.PriceEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if stored, ok := r.entries[entry.SKU()]; ok {
		current = stored.Version()
	}
	if current != entry.Version() {
		return domain.ErrVersionConflict
	}

	events := make([]contracts.OutboxEventDTO, 0, len(entry.DomainEvents()))
	for _, event := range entry.DomainEvents() {
		payload, err := repo.EventPayload(event)
		if err != nil {
			return err
		}
		events = append(events, contracts.OutboxEventDTO{
			EventID:     uuid.New().String(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID(),
			Payload:     json.RawMessage(payload),
			Status:      m_outbox.StatusPending,
			CreatedAt:   entry.UpdatedAt(),
		})
	}
	r.events = append(r.events, events...)
	if overflow := len(r.events) - eventLogCapacity; overflow > 0 {
		r.events = slices.Delete(r.events, 0, overflow)
	}

	next := entry.Version() + 1
	entry.MarkPersisted(next)
	r.entries[entry.SKU()] = entry.Clone()
	return nil
}

// FindAll returns copies of every entry ordered by SKU.
func (r *PriceEntryRepo) FindAll(_ context.Context) ([]*domain.PriceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.PriceEntry, 0, len(r.entries))
	for _, e := range r.entries {
		all = append(all, e.Clone())
	}
	slices.SortFunc(all, func(a, b *domain.PriceEntry) int {
		return cmp.Compare(a.SKU().String(), b.SKU().String())
	})
	return all, nil
}

// ListEvents returns logged events newest first.
func (r *PriceEntryRepo) ListEvents(_ context.Context, filter contracts.EventFilter) ([]contracts.OutboxEventDTO, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		page  []contracts.OutboxEventDTO
		total int64
	)
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		if filter.AggregateID != "" && e.AggregateID != filter.AggregateID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		total++
		if filter.Limit <= 0 || len(page) < filter.Limit {
			page = append(page, e)
		}
	}
	return page, total, nil
}

package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// PriceEntryCreatedEvent is emitted when the first base price is set for a SKU.
type PriceEntryCreatedEvent struct {
	SKU            string
	BasePriceCents int64
	Currency       string
	CreatedAt      time.Time
}

func (e *PriceEntryCreatedEvent) EventType() string   { return "price_entry.created" }
func (e *PriceEntryCreatedEvent) AggregateID() string { return e.SKU }

// BasePriceChangedEvent is emitted when the base price of an existing entry changes.
type BasePriceChangedEvent struct {
	SKU           string
	OldPriceCents int64
	NewPriceCents int64
	Currency      string
	ChangedAt     time.Time
}

func (e *BasePriceChangedEvent) EventType() string   { return "price_entry.base_price.changed" }
func (e *BasePriceChangedEvent) AggregateID() string { return e.SKU }

// BasePriceScheduledEvent is emitted when a future base price is scheduled.
type BasePriceScheduledEvent struct {
	SKU           string
	PriceCents    int64
	Currency      string
	EffectiveDate time.Time
	ScheduledAt   time.Time
}

func (e *BasePriceScheduledEvent) EventType() string   { return "price_entry.base_price.scheduled" }
func (e *BasePriceScheduledEvent) AggregateID() string { return e.SKU }

// BulkTiersReplacedEvent is emitted when the tier set is replaced.
type BulkTiersReplacedEvent struct {
	SKU       string
	TierCount int
	UpdatedAt time.Time
}

func (e *BulkTiersReplacedEvent) EventType() string   { return "price_entry.bulk_tiers.replaced" }
func (e *BulkTiersReplacedEvent) AggregateID() string { return e.SKU }

// PromotionAddedEvent is emitted when a promotion is attached to an entry.
type PromotionAddedEvent struct {
	SKU                string
	Name               string
	Type               string
	DiscountPercentage float64
	ValidFrom          time.Time
	ValidUntil         time.Time
	Priority           int
	AddedAt            time.Time
}

func (e *PromotionAddedEvent) EventType() string   { return "price_entry.promotion.added" }
func (e *PromotionAddedEvent) AggregateID() string { return e.SKU }

// PromotionRemovedEvent is emitted when promotions are removed by name.
type PromotionRemovedEvent struct {
	SKU       string
	Name      string
	Removed   int
	RemovedAt time.Time
}

func (e *PromotionRemovedEvent) EventType() string   { return "price_entry.promotion.removed" }
func (e *PromotionRemovedEvent) AggregateID() string { return e.SKU }

package gormrepo

import "time"

// PriceEntryRow is the relational form of a price entry.
type PriceEntryRow struct {
	SKU             string `gorm:"column:sku;primaryKey;size:64"`
	BasePriceCents  int64  `gorm:"column:base_price_cents;not null"`
	Currency        string `gorm:"column:currency;size:3;not null"`
	Promotions      string `gorm:"column:promotions;type:text;not null"`
	ScheduledPrices string `gorm:"column:scheduled_prices;type:text;not null"`
	BulkTiers       string `gorm:"column:bulk_tiers;type:text;not null"`
	Version         int64  `gorm:"column:version;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PriceEntryRow) TableName() string { return "price_entries" }

// OutboxEventRow mirrors the Spanner outbox so both stores publish the same events.
type OutboxEventRow struct {
	EventID     string     `gorm:"column:event_id;primaryKey;size:36"`
	EventType   string     `gorm:"column:event_type;not null;index"`
	AggregateID string     `gorm:"column:aggregate_id;not null;index"`
	Payload     string     `gorm:"column:payload;type:text"`
	Status      string     `gorm:"column:status;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;index"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`
}

func (OutboxEventRow) TableName() string { return "outbox_events" }

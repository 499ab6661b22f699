// Package gormrepo persists price entries in a SQL database through gorm.
// Postgres is the production dialect; tests run against in-memory SQLite.
package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
)

// PriceEntryRepo implements PriceEntryRepository on gorm.
type PriceEntryRepo struct {
	db *gorm.DB
}

// NewPriceEntryRepo creates a new PriceEntryRepo.
func NewPriceEntryRepo(db *gorm.DB) *PriceEntryRepo {
	return &PriceEntryRepo{db: db}
}

var _ contracts.PriceEntryRepository = (*PriceEntryRepo)(nil)

// Migrate creates or updates the tables this repository needs.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&PriceEntryRow{}, &OutboxEventRow{}); err != nil {
		return fmt.Errorf("failed to migrate pricing tables: %w", err)
	}
	return nil
}

// FindBySKU loads one entry.
func (r *PriceEntryRepo) FindBySKU(ctx context.Context, sku domain.SKU) (*domain.PriceEntry, error) {
	var row PriceEntryRow
	err := r.db.WithContext(ctx).Where("sku = ?", sku.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPriceEntryNotFound
		}
		return nil, fmt.Errorf("failed to read price entry: %w", err)
	}
	return rowToDomain(&row)
}

// FindAll loads every entry ordered by SKU.
func (r *PriceEntryRepo) FindAll(ctx context.Context) ([]*domain.PriceEntry, error) {
	var rows []PriceEntryRow
	if err := r.db.WithContext(ctx).Order("sku asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list price entries: %w", err)
	}

	entries := make([]*domain.PriceEntry, 0, len(rows))
	for i := range rows {
		entry, err := rowToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Save writes the entry and its outbox events in one transaction. Updates are
// guarded by the stored version; zero affected rows means a concurrent writer won.
func (r *PriceEntryRepo) Save(ctx context.Context, entry *domain.PriceEntry) error {
	snapshot, err := repo.ToSnapshot(entry)
	if err != nil {
		return err
	}

	outbox := make([]OutboxEventRow, 0, len(entry.DomainEvents()))
	for _, event := range entry.DomainEvents() {
		payload, err := repo.EventPayload(event)
		if err != nil {
			return err
		}
		outbox = append(outbox, OutboxEventRow{
			EventID:     uuid.New().String(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID(),
			Payload:     payload,
			Status:      m_outbox.StatusPending,
			CreatedAt:   entry.UpdatedAt(),
		})
	}

	next := entry.Version() + 1
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if entry.Version() == 0 {
			if err := insert(tx, snapshot, next); err != nil {
				return err
			}
		} else if err := update(tx, snapshot, next); err != nil {
			return err
		}

		if len(outbox) > 0 {
			if err := tx.Create(&outbox).Error; err != nil {
				return fmt.Errorf("failed to write outbox events: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	entry.MarkPersisted(next)
	return nil
}

func insert(tx *gorm.DB, s *repo.Snapshot, version int64) error {
	var existing int64
	if err := tx.Model(&PriceEntryRow{}).Where("sku = ?", s.SKU).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to check price entry: %w", err)
	}
	if existing > 0 {
		return domain.ErrVersionConflict
	}

	row := snapshotToRow(s)
	row.Version = version
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert price entry: %w", err)
	}
	return nil
}

func update(tx *gorm.DB, s *repo.Snapshot, version int64) error {
	result := tx.Model(&PriceEntryRow{}).
		Where("sku = ? AND version = ?", s.SKU, s.Version).
		Updates(map[string]interface{}{
			"base_price_cents": s.BasePriceCents,
			"currency":         s.Currency,
			"promotions":       s.Promotions,
			"scheduled_prices": s.ScheduledPrices,
			"bulk_tiers":       s.BulkTiers,
			"version":          version,
			"updated_at":       s.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update price entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

func snapshotToRow(s *repo.Snapshot) PriceEntryRow {
	return PriceEntryRow{
		SKU:             s.SKU,
		BasePriceCents:  s.BasePriceCents,
		Currency:        s.Currency,
		Promotions:      s.Promotions,
		ScheduledPrices: s.ScheduledPrices,
		BulkTiers:       s.BulkTiers,
		Version:         s.Version,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func rowToDomain(row *PriceEntryRow) (*domain.PriceEntry, error) {
	return repo.FromSnapshot(&repo.Snapshot{
		SKU:             row.SKU,
		BasePriceCents:  row.BasePriceCents,
		Currency:        row.Currency,
		Promotions:      row.Promotions,
		ScheduledPrices: row.ScheduledPrices,
		BulkTiers:       row.BulkTiers,
		Version:         row.Version,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	})
}

// Package spannerrepo persists price entries in Cloud Spanner. Every save is a
// single commit plan holding the row mutation and one outbox row per pending
// domain event.
package spannerrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/models/m_price_entry"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// PriceEntryRepo implements PriceEntryRepository for Spanner.
type PriceEntryRepo struct {
	client     *spanner.Client
	model      *m_price_entry.Model
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
}

// NewPriceEntryRepo creates a new PriceEntryRepo.
func NewPriceEntryRepo(
	client *spanner.Client,
	outboxRepo contracts.OutboxRepository,
	comm *committer.Committer,
) *PriceEntryRepo {
	return &PriceEntryRepo{
		client:     client,
		model:      m_price_entry.NewModel(),
		outboxRepo: outboxRepo,
		committer:  comm,
	}
}

var _ contracts.PriceEntryRepository = (*PriceEntryRepo)(nil)

// FindBySKU reads one entry and reconstructs the aggregate.
func (r *PriceEntryRepo) FindBySKU(ctx context.Context, sku domain.SKU) (*domain.PriceEntry, error) {
	row, err := r.client.Single().ReadRow(ctx, m_price_entry.TableName, spanner.Key{sku.String()}, m_price_entry.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrPriceEntryNotFound
		}
		return nil, fmt.Errorf("failed to read price entry: %w", err)
	}

	var data m_price_entry.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse price entry: %w", err)
	}

	return dataToDomain(&data)
}

// FindAll reads every entry ordered by SKU.
func (r *PriceEntryRepo) FindAll(ctx context.Context) ([]*domain.PriceEntry, error) {
	stmt := query.From(m_price_entry.TableName).
		Select(m_price_entry.Columns()...).
		OrderBy(m_price_entry.SKU, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	entries := make([]*domain.PriceEntry, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate price entries: %w", err)
		}

		var data m_price_entry.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price entry: %w", err)
		}

		entry, err := dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Save commits the entry and its pending events. New entries are inserted;
// existing ones are updated column-by-column under an optimistic version check.
func (r *PriceEntryRepo) Save(ctx context.Context, entry *domain.PriceEntry) error {
	plan := committer.NewPlan()
	isNew := entry.Version() == 0

	if isNew {
		mut, err := r.InsertMut(entry)
		if err != nil {
			return err
		}
		plan.Add(mut)
	} else {
		mut, err := r.UpdateMut(entry)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}

	for _, event := range entry.DomainEvents() {
		outboxEvent, err := r.outboxRepo.EnrichEvent(event)
		if err != nil {
			return err
		}
		plan.Add(r.outboxRepo.InsertMut(outboxEvent))
	}

	if plan.IsEmpty() {
		return nil
	}

	var err error
	if isNew {
		err = r.committer.Apply(ctx, plan)
	} else {
		err = r.committer.ApplyWithVersionCheck(ctx, committer.VersionCheck{
			Table:           m_price_entry.TableName,
			Key:             spanner.Key{entry.SKU().String()},
			VersionColumn:   m_price_entry.Version,
			ExpectedVersion: entry.Version(),
		}, plan)
	}
	if err != nil {
		if errors.Is(err, committer.ErrOptimisticLockConflict) {
			return fmt.Errorf("%w: %v", domain.ErrVersionConflict, err)
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	entry.MarkPersisted(entry.Version() + 1)
	return nil
}

// InsertMut creates a mutation for inserting a new entry at version 1.
func (r *PriceEntryRepo) InsertMut(entry *domain.PriceEntry) (*spanner.Mutation, error) {
	data, err := domainToData(entry)
	if err != nil {
		return nil, err
	}
	data.Version = 1
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation touching only dirty fields, bumping the version.
// It returns nil when nothing changed.
func (r *PriceEntryRepo) UpdateMut(entry *domain.PriceEntry) (*spanner.Mutation, error) {
	changes := entry.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldBasePrice) {
		updates[m_price_entry.BasePriceCents] = entry.BasePrice().AmountInCents()
		updates[m_price_entry.Currency] = entry.BasePrice().Currency()
	}

	if changes.Dirty(domain.FieldPromotions) {
		raw, err := repo.EncodePromotions(entry.Promotions())
		if err != nil {
			return nil, err
		}
		updates[m_price_entry.Promotions] = jsonColumn(raw)
	}

	if changes.Dirty(domain.FieldScheduledPrices) {
		raw, err := repo.EncodeScheduledPrices(entry.ScheduledPrices())
		if err != nil {
			return nil, err
		}
		updates[m_price_entry.ScheduledPrices] = jsonColumn(raw)
	}

	if changes.Dirty(domain.FieldBulkTiers) {
		raw, err := repo.EncodeBulkTiers(entry.BulkTiers())
		if err != nil {
			return nil, err
		}
		updates[m_price_entry.BulkTiers] = jsonColumn(raw)
	}

	if len(updates) == 0 {
		return nil, nil
	}

	updates[m_price_entry.UpdatedAt] = entry.UpdatedAt()
	updates[m_price_entry.Version] = entry.Version() + 1

	return r.model.UpdateMut(entry.SKU().String(), updates), nil
}

// domainToData converts a domain PriceEntry to database Data.
func domainToData(entry *domain.PriceEntry) (*m_price_entry.Data, error) {
	snapshot, err := repo.ToSnapshot(entry)
	if err != nil {
		return nil, err
	}

	return &m_price_entry.Data{
		SKU:             snapshot.SKU,
		BasePriceCents:  snapshot.BasePriceCents,
		Currency:        snapshot.Currency,
		Promotions:      jsonColumn(snapshot.Promotions),
		ScheduledPrices: jsonColumn(snapshot.ScheduledPrices),
		BulkTiers:       jsonColumn(snapshot.BulkTiers),
		Version:         snapshot.Version,
		CreatedAt:       snapshot.CreatedAt,
		UpdatedAt:       snapshot.UpdatedAt,
	}, nil
}

// dataToDomain converts database Data to a domain PriceEntry.
func dataToDomain(data *m_price_entry.Data) (*domain.PriceEntry, error) {
	promotions, err := columnJSON(data.Promotions)
	if err != nil {
		return nil, err
	}
	scheduled, err := columnJSON(data.ScheduledPrices)
	if err != nil {
		return nil, err
	}
	tiers, err := columnJSON(data.BulkTiers)
	if err != nil {
		return nil, err
	}

	return repo.FromSnapshot(&repo.Snapshot{
		SKU:             data.SKU,
		BasePriceCents:  data.BasePriceCents,
		Currency:        data.Currency,
		Promotions:      promotions,
		ScheduledPrices: scheduled,
		BulkTiers:       tiers,
		Version:         data.Version,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	})
}

func jsonColumn(raw string) spanner.NullJSON {
	return spanner.NullJSON{Value: json.RawMessage(raw), Valid: true}
}

// columnJSON re-serializes a decoded JSON column so the shared snapshot
// decoder can read it.
func columnJSON(col spanner.NullJSON) (string, error) {
	if !col.Valid || col.Value == nil {
		return "", nil
	}
	if raw, ok := col.Value.(json.RawMessage); ok {
		return string(raw), nil
	}
	data, err := json.Marshal(col.Value)
	if err != nil {
		return "", fmt.Errorf("failed to re-encode json column: %w", err)
	}
	return string(data), nil
}

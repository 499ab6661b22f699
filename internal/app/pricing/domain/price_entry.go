package domain

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Field names for change tracking
const (
	FieldBasePrice       = "base_price"
	FieldPromotions      = "promotions"
	FieldScheduledPrices = "scheduled_prices"
	FieldBulkTiers       = "bulk_tiers"
)

// PriceEntry is the aggregate root for a SKU's pricing state.
//
// Iteration order is part of the contract:
//   - Promotions() is priority-descending, insertion order among equal priorities;
//   - ScheduledPrices() is effective-date ascending;
//   - BulkTiers() is minQuantity ascending.
//
// A PriceEntry is not safe for concurrent mutation; callers serialize commands per SKU.
type PriceEntry struct {
	sku             SKU
	basePrice       Money
	promotions      []Promotion
	scheduledPrices []ScheduledPrice
	bulkTiers       []BulkTier
	version         int64
	createdAt       time.Time
	updatedAt       time.Time

	// Change tracking for partial repository updates
	changes *ChangeTracker

	// Domain events to be published
	events []DomainEvent
}

// NewPriceEntry creates a PriceEntry for a SKU that has no pricing yet.
func NewPriceEntry(sku SKU, basePrice Money, now time.Time) (*PriceEntry, error) {
	if sku.IsZero() {
		return nil, ErrEmptySKU
	}
	if basePrice.IsZero() {
		return nil, ErrZeroBasePrice
	}

	e := &PriceEntry{
		sku:       sku,
		basePrice: basePrice,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}

	e.changes.MarkDirty(FieldBasePrice)
	e.changes.MarkDirty(FieldPromotions)
	e.changes.MarkDirty(FieldScheduledPrices)
	e.changes.MarkDirty(FieldBulkTiers)

	e.recordEvent(&PriceEntryCreatedEvent{
		SKU:            sku.String(),
		BasePriceCents: basePrice.AmountInCents(),
		Currency:       basePrice.Currency(),
		CreatedAt:      now,
	})

	return e, nil
}

// ReconstructPriceEntry rebuilds a PriceEntry from storage.
// Collections are re-sorted so the iteration-order contract holds regardless of storage order.
func ReconstructPriceEntry(
	sku SKU,
	basePrice Money,
	promotions []Promotion,
	scheduledPrices []ScheduledPrice,
	bulkTiers []BulkTier,
	version int64,
	createdAt, updatedAt time.Time,
) *PriceEntry {
	e := &PriceEntry{
		sku:             sku,
		basePrice:       basePrice,
		promotions:      slices.Clone(promotions),
		scheduledPrices: slices.Clone(scheduledPrices),
		bulkTiers:       slices.Clone(bulkTiers),
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		changes:         NewChangeTracker(),
		events:          make([]DomainEvent, 0),
	}
	e.sortPromotions()
	e.sortScheduledPrices()
	e.sortBulkTiers()
	return e
}

// Getters
func (e *PriceEntry) SKU() SKU                         { return e.sku }
func (e *PriceEntry) BasePrice() Money                 { return e.basePrice }
func (e *PriceEntry) Promotions() []Promotion          { return slices.Clone(e.promotions) }
func (e *PriceEntry) ScheduledPrices() []ScheduledPrice { return slices.Clone(e.scheduledPrices) }
func (e *PriceEntry) BulkTiers() []BulkTier            { return slices.Clone(e.bulkTiers) }
func (e *PriceEntry) Version() int64                   { return e.version }
func (e *PriceEntry) CreatedAt() time.Time             { return e.createdAt }
func (e *PriceEntry) UpdatedAt() time.Time             { return e.updatedAt }
func (e *PriceEntry) Changes() *ChangeTracker          { return e.changes }
func (e *PriceEntry) DomainEvents() []DomainEvent      { return e.events }

// SetBasePrice replaces the base price.
func (e *PriceEntry) SetBasePrice(price Money, now time.Time) error {
	if price.IsZero() {
		return ErrZeroBasePrice
	}

	old := e.basePrice
	e.basePrice = price
	e.touch(FieldBasePrice, now)

	e.recordEvent(&BasePriceChangedEvent{
		SKU:           e.sku.String(),
		OldPriceCents: old.AmountInCents(),
		NewPriceCents: price.AmountInCents(),
		Currency:      price.Currency(),
		ChangedAt:     now,
	})

	return nil
}

// ScheduleBasePrice adds a future base price. Schedules are never deduplicated.
func (e *PriceEntry) ScheduleBasePrice(price Money, effectiveDate time.Time, now time.Time) error {
	scheduled, err := NewScheduledPrice(price, effectiveDate)
	if err != nil {
		return err
	}

	e.scheduledPrices = append(e.scheduledPrices, scheduled)
	e.sortScheduledPrices()
	e.touch(FieldScheduledPrices, now)

	e.recordEvent(&BasePriceScheduledEvent{
		SKU:           e.sku.String(),
		PriceCents:    price.AmountInCents(),
		Currency:      price.Currency(),
		EffectiveDate: effectiveDate,
		ScheduledAt:   now,
	})

	return nil
}

// SetBulkTiers replaces the whole tier set.
func (e *PriceEntry) SetBulkTiers(tiers []BulkTier, now time.Time) {
	e.bulkTiers = slices.Clone(tiers)
	e.sortBulkTiers()
	e.touch(FieldBulkTiers, now)

	e.recordEvent(&BulkTiersReplacedEvent{
		SKU:       e.sku.String(),
		TierCount: len(e.bulkTiers),
		UpdatedAt: now,
	})
}

// AddPromotion attaches a promotion unless one with the same (name, type) exists.
func (e *PriceEntry) AddPromotion(promotion Promotion, now time.Time) error {
	for _, existing := range e.promotions {
		if existing.Equals(promotion) {
			return fmt.Errorf("%w: %s (%s)", ErrPromotionExists, promotion.Name(), promotion.Type())
		}
	}

	e.promotions = append(e.promotions, promotion)
	e.sortPromotions()
	e.touch(FieldPromotions, now)

	e.recordEvent(&PromotionAddedEvent{
		SKU:                e.sku.String(),
		Name:               promotion.Name(),
		Type:               string(promotion.Type()),
		DiscountPercentage: promotion.DiscountPercentage(),
		ValidFrom:          promotion.ValidFrom(),
		ValidUntil:         promotion.ValidUntil(),
		Priority:           promotion.Priority(),
		AddedAt:            now,
	})

	return nil
}

// RemovePromotion removes every promotion carrying name.
func (e *PriceEntry) RemovePromotion(name string, now time.Time) error {
	kept := make([]Promotion, 0, len(e.promotions))
	for _, p := range e.promotions {
		if p.Name() != name {
			kept = append(kept, p)
		}
	}

	removed := len(e.promotions) - len(kept)
	if removed == 0 {
		return fmt.Errorf("%w: %s", ErrPromotionNotFound, name)
	}

	e.promotions = kept
	e.touch(FieldPromotions, now)

	e.recordEvent(&PromotionRemovedEvent{
		SKU:       e.sku.String(),
		Name:      name,
		Removed:   removed,
		RemovedAt: now,
	})

	return nil
}

// EffectiveBasePrice returns the last scheduled price whose effective date is <= now,
// or the base price when no schedule has triggered yet.
func (e *PriceEntry) EffectiveBasePrice(now time.Time) Money {
	effective := e.basePrice
	for _, scheduled := range e.scheduledPrices {
		if scheduled.IsEffectiveAt(now) {
			effective = scheduled.Price()
		}
	}
	return effective
}

// ApplicableBulkTier returns the last tier, in ascending minQuantity order, that applies to quantity.
func (e *PriceEntry) ApplicableBulkTier(quantity int) (BulkTier, bool) {
	var (
		applicable BulkTier
		found      bool
	)
	for _, tier := range e.bulkTiers {
		if tier.AppliesTo(quantity) {
			applicable = tier
			found = true
		}
	}
	return applicable, found
}

// ActivePromotions returns promotions active at now, in application order.
func (e *PriceEntry) ActivePromotions(now time.Time) []Promotion {
	active := make([]Promotion, 0, len(e.promotions))
	for _, p := range e.promotions {
		if p.IsActiveAt(now) {
			active = append(active, p)
		}
	}
	return active
}

// CalculatePrice reduces the entry to a final price at now.
// quantity <= 0 means no quantity was supplied and bulk tiers are skipped.
//
// Discounts compound: each one is applied, with cent rounding, to the running
// price left by the previous step.
func (e *PriceEntry) CalculatePrice(availability AvailabilitySignal, now time.Time, quantity int) (*CalculatedPrice, error) {
	base := e.EffectiveBasePrice(now)
	running := base
	applied := make([]AppliedDiscount, 0, len(e.promotions)+1)

	if quantity > 0 && len(e.bulkTiers) > 0 {
		if tier, ok := e.ApplicableBulkTier(quantity); ok && tier.DiscountPercentage() > 0 {
			next, err := running.ApplyDiscount(tier.DiscountPercentage())
			if err != nil {
				return nil, fmt.Errorf("apply bulk tier: %w", err)
			}
			running = next
			applied = append(applied, AppliedDiscount{
				PromotionName:      tier.Label(),
				OriginalPercentage: tier.DiscountPercentage(),
				AppliedPercentage:  tier.DiscountPercentage(),
				Reason:             ReasonBulkTier,
			})
		}
	}

	for _, promotion := range e.ActivePromotions(now) {
		pct, reason := availabilityAdjustment(promotion.DiscountPercentage(), availability)
		if pct > 0 {
			next, err := running.ApplyDiscount(pct)
			if err != nil {
				return nil, fmt.Errorf("apply promotion %q: %w", promotion.Name(), err)
			}
			running = next
		}
		applied = append(applied, AppliedDiscount{
			PromotionName:      promotion.Name(),
			OriginalPercentage: promotion.DiscountPercentage(),
			AppliedPercentage:  pct,
			Reason:             reason,
		})
	}

	return &CalculatedPrice{
		SKU:              e.sku,
		BasePrice:        base,
		FinalPrice:       running,
		AppliedDiscounts: applied,
	}, nil
}

// Clone returns a deep copy that shares no mutable state with e.
func (e *PriceEntry) Clone() *PriceEntry {
	c := *e
	c.promotions = slices.Clone(e.promotions)
	c.scheduledPrices = slices.Clone(e.scheduledPrices)
	c.bulkTiers = slices.Clone(e.bulkTiers)
	c.changes = e.changes.clone()
	c.events = slices.Clone(e.events)
	return &c
}

// MarkPersisted is called by repositories after a successful save.
func (e *PriceEntry) MarkPersisted(version int64) {
	e.version = version
	e.changes.Clear()
	e.ClearEvents()
}

// ClearEvents clears all recorded domain events (called after publishing).
func (e *PriceEntry) ClearEvents() {
	e.events = make([]DomainEvent, 0)
}

func (e *PriceEntry) touch(field string, now time.Time) {
	e.changes.MarkDirty(field)
	e.updatedAt = now
}

func (e *PriceEntry) recordEvent(event DomainEvent) {
	e.events = append(e.events, event)
}

func (e *PriceEntry) sortPromotions() {
	slices.SortStableFunc(e.promotions, func(a, b Promotion) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
}

func (e *PriceEntry) sortScheduledPrices() {
	slices.SortStableFunc(e.scheduledPrices, func(a, b ScheduledPrice) int {
		return a.EffectiveDate().Compare(b.EffectiveDate())
	})
}

func (e *PriceEntry) sortBulkTiers() {
	slices.SortStableFunc(e.bulkTiers, func(a, b BulkTier) int {
		return cmp.Compare(a.MinQuantity(), b.MinQuantity())
	})
}

// Package repo holds the storage snapshot shared by the price entry repositories.
// Collections are stored as JSON documents next to the scalar columns; the
// backends differ only in how the row and its outbox events are written.
package repo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PromotionRecord is the stored form of a promotion.
type PromotionRecord struct {
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	DiscountPercentage float64   `json:"discount_percentage"`
	ValidFrom          time.Time `json:"valid_from"`
	ValidUntil         time.Time `json:"valid_until"`
	Priority           int       `json:"priority"`
}

// ScheduledPriceRecord is the stored form of a scheduled price.
type ScheduledPriceRecord struct {
	AmountInCents int64     `json:"amount_in_cents"`
	Currency      string    `json:"currency"`
	EffectiveDate time.Time `json:"effective_date"`
}

// BulkTierRecord is the stored form of a bulk tier.
type BulkTierRecord struct {
	MinQuantity        int     `json:"min_quantity"`
	MaxQuantity        *int    `json:"max_quantity,omitempty"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// Snapshot is a PriceEntry flattened for storage.
type Snapshot struct {
	SKU             string
	BasePriceCents  int64
	Currency        string
	Promotions      string // JSON array of PromotionRecord
	ScheduledPrices string // JSON array of ScheduledPriceRecord
	BulkTiers       string // JSON array of BulkTierRecord
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToSnapshot flattens an aggregate.
func ToSnapshot(entry *domain.PriceEntry) (*Snapshot, error) {
	promotions, err := EncodePromotions(entry.Promotions())
	if err != nil {
		return nil, err
	}
	scheduled, err := EncodeScheduledPrices(entry.ScheduledPrices())
	if err != nil {
		return nil, err
	}
	tiers, err := EncodeBulkTiers(entry.BulkTiers())
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		SKU:             entry.SKU().String(),
		BasePriceCents:  entry.BasePrice().AmountInCents(),
		Currency:        entry.BasePrice().Currency(),
		Promotions:      promotions,
		ScheduledPrices: scheduled,
		BulkTiers:       tiers,
		Version:         entry.Version(),
		CreatedAt:       entry.CreatedAt(),
		UpdatedAt:       entry.UpdatedAt(),
	}, nil
}

// FromSnapshot rebuilds an aggregate. Every value object goes back through its
// constructor, so corrupted rows surface as errors instead of invalid state.
func FromSnapshot(s *Snapshot) (*domain.PriceEntry, error) {
	sku, err := domain.NewSKU(s.SKU)
	if err != nil {
		return nil, fmt.Errorf("invalid stored sku %q: %w", s.SKU, err)
	}

	basePrice, err := domain.NewMoney(s.BasePriceCents, s.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid stored base price: %w", err)
	}

	promotions, err := DecodePromotions(s.Promotions)
	if err != nil {
		return nil, err
	}
	scheduled, err := DecodeScheduledPrices(s.ScheduledPrices)
	if err != nil {
		return nil, err
	}
	tiers, err := DecodeBulkTiers(s.BulkTiers)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructPriceEntry(
		sku,
		basePrice,
		promotions,
		scheduled,
		tiers,
		s.Version,
		s.CreatedAt,
		s.UpdatedAt,
	), nil
}

func EncodePromotions(promotions []domain.Promotion) (string, error) {
	records := make([]PromotionRecord, 0, len(promotions))
	for _, p := range promotions {
		records = append(records, PromotionRecord{
			Name:               p.Name(),
			Type:               string(p.Type()),
			DiscountPercentage: p.DiscountPercentage(),
			ValidFrom:          p.ValidFrom().UTC(),
			ValidUntil:         p.ValidUntil().UTC(),
			Priority:           p.Priority(),
		})
	}
	return encode(records)
}

func DecodePromotions(raw string) ([]domain.Promotion, error) {
	var records []PromotionRecord
	if err := decode(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode promotions: %w", err)
	}
	promotions := make([]domain.Promotion, 0, len(records))
	for _, r := range records {
		p, err := domain.NewPromotion(r.Name, domain.PromotionType(r.Type), r.DiscountPercentage, r.ValidFrom, r.ValidUntil, r.Priority)
		if err != nil {
			return nil, fmt.Errorf("invalid stored promotion %q: %w", r.Name, err)
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}

func EncodeScheduledPrices(scheduled []domain.ScheduledPrice) (string, error) {
	records := make([]ScheduledPriceRecord, 0, len(scheduled))
	for _, s := range scheduled {
		records = append(records, ScheduledPriceRecord{
			AmountInCents: s.Price().AmountInCents(),
			Currency:      s.Price().Currency(),
			EffectiveDate: s.EffectiveDate().UTC(),
		})
	}
	return encode(records)
}

func DecodeScheduledPrices(raw string) ([]domain.ScheduledPrice, error) {
	var records []ScheduledPriceRecord
	if err := decode(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode scheduled prices: %w", err)
	}
	scheduled := make([]domain.ScheduledPrice, 0, len(records))
	for _, r := range records {
		price, err := domain.NewMoney(r.AmountInCents, r.Currency)
		if err != nil {
			return nil, fmt.Errorf("invalid stored scheduled price: %w", err)
		}
		s, err := domain.NewScheduledPrice(price, r.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("invalid stored scheduled price: %w", err)
		}
		scheduled = append(scheduled, s)
	}
	return scheduled, nil
}

func EncodeBulkTiers(tiers []domain.BulkTier) (string, error) {
	records := make([]BulkTierRecord, 0, len(tiers))
	for _, t := range tiers {
		record := BulkTierRecord{
			MinQuantity:        t.MinQuantity(),
			DiscountPercentage: t.DiscountPercentage(),
		}
		if upper, ok := t.MaxQuantity(); ok {
			record.MaxQuantity = &upper
		}
		records = append(records, record)
	}
	return encode(records)
}

func DecodeBulkTiers(raw string) ([]domain.BulkTier, error) {
	var records []BulkTierRecord
	if err := decode(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode bulk tiers: %w", err)
	}
	tiers := make([]domain.BulkTier, 0, len(records))
	for _, r := range records {
		t, err := domain.NewBulkTier(r.MinQuantity, r.MaxQuantity, r.DiscountPercentage)
		if err != nil {
			return nil, fmt.Errorf("invalid stored bulk tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}

// EventPayload serializes a domain event for an outbox row.
func EventPayload(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to serialize event %s: %w", event.EventType(), err)
	}
	return string(data), nil
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decode(raw string, v any) error {
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}

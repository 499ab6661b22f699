package e2e

import (
	"encoding/json"
	"time"
)

// PromotionBuilder assembles add-promotion request bodies.
type PromotionBuilder struct {
	body map[string]any
}

// NewPromotion starts a promotion active for the next day.
func NewPromotion(name string) *PromotionBuilder {
	now := time.Now().UTC()
	return &PromotionBuilder{body: map[string]any{
		"name":               name,
		"type":               "SEASONAL",
		"discountPercentage": 10.0,
		"validFrom":          now.Add(-time.Hour).Format(time.RFC3339),
		"validUntil":         now.Add(24 * time.Hour).Format(time.RFC3339),
		"priority":           0,
	}}
}

func (b *PromotionBuilder) WithType(t string) *PromotionBuilder {
	b.body["type"] = t
	return b
}

func (b *PromotionBuilder) WithPercentage(pct float64) *PromotionBuilder {
	b.body["discountPercentage"] = pct
	return b
}

func (b *PromotionBuilder) WithPriority(p int) *PromotionBuilder {
	b.body["priority"] = p
	return b
}

func (b *PromotionBuilder) WithWindow(from, until time.Time) *PromotionBuilder {
	b.body["validFrom"] = from.UTC().Format(time.RFC3339)
	b.body["validUntil"] = until.UTC().Format(time.RFC3339)
	return b
}

// JSON renders the request body.
func (b *PromotionBuilder) JSON() string {
	data, _ := json.Marshal(b.body)
	return string(data)
}

// Tier is one bulk tier in a set-bulk-tiers body.
type Tier struct {
	MinQuantity        int     `json:"minQuantity"`
	MaxQuantity        *int    `json:"maxQuantity,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

// TiersJSON renders a set-bulk-tiers body.
func TiersJSON(tiers ...Tier) string {
	data, _ := json.Marshal(map[string]any{"tiers": tiers})
	return string(data)
}

func upTo(n int) *int { return &n }

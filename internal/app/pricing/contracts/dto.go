package contracts

import (
	"time"
)

// MoneyDTO is the transport shape of domain.Money.
type MoneyDTO struct {
	AmountInCents int64  `json:"amountInCents"`
	Currency      string `json:"currency"`
	Display       string `json:"display"`
}

// PromotionDTO is a promotion as stored on an entry.
type PromotionDTO struct {
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	DiscountPercentage float64   `json:"discountPercentage"`
	ValidFrom          time.Time `json:"validFrom"`
	ValidUntil         time.Time `json:"validUntil"`
	Priority           int       `json:"priority"`
	Active             bool      `json:"active"`
}

// ScheduledPriceDTO is a future (or already triggered) base price.
type ScheduledPriceDTO struct {
	Price         MoneyDTO  `json:"price"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

// BulkTierDTO is a quantity range discount. MaxQuantity is nil for open-ended tiers.
type BulkTierDTO struct {
	MinQuantity        int     `json:"minQuantity"`
	MaxQuantity        *int    `json:"maxQuantity,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

// PriceEntryDTO is a data transfer object for price entry queries.
type PriceEntryDTO struct {
	SKU                string              `json:"sku"`
	BasePrice          MoneyDTO            `json:"basePrice"`
	EffectiveBasePrice MoneyDTO            `json:"effectiveBasePrice"`
	Promotions         []PromotionDTO      `json:"promotions"`
	ScheduledPrices    []ScheduledPriceDTO `json:"scheduledPrices"`
	BulkTiers          []BulkTierDTO       `json:"bulkTiers"`
	Version            int64               `json:"version"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// AppliedDiscountDTO is one line of the discount trail.
type AppliedDiscountDTO struct {
	PromotionName      string  `json:"promotionName"`
	OriginalPercentage float64 `json:"originalPercentage"`
	AppliedPercentage  float64 `json:"appliedPercentage"`
	Reason             string  `json:"reason"`
	ReasonCode         string  `json:"reasonCode"`
}

// CalculatedPriceDTO is the result of a price calculation.
type CalculatedPriceDTO struct {
	SKU                     string               `json:"sku"`
	BasePrice               MoneyDTO             `json:"basePrice"`
	FinalPrice              MoneyDTO             `json:"finalPrice"`
	AppliedDiscounts        []AppliedDiscountDTO `json:"appliedDiscounts"`
	TotalDiscountPercentage int                  `json:"totalDiscountPercentage"`
	Availability            string               `json:"availability"`
	Quantity                int                  `json:"quantity,omitempty"`
	CalculatedAt            time.Time            `json:"calculatedAt"`
}

// SavingsLineDTO attributes part of the total savings to one discount.
type SavingsLineDTO struct {
	Label             string   `json:"label"`
	AppliedPercentage float64  `json:"appliedPercentage"`
	Reason            string   `json:"reason"`
	Saved             MoneyDTO `json:"saved"`
}

// SavingsSummaryDTO breaks the difference between base and final price down per discount.
// The Saved amounts of Breakdown always sum to TotalSavings.
type SavingsSummaryDTO struct {
	SKU                     string           `json:"sku"`
	BasePrice               MoneyDTO         `json:"basePrice"`
	FinalPrice              MoneyDTO         `json:"finalPrice"`
	TotalSavings            MoneyDTO         `json:"totalSavings"`
	TotalDiscountPercentage int              `json:"totalDiscountPercentage"`
	Availability            string           `json:"availability"`
	Breakdown               []SavingsLineDTO `json:"breakdown"`
}

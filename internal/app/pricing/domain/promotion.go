package domain

import (
	"fmt"
	"strings"
	"time"
)

// PromotionType classifies a promotion.
type PromotionType string

const (
	PromotionBlackFriday  PromotionType = "BLACK_FRIDAY"
	PromotionClearance    PromotionType = "CLEARANCE"
	PromotionSeasonal     PromotionType = "SEASONAL"
	PromotionBulkDiscount PromotionType = "BULK_DISCOUNT"
)

// ParsePromotionType accepts any casing of a known promotion type.
func ParsePromotionType(raw string) (PromotionType, error) {
	t := PromotionType(strings.ToUpper(strings.TrimSpace(raw)))
	switch t {
	case PromotionBlackFriday, PromotionClearance, PromotionSeasonal, PromotionBulkDiscount:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPromotionType, raw)
}

// Promotion is a named, typed, time-bounded percentage discount.
type Promotion struct {
	name               string
	promotionType      PromotionType
	discountPercentage float64
	validFrom          time.Time
	validUntil         time.Time
	priority           int
}

// NewPromotion creates a new Promotion with validation.
func NewPromotion(
	name string,
	promotionType PromotionType,
	discountPercentage float64,
	validFrom, validUntil time.Time,
	priority int,
) (Promotion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Promotion{}, ErrEmptyPromotionName
	}

	t, err := ParsePromotionType(string(promotionType))
	if err != nil {
		return Promotion{}, err
	}

	if !(discountPercentage >= 0 && discountPercentage <= 100) {
		return Promotion{}, fmt.Errorf("%w, got %v", ErrInvalidPercentage, discountPercentage)
	}

	if !validFrom.Before(validUntil) {
		return Promotion{}, ErrInvalidPromotionPeriod
	}

	return Promotion{
		name:               name,
		promotionType:      t,
		discountPercentage: discountPercentage,
		validFrom:          validFrom,
		validUntil:         validUntil,
		priority:           priority,
	}, nil
}

func (p Promotion) Name() string                { return p.name }
func (p Promotion) Type() PromotionType         { return p.promotionType }
func (p Promotion) DiscountPercentage() float64 { return p.discountPercentage }
func (p Promotion) ValidFrom() time.Time        { return p.validFrom }
func (p Promotion) ValidUntil() time.Time       { return p.validUntil }
func (p Promotion) Priority() int               { return p.priority }

// IsActiveAt checks the half-open window [validFrom, validUntil):
// a promotion is active at its start instant and inactive at its end instant.
func (p Promotion) IsActiveAt(t time.Time) bool {
	return !t.Before(p.validFrom) && t.Before(p.validUntil)
}

// Equals compares by (name, type). Percentage, window and priority are ignored,
// which makes this the duplicate check used when adding promotions.
func (p Promotion) Equals(other Promotion) bool {
	return p.name == other.name && p.promotionType == other.promotionType
}

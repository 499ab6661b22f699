package domain

import "fmt"

// BulkTier maps a purchase-quantity range to a percentage discount.
type BulkTier struct {
	minQuantity        int
	maxQuantity        *int // nil means unbounded
	discountPercentage float64
}

// NewBulkTier creates a tier. maxQuantity may be nil for an open-ended tier.
func NewBulkTier(minQuantity int, maxQuantity *int, discountPercentage float64) (BulkTier, error) {
	if minQuantity < 1 {
		return BulkTier{}, ErrInvalidMinQuantity
	}
	if maxQuantity != nil && *maxQuantity < minQuantity {
		return BulkTier{}, ErrInvalidMaxQuantity
	}
	if !(discountPercentage >= 0 && discountPercentage <= 100) {
		return BulkTier{}, fmt.Errorf("%w, got %v", ErrInvalidPercentage, discountPercentage)
	}

	tier := BulkTier{minQuantity: minQuantity, discountPercentage: discountPercentage}
	if maxQuantity != nil {
		upper := *maxQuantity
		tier.maxQuantity = &upper
	}
	return tier, nil
}

func (t BulkTier) MinQuantity() int            { return t.minQuantity }
func (t BulkTier) DiscountPercentage() float64 { return t.discountPercentage }

// MaxQuantity returns the upper bound and whether one is set.
func (t BulkTier) MaxQuantity() (int, bool) {
	if t.maxQuantity == nil {
		return 0, false
	}
	return *t.maxQuantity, true
}

// AppliesTo reports whether quantity falls inside [min, max] (max optional).
func (t BulkTier) AppliesTo(quantity int) bool {
	if quantity < t.minQuantity {
		return false
	}
	return t.maxQuantity == nil || quantity <= *t.maxQuantity
}

// Label is the synthetic discount name shown for this tier.
func (t BulkTier) Label() string {
	return fmt.Sprintf("Bulk discount (%d+ units)", t.minQuantity)
}

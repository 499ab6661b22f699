package domain

import "math"

// AppliedDiscount is one step of the discount trail.
type AppliedDiscount struct {
	// PromotionName is the promotion name, or a synthetic bulk-tier label.
	PromotionName      string
	OriginalPercentage float64
	AppliedPercentage  float64
	Reason             DiscountReason
}

// CalculatedPrice is the result of PriceEntry.CalculatePrice. It is never persisted.
type CalculatedPrice struct {
	SKU              SKU
	BasePrice        Money // effective base, after schedule resolution
	FinalPrice       Money
	AppliedDiscounts []AppliedDiscount
}

// TotalDiscountPercentage is the rounded overall reduction from BasePrice to FinalPrice.
// It is derived from the two prices, not summed from the trail, because discounts compound.
func (c *CalculatedPrice) TotalDiscountPercentage() int {
	base := c.BasePrice.AmountInCents()
	if base == 0 {
		return 0
	}
	saved := base - c.FinalPrice.AmountInCents()
	return int(math.Round(float64(saved) / float64(base) * 100))
}

// TotalSavings returns BasePrice - FinalPrice.
func (c *CalculatedPrice) TotalSavings() (Money, error) {
	return c.BasePrice.Subtract(c.FinalPrice)
}

package domain

import "fmt"

// DiscountReason explains why a discount was applied at the percentage it was.
type DiscountReason int

const (
	ReasonFull DiscountReason = iota + 1
	ReasonReducedLowStock
	ReasonSuppressedOutOfStock
	ReasonBulkTier
)

// LowStockReductionFactor scales promotion percentages when stock is low.
const LowStockReductionFactor = 0.5

var reasonText = map[DiscountReason]string{
	ReasonFull:                 "Full discount applied",
	ReasonReducedLowStock:      "Reduced discount: low stock",
	ReasonSuppressedOutOfStock: "No discount: item out of stock",
	ReasonBulkTier:             "Bulk tier discount applied",
}

var reasonCode = map[DiscountReason]string{
	ReasonFull:                 "FULL",
	ReasonReducedLowStock:      "REDUCED_LOW_STOCK",
	ReasonSuppressedOutOfStock: "SUPPRESSED_OUT_OF_STOCK",
	ReasonBulkTier:             "BULK_TIER",
}

// String renders the human-readable text existing consumers match on.
func (r DiscountReason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return fmt.Sprintf("DiscountReason(%d)", int(r))
}

// Code returns the stable machine-readable identifier.
func (r DiscountReason) Code() string {
	if c, ok := reasonCode[r]; ok {
		return c
	}
	return "UNKNOWN"
}

// availabilityAdjustment returns the percentage to apply for a promotion and why.
func availabilityAdjustment(original float64, availability AvailabilitySignal) (float64, DiscountReason) {
	switch {
	case availability.IsOutOfStock:
		return 0, ReasonSuppressedOutOfStock
	case availability.IsLow:
		return original * LowStockReductionFactor, ReasonReducedLowStock
	default:
		return original, ReasonFull
	}
}

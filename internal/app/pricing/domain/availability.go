package domain

import (
	"fmt"
	"strings"
)

// StockLevel is the coarse availability classification published by inventory.
type StockLevel string

const (
	StockHigh       StockLevel = "HIGH"
	StockMedium     StockLevel = "MEDIUM"
	StockLow        StockLevel = "LOW"
	StockOutOfStock StockLevel = "OUT_OF_STOCK"
)

// ParseStockLevel accepts any casing of a known level.
func ParseStockLevel(raw string) (StockLevel, error) {
	level := StockLevel(strings.ToUpper(strings.TrimSpace(raw)))
	switch level {
	case StockHigh, StockMedium, StockLow, StockOutOfStock:
		return level, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStockLevel, raw)
}

// AvailabilitySignal is a read-only fact produced by the inventory subsystem.
// The calculation only looks at IsOutOfStock and IsLow; Level is informational.
type AvailabilitySignal struct {
	SKU          string
	Level        StockLevel
	IsLow        bool
	IsOutOfStock bool
}

// NewAvailabilitySignal derives the flags from the level.
func NewAvailabilitySignal(sku string, level StockLevel) AvailabilitySignal {
	return AvailabilitySignal{
		SKU:          sku,
		Level:        level,
		IsLow:        level == StockLow,
		IsOutOfStock: level == StockOutOfStock,
	}
}

// UnknownAvailability is the fallback for SKUs the inventory subsystem does not know.
func UnknownAvailability(sku string) AvailabilitySignal {
	return NewAvailabilitySignal(sku, StockOutOfStock)
}

package domain

import (
	"regexp"
	"strings"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9._-]{0,63}$`)

// SKU is a normalized stock-keeping unit identifier.
// Two SKUs are equal when their normalized values are equal, so plain == works.
type SKU struct {
	value string
}

// NewSKU trims and uppercases raw and validates the result.
func NewSKU(raw string) (SKU, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return SKU{}, ErrEmptySKU
	}
	if !skuPattern.MatchString(normalized) {
		return SKU{}, ErrMalformedSKU
	}
	return SKU{value: normalized}, nil
}

// MustSKU is NewSKU for literals known to be valid. It panics otherwise.
func MustSKU(raw string) SKU {
	sku, err := NewSKU(raw)
	if err != nil {
		panic(err)
	}
	return sku
}

func (s SKU) String() string { return s.value }

// IsZero reports whether s was never initialized through NewSKU.
func (s SKU) IsZero() bool { return s.value == "" }

func (s SKU) Equals(other SKU) bool { return s.value == other.value }

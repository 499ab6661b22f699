package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these so callers can
// branch with errors.Is without knowing the specific failure.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrConflict         = errors.New("conflict")
)

// Domain errors as sentinel values
var (
	// SKU errors
	ErrEmptySKU     = fmt.Errorf("%w: sku cannot be empty", ErrInvalidArgument)
	ErrMalformedSKU = fmt.Errorf("%w: sku must contain only letters, digits, '.', '_' or '-' (max 64)", ErrInvalidArgument)

	// Money errors
	ErrNegativeAmount    = fmt.Errorf("%w: amount in cents must be a non-negative integer", ErrInvalidArgument)
	ErrInvalidCurrency   = fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidArgument)
	ErrNegativeResult    = fmt.Errorf("%w: subtraction would produce a negative amount", ErrInvalidArgument)
	ErrInvalidPercentage = fmt.Errorf("%w: percentage must be between 0 and 100", ErrInvalidArgument)

	// Price entry errors
	ErrPriceEntryNotFound = fmt.Errorf("price entry %w", ErrNotFound)
	ErrZeroBasePrice      = fmt.Errorf("%w: base price cannot be zero", ErrInvalidArgument)
	ErrVersionConflict    = fmt.Errorf("%w: price entry was modified concurrently", ErrConflict)

	// Promotion errors
	ErrEmptyPromotionName     = fmt.Errorf("%w: promotion name cannot be empty", ErrInvalidArgument)
	ErrUnknownPromotionType   = fmt.Errorf("%w: unknown promotion type", ErrInvalidArgument)
	ErrInvalidPromotionPeriod = fmt.Errorf("%w: promotion validFrom must be before validUntil", ErrInvalidArgument)
	ErrPromotionExists        = fmt.Errorf("promotion %w", ErrAlreadyExists)
	ErrPromotionNotFound      = fmt.Errorf("promotion %w", ErrNotFound)

	// Bulk tier errors
	ErrInvalidMinQuantity = fmt.Errorf("%w: bulk tier minQuantity must be at least 1", ErrInvalidArgument)
	ErrInvalidMaxQuantity = fmt.Errorf("%w: bulk tier maxQuantity must be >= minQuantity", ErrInvalidArgument)

	// Scheduling errors
	ErrMissingEffectiveDate = fmt.Errorf("%w: effective date is required", ErrInvalidArgument)

	// Availability errors
	ErrUnknownStockLevel = fmt.Errorf("%w: unknown stock level", ErrInvalidArgument)
)

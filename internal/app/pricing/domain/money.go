package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a caller omits the currency.
const DefaultCurrency = "USD"

var hundred = decimal.NewFromInt(100)

// Money is an exact, non-negative amount of integer cents tagged with a currency.
// Money is a value type: every operation returns a new value.
type Money struct {
	amountInCents int64
	currency      string
}

// NewMoney creates Money from an amount in cents (fromCents).
// An empty currency defaults to DefaultCurrency.
func NewMoney(amountInCents int64, currency string) (Money, error) {
	if amountInCents < 0 {
		return Money{}, ErrNegativeAmount
	}
	code, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{amountInCents: amountInCents, currency: code}, nil
}

// MoneyFromDollars converts a major-unit amount into cents, rounding half-up to the nearest cent.
func MoneyFromDollars(dollars float64, currency string) (Money, error) {
	if !(dollars >= 0) {
		return Money{}, ErrNegativeAmount
	}
	cents := decimal.NewFromFloat(dollars).Mul(hundred).Round(0)
	return NewMoney(cents.IntPart(), currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(0, currency)
}

func normalizeCurrency(currency string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return DefaultCurrency, nil
	}
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return code, nil
}

// AmountInCents returns the amount in minor units.
func (m Money) AmountInCents() int64 { return m.amountInCents }

// Currency returns the uppercase currency code.
func (m Money) Currency() string { return m.currency }

// Dollars returns the amount in major units, for display.
func (m Money) Dollars() decimal.Decimal {
	return decimal.New(m.amountInCents, -2)
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amountInCents: m.amountInCents + other.amountInCents, currency: m.currency}, nil
}

// Subtract returns m - other. A negative result is rejected.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	if other.amountInCents > m.amountInCents {
		return Money{}, ErrNegativeResult
	}
	return Money{amountInCents: m.amountInCents - other.amountInCents, currency: m.currency}, nil
}

// MultiplyByPercentage returns percentage% of m, rounded half-up to the nearest cent.
func (m Money) MultiplyByPercentage(percentage float64) (Money, error) {
	if !(percentage >= 0 && percentage <= 100) {
		return Money{}, fmt.Errorf("%w, got %v", ErrInvalidPercentage, percentage)
	}
	// Non-negative operands, so Round's half-away-from-zero is half-up here.
	amount := decimal.NewFromInt(m.amountInCents).
		Mul(decimal.NewFromFloat(percentage)).
		Shift(-2).
		Round(0)
	return Money{amountInCents: amount.IntPart(), currency: m.currency}, nil
}

// ApplyDiscount subtracts the rounded percentage% of m from m.
func (m Money) ApplyDiscount(percentage float64) (Money, error) {
	discount, err := m.MultiplyByPercentage(percentage)
	if err != nil {
		return Money{}, err
	}
	return m.Subtract(discount)
}

// IsGreaterThan reports whether m > other.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.checkCurrency(other); err != nil {
		return false, err
	}
	return m.amountInCents > other.amountInCents, nil
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amountInCents == 0
}

// Equals compares amount and currency. Values in different currencies are never equal.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amountInCents == other.amountInCents
}

// String renders the amount as "12.34 USD".
func (m Money) String() string {
	return m.Dollars().StringFixed(2) + " " + m.currency
}

func (m Money) checkCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

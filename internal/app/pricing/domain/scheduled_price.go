package domain

import "time"

// ScheduledPrice overrides the base price from effectiveDate onwards.
type ScheduledPrice struct {
	price         Money
	effectiveDate time.Time
}

func NewScheduledPrice(price Money, effectiveDate time.Time) (ScheduledPrice, error) {
	if effectiveDate.IsZero() {
		return ScheduledPrice{}, ErrMissingEffectiveDate
	}
	return ScheduledPrice{price: price, effectiveDate: effectiveDate}, nil
}

func (s ScheduledPrice) Price() Money             { return s.price }
func (s ScheduledPrice) EffectiveDate() time.Time { return s.effectiveDate }

// IsEffectiveAt is inclusive: a schedule takes effect at its exact effective instant.
func (s ScheduledPrice) IsEffectiveAt(t time.Time) bool {
	return !s.effectiveDate.After(t)
}

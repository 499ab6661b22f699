package contracts

import (
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// ToMoneyDTO converts a domain Money.
func ToMoneyDTO(m domain.Money) MoneyDTO {
	return MoneyDTO{
		AmountInCents: m.AmountInCents(),
		Currency:      m.Currency(),
		Display:       m.String(),
	}
}

// ToPriceEntryDTO converts an aggregate, resolving time-dependent fields at now.
func ToPriceEntryDTO(entry *domain.PriceEntry, now time.Time) *PriceEntryDTO {
	dto := &PriceEntryDTO{
		SKU:                entry.SKU().String(),
		BasePrice:          ToMoneyDTO(entry.BasePrice()),
		EffectiveBasePrice: ToMoneyDTO(entry.EffectiveBasePrice(now)),
		Promotions:         make([]PromotionDTO, 0, len(entry.Promotions())),
		ScheduledPrices:    make([]ScheduledPriceDTO, 0, len(entry.ScheduledPrices())),
		BulkTiers:          make([]BulkTierDTO, 0, len(entry.BulkTiers())),
		Version:            entry.Version(),
		CreatedAt:          entry.CreatedAt(),
		UpdatedAt:          entry.UpdatedAt(),
	}

	for _, p := range entry.Promotions() {
		dto.Promotions = append(dto.Promotions, PromotionDTO{
			Name:               p.Name(),
			Type:               string(p.Type()),
			DiscountPercentage: p.DiscountPercentage(),
			ValidFrom:          p.ValidFrom(),
			ValidUntil:         p.ValidUntil(),
			Priority:           p.Priority(),
			Active:             p.IsActiveAt(now),
		})
	}

	for _, s := range entry.ScheduledPrices() {
		dto.ScheduledPrices = append(dto.ScheduledPrices, ScheduledPriceDTO{
			Price:         ToMoneyDTO(s.Price()),
			EffectiveDate: s.EffectiveDate(),
		})
	}

	for _, t := range entry.BulkTiers() {
		tier := BulkTierDTO{
			MinQuantity:        t.MinQuantity(),
			DiscountPercentage: t.DiscountPercentage(),
		}
		if upper, ok := t.MaxQuantity(); ok {
			tier.MaxQuantity = &upper
		}
		dto.BulkTiers = append(dto.BulkTiers, tier)
	}

	return dto
}

// ToAppliedDiscountDTO converts one trail entry.
func ToAppliedDiscountDTO(d domain.AppliedDiscount) AppliedDiscountDTO {
	return AppliedDiscountDTO{
		PromotionName:      d.PromotionName,
		OriginalPercentage: d.OriginalPercentage,
		AppliedPercentage:  d.AppliedPercentage,
		Reason:             d.Reason.String(),
		ReasonCode:         d.Reason.Code(),
	}
}

// ToCalculatedPriceDTO converts a calculation result.
func ToCalculatedPriceDTO(
	result *domain.CalculatedPrice,
	availability domain.AvailabilitySignal,
	quantity int,
	at time.Time,
) *CalculatedPriceDTO {
	discounts := make([]AppliedDiscountDTO, 0, len(result.AppliedDiscounts))
	for _, d := range result.AppliedDiscounts {
		discounts = append(discounts, ToAppliedDiscountDTO(d))
	}

	return &CalculatedPriceDTO{
		SKU:                     result.SKU.String(),
		BasePrice:               ToMoneyDTO(result.BasePrice),
		FinalPrice:              ToMoneyDTO(result.FinalPrice),
		AppliedDiscounts:        discounts,
		TotalDiscountPercentage: result.TotalDiscountPercentage(),
		Availability:            string(availability.Level),
		Quantity:                quantity,
		CalculatedAt:            at,
	}
}

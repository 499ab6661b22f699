package calculate_savings_summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

// Request contains the summary inputs. Quantity <= 0 skips bulk tiers.
type Request struct {
	SKU      string
	Quantity int
}

// Query handles the calculate savings summary query use case.
type Query struct {
	repo         contracts.PriceEntryRepository
	availability contracts.AvailabilityProvider
	clock        clock.Clock
}

// NewQuery creates a new calculate savings summary query.
func NewQuery(
	repo contracts.PriceEntryRepository,
	availability contracts.AvailabilityProvider,
	clock clock.Clock,
) *Query {
	return &Query{
		repo:         repo,
		availability: availability,
		clock:        clock,
	}
}

// Execute calculates the price at now and attributes the savings to each
// discount step. found is false when the SKU has no entry.
func (q *Query) Execute(ctx context.Context, req *Request) (dto *contracts.SavingsSummaryDTO, found bool, err error) {
	sku, err := domain.NewSKU(req.SKU)
	if err != nil {
		return nil, false, err
	}

	entry, err := q.repo.FindBySKU(ctx, sku)
	if errors.Is(err, domain.ErrPriceEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load price entry: %w", err)
	}

	availability := q.availability.GetAvailability(ctx, sku)
	result, err := entry.CalculatePrice(availability, q.clock.Now(), max(req.Quantity, 0))
	if err != nil {
		return nil, false, fmt.Errorf("failed to calculate price: %w", err)
	}

	breakdown, err := Breakdown(result)
	if err != nil {
		return nil, false, err
	}
	total, err := result.TotalSavings()
	if err != nil {
		return nil, false, err
	}

	return &contracts.SavingsSummaryDTO{
		SKU:                     sku.String(),
		BasePrice:               contracts.ToMoneyDTO(result.BasePrice),
		FinalPrice:              contracts.ToMoneyDTO(result.FinalPrice),
		TotalSavings:            contracts.ToMoneyDTO(total),
		TotalDiscountPercentage: result.TotalDiscountPercentage(),
		Availability:            string(availability.Level),
		Breakdown:               breakdown,
	}, true, nil
}

// Breakdown replays the running price of a calculation and attributes the
// cents removed at each step to that step's discount.
func Breakdown(result *domain.CalculatedPrice) ([]contracts.SavingsLineDTO, error) {
	running := result.BasePrice
	lines := make([]contracts.SavingsLineDTO, 0, len(result.AppliedDiscounts))
	for _, d := range result.AppliedDiscounts {
		next := running
		if d.AppliedPercentage > 0 {
			discounted, err := running.ApplyDiscount(d.AppliedPercentage)
			if err != nil {
				return nil, fmt.Errorf("replay %q: %w", d.PromotionName, err)
			}
			next = discounted
		}
		saved, err := running.Subtract(next)
		if err != nil {
			return nil, fmt.Errorf("replay %q: %w", d.PromotionName, err)
		}
		lines = append(lines, contracts.SavingsLineDTO{
			Label:             d.PromotionName,
			AppliedPercentage: d.AppliedPercentage,
			Reason:            d.Reason.String(),
			Saved:             contracts.ToMoneyDTO(saved),
		})
		running = next
	}

	if !running.Equals(result.FinalPrice) {
		return nil, fmt.Errorf("replayed price %s does not match final price %s", running, result.FinalPrice)
	}
	return lines, nil
}

package get_price_entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

// Request contains the SKU to retrieve.
type Request struct {
	SKU string
}

// Query handles the get price entry query use case.
type Query struct {
	repo  contracts.PriceEntryRepository
	clock clock.Clock
}

// NewQuery creates a new get price entry query.
func NewQuery(repo contracts.PriceEntryRepository, clock clock.Clock) *Query {
	return &Query{
		repo:  repo,
		clock: clock,
	}
}

// Execute returns the entry for a SKU. found is false when the SKU has no entry.
func (q *Query) Execute(ctx context.Context, req *Request) (dto *contracts.PriceEntryDTO, found bool, err error) {
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

	return contracts.ToPriceEntryDTO(entry, q.clock.Now()), true, nil
}

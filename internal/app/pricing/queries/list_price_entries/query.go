package list_price_entries

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

// Query handles the list price entries query use case.
type Query struct {
	repo  contracts.PriceEntryRepository
	clock clock.Clock
}

// NewQuery creates a new list price entries query.
func NewQuery(repo contracts.PriceEntryRepository, clock clock.Clock) *Query {
	return &Query{
		repo:  repo,
		clock: clock,
	}
}

// Execute returns every entry ordered by SKU.
func (q *Query) Execute(ctx context.Context) ([]*contracts.PriceEntryDTO, error) {
	entries, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list price entries: %w", err)
	}

	now := q.clock.Now()
	dtos := make([]*contracts.PriceEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, contracts.ToPriceEntryDTO(entry, now))
	}
	return dtos, nil
}

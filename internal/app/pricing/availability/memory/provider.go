// Package memory is an in-process availability table, used for local runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Provider serves stock levels from a map. Unknown SKUs are OUT_OF_STOCK.
type Provider struct {
	mu     sync.RWMutex
	levels map[domain.SKU]domain.StockLevel
}

func NewProvider() *Provider {
	return &Provider{levels: make(map[domain.SKU]domain.StockLevel)}
}

var _ contracts.AvailabilityProvider = (*Provider)(nil)

func (p *Provider) GetAvailability(_ context.Context, sku domain.SKU) domain.AvailabilitySignal {
	p.mu.RLock()
	level, ok := p.levels[sku]
	p.mu.RUnlock()

	if !ok {
		return domain.UnknownAvailability(sku.String())
	}
	return domain.NewAvailabilitySignal(sku.String(), level)
}

// SetAvailability records the level for sku.
func (p *Provider) SetAvailability(_ context.Context, sku domain.SKU, level domain.StockLevel) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.levels[sku] = level
	return nil
}

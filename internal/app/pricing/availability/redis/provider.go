// Package redis reads stock levels published by the inventory service into Redis.
//
// Each SKU is a plain string key, "<prefix>:availability:<SKU>", holding one
// of HIGH, MEDIUM, LOW or OUT_OF_STOCK.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

const availabilitySegment = "availability"

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// Config holds the Redis connection settings.
type Config struct {
	Address   string
	Password  string
	DB        int
	KeyPrefix string
	// TTL applies to levels written through SetAvailability. Zero keeps them forever.
	TTL time.Duration
}

// Provider implements AvailabilityProvider on Redis. Lookup failures are
// logged and degrade to OUT_OF_STOCK so a cache outage can never grant discounts.
type Provider struct {
	store  cmdable
	raw    *redis.Client
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

var _ contracts.AvailabilityProvider = (*Provider)(nil)

// New connects to Redis and verifies connectivity.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Provider, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address is required")
	}
	raw := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	p := newProvider(raw, cfg, log)
	p.raw = raw
	return p, nil
}

func newProvider(store cmdable, cfg Config, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.Nop()
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "pricing"
	}
	return &Provider{store: store, prefix: prefix, ttl: cfg.TTL, log: log}
}

// Key returns the Redis key holding sku's level.
func (p *Provider) Key(sku domain.SKU) string {
	return fmt.Sprintf("%s:%s:%s", p.prefix, availabilitySegment, sku.String())
}

func (p *Provider) GetAvailability(ctx context.Context, sku domain.SKU) domain.AvailabilitySignal {
	raw, err := p.store.Get(ctx, p.Key(sku)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			p.log.Warn(p.log.WithSKU(ctx, sku.String()), "availability lookup failed", err)
		}
		return domain.UnknownAvailability(sku.String())
	}

	level, err := domain.ParseStockLevel(raw)
	if err != nil {
		p.log.Warn(p.log.WithSKU(ctx, sku.String()), "unrecognized stock level in cache", err)
		return domain.UnknownAvailability(sku.String())
	}
	return domain.NewAvailabilitySignal(sku.String(), level)
}

// SetAvailability writes the level for sku.
func (p *Provider) SetAvailability(ctx context.Context, sku domain.SKU, level domain.StockLevel) error {
	if err := p.store.Set(ctx, p.Key(sku), string(level), p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store availability: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (p *Provider) Close() error {
	if p.raw == nil {
		return nil
	}
	return p.raw.Close()
}

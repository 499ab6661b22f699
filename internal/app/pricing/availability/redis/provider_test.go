package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

type mockCmdable struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if m.failGet != nil {
		cmd.SetErr(m.failGet)
		return cmd
	}
	value, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	m.data[key] = value.(string)
	m.ttls[key] = ttl
	cmd.SetVal("OK")
	return cmd
}

func TestProvider_GetAvailability(t *testing.T) {
	ctx := context.Background()
	store := newMockCmdable()
	p := newProvider(store, Config{KeyPrefix: "test"}, nil)
	sku := domain.MustSKU("LAMP-7")

	assert.Equal(t, "test:availability:LAMP-7", p.Key(sku))

	t.Run("missing key is out of stock", func(t *testing.T) {
		signal := p.GetAvailability(ctx, sku)
		assert.True(t, signal.IsOutOfStock)
	})

	t.Run("stored level is parsed", func(t *testing.T) {
		store.data[p.Key(sku)] = "low"
		signal := p.GetAvailability(ctx, sku)
		assert.Equal(t, domain.StockLow, signal.Level)
		assert.True(t, signal.IsLow)
	})

	t.Run("garbage level is out of stock", func(t *testing.T) {
		store.data[p.Key(sku)] = "PLENTY"
		assert.True(t, p.GetAvailability(ctx, sku).IsOutOfStock)
	})

	t.Run("redis failure is out of stock", func(t *testing.T) {
		store.data[p.Key(sku)] = "HIGH"
		store.failGet = errors.New("connection refused")
		defer func() { store.failGet = nil }()
		assert.True(t, p.GetAvailability(ctx, sku).IsOutOfStock)
	})
}

func TestProvider_SetAvailability(t *testing.T) {
	ctx := context.Background()
	store := newMockCmdable()
	p := newProvider(store, Config{TTL: time.Minute}, nil)
	sku := domain.MustSKU("LAMP-8")

	require.NoError(t, p.SetAvailability(ctx, sku, domain.StockMedium))
	assert.Equal(t, "MEDIUM", store.data["pricing:availability:LAMP-8"])
	assert.Equal(t, time.Minute, store.ttls["pricing:availability:LAMP-8"])

	assert.Equal(t, domain.StockMedium, p.GetAvailability(ctx, sku).Level)
}

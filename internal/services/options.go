package services

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/light-bringer/pricing-service/internal/app/pricing"
	availmemory "github.com/light-bringer/pricing-service/internal/app/pricing/availability/memory"
	availredis "github.com/light-bringer/pricing-service/internal/app/pricing/availability/redis"
	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/gormrepo"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/spannerrepo"
	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
	grpcpricing "github.com/light-bringer/pricing-service/internal/transport/grpc/pricing"
	httphandler "github.com/light-bringer/pricing-service/internal/transport/http"
)

// availabilityStore is both sides of the availability table.
type availabilityStore interface {
	contracts.AvailabilityProvider
	contracts.AvailabilityWriter
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	UseCases    *pricing.PriceEntryUseCases
	HTTPHandler http.Handler
	GRPCHandler *grpcpricing.Handler

	closers []func() error
}

// NewServiceOptions creates and wires up all application dependencies.
// reg may be nil, in which case no metrics are collected and /metrics is not mounted.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log *logger.Logger, reg *prometheus.Registry) (*ServiceOptions, error) {
	opts := &ServiceOptions{}

	// 1. Create repositories
	repo, events, err := opts.newStore(ctx, cfg, log)
	if err != nil {
		opts.Close()
		return nil, err
	}

	// 2. Create availability provider
	stock, err := opts.newAvailability(ctx, cfg, log)
	if err != nil {
		opts.Close()
		return nil, err
	}

	// 3. Create use cases
	var registerer prometheus.Registerer
	var gatherer prometheus.Gatherer
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	opts.UseCases = pricing.NewPriceEntryUseCases(pricing.Dependencies{
		Repo:            repo,
		Availability:    stock,
		AvailabilitySet: stock,
		Events:          events,
		Clock:           clock.NewRealClock(),
		Log:             log,
		Metrics:         metrics.NewPricingMetrics(registerer),
		DefaultCurrency: cfg.Pricing.DefaultCurrency,
	})

	// 4. Create transport handlers
	opts.HTTPHandler = httphandler.NewRouter(httphandler.NewHandler(opts.UseCases, log), log, gatherer)
	opts.GRPCHandler = grpcpricing.NewHandler(opts.UseCases, log)

	return opts, nil
}

func (s *ServiceOptions) newStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (contracts.PriceEntryRepository, contracts.OutboxReader, error) {
	switch cfg.Store.Driver {
	case config.StoreSpanner:
		client, err := spanner.NewClient(ctx, cfg.Store.SpannerDatabase)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.closers = append(s.closers, func() error { client.Close(); return nil })

		comm := committer.NewCommitter(client)
		repo := spannerrepo.NewPriceEntryRepo(client, spannerrepo.NewOutboxRepo(), comm)
		log.Info(log.WithField(ctx, "database", cfg.Store.SpannerDatabase), "spanner store ready")
		return repo, spannerrepo.NewEventsReadModel(client), nil

	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("getting sql db handle: %w", err)
		}
		s.closers = append(s.closers, sqlDB.Close)

		if err := gormrepo.Migrate(db); err != nil {
			return nil, nil, err
		}
		return gormrepo.NewPriceEntryRepo(db), gormrepo.NewEventsReadModel(db), nil

	default:
		repo := memory.NewPriceEntryRepo()
		return repo, repo, nil
	}
}

func (s *ServiceOptions) newAvailability(ctx context.Context, cfg *config.Config, log *logger.Logger) (availabilityStore, error) {
	if cfg.Availability.Driver != config.AvailabilityRedis {
		return availmemory.NewProvider(), nil
	}

	provider, err := availredis.New(ctx, availredis.Config{
		Address:   cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Redis.KeyPrefix,
		TTL:       cfg.Redis.TTL,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis availability provider: %w", err)
	}
	s.closers = append(s.closers, provider.Close)
	return provider, nil
}

// Close closes all resources in reverse order of creation.
func (s *ServiceOptions) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
	s.closers = nil
}

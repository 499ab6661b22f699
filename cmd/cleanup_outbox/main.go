// Command cleanup_outbox deletes processed outbox events past their retention window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// Config for the outbox cleanup job.
type Config struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

// retentionRule removes events of one status processed before Cutoff.
type retentionRule struct {
	Status string
	Cutoff time.Time
}

func main() {
	_ = godotenv.Load()

	cfg := Config{}
	flag.StringVar(&cfg.SpannerDB, "database", os.Getenv(config.EnvSpannerDB), "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&cfg.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&cfg.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	log := logger.New(logger.Options{
		ServiceName: "pricing-cleanup-outbox",
		Level:       logger.ParseLevel(os.Getenv(config.EnvLogLevel)),
		Format:      os.Getenv(config.EnvLogFormat),
	})
	ctx := context.Background()

	if cfg.SpannerDB == "" {
		log.Error(ctx, "invalid arguments", errors.New("-database flag or "+config.EnvSpannerDB+" is required"))
		os.Exit(2)
	}

	if err := cleanupOutbox(ctx, log, cfg); err != nil {
		log.Error(ctx, "cleanup failed", err)
		os.Exit(1)
	}
	log.Info(ctx, "cleanup completed")
}

func retentionRules(now time.Time, cfg Config) []retentionRule {
	return []retentionRule{
		{Status: m_outbox.StatusCompleted, Cutoff: now.AddDate(0, 0, -cfg.CompletedRetentionDays)},
		{Status: m_outbox.StatusFailed, Cutoff: now.AddDate(0, 0, -cfg.FailedRetentionDays)},
	}
}

// statements returns the count and delete statements for rule.
func (r retentionRule) statements() (count, del spanner.Statement) {
	q := query.DeleteFrom(m_outbox.TableName).
		Where(query.Eq(m_outbox.Status, r.Status)).
		Where(query.Lt(m_outbox.ProcessedAt, r.Cutoff))
	return q.Count().Build(), q.Build()
}

func cleanupOutbox(ctx context.Context, log *logger.Logger, cfg Config) error {
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	for _, rule := range retentionRules(time.Now().UTC(), cfg) {
		ruleCtx := log.WithFields(ctx, map[string]any{
			"status":  rule.Status,
			"cutoff":  rule.Cutoff.Format(time.RFC3339),
			"dry_run": cfg.DryRun,
		})
		countStmt, deleteStmt := rule.statements()

		if cfg.DryRun {
			count, err := countRows(ctx, client.Single(), countStmt)
			if err != nil {
				return err
			}
			log.Info(log.WithField(ruleCtx, "count", count), "would delete events")
			continue
		}

		deleted, err := client.PartitionedUpdate(ctx, deleteStmt)
		if err != nil {
			return fmt.Errorf("failed to delete %s events: %w", rule.Status, err)
		}
		log.Info(log.WithField(ruleCtx, "deleted", deleted), "deleted events")
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

func countRows(ctx context.Context, q querier, stmt spanner.Statement) (int64, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

// Command check_events prints the most recent outbox events straight from Spanner.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/spannerrepo"
	"github.com/light-bringer/pricing-service/internal/config"
)

func main() {
	_ = godotenv.Load()

	db := flag.String("database", os.Getenv(config.EnvSpannerDB), "Spanner database path")
	sku := flag.String("sku", "", "Only show events for this SKU")
	eventType := flag.String("type", "", "Only show events of this type")
	status := flag.String("status", "", "Only show events with this status")
	limit := flag.Int("limit", 10, "Maximum number of events to show")
	flag.Parse()

	if err := run(context.Background(), *db, contracts.EventFilter{
		AggregateID: *sku,
		EventType:   *eventType,
		Status:      *status,
		Limit:       *limit,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "check_events: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db string, filter contracts.EventFilter) error {
	if db == "" {
		return fmt.Errorf("-database or %s is required", config.EnvSpannerDB)
	}
	client, err := spanner.NewClient(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	events, total, err := spannerrepo.NewEventsReadModel(client).ListEvents(ctx, filter)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events found!")
		return nil
	}
	for i, e := range events {
		fmt.Printf("%d. %s - %s (sku: %s, status: %s, created: %s)\n",
			i+1, e.EventType, e.EventID, e.AggregateID, e.Status, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("\nShowing %d of %d events\n", len(events), total)
	return nil
}

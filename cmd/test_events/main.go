// Command test_events drives a running server through a pricing scenario so
// every command writes an outbox event.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	grpcpricing "github.com/light-bringer/pricing-service/internal/transport/grpc/pricing"
)

type step struct {
	method string
	req    map[string]any
}

func scenario(sku string, now time.Time) []step {
	return []step{
		{grpcpricing.MethodSetBasePrice, map[string]any{"sku": sku, "priceInCents": 10000}},
		{grpcpricing.MethodAddPromotion, map[string]any{
			"sku":                sku,
			"name":               "Launch Week",
			"type":               "SEASONAL",
			"discountPercentage": 15,
			"validFrom":          now.Add(-time.Hour).Format(time.RFC3339),
			"validUntil":         now.Add(7 * 24 * time.Hour).Format(time.RFC3339),
			"priority":           1,
		}},
		{grpcpricing.MethodSetBulkTiers, map[string]any{"sku": sku, "tiers": []any{
			map[string]any{"minQuantity": 10, "maxQuantity": 49, "discountPercentage": 5},
			map[string]any{"minQuantity": 50, "discountPercentage": 10},
		}}},
		{grpcpricing.MethodScheduleBasePrice, map[string]any{
			"sku":           sku,
			"priceInCents":  11000,
			"effectiveDate": now.Add(30 * 24 * time.Hour).Format(time.RFC3339),
		}},
		{grpcpricing.MethodSetAvailability, map[string]any{"sku": sku, "level": "LOW"}},
		{grpcpricing.MethodCalculatePrice, map[string]any{"sku": sku, "quantity": 12}},
		{grpcpricing.MethodRemovePromotion, map[string]any{"sku": sku, "promotionName": "Launch Week"}},
		{grpcpricing.MethodListEvents, map[string]any{"aggregateId": sku}},
	}
}

func main() {
	addr := flag.String("addr", "localhost:9090", "gRPC server address")
	sku := flag.String("sku", fmt.Sprintf("DEMO-%d", time.Now().Unix()), "SKU to use for the scenario")
	flag.Parse()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	client := grpcpricing.NewClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, s := range scenario(*sku, time.Now().UTC()) {
		req, err := structpb.NewStruct(s.req)
		if err != nil {
			log.Fatalf("Failed to build %s request: %v", s.method, err)
		}
		resp, err := client.Call(ctx, s.method, req)
		if err != nil {
			log.Fatalf("%s failed: %v", s.method, err)
		}
		fmt.Printf("%s OK\n", s.method)

		switch s.method {
		case grpcpricing.MethodCalculatePrice:
			final := resp.GetFields()["finalPrice"].GetStructValue().GetFields()["display"].GetStringValue()
			fmt.Printf("   final price for 12 units: %s\n", final)
		case grpcpricing.MethodListEvents:
			fmt.Printf("   %d events recorded for %s\n", int64(resp.GetFields()["totalCount"].GetNumberValue()), *sku)
		}
	}
}

// Command test_grpc_events lists outbox events through the gRPC API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	grpcpricing "github.com/light-bringer/pricing-service/internal/transport/grpc/pricing"
)

func main() {
	addr := flag.String("addr", "localhost:9090", "gRPC server address")
	sku := flag.String("sku", "", "Only show events for this SKU")
	limit := flag.Int("limit", 10, "Maximum number of events to show")
	flag.Parse()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"aggregateId": *sku, "limit": *limit})
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	resp, err := grpcpricing.NewClient(conn).Call(ctx, grpcpricing.MethodListEvents, req)
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}

	events := resp.GetFields()["events"].GetListValue().GetValues()
	fmt.Printf("Found %d events (total: %d):\n\n", len(events), int64(resp.GetFields()["totalCount"].GetNumberValue()))
	for i, v := range events {
		e := v.GetStructValue().GetFields()
		fmt.Printf("%d. %s\n", i+1, e["eventType"].GetStringValue())
		fmt.Printf("   Event ID: %s\n", e["eventId"].GetStringValue())
		fmt.Printf("   SKU: %s\n", e["aggregateId"].GetStringValue())
		fmt.Printf("   Status: %s\n", e["status"].GetStringValue())
		fmt.Printf("   Created: %s\n", e["createdAt"].GetStringValue())
		if payload := e["payload"]; payload != nil {
			raw, _ := protojson.Marshal(payload)
			fmt.Printf("   Payload: %s\n", raw)
		}
		fmt.Println()
	}
}

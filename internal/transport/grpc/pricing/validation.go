package pricing

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type skuRequest struct {
	SKU string `json:"sku"`
}

type setBasePriceRequest struct {
	SKU          string `json:"sku"`
	PriceInCents *int64 `json:"priceInCents"`
	Currency     string `json:"currency"`
}

type scheduleBasePriceRequest struct {
	SKU           string     `json:"sku"`
	PriceInCents  *int64     `json:"priceInCents"`
	Currency      string     `json:"currency"`
	EffectiveDate *time.Time `json:"effectiveDate"`
}

type bulkTier struct {
	MinQuantity        *int     `json:"minQuantity"`
	MaxQuantity        *int     `json:"maxQuantity"`
	DiscountPercentage *float64 `json:"discountPercentage"`
}

type setBulkTiersRequest struct {
	SKU   string     `json:"sku"`
	Tiers []bulkTier `json:"tiers"`
}

type addPromotionRequest struct {
	SKU                string     `json:"sku"`
	Name               string     `json:"name"`
	Type               string     `json:"type"`
	DiscountPercentage *float64   `json:"discountPercentage"`
	ValidFrom          *time.Time `json:"validFrom"`
	ValidUntil         *time.Time `json:"validUntil"`
	Priority           int        `json:"priority"`
}

type removePromotionRequest struct {
	SKU           string `json:"sku"`
	PromotionName string `json:"promotionName"`
}

type calculatePriceRequest struct {
	SKU      string     `json:"sku"`
	At       *time.Time `json:"at"`
	Quantity int        `json:"quantity"`
}

type savingsSummaryRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type setAvailabilityRequest struct {
	SKU   string `json:"sku"`
	Level string `json:"level"`
}

type listEventsRequest struct {
	EventType   string `json:"eventType"`
	AggregateID string `json:"aggregateId"`
	Status      string `json:"status"`
	Limit       int    `json:"limit"`
}

// decodeRequest maps a Struct onto dest, rejecting unknown fields.
func decodeRequest(in *structpb.Struct, dest any) error {
	raw, err := protojson.Marshal(in)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

func requireSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return status.Error(codes.InvalidArgument, "sku is required")
	}
	return nil
}

func validateSetBasePriceRequest(req *setBasePriceRequest) error {
	if err := requireSKU(req.SKU); err != nil {
		return err
	}
	if req.PriceInCents == nil {
		return status.Error(codes.InvalidArgument, "priceInCents is required")
	}
	return nil
}

func validateScheduleBasePriceRequest(req *scheduleBasePriceRequest) error {
	if err := requireSKU(req.SKU); err != nil {
		return err
	}
	if req.PriceInCents == nil {
		return status.Error(codes.InvalidArgument, "priceInCents is required")
	}
	if req.EffectiveDate == nil {
		return status.Error(codes.InvalidArgument, "effectiveDate is required")
	}
	return nil
}

func validateSetBulkTiersRequest(req *setBulkTiersRequest) error {
	if err := requireSKU(req.SKU); err != nil {
		return err
	}
	for i, t := range req.Tiers {
		if t.MinQuantity == nil {
			return status.Errorf(codes.InvalidArgument, "tiers[%d].minQuantity is required", i)
		}
		if t.DiscountPercentage == nil {
			return status.Errorf(codes.InvalidArgument, "tiers[%d].discountPercentage is required", i)
		}
	}
	return nil
}

func validateAddPromotionRequest(req *addPromotionRequest) error {
	if err := requireSKU(req.SKU); err != nil {
		return err
	}
	if req.DiscountPercentage == nil {
		return status.Error(codes.InvalidArgument, "discountPercentage is required")
	}
	if req.ValidFrom == nil {
		return status.Error(codes.InvalidArgument, "validFrom is required")
	}
	if req.ValidUntil == nil {
		return status.Error(codes.InvalidArgument, "validUntil is required")
	}
	return nil
}

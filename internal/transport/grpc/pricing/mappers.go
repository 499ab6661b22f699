package pricing

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_bulk_tiers"
)

// toStruct converts a DTO to a Struct through its JSON form, so both APIs share field names.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode reply: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode reply: %v", err)
	}
	return out, nil
}

func bulkTiersToRequest(tiers []bulkTier) []set_bulk_tiers.Tier {
	out := make([]set_bulk_tiers.Tier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, set_bulk_tiers.Tier{
			MinQuantity:        *t.MinQuantity,
			MaxQuantity:        t.MaxQuantity,
			DiscountPercentage: *t.DiscountPercentage,
		})
	}
	return out
}

type availabilityReply struct {
	SKU          string `json:"sku"`
	Level        string `json:"level"`
	IsLow        bool   `json:"isLow"`
	IsOutOfStock bool   `json:"isOutOfStock"`
}

func signalToReply(s domain.AvailabilitySignal) availabilityReply {
	return availabilityReply{
		SKU:          s.SKU,
		Level:        string(s.Level),
		IsLow:        s.IsLow,
		IsOutOfStock: s.IsOutOfStock,
	}
}

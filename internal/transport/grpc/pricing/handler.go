package pricing

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	pricingapp "github.com/light-bringer/pricing-service/internal/app/pricing"
	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_savings_summary"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_price_entry"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/add_promotion"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/remove_promotion"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/schedule_base_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_base_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_bulk_tiers"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

// Handler implements PricingServiceServer.
// It's a thin coordinator that delegates to the pricing use cases.
type Handler struct {
	uc  *pricingapp.PriceEntryUseCases
	log *logger.Logger
}

var _ PricingServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC pricing handler.
func NewHandler(uc *pricingapp.PriceEntryUseCases, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{uc: uc, log: log}
}

// SetBasePrice creates the entry or replaces its base price.
func (h *Handler) SetBasePrice(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	// 1. Decode and validate
	var req setBasePriceRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := validateSetBasePriceRequest(&req); err != nil {
		return nil, err
	}

	// 2. Execute use case
	entry, err := h.uc.SetBasePrice(ctx, &set_base_price.Request{
		SKU:          req.SKU,
		PriceInCents: *req.PriceInCents,
		Currency:     req.Currency,
	})
	if err != nil {
		return nil, h.fail(ctx, MethodSetBasePrice, err)
	}

	// 3. Return reply
	return toStruct(entry)
}

// ScheduleBasePrice adds a future base price.
func (h *Handler) ScheduleBasePrice(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req scheduleBasePriceRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := validateScheduleBasePriceRequest(&req); err != nil {
		return nil, err
	}

	entry, err := h.uc.ScheduleBasePrice(ctx, &schedule_base_price.Request{
		SKU:           req.SKU,
		PriceInCents:  *req.PriceInCents,
		Currency:      req.Currency,
		EffectiveDate: *req.EffectiveDate,
	})
	if err != nil {
		return nil, h.fail(ctx, MethodScheduleBasePrice, err)
	}
	return toStruct(entry)
}

// SetBulkTiers replaces the tier set.
func (h *Handler) SetBulkTiers(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req setBulkTiersRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := validateSetBulkTiersRequest(&req); err != nil {
		return nil, err
	}

	entry, err := h.uc.SetBulkTiers(ctx, &set_bulk_tiers.Request{
		SKU:   req.SKU,
		Tiers: bulkTiersToRequest(req.Tiers),
	})
	if err != nil {
		return nil, h.fail(ctx, MethodSetBulkTiers, err)
	}
	return toStruct(entry)
}

// AddPromotion attaches a promotion.
func (h *Handler) AddPromotion(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req addPromotionRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := validateAddPromotionRequest(&req); err != nil {
		return nil, err
	}

	entry, err := h.uc.AddPromotion(ctx, &add_promotion.Request{
		SKU:                req.SKU,
		Name:               req.Name,
		Type:               req.Type,
		DiscountPercentage: *req.DiscountPercentage,
		ValidFrom:          *req.ValidFrom,
		ValidUntil:         *req.ValidUntil,
		Priority:           req.Priority,
	})
	if err != nil {
		return nil, h.fail(ctx, MethodAddPromotion, err)
	}
	return toStruct(entry)
}

// RemovePromotion removes every promotion with the given name.
func (h *Handler) RemovePromotion(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req removePromotionRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireSKU(req.SKU); err != nil {
		return nil, err
	}

	entry, err := h.uc.RemovePromotion(ctx, &remove_promotion.Request{
		SKU:           req.SKU,
		PromotionName: req.PromotionName,
	})
	if err != nil {
		return nil, h.fail(ctx, MethodRemovePromotion, err)
	}
	return toStruct(entry)
}

// GetPriceEntry returns NotFound when the SKU has no entry.
func (h *Handler) GetPriceEntry(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req skuRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireSKU(req.SKU); err != nil {
		return nil, err
	}

	entry, found, err := h.uc.GetPriceEntry(ctx, &get_price_entry.Request{SKU: req.SKU})
	if err != nil {
		return nil, h.fail(ctx, MethodGetPriceEntry, err)
	}
	if !found {
		return nil, status.Errorf(codes.NotFound, "price entry not found: %s", req.SKU)
	}
	return toStruct(entry)
}

// ListPriceEntries returns every entry ordered by SKU.
func (h *Handler) ListPriceEntries(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	entries, err := h.uc.ListPriceEntries(ctx)
	if err != nil {
		return nil, h.fail(ctx, MethodListPriceEntries, err)
	}
	if entries == nil {
		entries = []*contracts.PriceEntryDTO{}
	}
	return toStruct(map[string]any{"priceEntries": entries})
}

// CalculatePrice returns NotFound when the SKU has no entry.
func (h *Handler) CalculatePrice(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req calculatePriceRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireSKU(req.SKU); err != nil {
		return nil, err
	}

	price, found, err := h.uc.CalculatePrice(ctx, &calculate_price.Request{
		SKU:      req.SKU,
		At:       req.At,
		Quantity: req.Quantity,
	})
	if err != nil {
		return nil, h.fail(ctx, MethodCalculatePrice, err)
	}
	if !found {
		return nil, status.Errorf(codes.NotFound, "price entry not found: %s", req.SKU)
	}
	return toStruct(price)
}

// CalculateSavingsSummary returns NotFound when the SKU has no entry.
func (h *Handler) CalculateSavingsSummary(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req savingsSummaryRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireSKU(req.SKU); err != nil {
		return nil, err
	}

	summary, found, err := h.uc.CalculateSavingsSummary(ctx, &calculate_savings_summary.Request{
		SKU:      req.SKU,
		Quantity: req.Quantity,
	})
	if err != nil {
		return nil, h.fail(ctx, MethodCalculateSavingsSummary, err)
	}
	if !found {
		return nil, status.Errorf(codes.NotFound, "price entry not found: %s", req.SKU)
	}
	return toStruct(summary)
}

// SetAvailability records a stock level.
func (h *Handler) SetAvailability(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req setAvailabilityRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	signal, err := h.uc.SetAvailability(ctx, req.SKU, req.Level)
	if err != nil {
		return nil, h.fail(ctx, MethodSetAvailability, err)
	}
	return toStruct(signalToReply(signal))
}

// ListEvents returns recent outbox events.
func (h *Handler) ListEvents(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listEventsRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	events, total, err := h.uc.ListEvents(ctx, &list_events.Request{
		EventType:   req.EventType,
		AggregateID: req.AggregateID,
		Status:      req.Status,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, h.fail(ctx, MethodListEvents, err)
	}
	if events == nil {
		events = []contracts.OutboxEventDTO{}
	}
	return toStruct(map[string]any{"events": events, "totalCount": total})
}

// fail maps err to a status, logging anything that is not a client error.
func (h *Handler) fail(ctx context.Context, method string, err error) error {
	mapped := mapDomainErrorToGRPC(err)
	if status.Code(mapped) == codes.Internal {
		h.log.Error(h.log.WithField(ctx, "grpc_method", method), "grpc.error", err)
	}
	return mapped
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/pricing-service/internal/app/pricing"
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

// Handler serves the pricing JSON API.
type Handler struct {
	uc  *pricing.PriceEntryUseCases
	log *logger.Logger
}

// NewHandler creates a new HTTP pricing handler.
func NewHandler(uc *pricing.PriceEntryUseCases, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{uc: uc, log: log}
}

type setBasePriceBody struct {
	PriceInCents *int64 `json:"priceInCents" validate:"required,min=0"`
	Currency     string `json:"currency" validate:"omitempty,len=3,alpha"`
}

type scheduleBasePriceBody struct {
	PriceInCents  *int64     `json:"priceInCents" validate:"required,min=0"`
	Currency      string     `json:"currency" validate:"omitempty,len=3,alpha"`
	EffectiveDate *time.Time `json:"effectiveDate" validate:"required"`
}

type bulkTierBody struct {
	MinQuantity        *int     `json:"minQuantity" validate:"required,min=1"`
	MaxQuantity        *int     `json:"maxQuantity" validate:"omitempty,min=1"`
	DiscountPercentage *float64 `json:"discountPercentage" validate:"required,min=0,max=100"`
}

type setBulkTiersBody struct {
	Tiers []bulkTierBody `json:"tiers" validate:"dive"`
}

type addPromotionBody struct {
	Name               string     `json:"name" validate:"required,max=128"`
	Type               string     `json:"type" validate:"required"`
	DiscountPercentage *float64   `json:"discountPercentage" validate:"required,min=0,max=100"`
	ValidFrom          *time.Time `json:"validFrom" validate:"required"`
	ValidUntil         *time.Time `json:"validUntil" validate:"required"`
	Priority           int        `json:"priority"`
}

type setAvailabilityBody struct {
	Level string `json:"level" validate:"required"`
}

type availabilityResponse struct {
	SKU          string `json:"sku"`
	Level        string `json:"level"`
	IsLow        bool   `json:"isLow"`
	IsOutOfStock bool   `json:"isOutOfStock"`
}

type listEventsResponse struct {
	Events     []contracts.OutboxEventDTO `json:"events"`
	TotalCount int64                      `json:"totalCount"`
}

// ListPriceEntries handles GET /api/v1/price-entries.
func (h *Handler) ListPriceEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.uc.ListPriceEntries(r.Context())
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeSuccess(w, entries)
}

// GetPriceEntry handles GET /api/v1/price-entries/{sku}.
func (h *Handler) GetPriceEntry(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	entry, found, err := h.uc.GetPriceEntry(r.Context(), &get_price_entry.Request{SKU: sku})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	if !found {
		writeError(r.Context(), h.log, w, notFound("price entry not found: "+sku))
		return
	}
	writeSuccess(w, entry)
}

// SetBasePrice handles PUT /api/v1/price-entries/{sku}/base-price.
func (h *Handler) SetBasePrice(w http.ResponseWriter, r *http.Request) {
	var body setBasePriceBody
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	entry, err := h.uc.SetBasePrice(r.Context(), &set_base_price.Request{
		SKU:          chi.URLParam(r, "sku"),
		PriceInCents: *body.PriceInCents,
		Currency:     body.Currency,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeSuccess(w, entry)
}

// ScheduleBasePrice handles POST /api/v1/price-entries/{sku}/scheduled-prices.
func (h *Handler) ScheduleBasePrice(w http.ResponseWriter, r *http.Request) {
	var body scheduleBasePriceBody
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	entry, err := h.uc.ScheduleBasePrice(r.Context(), &schedule_base_price.Request{
		SKU:           chi.URLParam(r, "sku"),
		PriceInCents:  *body.PriceInCents,
		Currency:      body.Currency,
		EffectiveDate: *body.EffectiveDate,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeSuccessStatus(w, http.StatusCreated, entry)
}

// SetBulkTiers handles PUT /api/v1/price-entries/{sku}/bulk-tiers.
func (h *Handler) SetBulkTiers(w http.ResponseWriter, r *http.Request) {
	var body setBulkTiersBody
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	tiers := make([]set_bulk_tiers.Tier, 0, len(body.Tiers))
	for _, t := range body.Tiers {
		tiers = append(tiers, set_bulk_tiers.Tier{
			MinQuantity:        *t.MinQuantity,
			MaxQuantity:        t.MaxQuantity,
			DiscountPercentage: *t.DiscountPercentage,
		})
	}

	entry, err := h.uc.SetBulkTiers(r.Context(), &set_bulk_tiers.Request{
		SKU:   chi.URLParam(r, "sku"),
		Tiers: tiers,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeSuccess(w, entry)
}

// AddPromotion handles POST /api/v1/price-entries/{sku}/promotions.
func (h *Handler) AddPromotion(w http.ResponseWriter, r *http.Request) {
	var body addPromotionBody
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	entry, err := h.uc.AddPromotion(r.Context(), &add_promotion.Request{
		SKU:                chi.URLParam(r, "sku"),
		Name:               body.Name,
		Type:               body.Type,
		DiscountPercentage: *body.DiscountPercentage,
		ValidFrom:          *body.ValidFrom,
		ValidUntil:         *body.ValidUntil,
		Priority:           body.Priority,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeSuccessStatus(w, http.StatusCreated, entry)
}

// RemovePromotion handles DELETE /api/v1/price-entries/{sku}/promotions/{name}.
func (h *Handler) RemovePromotion(w http.ResponseWriter, r *http.Request) {
	entry, err := h.uc.RemovePromotion(r.Context(), &remove_promotion.Request{
		SKU:           chi.URLParam(r, "sku"),
		PromotionName: chi.URLParam(r, "name"),
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeSuccess(w, entry)
}

// CalculatePrice handles GET /api/v1/price-entries/{sku}/price?at=&quantity=.
func (h *Handler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	at, err := parseQueryTime(r, "at")
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	quantity, err := parseQueryInt(r, "quantity", 0)
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	sku := chi.URLParam(r, "sku")
	price, found, err := h.uc.CalculatePrice(r.Context(), &calculate_price.Request{SKU: sku, At: at, Quantity: quantity})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	if !found {
		writeError(r.Context(), h.log, w, notFound("price entry not found: "+sku))
		return
	}
	writeSuccess(w, price)
}

// CalculateSavingsSummary handles GET /api/v1/price-entries/{sku}/savings?quantity=.
func (h *Handler) CalculateSavingsSummary(w http.ResponseWriter, r *http.Request) {
	quantity, err := parseQueryInt(r, "quantity", 0)
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	sku := chi.URLParam(r, "sku")
	summary, found, err := h.uc.CalculateSavingsSummary(r.Context(), &calculate_savings_summary.Request{SKU: sku, Quantity: quantity})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	if !found {
		writeError(r.Context(), h.log, w, notFound("price entry not found: "+sku))
		return
	}
	writeSuccess(w, summary)
}

// SetAvailability handles PUT /api/v1/availability/{sku}.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var body setAvailabilityBody
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	signal, err := h.uc.SetAvailability(r.Context(), chi.URLParam(r, "sku"), body.Level)
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeSuccess(w, availabilityResponse{
		SKU:          signal.SKU,
		Level:        string(signal.Level),
		IsLow:        signal.IsLow,
		IsOutOfStock: signal.IsOutOfStock,
	})
}

// ListEvents handles GET /api/v1/events?event_type=&aggregate_id=&status=&limit=.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := parseQueryInt(r, "limit", list_events.DefaultLimit)
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	query := r.URL.Query()
	events, total, err := h.uc.ListEvents(r.Context(), &list_events.Request{
		EventType:   query.Get("event_type"),
		AggregateID: query.Get("aggregate_id"),
		Status:      query.Get("status"),
		Limit:       limit,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	if events == nil {
		events = []contracts.OutboxEventDTO{}
	}
	writeSuccess(w, listEventsResponse{Events: events, TotalCount: total})
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

// NewRouter mounts the pricing API, /healthz and, when gatherer is non-nil, /metrics.
func NewRouter(h *Handler, logg *logger.Logger, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(
		Recoverer(logg),
		RequestID(logg),
		Logging(logg),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/price-entries", func(r chi.Router) {
			r.Get("/", h.ListPriceEntries)
			r.Route("/{sku}", func(r chi.Router) {
				r.Get("/", h.GetPriceEntry)
				r.Put("/base-price", h.SetBasePrice)
				r.Post("/scheduled-prices", h.ScheduleBasePrice)
				r.Put("/bulk-tiers", h.SetBulkTiers)
				r.Post("/promotions", h.AddPromotion)
				r.Delete("/promotions/{name}", h.RemovePromotion)
				r.Get("/price", h.CalculatePrice)
				r.Get("/savings", h.CalculateSavingsSummary)
			})
		})
		r.Put("/availability/{sku}", h.SetAvailability)
		r.Get("/events", h.ListEvents)
	})

	return r
}

// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for CommandMetrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// PricingMetrics records calculations and command executions.
// A nil *PricingMetrics is valid and records nothing.
type PricingMetrics struct {
	calculations     *prometheus.CounterVec
	adjustedPromos   *prometheus.CounterVec
	commands         *prometheus.CounterVec
	commandDurations *prometheus.HistogramVec
}

// NewPricingMetrics registers the pricing collectors on reg.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricing",
		Name:      "calculations_total",
		Help:      "Price calculations by availability level.",
	}, []string{"availability"})
	adjustedPromos := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricing",
		Name:      "promotion_adjustments_total",
		Help:      "Promotions reduced or suppressed by availability.",
	}, []string{"reason"})
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricing",
		Name:      "commands_total",
		Help:      "Price entry commands by name and outcome.",
	}, []string{"command", "outcome"})
	commandDurations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pricing",
		Name:      "command_duration_seconds",
		Help:      "Duration of price entry commands in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command"})
	reg.MustRegister(calculations, adjustedPromos, commands, commandDurations)
	return &PricingMetrics{
		calculations:     calculations,
		adjustedPromos:   adjustedPromos,
		commands:         commands,
		commandDurations: commandDurations,
	}
}

// ObserveCalculation counts one calculation at the given availability level.
func (m *PricingMetrics) ObserveCalculation(level string) {
	if m == nil || m.calculations == nil {
		return
	}
	m.calculations.WithLabelValues(normalizeLabel(level)).Inc()
}

// ObserveAdjustment counts a promotion whose discount was cut by availability.
func (m *PricingMetrics) ObserveAdjustment(reasonCode string) {
	if m == nil || m.adjustedPromos == nil {
		return
	}
	m.adjustedPromos.WithLabelValues(normalizeLabel(reasonCode)).Inc()
}

// ObserveCommand records a command's outcome and duration.
func (m *PricingMetrics) ObserveCommand(command string, err error, duration time.Duration) {
	if m == nil || m.commands == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.commands.WithLabelValues(normalizeLabel(command), outcome).Inc()
	m.commandDurations.WithLabelValues(normalizeLabel(command)).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

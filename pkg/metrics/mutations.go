// Package metrics exposes prometheus instrumentation for the invoicing
// core. Counters are advisory; a nil receiver disables them entirely so
// tests and tools can skip registration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MutationMetrics counts lifecycle mutations per entity and operation.
type MutationMetrics struct {
	registry *prometheus.Registry
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewMutationMetrics registers the mutation counters on a fresh registry.
func NewMutationMetrics() *MutationMetrics {
	registry := prometheus.NewRegistry()

	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mutation_success_total",
		Help: "Committed lifecycle mutations.",
	}, []string{"entity", "op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mutation_failure_total",
		Help: "Rolled-back or rejected lifecycle mutations.",
	}, []string{"entity", "op"})
	registry.MustRegister(success, failure)

	return &MutationMetrics{
		registry: registry,
		success:  success,
		failure:  failure,
	}
}

// IncSuccess increments the success counter for entity/op.
func (m *MutationMetrics) IncSuccess(entity, op string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(entity, op).Inc()
}

// IncFailure increments the failure counter for entity/op.
func (m *MutationMetrics) IncFailure(entity, op string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(entity, op).Inc()
}

// Observe bumps the matching counter for err.
func (m *MutationMetrics) Observe(entity, op string, err error) {
	if err != nil {
		m.IncFailure(entity, op)
		return
	}
	m.IncSuccess(entity, op)
}

// Handler serves the scrape endpoint for this registry.
func (m *MutationMetrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

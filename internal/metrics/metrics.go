// Package metrics exposes the service counters. It implements the
// coordinator signal sink so every state transition is counted where it
// happens.
package metrics

import (
	"net/http"
	"time"

	"github.com/spacekeep/capture-service/internal/coordinator"
	"github.com/spacekeep/capture-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "capture"

// Metrics holds the registry and the coordinator counters.
type Metrics struct {
	registry *prometheus.Registry

	draftTransitions   *prometheus.CounterVec
	draftSaveFailures  prometheus.Counter
	deletionsPending   prometheus.Counter
	deletionsCommitted prometheus.Counter
	deletionsCancelled prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		draftTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "draft",
			Name:      "status_transitions_total",
			Help:      "Draft state machine transitions by target status.",
		}, []string{"status"}),
		draftSaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "draft",
			Name:      "save_failures_total",
			Help:      "Draft store writes that failed.",
		}),
		deletionsPending: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deletion",
			Name:      "pending_total",
			Help:      "Deletions that entered the undo grace window.",
		}),
		deletionsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deletion",
			Name:      "committed_total",
			Help:      "Deletions that became permanent.",
		}),
		deletionsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deletion",
			Name:      "cancelled_total",
			Help:      "Deletions cancelled by an undo.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.draftTransitions,
		m.draftSaveFailures,
		m.deletionsPending,
		m.deletionsCommitted,
		m.deletionsCancelled,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) DraftStatusChanged(itemID string, status domain.DraftStatus, reason string) {
	m.draftTransitions.WithLabelValues(string(status)).Inc()
	if status == domain.DraftFailed {
		m.draftSaveFailures.Inc()
	}
}

func (m *Metrics) DeletionPending(itemID string, remaining time.Duration) {
	m.deletionsPending.Inc()
}

func (m *Metrics) DeletionCommitted(itemID string) {
	m.deletionsCommitted.Inc()
}

func (m *Metrics) DeletionCancelled(itemID string) {
	m.deletionsCancelled.Inc()
}

var _ coordinator.Signals = (*Metrics)(nil)

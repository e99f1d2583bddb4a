// Package metrics holds the Prometheus collectors for the ledger and notifier.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Purchase outcomes used as the "outcome" label.
const (
	OutcomeSuccess           = "success"
	OutcomeAlreadySold       = "already_sold"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeRejected          = "rejected"
	OutcomeError             = "error"
)

// Metrics groups every collector the service exports. A nil *Metrics is valid
// and records nothing, which keeps tests free of registry wiring.
type Metrics struct {
	registry *prometheus.Registry

	purchases        *prometheus.CounterVec
	listings         *prometheus.CounterVec
	walletOps        *prometheus.CounterVec
	rollbacks        prometheus.Counter
	eventsPublished  *prometheus.CounterVec
	observersDropped prometheus.Counter
	activeObservers  prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonx_purchases_total",
			Help: "Purchase attempts by outcome.",
		}, []string{"outcome"}),
		listings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonx_listing_transitions_total",
			Help: "Listing lifecycle transitions by resulting status.",
		}, []string{"status"}),
		walletOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonx_wallet_operations_total",
			Help: "Deposits and withdrawals by type and outcome.",
		}, []string{"type", "outcome"}),
		rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carbonx_purchase_rollbacks_total",
			Help: "Buyer debits compensated after losing a listing race.",
		}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonx_events_published_total",
			Help: "Events published to observers by type.",
		}, []string{"event_type"}),
		observersDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carbonx_observers_dropped_total",
			Help: "Observers disconnected because of slow or failed delivery.",
		}),
		activeObservers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "carbonx_active_observers",
			Help: "Currently subscribed observers.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.purchases,
		m.listings,
		m.walletOps,
		m.rollbacks,
		m.eventsPublished,
		m.observersDropped,
		m.activeObservers,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) PurchaseAttempt(outcome string) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ListingTransition(status string) {
	if m == nil {
		return
	}
	m.listings.WithLabelValues(status).Inc()
}

func (m *Metrics) WalletOperation(kind, outcome string) {
	if m == nil {
		return
	}
	m.walletOps.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) PurchaseRollback() {
	if m == nil {
		return
	}
	m.rollbacks.Inc()
}

func (m *Metrics) EventPublished(eventType string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ObserverDropped() {
	if m == nil {
		return
	}
	m.observersDropped.Inc()
}

func (m *Metrics) SetActiveObservers(n int) {
	if m == nil {
		return
	}
	m.activeObservers.Set(float64(n))
}

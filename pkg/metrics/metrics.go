// Package metrics exposes Prometheus counters for campaign delivery.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace       = "mailblaster"
	statusLabelName = "status"
)

// Delivery statuses used as label values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Metrics holds the prometheus.Collector instances.
type Metrics struct {
	campaigns        prometheus.Counter
	deliveries       *prometheus.CounterVec
	relayUnavailable prometheus.Counter
	dispatchDuration prometheus.Histogram
}

// New creates unregistered collectors.
func New() *Metrics {
	return &Metrics{
		campaigns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaigns_total",
			Help:      "The number of campaigns dispatched.",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "The number of per-recipient delivery attempts by outcome.",
		}, []string{statusLabelName}),
		relayUnavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_unavailable_total",
			Help:      "The number of campaigns rejected because no mail relay was ready.",
		}),
		dispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent delivering one campaign to all recipients.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}
}

// Register registers the collectors with r.
func (m *Metrics) Register(r prometheus.Registerer) {
	r.MustRegister(m.campaigns, m.deliveries, m.relayUnavailable, m.dispatchDuration)
}

// IncCampaigns counts a dispatched campaign.
func (m *Metrics) IncCampaigns() {
	m.campaigns.Inc()
}

// IncDelivery counts one recipient attempt.
func (m *Metrics) IncDelivery(success bool) {
	status := StatusFailed
	if success {
		status = StatusSuccess
	}
	m.deliveries.With(prometheus.Labels{statusLabelName: status}).Inc()
}

// IncRelayUnavailable counts a campaign refused with 503.
func (m *Metrics) IncRelayUnavailable() {
	m.relayUnavailable.Inc()
}

// ObserveDispatch records how long a campaign took.
func (m *Metrics) ObserveDispatch(d time.Duration) {
	m.dispatchDuration.Observe(d.Seconds())
}

// NewRegistry returns a dedicated registry with process and Go runtime
// collectors plus m.
func NewRegistry(m *Metrics) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	if m != nil {
		m.Register(registry)
	}
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "gateway"

// Metrics tracks connection authorization outcomes. Reject reasons
// are recorded here and in logs only — never sent to the client.
type Metrics struct {
	authorized prometheus.Counter
	rejected   *prometheus.CounterVec
	open       prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		authorized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connections_authorized_total",
			Help:      "Connections that passed token verification",
		}),

		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connections_rejected_total",
			Help:      "Connections terminated before authorization",
		}, []string{"reason"}),

		open: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connections_open",
			Help:      "Currently open authorized connections",
		}),
	}
}

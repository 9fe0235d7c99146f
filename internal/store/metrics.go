package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for store observability.
type Metrics struct {
	AppendsTotal prometheus.Counter // Total explanations appended
	AppendErrors prometheus.Counter // Appends rejected (duplicate id)
	Size         prometheus.Gauge   // Current number of stored explanations
}

// NewMetrics creates Prometheus metrics for a store instance.
// The registerer parameter allows flexible registration (global registry,
// test registry). The instanceName parameter distinguishes multiple
// engine instances via ConstLabels.
func NewMetrics(reg prometheus.Registerer, instanceName string) *Metrics {
	appendsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "lucid_store_appends_total",
		Help:        "Total number of explanations appended to the store",
		ConstLabels: prometheus.Labels{"instance": instanceName},
	})

	appendErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "lucid_store_append_errors_total",
		Help:        "Total number of appends rejected with a duplicate id",
		ConstLabels: prometheus.Labels{"instance": instanceName},
	})

	size := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "lucid_store_size",
		Help:        "Current number of explanations held in the store",
		ConstLabels: prometheus.Labels{"instance": instanceName},
	})

	reg.MustRegister(appendsTotal)
	reg.MustRegister(appendErrors)
	reg.MustRegister(size)

	return &Metrics{
		AppendsTotal: appendsTotal,
		AppendErrors: appendErrors,
		Size:         size,
	}
}

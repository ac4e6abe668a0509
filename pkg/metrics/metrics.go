package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry creates a registry with all graph and skeleton metrics registered
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.TechnologiesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resnet_graph_technologies_total",
			Help: "Total number of technology nodes in the graph",
		},
	)

	r.FuelsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resnet_graph_fuels_total",
			Help: "Total number of fuel edges in the graph",
		},
	)

	r.SetMembersTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resnet_graph_set_members_total",
			Help: "Total number of index set members registered on the graph",
		},
		[]string{"set"},
	)

	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resnet_graph_operations_total",
			Help: "Total number of graph operations",
		},
		[]string{"operation", "status"},
	)

	r.SkeletonLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resnet_skeleton_loads_total",
			Help: "Total number of structure description loads",
		},
		[]string{"status"},
	)

	r.SkeletonLoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resnet_skeleton_load_duration_seconds",
			Help:    "Structure description load duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	return r
}

// Gatherer exposes the underlying prometheus registry for scraping and tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving the registry in exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveOperation records a graph operation outcome. Nil-receiver safe so
// callers without metrics configured can skip the nil check.
func (r *Registry) ObserveOperation(operation, status string) {
	if r == nil {
		return
	}
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
}

// SetGraphSize records current node and edge counts
func (r *Registry) SetGraphSize(technologies, fuels int) {
	if r == nil {
		return
	}
	r.TechnologiesTotal.Set(float64(technologies))
	r.FuelsTotal.Set(float64(fuels))
}

// SetSetSize records the member count of one index set
func (r *Registry) SetSetSize(set string, members int) {
	if r == nil {
		return
	}
	r.SetMembersTotal.WithLabelValues(set).Set(float64(members))
}

// ObserveSkeletonLoad records a structure load outcome and duration
func (r *Registry) ObserveSkeletonLoad(status string, seconds float64) {
	if r == nil {
		return
	}
	r.SkeletonLoadsTotal.WithLabelValues(status).Inc()
	r.SkeletonLoadDuration.Observe(seconds)
}

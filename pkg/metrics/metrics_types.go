package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Graph metrics
	TechnologiesTotal prometheus.Gauge
	FuelsTotal        prometheus.Gauge
	SetMembersTotal   *prometheus.GaugeVec
	OperationsTotal   *prometheus.CounterVec

	// Skeleton metrics
	SkeletonLoadsTotal   *prometheus.CounterVec
	SkeletonLoadDuration prometheus.Histogram

	registry *prometheus.Registry
}

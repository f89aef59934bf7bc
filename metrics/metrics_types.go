package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the metrics of the workbench.
type Registry struct {
	// Loading
	LoadsTotal     *prometheus.CounterVec
	AutomatonSize  *prometheus.HistogramVec
	SessionsActive prometheus.Gauge

	// Simulation
	WordChecksTotal *prometheus.CounterVec
	WordSymbols     prometheus.Histogram

	// Minimization
	MinimizationsTotal   *prometheus.CounterVec
	MinimizationDuration prometheus.Histogram
	StatesRemovedTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric registered on a private Prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initLoadMetrics()
	r.initSimulationMetrics()
	r.initMinimizationMetrics()

	return r
}

// Prometheus returns the underlying Prometheus registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

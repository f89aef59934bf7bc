package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sizeBuckets = []float64{1, 2, 4, 8, 16, 32, 64, 128, 256}

func (r *Registry) initLoadMetrics() {
	r.LoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dfa_loads_total",
			Help: "Total number of automaton definitions loaded",
		},
		[]string{"status"},
	)

	r.AutomatonSize = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dfa_automaton_size",
			Help:    "Number of states and transitions of loaded automatons",
			Buckets: sizeBuckets,
		},
		[]string{"kind"},
	)

	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "dfa_sessions_active",
			Help: "Number of open workbench sessions",
		},
	)
}

func (r *Registry) initSimulationMetrics() {
	r.WordChecksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dfa_word_checks_total",
			Help: "Total number of simulated words by outcome",
		},
		[]string{"outcome"},
	)

	r.WordSymbols = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dfa_word_symbols",
			Help:    "Number of transitions taken per simulated word",
			Buckets: sizeBuckets,
		},
	)
}

func (r *Registry) initMinimizationMetrics() {
	r.MinimizationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dfa_minimizations_total",
			Help: "Total number of minimizations",
		},
		[]string{"status"},
	)

	r.MinimizationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dfa_minimization_duration_seconds",
			Help:    "Minimization duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		},
	)

	r.StatesRemovedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dfa_states_removed_total",
			Help: "States removed by minimization",
		},
		[]string{"reason"},
	)
}

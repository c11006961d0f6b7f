// Package metrics exposes Prometheus metrics for maze sessions and solves.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements service.Observer on Prometheus collectors.
type Metrics struct {
	// Sessions created by maze name
	SessionsCreated *prometheus.CounterVec

	// Solves by result: "found" or "unsolvable"
	Solves *prometheus.CounterVec

	// Solver wall time
	SolveDuration prometheus.Histogram

	// Cells visited per solve
	ExploredCells prometheus.Histogram
}

// New registers the maze metrics on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SessionsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maze_sessions_created_total",
			Help: "Total sessions created by maze name",
		}, []string{"maze"}),

		Solves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maze_solves_total",
			Help: "Total solve attempts by result",
		}, []string{"result"}),

		SolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "maze_solve_duration_seconds",
			Help:    "Duration of a single depth-first solve",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),

		ExploredCells: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "maze_solve_explored_cells",
			Help:    "Cells visited by the solver per attempt",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

// SessionCreated records a new session on mazeName.
func (m *Metrics) SessionCreated(mazeName string) {
	if m != nil {
		m.SessionsCreated.WithLabelValues(mazeName).Inc()
	}
}

// SolveCompleted records the outcome of one solve.
func (m *Metrics) SolveCompleted(found bool, explored int, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "unsolvable"
	if found {
		result = "found"
	}
	m.Solves.WithLabelValues(result).Inc()
	m.SolveDuration.Observe(elapsed.Seconds())
	m.ExploredCells.Observe(float64(explored))
}

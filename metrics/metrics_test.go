package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/maze-runner/maze/service"
)

var _ service.Observer = (*Metrics)(nil)

func TestSolveCompleted(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SolveCompleted(true, 12, 3*time.Millisecond)
	m.SolveCompleted(true, 4, time.Millisecond)
	m.SolveCompleted(false, 7, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Solves.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Solves.WithLabelValues("unsolvable")))
}

func TestSessionCreated(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SessionCreated("sample")
	m.SessionCreated("sample")
	m.SessionCreated("spiral")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsCreated.WithLabelValues("sample")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCreated.WithLabelValues("spiral")))
}

func TestRegistryGathers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SolveCompleted(true, 3, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["maze_solves_total"])
	assert.True(t, names["maze_solve_duration_seconds"])
	assert.True(t, names["maze_solve_explored_cells"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionCreated("sample")
		m.SolveCompleted(true, 1, time.Millisecond)
	})
}

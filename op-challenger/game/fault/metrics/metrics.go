// Package metrics exposes the small set of Prometheus counters the
// dispute solver and resolver emit: moves dispatched, by kind, and
// oracle failures encountered while deciding them.
package metrics

import (
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "op_fault_solver"

// Metricer is the subset of metrics the solver/resolver packages care
// about recording. A caller that doesn't want metrics can pass NoopMetrics.
type Metricer interface {
	RecordMove(kind types.ResponseKind)
	RecordOracleError()
	RecordGameResolved(status types.GameStatus)
}

type prometheusMetrics struct {
	moves         *prometheus.CounterVec
	oracleErrors  prometheus.Counter
	gamesResolved *prometheus.CounterVec
}

// NewMetrics registers the solver's counters against reg and returns a
// Metricer backed by them.
func NewMetrics(reg prometheus.Registerer) Metricer {
	factory := promauto.With(reg)
	return &prometheusMetrics{
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Number of responses emitted by the claim solver, by kind.",
		}, []string{"kind"}),
		oracleErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_errors_total",
			Help:      "Number of trace provider calls that returned an error.",
		}),
		gamesResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_resolved_total",
			Help:      "Number of games resolved, by winning status.",
		}, []string{"status"}),
	}
}

func (m *prometheusMetrics) RecordMove(kind types.ResponseKind) {
	m.moves.WithLabelValues(kind.String()).Inc()
}

func (m *prometheusMetrics) RecordOracleError() {
	m.oracleErrors.Inc()
}

func (m *prometheusMetrics) RecordGameResolved(status types.GameStatus) {
	m.gamesResolved.WithLabelValues(status.String()).Inc()
}

type noopMetrics struct{}

func (noopMetrics) RecordMove(types.ResponseKind)      {}
func (noopMetrics) RecordOracleError()                 {}
func (noopMetrics) RecordGameResolved(types.GameStatus) {}

// NoopMetrics discards every recorded metric. It is the default for
// callers that construct a DisputeSolver or Resolver without their own
// prometheus.Registerer.
var NoopMetrics Metricer = noopMetrics{}

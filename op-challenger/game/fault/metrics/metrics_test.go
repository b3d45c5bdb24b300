package metrics

import (
	"testing"

	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetricsRecordsMoves(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordMove(types.ResponseMove)
	m.RecordMove(types.ResponseMove)
	m.RecordMove(types.ResponseSkip)
	m.RecordOracleError()
	m.RecordGameResolved(types.GameStatusDefenderWins)

	require.Equal(t, float64(2), testutil.ToFloat64(m.(*prometheusMetrics).moves.WithLabelValues("move")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.(*prometheusMetrics).moves.WithLabelValues("skip")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.(*prometheusMetrics).oracleErrors))
	require.Equal(t, float64(1), testutil.ToFloat64(m.(*prometheusMetrics).gamesResolved.WithLabelValues("defender_wins")))
}

func TestNoopMetricsDoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		NoopMetrics.RecordMove(types.ResponseStep)
		NoopMetrics.RecordOracleError()
		NoopMetrics.RecordGameResolved(types.GameStatusChallengerWins)
	})
}

package solver

import (
	"context"

	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/metrics"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/trace"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
	"golang.org/x/sync/errgroup"
)

// DisputeSolver fans a game's unvisited claims out to a ClaimSolver and
// collects the resulting responses.
type DisputeSolver struct {
	claims  ClaimSolver
	root    trace.Provider
	metrics metrics.Metricer
}

func NewDisputeSolver(claims ClaimSolver, rootProvider trace.Provider, m metrics.Metricer) *DisputeSolver {
	if m == nil {
		m = metrics.NoopMetrics
	}
	return &DisputeSolver{claims: claims, root: rootProvider, metrics: m}
}

// AvailableMoves computes the honest response to every unvisited claim in
// game. Results are returned in the claim indices' ascending order,
// regardless of which goroutine finished first. If any claim's oracle
// call fails, every claim visited during this call (all of which started
// unvisited) is rolled back to unvisited before the error is returned.
func (d *DisputeSolver) AvailableMoves(ctx context.Context, game *types.GameState) ([]types.Response, error) {
	rootHash, err := d.root.StateHash(ctx, types.RootPosition)
	if err != nil {
		d.metrics.RecordOracleError()
		return nil, err
	}
	attackingRoot := rootHash != game.RootClaim()

	indices := game.UnvisitedIndices()
	responses := make([]types.Response, len(indices))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, claimIndex := range indices {
		i, claimIndex := i, claimIndex
		group.Go(func() error {
			resp, err := d.claims.NextMove(groupCtx, game, claimIndex, attackingRoot)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		d.metrics.RecordOracleError()
		for _, claimIndex := range indices {
			_ = game.MarkVisited(claimIndex, false)
		}
		return nil, err
	}

	for _, resp := range responses {
		d.metrics.RecordMove(resp.Kind)
	}
	return responses, nil
}

// Package solver decides, for each unvisited claim in a dispute game,
// whether the honest participant should skip it, counter it with a
// bisection move, or step on it with a single VM instruction.
package solver

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/trace"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// ClaimSolver decides the correct response for a single claim, given
// whether the local trace provider disagrees with the game's root claim.
type ClaimSolver interface {
	NextMove(ctx context.Context, game *types.GameState, claimIndex int, attackingRoot bool) (types.Response, error)
}

// fetchStateHash asks provider for the state hash at pos, clearing the
// claim's visited bit if the oracle call fails so a later pass can retry it.
func fetchStateHash(ctx context.Context, provider trace.Provider, game *types.GameState, claimIndex int, pos types.Position) (common.Hash, error) {
	h, err := provider.StateHash(ctx, pos)
	if err != nil {
		_ = game.MarkVisited(claimIndex, false)
		return common.Hash{}, err
	}
	return h, nil
}

func fetchStateAt(ctx context.Context, provider trace.Provider, game *types.GameState, claimIndex int, pos types.Position) ([]byte, error) {
	v, err := provider.StateAt(ctx, pos)
	if err != nil {
		_ = game.MarkVisited(claimIndex, false)
		return nil, err
	}
	return v, nil
}

func fetchAbsolutePrestate(ctx context.Context, provider trace.Provider, game *types.GameState, claimIndex int, pos types.Position) ([]byte, error) {
	v, err := provider.AbsolutePrestate(ctx, pos)
	if err != nil {
		_ = game.MarkVisited(claimIndex, false)
		return nil, err
	}
	return v, nil
}

func fetchProofAt(ctx context.Context, provider trace.Provider, game *types.GameState, claimIndex int, pos types.Position) ([]byte, error) {
	v, err := provider.ProofAt(ctx, pos)
	if err != nil {
		_ = game.MarkVisited(claimIndex, false)
		return nil, err
	}
	return v, nil
}

// prevPosition returns the position one trace index to the left of p, at
// p's own depth. Used only at the leaf level, where generalized indices
// at a fixed depth are contiguous in trace-index order.
func prevPosition(p types.Position) (types.Position, error) {
	prevIdx := new(uint256.Int).Sub(p.IndexAtDepth(), uint256.NewInt(1))
	return types.NewPosition(p.Depth(), prevIdx)
}

package solver

import (
	"context"

	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/trace"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// AlphaSolver is the single-layer claim solver: the whole game tree, from
// root to leaf, bisects over one trace provider. It was the first
// solving strategy shipped for the fault dispute game, before the
// output/execution split was introduced.
type AlphaSolver struct {
	provider trace.Provider
}

func NewAlphaSolver(provider trace.Provider) *AlphaSolver {
	return &AlphaSolver{provider: provider}
}

func (s *AlphaSolver) NextMove(ctx context.Context, game *types.GameState, claimIndex int, attackingRoot bool) (types.Response, error) {
	claim, err := game.ClaimAt(claimIndex)
	if err != nil {
		return types.Response{}, err
	}
	if err := game.MarkVisited(claimIndex, true); err != nil {
		return types.Response{}, err
	}

	maxDepth := game.MaxDepth()
	pos := claim.Position
	depth := pos.Depth()

	if game.AgreeWithClaimLevel(claim, attackingRoot) {
		return types.Skip(claimIndex), nil
	}

	if claim.IsRoot() {
		hash, err := fetchStateHash(ctx, s.provider, game, claimIndex, pos.Attack())
		if err != nil {
			return types.Response{}, err
		}
		return types.Move(true, claimIndex, hash), nil
	}

	selfHash, err := fetchStateHash(ctx, s.provider, game, claimIndex, pos)
	if err != nil {
		return types.Response{}, err
	}
	isAttack := selfHash != claim.Value

	if depth != maxDepth {
		movePos := pos.MakeMove(isAttack)
		hash, err := fetchStateHash(ctx, s.provider, game, claimIndex, movePos)
		if err != nil {
			return types.Response{}, err
		}
		return types.Move(isAttack, claimIndex, hash), nil
	}

	// Leaf claim: the proper response is a single VM step.
	var (
		prestate []byte
		proof    []byte
	)
	if pos.IndexAtDepth().IsZero() && isAttack {
		prestate, err = fetchAbsolutePrestate(ctx, s.provider, game, claimIndex, pos)
		if err != nil {
			return types.Response{}, err
		}
		proof = []byte{}
	} else {
		prestatePos := pos
		if isAttack {
			prestatePos, err = prevPosition(pos)
			if err != nil {
				return types.Response{}, err
			}
		}
		prestate, err = fetchStateAt(ctx, s.provider, game, claimIndex, prestatePos)
		if err != nil {
			return types.Response{}, err
		}
		proof, err = fetchProofAt(ctx, s.provider, game, claimIndex, prestatePos)
		if err != nil {
			return types.Response{}, err
		}
	}

	return types.Step(isAttack, claimIndex, prestate, proof), nil
}

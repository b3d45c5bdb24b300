package solver

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/trace"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// ChadSolver is the split-layer claim solver: the game tree above
// SplitDepth bisects over output-root commitments, and the tree below it
// bisects over a VM execution trace, both served through a single
// composed provider. Named after the second iteration of the real
// solving strategy, which added the split and preimage hints.
type ChadSolver struct {
	provider trace.Provider
}

func NewChadSolver(provider trace.Provider) *ChadSolver {
	return &ChadSolver{provider: provider}
}

func (s *ChadSolver) NextMove(ctx context.Context, game *types.GameState, claimIndex int, attackingRoot bool) (types.Response, error) {
	claim, err := game.ClaimAt(claimIndex)
	if err != nil {
		return types.Response{}, err
	}
	if err := game.MarkVisited(claimIndex, true); err != nil {
		return types.Response{}, err
	}

	maxDepth := game.MaxDepth()
	splitDepth := game.SplitDepth()
	pos := claim.Position
	depth := pos.Depth()

	localHash, err := fetchStateHash(ctx, s.provider, game, claimIndex, pos)
	if err != nil {
		return types.Response{}, err
	}
	localAgree := localHash == claim.Value
	right := game.AgreeWithClaimLevel(claim, attackingRoot)

	if claim.IsRoot() {
		if localAgree && right {
			return types.Skip(claimIndex), nil
		}
		hash, err := fetchStateHash(ctx, s.provider, game, claimIndex, pos.Attack())
		if err != nil {
			return types.Response{}, err
		}
		return types.Move(true, claimIndex, hash), nil
	}

	// Never defend into an execution-trace sub-game root we already
	// agree with.
	if depth == splitDepth+1 && localAgree {
		return types.Skip(claimIndex), nil
	}
	if right {
		return types.Skip(claimIndex), nil
	}

	isAttack := !localAgree
	movePos := pos.MakeMove(isAttack)

	if movePos.Depth() <= maxDepth {
		hash, err := fetchStateHash(ctx, s.provider, game, claimIndex, movePos)
		if err != nil {
			return types.Response{}, err
		}
		return types.Move(isAttack, claimIndex, hash), nil
	}

	// Leaf move: step. The pre-state position depends on whether movePos
	// lands on an execution sub-game boundary.
	remaining := uint(maxDepth) - uint(splitDepth)
	modulus := new(uint256.Int).Lsh(uint256.NewInt(1), remaining)
	remainder := new(uint256.Int).Mod(movePos.IndexAtDepth(), modulus)

	var prestate []byte
	if !remainder.IsZero() {
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
	} else {
		prestate, err = fetchAbsolutePrestate(ctx, s.provider, game, claimIndex, movePos)
		if err != nil {
			return types.Response{}, err
		}
	}

	proof, err := fetchProofAt(ctx, s.provider, game, claimIndex, movePos)
	if err != nil {
		return types.Response{}, err
	}

	return types.Step(isAttack, claimIndex, prestate, proof), nil
}

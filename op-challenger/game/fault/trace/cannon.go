package trace

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// CannonOracle is the abstract boundary to the real fault-proof VM. A
// concrete implementation shells out to (or speaks IPC with) the cannon
// binary; that transport is an external collaborator and is not part of
// this module. This interface is the entire contract the solver needs.
type CannonOracle interface {
	// AbsolutePreimage returns the VM's genesis state witness.
	AbsolutePreimage(ctx context.Context) ([]byte, error)
	// StateWitnessAt returns the VM state witness after executing
	// traceIndex instructions from the absolute prestate.
	StateWitnessAt(ctx context.Context, traceIndex uint64) ([]byte, error)
	// ProofAt returns the single-step witness needed to execute
	// instruction traceIndex on-chain.
	ProofAt(ctx context.Context, traceIndex uint64) ([]byte, error)
}

// CannonProvider is a Provider backed by a CannonOracle, used for the
// bottom (execution-trace) half of a split game.
type CannonProvider struct {
	oracle     CannonOracle
	splitDepth types.Depth
	maxDepth   types.Depth
}

func NewCannonProvider(oracle CannonOracle, splitDepth, maxDepth types.Depth) *CannonProvider {
	return &CannonProvider{oracle: oracle, splitDepth: splitDepth, maxDepth: maxDepth}
}

func (c *CannonProvider) traceIndex(p types.Position) uint64 {
	return p.TraceIndex(c.maxDepth).Uint64()
}

func (c *CannonProvider) AbsolutePrestate(ctx context.Context, p types.Position) ([]byte, error) {
	witness, err := c.oracle.AbsolutePreimage(ctx)
	if err != nil {
		return nil, wrapOracleErr("AbsolutePreimage", err)
	}
	return witness, nil
}

func (c *CannonProvider) AbsolutePrestateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	witness, err := c.AbsolutePrestate(ctx, p)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(witness), nil
}

func (c *CannonProvider) StateAt(ctx context.Context, p types.Position) ([]byte, error) {
	witness, err := c.oracle.StateWitnessAt(ctx, c.traceIndex(p))
	if err != nil {
		return nil, wrapOracleErr(fmt.Sprintf("StateWitnessAt(%d)", c.traceIndex(p)), err)
	}
	return witness, nil
}

func (c *CannonProvider) StateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	witness, err := c.StateAt(ctx, p)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(witness), nil
}

func (c *CannonProvider) ProofAt(ctx context.Context, p types.Position) ([]byte, error) {
	proof, err := c.oracle.ProofAt(ctx, c.traceIndex(p))
	if err != nil {
		return nil, wrapOracleErr(fmt.Sprintf("ProofAt(%d)", c.traceIndex(p)), err)
	}
	return proof, nil
}

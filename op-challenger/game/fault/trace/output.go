package trace

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// outputAtBlockResult is the subset of the optimism_outputAtBlock
// response this provider consumes. The real response carries more
// fields (version, withdrawal storage root, state root); none of them
// are needed here.
type outputAtBlockResult struct {
	OutputRoot hexutil.Bytes `json:"outputRoot"`
}

// OutputProvider is a Provider over the output-root bisection: each leaf
// at depth LeafDepth commits to the L2 output root at block
// StartingBlockNumber + trace_index + 1, fetched from an L2 archive node.
type OutputProvider struct {
	client       *rpc.Client
	startBlock   uint64
	leafDepth    types.Depth
	prestateRoot common.Hash
}

// NewOutputProvider dials l2ArchiveURL and returns a provider rooted at
// startingBlockNumber. prestateRoot is the output root of the game's
// absolute prestate (the output at startingBlockNumber itself).
func NewOutputProvider(ctx context.Context, l2ArchiveURL string, startingBlockNumber uint64, leafDepth types.Depth, prestateRoot common.Hash) (*OutputProvider, error) {
	client, err := rpc.DialContext(ctx, l2ArchiveURL)
	if err != nil {
		return nil, wrapOracleErr("dial l2 archive", err)
	}
	return &OutputProvider{client: client, startBlock: startingBlockNumber, leafDepth: leafDepth, prestateRoot: prestateRoot}, nil
}

func (o *OutputProvider) blockAt(p types.Position) uint64 {
	return o.startBlock + p.TraceIndex(o.leafDepth).Uint64() + 1
}

func (o *OutputProvider) outputRootAt(ctx context.Context, block uint64) (common.Hash, error) {
	var result outputAtBlockResult
	if err := o.client.CallContext(ctx, &result, "optimism_outputAtBlock", hexutil.Uint64(block)); err != nil {
		return common.Hash{}, wrapOracleErr(fmt.Sprintf("optimism_outputAtBlock(%d)", block), err)
	}
	if len(result.OutputRoot) != 32 {
		return common.Hash{}, fmt.Errorf("%w: outputRoot has length %d, want 32", types.ErrOracleUnavailable, len(result.OutputRoot))
	}
	return common.BytesToHash(result.OutputRoot), nil
}

func (o *OutputProvider) AbsolutePrestate(ctx context.Context, p types.Position) ([]byte, error) {
	return o.prestateRoot.Bytes(), nil
}

func (o *OutputProvider) AbsolutePrestateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	// The output-root bisection commits directly to the raw output root;
	// there is no additional hashing layer as there is for the alphabet VM.
	return o.prestateRoot, nil
}

func (o *OutputProvider) StateAt(ctx context.Context, p types.Position) ([]byte, error) {
	root, err := o.outputRootAt(ctx, o.blockAt(p))
	if err != nil {
		return nil, err
	}
	return root.Bytes(), nil
}

func (o *OutputProvider) StateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	return o.outputRootAt(ctx, o.blockAt(p))
}

func (o *OutputProvider) ProofAt(ctx context.Context, p types.Position) ([]byte, error) {
	return nil, fmt.Errorf("%w: output bisection has no step proof, only the vm sub-game does", types.ErrOutOfRange)
}
